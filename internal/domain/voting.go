package domain

import "time"

type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	VotingAppID uint64    `json:"votingAppId,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	IsActive    bool      `json:"isActive"`
	CDate       time.Time `json:"cdate"`
}

func (e Election) Window(now time.Time) WindowState {
	if now.Before(e.StartTime) {
		return WindowNotStarted
	}
	if now.After(e.EndTime) {
		return WindowEnded
	}
	return WindowOpen
}

// Vote links an election and a user. VoteHash is the caller-computed
// commitment, stored verbatim; TxnID is mandatory and unique.
type Vote struct {
	ID         string    `json:"id"`
	ElectionID string    `json:"electionId"`
	UserID     string    `json:"userId"`
	VoteHash   string    `json:"voteHash"`
	TxnID      string    `json:"txnId"`
	CDate      time.Time `json:"cdate"`
}

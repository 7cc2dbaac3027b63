package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventActive    EventStatus = "ACTIVE"
	EventCompleted EventStatus = "COMPLETED"
	EventCancelled EventStatus = "CANCELLED"
)

// Event is a time-boxed activity. EventID is the externally-visible opaque
// identifier; ID is the internal primary key.
type Event struct {
	ID                 string      `json:"id"`
	EventID            string      `json:"eventId"`
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	StartTime          time.Time   `json:"startTime"`
	EndTime            time.Time   `json:"endTime"`
	OrganizerWallet    string      `json:"organizerWallet,omitempty"`
	AttendanceAppID    uint64      `json:"attendanceAppId,omitempty"`
	VotingAppID        uint64      `json:"votingAppId,omitempty"`
	CertificateAssetID uint64      `json:"certificateAssetId,omitempty"`
	Status             EventStatus `json:"status"`
	CDate              time.Time   `json:"cdate"`
}

// WindowState classifies now against the event time window.
type WindowState int

const (
	WindowOpen WindowState = iota
	WindowNotStarted
	WindowEnded
)

func (e Event) Window(now time.Time) WindowState {
	if now.Before(e.StartTime) {
		return WindowNotStarted
	}
	if now.After(e.EndTime) {
		return WindowEnded
	}
	return WindowOpen
}

package usecase

import (
	"context"
	"time"

	"github.com/campuschain/ccms/internal/domain"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// EventRepository defines persistence for events.
type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByEventID(ctx context.Context, eventID string) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	SetAttendanceApp(ctx context.Context, id string, appID uint64) error
}

// AttendanceRepository defines persistence for attendance records.
// Create must surface a duplicate-key violation as domain.ErrConflict; the
// constraint, not the pre-check, is authoritative under concurrent requests.
type AttendanceRepository interface {
	Create(ctx context.Context, att domain.Attendance) (domain.Attendance, error)
	Get(ctx context.Context, id string) (domain.Attendance, error)
	Find(ctx context.Context, eventID, participantKey string) (domain.Attendance, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Attendance, error)
	ListByParticipant(ctx context.Context, participantKey string) ([]domain.Attendance, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	CountConfirmedByEvent(ctx context.Context, eventID string) (int64, error)
	CountConfirmed(ctx context.Context, eventID, participantKey string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.AttendanceStatus, txnID string) error
}

// CertificateRepository defines persistence for certificates.
type CertificateRepository interface {
	Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error)
	Find(ctx context.Context, eventID, participantKey string) (domain.Certificate, error)
	GetByHash(ctx context.Context, certificateHash string) (domain.Certificate, error)
	ListByParticipant(ctx context.Context, participantKey string) ([]domain.Certificate, error)
	Finalize(ctx context.Context, id string, status domain.CertificateStatus, assetID uint64, txnID string, issuedAt time.Time) error
}

// FeedbackRepository defines persistence for anonymous feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb domain.Feedback) (domain.Feedback, error)
	Find(ctx context.Context, eventID, walletHash string) (domain.Feedback, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error)
}

// ElectionRepository defines persistence for elections.
type ElectionRepository interface {
	Create(ctx context.Context, e domain.Election) (domain.Election, error)
	Get(ctx context.Context, id string) (domain.Election, error)
	List(ctx context.Context) ([]domain.Election, error)
}

// VoteRepository defines persistence for votes.
type VoteRepository interface {
	Create(ctx context.Context, v domain.Vote) (domain.Vote, error)
	Find(ctx context.Context, electionID, userID string) (domain.Vote, error)
}

// TxnVerifier looks up transactions on the ledger. Implemented by the ledger
// gateway; a missing transaction is a negative verification, not an error.
type TxnVerifier interface {
	VerifyTransaction(ctx context.Context, txnID, expectedSender string) (domain.TxnVerification, error)
}

// ReputationOracle writes and reads the per-user on-chain score. Writes go
// through the privileged deployer identity; a configuration-off oracle
// degrades to a no-op.
type ReputationOracle interface {
	AddScore(ctx context.Context, walletAddress string, delta domain.ReputationScores) (string, error)
	GetScores(ctx context.Context, walletAddress string) (domain.ReputationScores, error)
}

// RewardLedger issues fungible reward-token transfers and reads balances.
type RewardLedger interface {
	SendReward(ctx context.Context, walletAddress string, amount uint64) (string, error)
	Balance(ctx context.Context, walletAddress string) (uint64, error)
}

// SentimentScorer maps free text to a polarity label and score.
type SentimentScorer interface {
	Analyze(text string) (domain.Sentiment, float64)
}

// AttendancePublisher fans out live attendance counts to realtime listeners.
type AttendancePublisher interface {
	PublishAttendance(ctx context.Context, eventID string, confirmed int64) error
}

// ContractDeployer compiles and deploys ledger applications. Used on the
// event-creation path when a deployer account is configured.
type ContractDeployer interface {
	DeployAttendanceApp(ctx context.Context, eventID string, start, end time.Time) (uint64, error)
}

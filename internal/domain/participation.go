package domain

import "time"

type AttendanceStatus string

const (
	AttendancePending   AttendanceStatus = "PENDING"
	AttendanceConfirmed AttendanceStatus = "CONFIRMED"
	AttendanceFailed    AttendanceStatus = "FAILED"
)

// Attendance is one record per (event, participant). ParticipantKey is the
// authenticated user id, or the wallet hash on the anonymous path.
type Attendance struct {
	ID             string           `json:"id"`
	EventID        string           `json:"eventId"`
	ParticipantKey string           `json:"-"`
	WalletAddress  string           `json:"-"`
	WalletHash     string           `json:"walletHash"`
	TxnID          string           `json:"txnId,omitempty"`
	Status         AttendanceStatus `json:"status"`
	CheckedInAt    time.Time        `json:"checkedInAt"`
}

type CertificateStatus string

const (
	CertificatePending     CertificateStatus = "PENDING"
	CertificateMinted      CertificateStatus = "MINTED"
	CertificateTransferred CertificateStatus = "TRANSFERRED"
	CertificateFailed      CertificateStatus = "FAILED"
)

// Certificate is one record per (event, participant). CertificateHash is the
// externally-verifiable identifier used by the public lookup endpoint.
type Certificate struct {
	ID              string            `json:"id"`
	EventID         string            `json:"eventId"`
	ParticipantKey  string            `json:"-"`
	WalletAddress   string            `json:"-"`
	WalletHash      string            `json:"walletHash,omitempty"`
	AssetID         uint64            `json:"assetId,omitempty"`
	CertificateHash string            `json:"certificateHash"`
	TxnID           string            `json:"txnId,omitempty"`
	Status          CertificateStatus `json:"status"`
	IssuedAt        *time.Time        `json:"issuedAt,omitempty"`
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Feedback holds only the wallet hash, never the raw address or a user id.
// The raw identity must not be recoverable from a stored row.
type Feedback struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	WalletHash     string    `json:"-"`
	ContentHash    string    `json:"contentHash"`
	Text           string    `json:"text"`
	Sentiment      Sentiment `json:"sentiment"`
	SentimentScore float64   `json:"sentimentScore"`
	TxnID          string    `json:"txnId,omitempty"`
	CDate          time.Time `json:"cdate"`
}

// FeedbackAnalytics is the aggregate-only view exposed to faculty dashboards.
type FeedbackAnalytics struct {
	Total        int     `json:"total"`
	Positive     int     `json:"positive"`
	Neutral      int     `json:"neutral"`
	Negative     int     `json:"negative"`
	AverageScore float64 `json:"averageScore"`
}

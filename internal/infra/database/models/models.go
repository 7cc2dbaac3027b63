package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name          string    `json:"name" gorm:"type:text;not null"`
	Email         string    `json:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string    `json:"-" gorm:"type:text;not null"`
	Role          string    `json:"role" gorm:"type:text;not null;default:'STUDENT'"`
	WalletAddress string    `json:"walletAddress" gorm:"type:char(58)"`
	CDate         time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate         time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type Event struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:uuid"`
	EventID            string    `json:"eventId" gorm:"type:text;not null;uniqueIndex"`
	Title              string    `json:"title" gorm:"type:text;not null"`
	Description        string    `json:"description" gorm:"type:text"`
	StartTime          time.Time `json:"startTime" gorm:"type:timestamp with time zone;not null"`
	EndTime            time.Time `json:"endTime" gorm:"type:timestamp with time zone;not null"`
	OrganizerWallet    string    `json:"organizerWallet" gorm:"type:char(58)"`
	AttendanceAppID    uint64    `json:"attendanceAppId" gorm:"type:bigint;default:0"`
	VotingAppID        uint64    `json:"votingAppId" gorm:"type:bigint;default:0"`
	CertificateAssetID uint64    `json:"certificateAssetId" gorm:"type:bigint;default:0"`
	Status             string    `json:"status" gorm:"type:text;not null;default:'ACTIVE'"`
	CDate              time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate              time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Attendance carries two uniqueness guarantees: one row per
// (event, participant key) and, on the anonymous path, one row per
// (event, wallet hash). WalletHash is NULL when no wallet was supplied so
// wallet-less check-ins by distinct users never collide on that index. The
// constraints are the authority under races; the workflow pre-check is
// advisory.
type Attendance struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid"`
	EventID        string    `json:"eventId" gorm:"type:text;not null;index:idx_attendance_event_participant,unique;index:idx_attendance_event_wallet,unique"`
	Event          Event     `json:"-" gorm:"foreignKey:EventID;references:EventID;constraint:OnDelete:CASCADE;"`
	ParticipantKey string    `json:"participantKey" gorm:"type:varchar(64);not null;index:idx_attendance_event_participant,unique"`
	WalletAddress  string    `json:"-" gorm:"type:char(58);not null"`
	WalletHash     *string   `json:"walletHash" gorm:"type:char(64);index:idx_attendance_event_wallet,unique"`
	TxnID          *string   `json:"txnId" gorm:"type:varchar(52);uniqueIndex"`
	Status         string    `json:"status" gorm:"type:text;not null;default:'PENDING'"`
	CheckedInAt    time.Time `json:"checkedInAt" gorm:"type:timestamp with time zone;not null;default:clock_timestamp()"`
	CDate          time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate          time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type Certificate struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid"`
	EventID         string     `json:"eventId" gorm:"type:text;not null;index:idx_certificate_event_participant,unique"`
	Event           Event      `json:"-" gorm:"foreignKey:EventID;references:EventID;constraint:OnDelete:CASCADE;"`
	ParticipantKey  string     `json:"participantKey" gorm:"type:varchar(64);not null;index:idx_certificate_event_participant,unique"`
	WalletAddress   string     `json:"-" gorm:"type:char(58);not null"`
	WalletHash      string     `json:"walletHash" gorm:"type:char(64);index"`
	AssetID         uint64     `json:"assetId" gorm:"type:bigint;default:0"`
	CertificateHash string     `json:"certificateHash" gorm:"type:char(64);not null;uniqueIndex"`
	TxnID           *string    `json:"txnId" gorm:"type:varchar(52)"`
	Status          string     `json:"status" gorm:"type:text;not null;default:'PENDING'"`
	IssuedAt        *time.Time `json:"issuedAt" gorm:"type:timestamp with time zone"`
	CDate           time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate           time.Time  `json:"mdate" gorm:"autoUpdateTime"`
}

// Feedback stores the wallet hash only. No raw address, no user id.
type Feedback struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid"`
	EventID        string    `json:"eventId" gorm:"type:text;not null;index:idx_feedback_event_wallet,unique"`
	Event          Event     `json:"-" gorm:"foreignKey:EventID;references:EventID;constraint:OnDelete:CASCADE;"`
	WalletHash     string    `json:"-" gorm:"type:char(64);not null;index:idx_feedback_event_wallet,unique"`
	ContentHash    string    `json:"contentHash" gorm:"type:char(64);not null"`
	Text           string    `json:"text" gorm:"type:text;not null"`
	Sentiment      string    `json:"sentiment" gorm:"type:text;not null;default:'neutral'"`
	SentimentScore float64   `json:"sentimentScore" gorm:"type:double precision"`
	TxnID          *string   `json:"txnId" gorm:"type:varchar(52)"`
	CDate          time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Election struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text"`
	StartTime   time.Time `json:"startTime" gorm:"type:timestamp with time zone;not null"`
	EndTime     time.Time `json:"endTime" gorm:"type:timestamp with time zone;not null"`
	VotingAppID uint64    `json:"votingAppId" gorm:"type:bigint;default:0"`
	CreatedBy   string    `json:"createdBy" gorm:"type:uuid;not null"`
	IsActive    bool      `json:"isActive" gorm:"type:boolean;not null;default:true"`
	CDate       time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type Vote struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	ElectionID string    `json:"electionId" gorm:"type:uuid;not null;index:idx_vote_election_user,unique"`
	Election   Election  `json:"-" gorm:"foreignKey:ElectionID;constraint:OnDelete:CASCADE;"`
	UserID     string    `json:"userId" gorm:"type:uuid;not null;index:idx_vote_election_user,unique"`
	VoteHash   string    `json:"voteHash" gorm:"type:text;not null"`
	TxnID      string    `json:"txnId" gorm:"type:varchar(52);not null;uniqueIndex"`
	CDate      time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

func (m *User) BeforeCreate(tx *gorm.DB) error        { m.ID = newID(m.ID); return nil }
func (m *Event) BeforeCreate(tx *gorm.DB) error       { m.ID = newID(m.ID); return nil }
func (m *Attendance) BeforeCreate(tx *gorm.DB) error  { m.ID = newID(m.ID); return nil }
func (m *Certificate) BeforeCreate(tx *gorm.DB) error { m.ID = newID(m.ID); return nil }
func (m *Feedback) BeforeCreate(tx *gorm.DB) error    { m.ID = newID(m.ID); return nil }
func (m *Election) BeforeCreate(tx *gorm.DB) error    { m.ID = newID(m.ID); return nil }
func (m *Vote) BeforeCreate(tx *gorm.DB) error        { m.ID = newID(m.ID); return nil }

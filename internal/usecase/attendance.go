package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/campuschain/ccms"
	"github.com/campuschain/ccms/internal/domain"
)

// MarkAttendanceInput is the validated input for a check-in. UserID is set on
// the authenticated path; the anonymous path identifies the participant by
// wallet address alone.
type MarkAttendanceInput struct {
	EventID       string
	WalletAddress string
	TxnID         string
	UserID        string
}

// MarkAttendanceResult carries the record plus the outcome of the best-effort
// incentive layer.
type MarkAttendanceResult struct {
	Attendance  domain.Attendance
	SideEffects domain.SideEffects
}

type AttendanceUsecase struct {
	events     EventRepository
	attendance AttendanceRepository
	verifier   TxnVerifier
	publisher  AttendancePublisher
	incentives incentives
	salt       string
}

func NewAttendanceUsecase(
	events EventRepository,
	attendance AttendanceRepository,
	verifier TxnVerifier,
	publisher AttendancePublisher,
	oracle ReputationOracle,
	rewards RewardLedger,
	salt string,
) *AttendanceUsecase {
	return &AttendanceUsecase{
		events:     events,
		attendance: attendance,
		verifier:   verifier,
		publisher:  publisher,
		incentives: incentives{oracle: oracle, rewards: rewards},
		salt:       salt,
	}
}

// Mark records a check-in for an event. The row insert is the durability
// boundary: once it succeeds the participation stands, regardless of how the
// verification and incentive steps go. A linked attendance application makes
// ledger verification mandatory; an invalid transaction marks the row FAILED
// and fails the request.
func (uc *AttendanceUsecase) Mark(ctx context.Context, input MarkAttendanceInput) (MarkAttendanceResult, error) {

	event, err := uc.events.GetByEventID(ctx, input.EventID)
	if err != nil {
		return MarkAttendanceResult{}, err
	}
	if err := windowError(event.Window(time.Now()), "Event"); err != nil {
		return MarkAttendanceResult{}, err
	}

	participantKey := input.UserID
	if participantKey == "" {
		if input.WalletAddress == "" {
			return MarkAttendanceResult{}, domain.ValidationError{Reason: "wallet address is required"}
		}
		participantKey = ccms.HashIdentity(input.WalletAddress, uc.salt)
	}

	walletHash := ""
	if input.WalletAddress != "" {
		walletHash = ccms.HashIdentity(input.WalletAddress, uc.salt)
	}

	// Advisory pre-check. The unique constraint on the insert below is what
	// holds under concurrent requests.
	if _, err := uc.attendance.Find(ctx, input.EventID, participantKey); err == nil {
		return MarkAttendanceResult{}, domain.ConflictError{Reason: "attendance already marked for this event"}
	}

	record, err := uc.attendance.Create(ctx, domain.Attendance{
		EventID:        input.EventID,
		ParticipantKey: participantKey,
		WalletAddress:  input.WalletAddress,
		WalletHash:     walletHash,
		TxnID:          input.TxnID,
		Status:         domain.AttendancePending,
		CheckedInAt:    time.Now(),
	})
	if err != nil {
		return MarkAttendanceResult{}, err
	}

	if event.AttendanceAppID != 0 && input.TxnID != "" {
		verification, err := uc.verifier.VerifyTransaction(ctx, input.TxnID, input.WalletAddress)
		if err != nil {
			return MarkAttendanceResult{}, err
		}
		if !verification.Valid {
			if err := uc.attendance.UpdateStatus(ctx, record.ID, domain.AttendanceFailed, input.TxnID); err != nil {
				slog.ErrorContext(
					ctx, "Failed to mark attendance record failed",
					slog.String("error", err.Error()),
					slog.String("module", "attendance"),
				)
			}
			record.Status = domain.AttendanceFailed
			return MarkAttendanceResult{Attendance: record},
				domain.ValidationError{Reason: "transaction verification failed: " + verification.Reason}
		}
	}

	if err := uc.attendance.UpdateStatus(ctx, record.ID, domain.AttendanceConfirmed, input.TxnID); err != nil {
		return MarkAttendanceResult{}, err
	}
	record.Status = domain.AttendanceConfirmed

	effects := uc.incentives.apply(ctx, input.WalletAddress,
		domain.ReputationScores{Attendance: domain.ScoreAttendance}, domain.RewardAttendance)

	if uc.publisher != nil {
		confirmed, err := uc.attendance.CountConfirmedByEvent(ctx, input.EventID)
		if err == nil {
			if err := uc.publisher.PublishAttendance(ctx, input.EventID, confirmed); err != nil {
				slog.ErrorContext(
					ctx, "Failed to publish attendance update",
					slog.String("error", err.Error()),
					slog.String("module", "attendance"),
				)
			}
		}
	}

	return MarkAttendanceResult{Attendance: record, SideEffects: effects}, nil
}

// Verify is the public lookup by record id.
func (uc *AttendanceUsecase) Verify(ctx context.Context, id string) (domain.Attendance, error) {
	return uc.attendance.Get(ctx, id)
}

// ListByEvent returns every check-in for an event.
func (uc *AttendanceUsecase) ListByEvent(ctx context.Context, eventID string) ([]domain.Attendance, error) {
	return uc.attendance.ListByEvent(ctx, eventID)
}

// My returns the caller's check-ins across events.
func (uc *AttendanceUsecase) My(ctx context.Context, participantKey string) ([]domain.Attendance, error) {
	return uc.attendance.ListByParticipant(ctx, participantKey)
}

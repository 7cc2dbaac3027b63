package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campuschain/ccms/internal/domain"
)

type CreateEventInput struct {
	EventID            string
	Title              string
	Description        string
	StartTime          time.Time
	EndTime            time.Time
	OrganizerWallet    string
	CertificateAssetID uint64
	DeployContract     bool
}

type EventUsecase struct {
	events     EventRepository
	attendance AttendanceRepository
	deployer   ContractDeployer
}

func NewEventUsecase(events EventRepository, attendance AttendanceRepository, deployer ContractDeployer) *EventUsecase {
	return &EventUsecase{
		events:     events,
		attendance: attendance,
		deployer:   deployer,
	}
}

// Create persists a new event and, when requested, deploys its attendance
// application. Deployment failure is advisory; the event stands without a
// linked application and check-ins skip ledger verification.
func (uc *EventUsecase) Create(ctx context.Context, input CreateEventInput) (domain.Event, error) {

	if input.Title == "" {
		return domain.Event{}, domain.ValidationError{Reason: "title is required"}
	}
	if !input.EndTime.After(input.StartTime) {
		return domain.Event{}, domain.ValidationError{Reason: "end time must be after start time"}
	}

	eventID := input.EventID
	if eventID == "" {
		eventID = uuid.New().String()
	}

	event, err := uc.events.Create(ctx, domain.Event{
		EventID:            eventID,
		Title:              input.Title,
		Description:        input.Description,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		OrganizerWallet:    input.OrganizerWallet,
		CertificateAssetID: input.CertificateAssetID,
		Status:             domain.EventActive,
	})
	if err != nil {
		return domain.Event{}, err
	}

	if input.DeployContract && uc.deployer != nil {
		appID, err := uc.deployer.DeployAttendanceApp(ctx, event.EventID, event.StartTime, event.EndTime)
		if err != nil {
			slog.ErrorContext(
				ctx, "Attendance contract deployment failed",
				slog.String("eventId", event.EventID),
				slog.String("error", err.Error()),
				slog.String("module", "event"),
			)
			return event, nil
		}
		if err := uc.events.SetAttendanceApp(ctx, event.ID, appID); err != nil {
			return domain.Event{}, err
		}
		event.AttendanceAppID = appID
	}

	return event, nil
}

func (uc *EventUsecase) List(ctx context.Context) ([]domain.Event, error) {
	return uc.events.List(ctx)
}

func (uc *EventUsecase) Get(ctx context.Context, eventID string) (domain.Event, error) {
	return uc.events.GetByEventID(ctx, eventID)
}

// AttendanceCount reports the number of check-ins for an event.
func (uc *EventUsecase) AttendanceCount(ctx context.Context, eventID string) (int64, error) {
	if _, err := uc.events.GetByEventID(ctx, eventID); err != nil {
		return 0, err
	}
	return uc.attendance.CountByEvent(ctx, eventID)
}

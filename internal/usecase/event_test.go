package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campuschain/ccms/internal/domain"
)

type fakeDeployer struct {
	appID uint64
	err   error
}

func (f *fakeDeployer) DeployAttendanceApp(ctx context.Context, eventID string, start, end time.Time) (uint64, error) {
	return f.appID, f.err
}

func TestCreateEvent(t *testing.T) {
	events := &mockEventRepo{}
	uc := NewEventUsecase(events, &mockAttendanceRepo{}, &fakeDeployer{appID: 1234})

	now := time.Now()
	event, err := uc.Create(context.Background(), CreateEventInput{
		Title:          "Hackathon",
		StartTime:      now,
		EndTime:        now.Add(8 * time.Hour),
		DeployContract: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if event.EventID == "" {
		t.Fatal("external event id must be generated")
	}
	if event.AttendanceAppID != 1234 {
		t.Errorf("attendance app %d", event.AttendanceAppID)
	}
}

func TestCreateEventDeploymentFailureAdvisory(t *testing.T) {
	events := &mockEventRepo{}
	uc := NewEventUsecase(events, &mockAttendanceRepo{}, &fakeDeployer{err: errors.New("node unreachable")})

	now := time.Now()
	event, err := uc.Create(context.Background(), CreateEventInput{
		Title:          "Hackathon",
		StartTime:      now,
		EndTime:        now.Add(8 * time.Hour),
		DeployContract: true,
	})
	if err != nil {
		t.Fatalf("deployment failure must not fail event creation: %v", err)
	}
	if event.AttendanceAppID != 0 {
		t.Errorf("attendance app %d", event.AttendanceAppID)
	}
}

func TestCreateEventValidation(t *testing.T) {
	uc := NewEventUsecase(&mockEventRepo{}, &mockAttendanceRepo{}, nil)

	now := time.Now()
	_, err := uc.Create(context.Background(), CreateEventInput{
		Title:     "Backwards",
		StartTime: now.Add(time.Hour),
		EndTime:   now,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

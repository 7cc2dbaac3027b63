package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/campuschain/ccms"
	"github.com/campuschain/ccms/internal/domain"
)

func openEvent(eventID string) domain.Event {
	now := time.Now()
	return domain.Event{
		ID:        "evt-internal",
		EventID:   eventID,
		Title:     "Tech Meetup",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		Status:    domain.EventActive,
	}
}

func newAttendanceFixture(event domain.Event) (*AttendanceUsecase, *mockAttendanceRepo, *fakeOracle, *fakeRewards) {
	events := &mockEventRepo{events: map[string]domain.Event{event.EventID: event}}
	attendance := &mockAttendanceRepo{}
	oracle := &fakeOracle{}
	rewards := &fakeRewards{}
	uc := NewAttendanceUsecase(events, attendance, &fakeVerifier{result: domain.TxnVerification{Valid: true}},
		&fakePublisher{}, oracle, rewards, ccms.DefaultSalt)
	return uc, attendance, oracle, rewards
}

func TestMarkAttendance(t *testing.T) {
	uc, _, oracle, rewards := newAttendanceFixture(openEvent("EVT1"))

	result, err := uc.Mark(context.Background(), MarkAttendanceInput{
		EventID:       "EVT1",
		WalletAddress: "WALLET_A",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Attendance.Status != domain.AttendanceConfirmed {
		t.Errorf("status %s", result.Attendance.Status)
	}
	if result.Attendance.WalletHash == "" || result.Attendance.WalletHash == "WALLET_A" {
		t.Error("wallet hash must be set and must not be the raw address")
	}
	if !result.SideEffects.Reputation.OK || !result.SideEffects.Reward.OK {
		t.Errorf("side effects %+v", result.SideEffects)
	}
	if oracle.calls != 1 || rewards.calls != 1 {
		t.Errorf("oracle calls %d, reward calls %d", oracle.calls, rewards.calls)
	}
}

func TestMarkAttendanceDuplicate(t *testing.T) {
	uc, _, _, _ := newAttendanceFixture(openEvent("EVT1"))

	input := MarkAttendanceInput{EventID: "EVT1", WalletAddress: "WALLET_A"}
	if _, err := uc.Mark(context.Background(), input); err != nil {
		t.Fatal(err)
	}

	_, err := uc.Mark(context.Background(), input)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMarkAttendanceConcurrentDuplicate(t *testing.T) {
	uc, repo, _, _ := newAttendanceFixture(openEvent("EVT1"))

	input := MarkAttendanceInput{EventID: "EVT1", WalletAddress: "WALLET_A"}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = uc.Mark(context.Background(), input)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("expected one stored row, got %d", len(repo.rows))
	}
}

func TestMarkAttendanceWindow(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name   string
		start  time.Time
		end    time.Time
		reason string
	}{
		{"not started", now.Add(time.Hour), now.Add(2 * time.Hour), "Event has not started yet"},
		{"ended", now.Add(-2 * time.Hour), now.Add(-time.Hour), "Event has ended"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			event := openEvent("EVT1")
			event.StartTime = tc.start
			event.EndTime = tc.end
			uc, _, _, _ := newAttendanceFixture(event)

			_, err := uc.Mark(context.Background(), MarkAttendanceInput{EventID: "EVT1", WalletAddress: "W"})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != tc.reason {
				t.Errorf("reason %q, want %q", err.Error(), tc.reason)
			}
		})
	}
}

func TestMarkAttendanceUnknownEvent(t *testing.T) {
	uc, _, _, _ := newAttendanceFixture(openEvent("EVT1"))

	_, err := uc.Mark(context.Background(), MarkAttendanceInput{EventID: "NOPE", WalletAddress: "W"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkAttendanceRewardFailureIsolated(t *testing.T) {
	uc, repo, _, rewards := newAttendanceFixture(openEvent("EVT1"))
	rewards.err = errors.New("asset transfer rejected")

	result, err := uc.Mark(context.Background(), MarkAttendanceInput{EventID: "EVT1", WalletAddress: "WALLET_A"})
	if err != nil {
		t.Fatalf("reward failure must not fail the request: %v", err)
	}
	if result.Attendance.Status != domain.AttendanceConfirmed {
		t.Errorf("status %s", result.Attendance.Status)
	}
	if result.SideEffects.Reward.OK || result.SideEffects.Reward.Error == "" {
		t.Errorf("reward outcome %+v", result.SideEffects.Reward)
	}
	if !result.SideEffects.Reputation.OK {
		t.Errorf("reputation outcome %+v", result.SideEffects.Reputation)
	}
	if len(repo.rows) != 1 {
		t.Fatal("record must be durable despite the reward failure")
	}
}

func TestMarkAttendanceVerificationInvalid(t *testing.T) {
	event := openEvent("EVT1")
	event.AttendanceAppID = 77
	events := &mockEventRepo{events: map[string]domain.Event{"EVT1": event}}
	repo := &mockAttendanceRepo{}
	verifier := &fakeVerifier{result: domain.TxnVerification{Valid: false, Reason: "sender mismatch"}}
	uc := NewAttendanceUsecase(events, repo, verifier, &fakePublisher{}, &fakeOracle{}, &fakeRewards{}, ccms.DefaultSalt)

	_, err := uc.Mark(context.Background(), MarkAttendanceInput{
		EventID:       "EVT1",
		WalletAddress: "WALLET_A",
		TxnID:         "TXN1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The row rolls forward to FAILED, it is not deleted.
	stored, err := uc.Verify(context.Background(), "att-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domain.AttendanceFailed {
		t.Errorf("stored status %s", stored.Status)
	}
}

func TestMarkAttendanceAuthenticatedPath(t *testing.T) {
	uc, repo, _, _ := newAttendanceFixture(openEvent("EVT1"))

	result, err := uc.Mark(context.Background(), MarkAttendanceInput{
		EventID: "EVT1",
		UserID:  "user-9",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Attendance.ParticipantKey != "user-9" {
		t.Errorf("participant key %s", result.Attendance.ParticipantKey)
	}
	// No wallet, so the incentive layer never fires.
	if result.SideEffects.Reputation.Attempted || result.SideEffects.Reward.Attempted {
		t.Errorf("side effects %+v", result.SideEffects)
	}
	if len(repo.rows) != 1 {
		t.Fatal("expected one stored row")
	}
}

func TestMarkAttendanceDistinctUsersWithoutWallet(t *testing.T) {
	uc, repo, _, _ := newAttendanceFixture(openEvent("EVT1"))

	for _, userID := range []string{"user-1", "user-2"} {
		result, err := uc.Mark(context.Background(), MarkAttendanceInput{
			EventID: "EVT1",
			UserID:  userID,
		})
		if err != nil {
			t.Fatalf("user %s: %v", userID, err)
		}
		if result.Attendance.Status != domain.AttendanceConfirmed {
			t.Errorf("user %s: status %s", userID, result.Attendance.Status)
		}
	}
	if len(repo.rows) != 2 {
		t.Fatalf("expected two stored rows, got %d", len(repo.rows))
	}
}

func TestMarkAttendanceWalletSharedAcrossPaths(t *testing.T) {
	uc, _, _, _ := newAttendanceFixture(openEvent("EVT1"))

	if _, err := uc.Mark(context.Background(), MarkAttendanceInput{
		EventID:       "EVT1",
		UserID:        "user-1",
		WalletAddress: "WALLET_A",
	}); err != nil {
		t.Fatal(err)
	}

	// The same wallet checking in again anonymously is still the same
	// participant.
	_, err := uc.Mark(context.Background(), MarkAttendanceInput{
		EventID:       "EVT1",
		WalletAddress: "WALLET_A",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMarkAttendancePublishesConfirmedCount(t *testing.T) {
	event := openEvent("EVT1")
	events := &mockEventRepo{events: map[string]domain.Event{event.EventID: event}}
	repo := &mockAttendanceRepo{}
	publisher := &fakePublisher{}
	uc := NewAttendanceUsecase(events, repo, &fakeVerifier{result: domain.TxnVerification{Valid: true}},
		publisher, &fakeOracle{}, &fakeRewards{}, ccms.DefaultSalt)

	if _, err := repo.Create(context.Background(), domain.Attendance{
		EventID:        "EVT1",
		ParticipantKey: "user-failed",
		Status:         domain.AttendanceFailed,
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.Mark(context.Background(), MarkAttendanceInput{
		EventID: "EVT1",
		UserID:  "user-1",
	}); err != nil {
		t.Fatal(err)
	}

	if publisher.published != 1 {
		t.Fatalf("published %d times", publisher.published)
	}
	if publisher.lastConfirmed != 1 {
		t.Errorf("published count %d, want 1 (failed rows excluded)", publisher.lastConfirmed)
	}
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/campuschain/ccms/internal/domain"
)

type mockEventRepo struct {
	events map[string]domain.Event
}

func (m *mockEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if m.events == nil {
		m.events = map[string]domain.Event{}
	}
	if _, ok := m.events[event.EventID]; ok {
		return domain.Event{}, domain.ConflictError{Reason: "event id already exists"}
	}
	event.ID = fmt.Sprintf("evt-%d", len(m.events)+1)
	m.events[event.EventID] = event
	return event, nil
}

func (m *mockEventRepo) GetByEventID(ctx context.Context, eventID string) (domain.Event, error) {
	event, ok := m.events[eventID]
	if !ok {
		return domain.Event{}, domain.NotFoundError{Resource: "event"}
	}
	return event, nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepo) SetAttendanceApp(ctx context.Context, id string, appID uint64) error {
	for key, e := range m.events {
		if e.ID == id {
			e.AttendanceAppID = appID
			m.events[key] = e
		}
	}
	return nil
}

// mockAttendanceRepo enforces the (event, participant) and anonymous-mode
// (event, wallet hash) uniqueness constraints under a mutex, standing in for
// the database constraints. An empty wallet hash is stored as NULL and never
// collides.
type mockAttendanceRepo struct {
	mu   sync.Mutex
	rows map[string]domain.Attendance
	seq  int
}

func attKey(eventID, participantKey string) string {
	return eventID + "/" + participantKey
}

func (m *mockAttendanceRepo) Create(ctx context.Context, att domain.Attendance) (domain.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[string]domain.Attendance{}
	}
	key := attKey(att.EventID, att.ParticipantKey)
	if _, ok := m.rows[key]; ok {
		return domain.Attendance{}, domain.ConflictError{Reason: "attendance already marked for this event"}
	}
	if att.WalletHash != "" {
		for _, row := range m.rows {
			if row.EventID == att.EventID && row.WalletHash == att.WalletHash {
				return domain.Attendance{}, domain.ConflictError{Reason: "attendance already marked for this event"}
			}
		}
	}
	m.seq++
	att.ID = fmt.Sprintf("att-%d", m.seq)
	m.rows[key] = att
	return att, nil
}

func (m *mockAttendanceRepo) Get(ctx context.Context, id string) (domain.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return domain.Attendance{}, domain.NotFoundError{Resource: "attendance record"}
}

func (m *mockAttendanceRepo) Find(ctx context.Context, eventID, participantKey string) (domain.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[attKey(eventID, participantKey)]
	if !ok {
		return domain.Attendance{}, domain.NotFoundError{Resource: "attendance record"}
	}
	return row, nil
}

func (m *mockAttendanceRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Attendance
	for _, row := range m.rows {
		if row.EventID == eventID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) ListByParticipant(ctx context.Context, participantKey string) ([]domain.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Attendance
	for _, row := range m.rows {
		if row.ParticipantKey == participantKey {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	rows, _ := m.ListByEvent(ctx, eventID)
	return int64(len(rows)), nil
}

func (m *mockAttendanceRepo) CountConfirmedByEvent(ctx context.Context, eventID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, row := range m.rows {
		if row.EventID == eventID && row.Status == domain.AttendanceConfirmed {
			n++
		}
	}
	return n, nil
}

func (m *mockAttendanceRepo) CountConfirmed(ctx context.Context, eventID, participantKey string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, row := range m.rows {
		if row.EventID == eventID && row.ParticipantKey == participantKey && row.Status == domain.AttendanceConfirmed {
			n++
		}
	}
	return n, nil
}

func (m *mockAttendanceRepo) UpdateStatus(ctx context.Context, id string, status domain.AttendanceStatus, txnID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, row := range m.rows {
		if row.ID == id {
			row.Status = status
			row.TxnID = txnID
			m.rows[key] = row
			return nil
		}
	}
	return domain.NotFoundError{Resource: "attendance record"}
}

type mockCertificateRepo struct {
	rows map[string]domain.Certificate
	seq  int
}

func (m *mockCertificateRepo) Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	if m.rows == nil {
		m.rows = map[string]domain.Certificate{}
	}
	key := attKey(cert.EventID, cert.ParticipantKey)
	if _, ok := m.rows[key]; ok {
		return domain.Certificate{}, domain.ConflictError{Reason: "certificate already issued"}
	}
	m.seq++
	cert.ID = fmt.Sprintf("cert-%d", m.seq)
	m.rows[key] = cert
	return cert, nil
}

func (m *mockCertificateRepo) Find(ctx context.Context, eventID, participantKey string) (domain.Certificate, error) {
	row, ok := m.rows[attKey(eventID, participantKey)]
	if !ok {
		return domain.Certificate{}, domain.NotFoundError{Resource: "certificate"}
	}
	return row, nil
}

func (m *mockCertificateRepo) GetByHash(ctx context.Context, certificateHash string) (domain.Certificate, error) {
	for _, row := range m.rows {
		if row.CertificateHash == certificateHash {
			return row, nil
		}
	}
	return domain.Certificate{}, domain.NotFoundError{Resource: "certificate"}
}

func (m *mockCertificateRepo) ListByParticipant(ctx context.Context, participantKey string) ([]domain.Certificate, error) {
	var out []domain.Certificate
	for _, row := range m.rows {
		if row.ParticipantKey == participantKey {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockCertificateRepo) Finalize(ctx context.Context, id string, status domain.CertificateStatus, assetID uint64, txnID string, issuedAt time.Time) error {
	for key, row := range m.rows {
		if row.ID == id {
			row.Status = status
			row.AssetID = assetID
			row.TxnID = txnID
			row.IssuedAt = &issuedAt
			m.rows[key] = row
			return nil
		}
	}
	return domain.NotFoundError{Resource: "certificate"}
}

type mockFeedbackRepo struct {
	rows map[string]domain.Feedback
	seq  int
}

func (m *mockFeedbackRepo) Create(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	if m.rows == nil {
		m.rows = map[string]domain.Feedback{}
	}
	key := attKey(fb.EventID, fb.WalletHash)
	if _, ok := m.rows[key]; ok {
		return domain.Feedback{}, domain.ConflictError{Reason: "feedback already submitted for this event"}
	}
	m.seq++
	fb.ID = fmt.Sprintf("fb-%d", m.seq)
	m.rows[key] = fb
	return fb, nil
}

func (m *mockFeedbackRepo) Find(ctx context.Context, eventID, walletHash string) (domain.Feedback, error) {
	row, ok := m.rows[attKey(eventID, walletHash)]
	if !ok {
		return domain.Feedback{}, domain.NotFoundError{Resource: "feedback"}
	}
	return row, nil
}

func (m *mockFeedbackRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, row := range m.rows {
		if row.EventID == eventID {
			out = append(out, row)
		}
	}
	return out, nil
}

type mockElectionRepo struct {
	rows map[string]domain.Election
	seq  int
}

func (m *mockElectionRepo) Create(ctx context.Context, e domain.Election) (domain.Election, error) {
	if m.rows == nil {
		m.rows = map[string]domain.Election{}
	}
	m.seq++
	e.ID = fmt.Sprintf("elec-%d", m.seq)
	m.rows[e.ID] = e
	return e, nil
}

func (m *mockElectionRepo) Get(ctx context.Context, id string) (domain.Election, error) {
	row, ok := m.rows[id]
	if !ok {
		return domain.Election{}, domain.NotFoundError{Resource: "election"}
	}
	return row, nil
}

func (m *mockElectionRepo) List(ctx context.Context) ([]domain.Election, error) {
	var out []domain.Election
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

type mockVoteRepo struct {
	rows map[string]domain.Vote
	seq  int
}

func (m *mockVoteRepo) Create(ctx context.Context, v domain.Vote) (domain.Vote, error) {
	if m.rows == nil {
		m.rows = map[string]domain.Vote{}
	}
	key := attKey(v.ElectionID, v.UserID)
	if _, ok := m.rows[key]; ok {
		return domain.Vote{}, domain.ConflictError{Reason: "user has already cast a vote in this election"}
	}
	m.seq++
	v.ID = fmt.Sprintf("vote-%d", m.seq)
	m.rows[key] = v
	return v, nil
}

func (m *mockVoteRepo) Find(ctx context.Context, electionID, userID string) (domain.Vote, error) {
	row, ok := m.rows[attKey(electionID, userID)]
	if !ok {
		return domain.Vote{}, domain.NotFoundError{Resource: "vote"}
	}
	return row, nil
}

type mockUserRepo struct {
	rows map[string]domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.rows == nil {
		m.rows = map[string]domain.User{}
	}
	for _, row := range m.rows {
		if row.Email == user.Email {
			return domain.User{}, domain.ConflictError{Reason: "email already registered"}
		}
	}
	user.ID = fmt.Sprintf("user-%d", len(m.rows)+1)
	m.rows[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row, ok := m.rows[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return row, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, row := range m.rows {
		if row.Email == email {
			return row, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

type fakeVerifier struct {
	result domain.TxnVerification
	err    error
}

func (f *fakeVerifier) VerifyTransaction(ctx context.Context, txnID, expectedSender string) (domain.TxnVerification, error) {
	return f.result, f.err
}

type fakeOracle struct {
	err   error
	calls int
}

func (f *fakeOracle) AddScore(ctx context.Context, walletAddress string, delta domain.ReputationScores) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "ORACLETXN", nil
}

func (f *fakeOracle) GetScores(ctx context.Context, walletAddress string) (domain.ReputationScores, error) {
	return domain.ReputationScores{}, nil
}

type fakeRewards struct {
	err   error
	calls int
}

func (f *fakeRewards) SendReward(ctx context.Context, walletAddress string, amount uint64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "REWARDTXN", nil
}

func (f *fakeRewards) Balance(ctx context.Context, walletAddress string) (uint64, error) {
	return 0, nil
}

type fakePublisher struct {
	published     int
	lastConfirmed int64
}

func (f *fakePublisher) PublishAttendance(ctx context.Context, eventID string, confirmed int64) error {
	f.published++
	f.lastConfirmed = confirmed
	return nil
}

type fakeScorer struct{}

func (fakeScorer) Analyze(text string) (domain.Sentiment, float64) {
	if len(text) > 20 {
		return domain.SentimentPositive, 3
	}
	return domain.SentimentNeutral, 0
}

func (fakeScorer) Scale(score float64) uint64 {
	return uint64(50 + score*5)
}

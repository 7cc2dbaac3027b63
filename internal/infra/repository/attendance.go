package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/database/models"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, att domain.Attendance) (domain.Attendance, error) {
	record := models.Attendance{
		ID:             att.ID,
		EventID:        att.EventID,
		ParticipantKey: att.ParticipantKey,
		WalletAddress:  att.WalletAddress,
		WalletHash:     nullable(att.WalletHash),
		TxnID:          nullable(att.TxnID),
		Status:         string(att.Status),
		CheckedInAt:    att.CheckedInAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Attendance{}, translate(err, "attendance", "attendance already marked for this event")
	}
	return attendanceToDomain(record), nil
}

func (r *AttendanceRepository) Get(ctx context.Context, id string) (domain.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if err != nil {
		return domain.Attendance{}, translate(err, "attendance record", "")
	}
	return attendanceToDomain(record), nil
}

func (r *AttendanceRepository) Find(ctx context.Context, eventID, participantKey string) (domain.Attendance, error) {
	var record models.Attendance
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND (participant_key = ? OR wallet_hash = ?)", eventID, participantKey, participantKey).
		Take(&record).Error
	if err != nil {
		return domain.Attendance{}, translate(err, "attendance record", "")
	}
	return attendanceToDomain(record), nil
}

func (r *AttendanceRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("checked_in_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, translate(err, "attendance", "")
	}
	return attendancesToDomain(records), nil
}

func (r *AttendanceRepository) ListByParticipant(ctx context.Context, participantKey string) ([]domain.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("participant_key = ?", participantKey).
		Order("checked_in_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, translate(err, "attendance", "")
	}
	return attendancesToDomain(records), nil
}

func (r *AttendanceRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, translate(err, "attendance", "")
}

func (r *AttendanceRepository) CountConfirmedByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("event_id = ? AND status = ?", eventID, string(domain.AttendanceConfirmed)).
		Count(&count).Error
	return count, translate(err, "attendance", "")
}

func (r *AttendanceRepository) CountConfirmed(ctx context.Context, eventID, participantKey string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("event_id = ? AND (participant_key = ? OR wallet_hash = ?) AND status = ?",
			eventID, participantKey, participantKey, string(domain.AttendanceConfirmed)).
		Count(&count).Error
	return count, translate(err, "attendance", "")
}

func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id string, status domain.AttendanceStatus, txnID string) error {
	updates := map[string]any{"status": string(status)}
	if txnID != "" {
		updates["txn_id"] = txnID
	}
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ?", id).
		Updates(updates).Error
	return translate(err, "attendance record", "")
}

func attendanceToDomain(m models.Attendance) domain.Attendance {
	return domain.Attendance{
		ID:             m.ID,
		EventID:        m.EventID,
		ParticipantKey: m.ParticipantKey,
		WalletAddress:  m.WalletAddress,
		WalletHash:     deref(m.WalletHash),
		TxnID:          deref(m.TxnID),
		Status:         domain.AttendanceStatus(m.Status),
		CheckedInAt:    m.CheckedInAt,
	}
}

func attendancesToDomain(records []models.Attendance) []domain.Attendance {
	out := make([]domain.Attendance, 0, len(records))
	for _, record := range records {
		out = append(out, attendanceToDomain(record))
	}
	return out
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

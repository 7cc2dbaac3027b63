package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/database/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	record := models.Event{
		ID:                 event.ID,
		EventID:            event.EventID,
		Title:              event.Title,
		Description:        event.Description,
		StartTime:          event.StartTime,
		EndTime:            event.EndTime,
		OrganizerWallet:    event.OrganizerWallet,
		AttendanceAppID:    event.AttendanceAppID,
		VotingAppID:        event.VotingAppID,
		CertificateAssetID: event.CertificateAssetID,
		Status:             string(event.Status),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Event{}, translate(err, "event", "event id already exists")
	}
	return eventToDomain(record), nil
}

func (r *EventRepository) GetByEventID(ctx context.Context, eventID string) (domain.Event, error) {
	var record models.Event
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Take(&record).Error
	if err != nil {
		return domain.Event{}, translate(err, "event", "")
	}
	return eventToDomain(record), nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var records []models.Event
	err := r.db.WithContext(ctx).Order("start_time DESC").Find(&records).Error
	if err != nil {
		return nil, translate(err, "event", "")
	}
	events := make([]domain.Event, 0, len(records))
	for _, record := range records {
		events = append(events, eventToDomain(record))
	}
	return events, nil
}

func (r *EventRepository) SetAttendanceApp(ctx context.Context, id string, appID uint64) error {
	err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Update("attendance_app_id", appID).Error
	return translate(err, "event", "")
}

func eventToDomain(m models.Event) domain.Event {
	return domain.Event{
		ID:                 m.ID,
		EventID:            m.EventID,
		Title:              m.Title,
		Description:        m.Description,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		OrganizerWallet:    m.OrganizerWallet,
		AttendanceAppID:    m.AttendanceAppID,
		VotingAppID:        m.VotingAppID,
		CertificateAssetID: m.CertificateAssetID,
		Status:             domain.EventStatus(m.Status),
		CDate:              m.CDate,
	}
}

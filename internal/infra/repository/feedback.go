package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/database/models"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, fb domain.Feedback) (domain.Feedback, error) {
	record := models.Feedback{
		ID:             fb.ID,
		EventID:        fb.EventID,
		WalletHash:     fb.WalletHash,
		ContentHash:    fb.ContentHash,
		Text:           fb.Text,
		Sentiment:      string(fb.Sentiment),
		SentimentScore: fb.SentimentScore,
		TxnID:          nullable(fb.TxnID),
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Feedback{}, translate(err, "feedback", "feedback already submitted for this event")
	}
	return feedbackToDomain(record), nil
}

func (r *FeedbackRepository) Find(ctx context.Context, eventID, walletHash string) (domain.Feedback, error) {
	var record models.Feedback
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND wallet_hash = ?", eventID, walletHash).
		Take(&record).Error
	if err != nil {
		return domain.Feedback{}, translate(err, "feedback", "")
	}
	return feedbackToDomain(record), nil
}

func (r *FeedbackRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Feedback, error) {
	var records []models.Feedback
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("cdate DESC").
		Find(&records).Error
	if err != nil {
		return nil, translate(err, "feedback", "")
	}
	out := make([]domain.Feedback, 0, len(records))
	for _, record := range records {
		out = append(out, feedbackToDomain(record))
	}
	return out, nil
}

func feedbackToDomain(m models.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:             m.ID,
		EventID:        m.EventID,
		WalletHash:     m.WalletHash,
		ContentHash:    m.ContentHash,
		Text:           m.Text,
		Sentiment:      domain.Sentiment(m.Sentiment),
		SentimentScore: m.SentimentScore,
		TxnID:          deref(m.TxnID),
		CDate:          m.CDate,
	}
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/database/models"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) Create(ctx context.Context, cert domain.Certificate) (domain.Certificate, error) {
	record := models.Certificate{
		ID:              cert.ID,
		EventID:         cert.EventID,
		ParticipantKey:  cert.ParticipantKey,
		WalletAddress:   cert.WalletAddress,
		WalletHash:      cert.WalletHash,
		AssetID:         cert.AssetID,
		CertificateHash: cert.CertificateHash,
		TxnID:           nullable(cert.TxnID),
		Status:          string(cert.Status),
		IssuedAt:        cert.IssuedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Certificate{}, translate(err, "certificate", "certificate already issued")
	}
	return certificateToDomain(record), nil
}

func (r *CertificateRepository) Find(ctx context.Context, eventID, participantKey string) (domain.Certificate, error) {
	var record models.Certificate
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND (participant_key = ? OR wallet_hash = ?)", eventID, participantKey, participantKey).
		Take(&record).Error
	if err != nil {
		return domain.Certificate{}, translate(err, "certificate", "")
	}
	return certificateToDomain(record), nil
}

func (r *CertificateRepository) GetByHash(ctx context.Context, certificateHash string) (domain.Certificate, error) {
	var record models.Certificate
	err := r.db.WithContext(ctx).
		Where("certificate_hash = ?", certificateHash).
		Take(&record).Error
	if err != nil {
		return domain.Certificate{}, translate(err, "certificate", "")
	}
	return certificateToDomain(record), nil
}

func (r *CertificateRepository) ListByParticipant(ctx context.Context, participantKey string) ([]domain.Certificate, error) {
	var records []models.Certificate
	err := r.db.WithContext(ctx).
		Where("participant_key = ? OR wallet_hash = ?", participantKey, participantKey).
		Order("cdate DESC").
		Find(&records).Error
	if err != nil {
		return nil, translate(err, "certificate", "")
	}
	out := make([]domain.Certificate, 0, len(records))
	for _, record := range records {
		out = append(out, certificateToDomain(record))
	}
	return out, nil
}

func (r *CertificateRepository) Finalize(ctx context.Context, id string, status domain.CertificateStatus, assetID uint64, txnID string, issuedAt time.Time) error {
	updates := map[string]any{
		"status":    string(status),
		"issued_at": issuedAt,
	}
	if assetID != 0 {
		updates["asset_id"] = assetID
	}
	if txnID != "" {
		updates["txn_id"] = txnID
	}
	err := r.db.WithContext(ctx).
		Model(&models.Certificate{}).
		Where("id = ?", id).
		Updates(updates).Error
	return translate(err, "certificate", "")
}

func certificateToDomain(m models.Certificate) domain.Certificate {
	return domain.Certificate{
		ID:              m.ID,
		EventID:         m.EventID,
		ParticipantKey:  m.ParticipantKey,
		WalletAddress:   m.WalletAddress,
		WalletHash:      m.WalletHash,
		AssetID:         m.AssetID,
		CertificateHash: m.CertificateHash,
		TxnID:           deref(m.TxnID),
		Status:          domain.CertificateStatus(m.Status),
		IssuedAt:        m.IssuedAt,
	}
}

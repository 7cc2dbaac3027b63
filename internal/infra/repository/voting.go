package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/database/models"
)

type ElectionRepository struct {
	db *gorm.DB
}

func NewElectionRepository(db *gorm.DB) *ElectionRepository {
	return &ElectionRepository{db: db}
}

func (r *ElectionRepository) Create(ctx context.Context, e domain.Election) (domain.Election, error) {
	record := models.Election{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		VotingAppID: e.VotingAppID,
		CreatedBy:   e.CreatedBy,
		IsActive:    e.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Election{}, translate(err, "election", "election already exists")
	}
	return electionToDomain(record), nil
}

func (r *ElectionRepository) Get(ctx context.Context, id string) (domain.Election, error) {
	var record models.Election
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if err != nil {
		return domain.Election{}, translate(err, "election", "")
	}
	return electionToDomain(record), nil
}

func (r *ElectionRepository) List(ctx context.Context) ([]domain.Election, error) {
	var records []models.Election
	err := r.db.WithContext(ctx).Order("start_time DESC").Find(&records).Error
	if err != nil {
		return nil, translate(err, "election", "")
	}
	out := make([]domain.Election, 0, len(records))
	for _, record := range records {
		out = append(out, electionToDomain(record))
	}
	return out, nil
}

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Create(ctx context.Context, v domain.Vote) (domain.Vote, error) {
	record := models.Vote{
		ID:         v.ID,
		ElectionID: v.ElectionID,
		UserID:     v.UserID,
		VoteHash:   v.VoteHash,
		TxnID:      v.TxnID,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.Vote{}, translate(err, "vote", "user has already cast a vote in this election")
	}
	return voteToDomain(record), nil
}

func (r *VoteRepository) Find(ctx context.Context, electionID, userID string) (domain.Vote, error) {
	var record models.Vote
	err := r.db.WithContext(ctx).
		Where("election_id = ? AND user_id = ?", electionID, userID).
		Take(&record).Error
	if err != nil {
		return domain.Vote{}, translate(err, "vote", "")
	}
	return voteToDomain(record), nil
}

func electionToDomain(m models.Election) domain.Election {
	return domain.Election{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		VotingAppID: m.VotingAppID,
		CreatedBy:   m.CreatedBy,
		IsActive:    m.IsActive,
		CDate:       m.CDate,
	}
}

func voteToDomain(m models.Vote) domain.Vote {
	return domain.Vote{
		ID:         m.ID,
		ElectionID: m.ElectionID,
		UserID:     m.UserID,
		VoteHash:   m.VoteHash,
		TxnID:      m.TxnID,
		CDate:      m.CDate,
	}
}

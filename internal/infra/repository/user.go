package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	record := models.User{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		PasswordHash:  user.PasswordHash,
		Role:          string(user.Role),
		WalletAddress: user.WalletAddress,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return domain.User{}, translate(err, "user", "email already registered")
	}
	return userToDomain(record), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&record).Error
	if err != nil {
		return domain.User{}, translate(err, "user", "")
	}
	return userToDomain(record), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var record models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&record).Error
	if err != nil {
		return domain.User{}, translate(err, "user", "")
	}
	return userToDomain(record), nil
}

func userToDomain(m models.User) domain.User {
	return domain.User{
		ID:            m.ID,
		Name:          m.Name,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Role:          domain.Role(m.Role),
		WalletAddress: m.WalletAddress,
		CDate:         m.CDate,
	}
}

package usecase

import (
	"context"
	"strings"

	"github.com/campuschain/ccms/internal/domain"
)

// RegisterInput carries an already-hashed credential. Password hashing and
// token issuance live in the auth service; this usecase owns the record.
type RegisterInput struct {
	Name          string
	Email         string
	PasswordHash  string
	Role          domain.Role
	WalletAddress string
}

type UserUsecase struct {
	users UserRepository
}

func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

func (uc *UserUsecase) Register(ctx context.Context, input RegisterInput) (domain.User, error) {

	role := input.Role
	if role == "" {
		role = domain.RoleStudent
	}
	if !role.Valid() {
		return domain.User{}, domain.ValidationError{Reason: "unknown role"}
	}

	return uc.users.Create(ctx, domain.User{
		Name:          input.Name,
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash:  input.PasswordHash,
		Role:          role,
		WalletAddress: input.WalletAddress,
	})
}

func (uc *UserUsecase) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (uc *UserUsecase) Get(ctx context.Context, id string) (domain.User, error) {
	return uc.users.GetByID(ctx, id)
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuschain/ccms/internal/domain"
)

// TokenKind separates access tokens from refresh tokens so one cannot be
// replayed as the other.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

type Claims struct {
	Role domain.Role `json:"role"`
	Kind TokenKind   `json:"kind"`
	jwt.RegisteredClaims
}

type AuthService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

func (s *AuthService) CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// IssueTokens returns an access/refresh token pair carrying {id, role}.
func (s *AuthService) IssueTokens(user domain.User) (access string, refresh string, err error) {
	access, err = s.sign(user, TokenAccess, s.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.sign(user, TokenRefresh, s.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *AuthService) sign(user domain.User, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Verify parses and validates a token of the expected kind.
func (s *AuthService) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Kind != kind {
		return nil, errors.Errorf("expected %s token, got %s", kind, claims.Kind)
	}
	return &claims, nil
}

package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/service"
	"github.com/campuschain/ccms/internal/usecase"
)

type registerRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Role          string `json:"role"`
	WalletAddress string `json:"walletAddress"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         domain.User `json:"user"`
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hashed, err := h.auth.HashPassword(req.Password)
	if err != nil {
		return presenter.InternalError(c, err, h.production)
	}

	user, err := h.users.Register(ctx, usecase.RegisterInput{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  hashed,
		Role:          domain.Role(req.Role),
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		return h.fail(c, err)
	}

	access, refresh, err := h.auth.IssueTokens(user)
	if err != nil {
		return presenter.InternalError(c, err, h.production)
	}

	return presenter.Created(c, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return presenter.Unauthorized(c, "invalid credentials")
	}
	if !h.auth.CheckPassword(user.PasswordHash, req.Password) {
		return presenter.Unauthorized(c, "invalid credentials")
	}

	access, refresh, err := h.auth.IssueTokens(user)
	if err != nil {
		return presenter.InternalError(c, err, h.production)
	}

	return presenter.OK(c, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}

func (h *Handler) handleRefresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims, err := h.auth.Verify(req.RefreshToken, service.TokenRefresh)
	if err != nil {
		return presenter.Unauthorized(c, "invalid refresh token")
	}

	user, err := h.users.Get(ctx, claims.Subject)
	if err != nil {
		return presenter.Unauthorized(c, "invalid refresh token")
	}

	access, refresh, err := h.auth.IssueTokens(user)
	if err != nil {
		return presenter.InternalError(c, err, h.production)
	}

	return presenter.OK(c, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	})
}

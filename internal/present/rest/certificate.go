package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/present/rest/middleware"
	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/usecase"
)

type issueCertificateRequest struct {
	EventID       string `json:"eventId" validate:"required"`
	WalletAddress string `json:"walletAddress"`
	TxnID         string `json:"txnId"`
}

type certificateResponse struct {
	ID              string             `json:"id"`
	CertificateHash string             `json:"certificateHash"`
	Status          string             `json:"status"`
	AssetURL        string             `json:"assetUrl,omitempty"`
	SideEffects     domain.SideEffects `json:"sideEffects"`
}

func (h *Handler) issueCertificate(c echo.Context, userID string) error {
	ctx := c.Request().Context()

	var req issueCertificateRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.certificates.Issue(ctx, usecase.IssueCertificateInput{
		EventID:       req.EventID,
		WalletAddress: req.WalletAddress,
		TxnID:         req.TxnID,
		UserID:        userID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.Created(c, certificateResponse{
		ID:              result.Certificate.ID,
		CertificateHash: result.Certificate.CertificateHash,
		Status:          string(result.Certificate.Status),
		AssetURL:        h.explorer.AssetURL(result.Certificate.AssetID),
		SideEffects:     result.SideEffects,
	})
}

func (h *Handler) handleIssueCertificate(c echo.Context) error {
	return h.issueCertificate(c, "")
}

func (h *Handler) handleIssueCertificateAuth(c echo.Context) error {
	return h.issueCertificate(c, middleware.RequesterID(c))
}

func (h *Handler) handleCertificateEligibility(c echo.Context) error {
	eligibility, err := h.certificates.CheckEligibility(c.Request().Context(),
		c.Param("eventId"), c.QueryParam("wallet"), middleware.RequesterID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, eligibility)
}

func (h *Handler) handleMyCertificates(c echo.Context) error {
	certificates, err := h.certificates.My(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, certificates)
}

func (h *Handler) handleVerifyCertificate(c echo.Context) error {
	certificate, err := h.certificates.VerifyByHash(c.Request().Context(), c.Param("hash"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"verified": false, "error": "certificate not found"})
		}
		return h.fail(c, err)
	}
	return presenter.OK(c, echo.Map{
		"verified":    true,
		"certificate": certificate,
		"assetUrl":    h.explorer.AssetURL(certificate.AssetID),
	})
}

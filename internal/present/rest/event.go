package rest

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/usecase"
)

type createEventRequest struct {
	EventID            string    `json:"eventId"`
	Title              string    `json:"title" validate:"required"`
	Description        string    `json:"description"`
	StartTime          time.Time `json:"startTime" validate:"required"`
	EndTime            time.Time `json:"endTime" validate:"required"`
	OrganizerWallet    string    `json:"organizerWallet"`
	CertificateAssetID uint64    `json:"certificateAssetId"`
	DeployContract     bool      `json:"deployContract"`
}

func (h *Handler) handleCreateEvent(c echo.Context) error {
	ctx := c.Request().Context()

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.events.Create(ctx, usecase.CreateEventInput{
		EventID:            req.EventID,
		Title:              req.Title,
		Description:        req.Description,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		OrganizerWallet:    req.OrganizerWallet,
		CertificateAssetID: req.CertificateAssetID,
		DeployContract:     req.DeployContract,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.Created(c, echo.Map{
		"event":          event,
		"applicationUrl": h.explorer.ApplicationURL(event.AttendanceAppID),
	})
}

// handleCreateEventDemo is the unauthenticated wallet-only path. The
// organizer wallet is mandatory here since there is no account to fall
// back on, and contract deployment is not offered.
func (h *Handler) handleCreateEventDemo(c echo.Context) error {
	ctx := c.Request().Context()

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.OrganizerWallet == "" {
		return presenter.BadRequestMessage(c, "Wallet address required")
	}

	event, err := h.events.Create(ctx, usecase.CreateEventInput{
		EventID:            req.EventID,
		Title:              req.Title,
		Description:        req.Description,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		OrganizerWallet:    req.OrganizerWallet,
		CertificateAssetID: req.CertificateAssetID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.Created(c, echo.Map{"event": event})
}

func (h *Handler) handleListEvents(c echo.Context) error {
	events, err := h.events.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, events)
}

func (h *Handler) handleGetEvent(c echo.Context) error {
	ctx := c.Request().Context()

	event, err := h.events.Get(ctx, c.Param("eventId"))
	if err != nil {
		return h.fail(c, err)
	}

	count, err := h.events.AttendanceCount(ctx, event.EventID)
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.OK(c, echo.Map{
		"event":           event,
		"attendanceCount": count,
	})
}

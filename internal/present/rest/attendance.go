package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/present/rest/middleware"
	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/usecase"
)

type markAttendanceRequest struct {
	EventID       string `json:"eventId" validate:"required"`
	WalletAddress string `json:"walletAddress"`
	TxnID         string `json:"txnId"`
}

type attendanceResponse struct {
	ID          string             `json:"id"`
	Status      string             `json:"status"`
	ExplorerURL string             `json:"explorerUrl,omitempty"`
	SideEffects domain.SideEffects `json:"sideEffects"`
}

func (h *Handler) markAttendance(c echo.Context, userID string) error {
	ctx := c.Request().Context()

	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.attendance.Mark(ctx, usecase.MarkAttendanceInput{
		EventID:       req.EventID,
		WalletAddress: req.WalletAddress,
		TxnID:         req.TxnID,
		UserID:        userID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.Created(c, attendanceResponse{
		ID:          result.Attendance.ID,
		Status:      string(result.Attendance.Status),
		ExplorerURL: h.explorer.TxnURL(result.Attendance.TxnID),
		SideEffects: result.SideEffects,
	})
}

func (h *Handler) handleMarkAttendance(c echo.Context) error {
	return h.markAttendance(c, "")
}

func (h *Handler) handleMarkAttendanceAuth(c echo.Context) error {
	return h.markAttendance(c, middleware.RequesterID(c))
}

func (h *Handler) handleMyAttendance(c echo.Context) error {
	records, err := h.attendance.My(c.Request().Context(), middleware.RequesterID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, records)
}

func (h *Handler) handleEventAttendance(c echo.Context) error {
	records, err := h.attendance.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, echo.Map{
		"records": records,
		"total":   len(records),
	})
}

func (h *Handler) handleVerifyAttendance(c echo.Context) error {
	record, err := h.attendance.Verify(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, echo.Map{
		"verified":    record.Status == domain.AttendanceConfirmed,
		"record":      record,
		"explorerUrl": h.explorer.TxnURL(record.TxnID),
	})
}

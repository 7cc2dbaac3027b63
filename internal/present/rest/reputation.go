package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/present/rest/presenter"
)

func (h *Handler) handleReputationScores(c echo.Context) error {
	scores, err := h.reputation.Scores(c.Request().Context(), c.Param("wallet"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, scores)
}

func (h *Handler) handleReputationDashboard(c echo.Context) error {
	dashboard, err := h.reputation.Dashboard(c.Request().Context(), c.Param("wallet"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, dashboard)
}

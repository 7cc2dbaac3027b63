package rest

import (
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/usecase"
)

const analyticsCacheTTL = 60 * time.Second

type submitFeedbackRequest struct {
	EventID       string `json:"eventId" validate:"required"`
	WalletAddress string `json:"walletAddress" validate:"required"`
	Text          string `json:"text" validate:"required"`
	TxnID         string `json:"txnId"`
}

type feedbackResponse struct {
	ID             string             `json:"id"`
	Sentiment      domain.Sentiment   `json:"sentiment"`
	SentimentScore float64            `json:"sentimentScore"`
	ContentHash    string             `json:"contentHash"`
	SideEffects    domain.SideEffects `json:"sideEffects"`
}

func (h *Handler) handleSubmitFeedback(c echo.Context) error {
	ctx := c.Request().Context()

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.feedback.Submit(ctx, usecase.SubmitFeedbackInput{
		EventID:       req.EventID,
		WalletAddress: req.WalletAddress,
		Text:          req.Text,
		TxnID:         req.TxnID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	h.mc.Delete(analyticsCacheKey(req.EventID))

	return presenter.Created(c, feedbackResponse{
		ID:             result.Feedback.ID,
		Sentiment:      result.Feedback.Sentiment,
		SentimentScore: result.Feedback.SentimentScore,
		ContentHash:    result.Feedback.ContentHash,
		SideEffects:    result.SideEffects,
	})
}

func analyticsCacheKey(eventID string) string {
	return "feedback:analytics:" + eventID
}

func (h *Handler) handleFeedbackAnalytics(c echo.Context) error {
	ctx := c.Request().Context()
	eventID := c.Param("eventId")

	if item, err := h.mc.Get(analyticsCacheKey(eventID)); err == nil {
		var cached domain.FeedbackAnalytics
		if json.Unmarshal(item.Value, &cached) == nil {
			return presenter.OK(c, cached)
		}
	}

	analytics, err := h.feedback.Analytics(ctx, eventID)
	if err != nil {
		return h.fail(c, err)
	}

	if encoded, err := json.Marshal(analytics); err == nil {
		h.mc.Set(&memcache.Item{
			Key:        analyticsCacheKey(eventID),
			Value:      encoded,
			Expiration: int32(analyticsCacheTTL.Seconds()),
		})
	}

	return presenter.OK(c, analytics)
}

func (h *Handler) handleAllFeedback(c echo.Context) error {
	rows, err := h.feedback.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, rows)
}

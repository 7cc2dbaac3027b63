package rest

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuschain/ccms/internal/domain"
	"github.com/campuschain/ccms/internal/present/rest/middleware"
	"github.com/campuschain/ccms/internal/present/rest/presenter"
	"github.com/campuschain/ccms/internal/usecase"
)

type createElectionRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
	VotingAppID uint64    `json:"votingAppId"`
}

type castVoteRequest struct {
	ElectionID string `json:"electionId" validate:"required"`
	VoteHash   string `json:"voteHash" validate:"required"`
	TxnID      string `json:"txnId" validate:"required"`
}

type voteResponse struct {
	ID          string             `json:"id"`
	ExplorerURL string             `json:"explorerUrl,omitempty"`
	SideEffects domain.SideEffects `json:"sideEffects"`
}

func (h *Handler) handleCreateElection(c echo.Context) error {
	ctx := c.Request().Context()

	var req createElectionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	election, err := h.voting.CreateElection(ctx, usecase.CreateElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		VotingAppID: req.VotingAppID,
		CreatedBy:   middleware.RequesterID(c),
	})
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.Created(c, election)
}

func (h *Handler) handleCastVote(c echo.Context) error {
	ctx := c.Request().Context()

	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.voting.CastVote(ctx, usecase.CastVoteInput{
		ElectionID: req.ElectionID,
		UserID:     middleware.RequesterID(c),
		VoteHash:   req.VoteHash,
		TxnID:      req.TxnID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return presenter.Created(c, voteResponse{
		ID:          result.Vote.ID,
		ExplorerURL: h.explorer.TxnURL(result.Vote.TxnID),
		SideEffects: result.SideEffects,
	})
}

func (h *Handler) handleListElections(c echo.Context) error {
	elections, err := h.voting.ListElections(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, elections)
}

func (h *Handler) handleGetElection(c echo.Context) error {
	election, err := h.voting.GetElection(c.Request().Context(), c.Param("electionId"))
	if err != nil {
		return h.fail(c, err)
	}
	return presenter.OK(c, election)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/food-poll/middleware"
	"github.com/danielhkuo/food-poll/models"
	"github.com/danielhkuo/food-poll/store"
)

type VotingHandler struct {
	store *store.Store
}

func NewVotingHandler(st *store.Store) *VotingHandler {
	return &VotingHandler{store: st}
}

// GetMenu handles GET /menu?userId=
// Only foods available today are listed. Without userId every hasVoted is false.
func (h *VotingHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	middleware.JSONResponse(w, http.StatusOK, h.store.VoterMenu(userID))
}

// CastVote handles POST /votes
// A second call for the same food and user on the same day retracts the vote.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.FoodID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "foodId is required")
		return
	}
	if req.UserID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userId is required")
		return
	}

	vote, cast, err := h.store.CastOrRetractVote(req.FoodID, req.UserID, req.AdditionalRequests)
	switch {
	case errors.Is(err, store.ErrFoodNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Food not found")
		return
	case errors.Is(err, store.ErrFoodUnavailable):
		middleware.ErrorResponse(w, http.StatusConflict, "Food is not available today")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	status := http.StatusOK
	if cast {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, models.CastVoteResponse{Voted: cast, Vote: vote})
}

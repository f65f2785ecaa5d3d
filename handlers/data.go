// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/food-poll/middleware"
	"github.com/danielhkuo/food-poll/models"
	"github.com/danielhkuo/food-poll/store"
)

// DataHandler serves the whole-snapshot endpoints used by remote clients
type DataHandler struct {
	store *store.Store
}

func NewDataHandler(st *store.Store) *DataHandler {
	return &DataHandler{store: st}
}

// FetchData handles GET /api/fetchData
func (h *DataHandler) FetchData(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.Snapshot())
}

// SaveData handles /api/saveData. Only POST is accepted; the route is
// registered without a method so other methods get an explicit Allow header.
func (h *DataHandler) SaveData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method "+r.Method+" Not Allowed")
		return
	}

	var snap models.Snapshot
	if err := middleware.ParseJSONBody(r, &snap); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := h.store.Replace(r.Context(), snap)
	if errors.Is(err, store.ErrInvalidSnapshot) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to save data", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	snap = snap.Normalize()
	slog.Info("data replaced",
		"deliveries", len(snap.Deliveries),
		"foods", len(snap.Foods),
		"votes", len(snap.Votes),
	)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Data saved successfully"})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/food-poll/auth"
	"github.com/danielhkuo/food-poll/cliparse"
	"github.com/danielhkuo/food-poll/middleware"
	"github.com/danielhkuo/food-poll/models"
	"github.com/danielhkuo/food-poll/store"
)

type AdminHandler struct {
	store *store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewAdminHandler(st *store.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg, now: time.Now}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.CheckAdminPassword(req.Password, h.cfg.AdminPassword); err != nil {
		slog.Warn("failed admin login", "ip", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	now := h.now()
	token, err := auth.IssueAdminToken(h.cfg.AdminTokenSecret, h.cfg.AdminTokenTTL, now)
	if err != nil {
		slog.Error("failed to issue admin token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(h.cfg.AdminTokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("admin logged in", "ip", middleware.GetClientIP(r))
	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{Token: token})
}

// Logout handles POST /admin/logout by expiring the session cookie.
// Issued tokens stay valid until they expire.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

// GetDashboard handles GET /admin/menu
func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.store.AdminMenu())
}

// AddDelivery handles POST /admin/deliveries
func (h *AdminHandler) AddDelivery(w http.ResponseWriter, r *http.Request) {
	var req models.AddDeliveryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	d, err := h.store.AddDelivery(name)
	if err != nil {
		slog.Error("failed to add delivery", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add delivery")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, d)
}

// DeleteDelivery handles DELETE /admin/deliveries/{id}
// Deleting an unknown delivery succeeds with deleted=false.
func (h *AdminHandler) DeleteDelivery(w http.ResponseWriter, r *http.Request) {
	removed := h.store.DeleteDelivery(r.PathValue("id"))
	middleware.JSONResponse(w, http.StatusOK, deleteResponse(removed, removed.Deliveries > 0))
}

// AddFood handles POST /admin/foods
func (h *AdminHandler) AddFood(w http.ResponseWriter, r *http.Request) {
	var req models.AddFoodRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.DeliveryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "deliveryId is required")
		return
	}

	f, err := h.store.AddFood(name, req.DeliveryID)
	if errors.Is(err, store.ErrDeliveryNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Delivery not found")
		return
	}
	if err != nil {
		slog.Error("failed to add food", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add food")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, f)
}

// DeleteFood handles DELETE /admin/foods/{id}
func (h *AdminHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	removed := h.store.DeleteFood(r.PathValue("id"))
	middleware.JSONResponse(w, http.StatusOK, deleteResponse(removed, removed.Foods > 0))
}

// ToggleFood handles POST /admin/foods/{id}/toggle
func (h *AdminHandler) ToggleFood(w http.ResponseWriter, r *http.Request) {
	f, ok := h.store.ToggleFoodAvailability(r.PathValue("id"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Food not found")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, f)
}

// ClearVotes handles DELETE /admin/votes/today
func (h *AdminHandler) ClearVotes(w http.ResponseWriter, r *http.Request) {
	date, removed := h.store.ClearDailyVotes()
	middleware.JSONResponse(w, http.StatusOK, models.ClearVotesResponse{Date: date, Removed: removed})
}

// ExportReport handles GET /admin/report
// The report downloads as a text attachment. With an export directory
// configured it is also written there; a failed write is logged only.
func (h *AdminHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	report := h.store.ExportDailyReport()

	if h.cfg.ExportDir != "" {
		if _, err := store.WriteReport(h.cfg.ExportDir, report); err != nil {
			slog.Error("failed to write report file", "error", err, "dir", h.cfg.ExportDir)
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report.Body)); err != nil {
		slog.Error("failed to write report response", "error", err)
	}
}

func deleteResponse(removed store.Removed, deleted bool) models.DeleteResponse {
	return models.DeleteResponse{
		Deleted:    deleted,
		Deliveries: removed.Deliveries,
		Foods:      removed.Foods,
		Votes:      removed.Votes,
	}
}

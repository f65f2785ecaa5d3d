// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/food-poll/cliparse"
	"github.com/danielhkuo/food-poll/handlers"
	"github.com/danielhkuo/food-poll/metrics"
	"github.com/danielhkuo/food-poll/middleware"
	"github.com/danielhkuo/food-poll/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	dataHandler := handlers.NewDataHandler(st)
	votingHandler := handlers.NewVotingHandler(st)
	adminHandler := handlers.NewAdminHandler(st, cfg)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminTokenSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.Handle("GET /metrics", metrics.Handler())

	// Whole-snapshot data API; saveData checks the method itself
	mux.HandleFunc("GET /api/fetchData", middleware.WithLogging(dataHandler.FetchData))
	mux.HandleFunc("/api/saveData", middleware.WithLogging(dataHandler.SaveData))

	// Voting (public)
	mux.HandleFunc("GET /menu", middleware.WithLogging(votingHandler.GetMenu))
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))

	// Admin session
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("POST /admin/logout", middleware.WithLogging(adminHandler.Logout))

	// Admin operations
	mux.HandleFunc("GET /admin/menu", admin(adminHandler.GetDashboard))
	mux.HandleFunc("POST /admin/deliveries", admin(adminHandler.AddDelivery))
	mux.HandleFunc("DELETE /admin/deliveries/{id}", admin(adminHandler.DeleteDelivery))
	mux.HandleFunc("POST /admin/foods", admin(adminHandler.AddFood))
	mux.HandleFunc("DELETE /admin/foods/{id}", admin(adminHandler.DeleteFood))
	mux.HandleFunc("POST /admin/foods/{id}/toggle", admin(adminHandler.ToggleFood))
	mux.HandleFunc("DELETE /admin/votes/today", admin(adminHandler.ClearVotes))
	mux.HandleFunc("GET /admin/report", admin(adminHandler.ExportReport))

	// Root endpoint; exact match so it does not overlap the method-less saveData route
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("food-poll API v1"))
	})

	return mux
}

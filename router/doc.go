// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Food Poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health and metrics:

	GET /health  - Liveness check
	GET /metrics - Prometheus metrics
	GET /{$}     - API banner (exact "/" only)

Data (whole snapshot, used by remote backends):

	GET  /api/fetchData - Current deliveries, foods and votes
	     /api/saveData  - Replace everything (POST only, others get 405)

saveData is registered without a method so the handler can answer other
methods with "Allow: POST". The root is an exact match for the same reason:
a "GET /" catch-all would conflict with it.

Voting (public):

	GET  /menu?userId= - Foods available today with counts
	POST /votes        - Cast or retract today's vote

Admin session:

	POST /admin/login  - Exchange password for a token and cookie
	POST /admin/logout - Expire the cookie

Admin (requires token via Bearer header or cookie):

	GET    /admin/menu              - All deliveries and foods
	POST   /admin/deliveries        - Add delivery
	DELETE /admin/deliveries/{id}   - Delete delivery with its foods and votes
	POST   /admin/foods             - Add food
	DELETE /admin/foods/{id}        - Delete food with its votes
	POST   /admin/foods/{id}/toggle - Flip availability for today
	DELETE /admin/votes/today       - Clear today's votes
	GET    /admin/report            - Download today's order list

# Handler Initialization

The router creates handler instances over the shared store:

	dataHandler := handlers.NewDataHandler(st)
	votingHandler := handlers.NewVotingHandler(st)
	adminHandler := handlers.NewAdminHandler(st, cfg)

Every route except health and metrics goes through middleware.WithLogging;
admin routes also go through middleware.RequireAdmin.
*/
package router

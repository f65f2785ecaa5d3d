// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Food Poll API.

# Handler Types

Each handler is a struct over the shared *store.Store:

  - DataHandler: whole-snapshot fetch and replace for remote clients
  - VotingHandler: voter menu and the vote toggle
  - AdminHandler: login, menu management, daily reset, report export

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(st)
	adminHandler := handlers.NewAdminHandler(st, cfg)

# Data Endpoints

	GET  /api/fetchData → FetchData ({deliveries, foods, votes})
	POST /api/saveData  → SaveData (validated, saved before responding)

SaveData answers any other method with 405 and "Allow: POST".

# Voting Flow

	GET  /menu?userId=  → GetMenu (available foods, today's counts)
	POST /votes         → CastVote (201 cast, 200 retracted)

Voting again for the same food on the same day retracts the vote.
Unknown foods are 404, foods not available today are 409.

# Admin Operations

	POST   /admin/login             → Login (token + HttpOnly cookie)
	POST   /admin/logout            → Logout
	GET    /admin/menu              → GetDashboard
	POST   /admin/deliveries        → AddDelivery
	DELETE /admin/deliveries/{id}   → DeleteDelivery (cascades)
	POST   /admin/foods             → AddFood
	DELETE /admin/foods/{id}        → DeleteFood (cascades)
	POST   /admin/foods/{id}/toggle → ToggleFood
	DELETE /admin/votes/today       → ClearVotes
	GET    /admin/report            → ExportReport (text attachment)

Everything but login and logout sits behind middleware.RequireAdmin.
*/
package handlers

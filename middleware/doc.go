// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms), and counts the request in the foodpoll_http_* metrics under
its route pattern.

# Admin Sessions

Protect admin routes with a token issued by POST /admin/login:

	mux.HandleFunc("POST /admin/foods",
		middleware.WithLogging(middleware.RequireAdmin(secret, handler)))

The token is accepted as "Authorization: Bearer <token>" or from the
HttpOnly cookie named by AdminCookieName. Missing, expired, or forged
tokens get 401.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
Authorization, and allows credentials so the admin cookie is sent.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Logged with failed admin logins and rejected tokens.
*/
package middleware

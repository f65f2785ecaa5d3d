// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides entity ID generation and the admin gate.

# Entity IDs

GenerateID returns a UUIDv7 string. The leading bits encode the creation
timestamp, so IDs are unique and roughly creation-ordered:

	id, err := auth.GenerateID()

Ordering is not something callers may rely on.

# Admin Gate

There is a single shared admin password (ADMIN_PASSWORD). It is a UI
convenience rather than a security boundary:

	if err := auth.CheckAdminPassword(req.Password, cfg.AdminPassword); err != nil {
		// 401
	}

A successful login is remembered with a signed token:

	token, err := auth.IssueAdminToken(cfg.AdminTokenSecret, cfg.AdminTokenTTL, time.Now())

	err = auth.ValidateAdminToken(token, cfg.AdminTokenSecret)

Tokens are HS256 JWTs with issuer "food-poll" and subject "admin".

# Errors

  - ErrInvalidPassword: password mismatch (or no password configured)
  - ErrInvalidToken: malformed, expired, or wrongly signed token
*/
package auth

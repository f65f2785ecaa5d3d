// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidToken    = errors.New("invalid or expired admin token")
)

const (
	tokenIssuer  = "food-poll"
	tokenSubject = "admin"
)

// GenerateID creates a unique, time-ordered entity ID (UUIDv7)
func GenerateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

// CheckAdminPassword compares the submitted password with the configured one
// in constant time. An empty configured password never matches.
func CheckAdminPassword(given, expected string) error {
	if expected == "" {
		return ErrInvalidPassword
	}
	// Hash both so the comparison doesn't leak the length
	g := sha256.Sum256([]byte(given))
	e := sha256.Sum256([]byte(expected))
	if !hmac.Equal(g[:], e[:]) {
		return ErrInvalidPassword
	}
	return nil
}

// IssueAdminToken signs an HS256 admin token valid for ttl from now
func IssueAdminToken(secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}

// ValidateAdminToken checks signature, expiry, issuer and subject
func ValidateAdminToken(tokenString, secret string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(tokenSubject),
	)
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error = %v", err)
		}
		if seen[id] {
			t.Fatalf("GenerateID() produced duplicate ID %s", id)
		}
		seen[id] = true

		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("GenerateID() returned non-UUID %q: %v", id, err)
		}
		if parsed.Version() != 7 {
			t.Errorf("GenerateID() version = %d, want 7", parsed.Version())
		}
	}
}

func TestGenerateID_EncodesCreationTime(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id, err := GenerateID()
	if err != nil {
		t.Fatal(err)
	}
	after := time.Now().Add(time.Second)

	sec, nsec := uuid.MustParse(id).Time().UnixTime()
	created := time.Unix(sec, nsec)
	if created.Before(before) || created.After(after) {
		t.Errorf("ID timestamp %v not within [%v, %v]", created, before, after)
	}
}

func TestCheckAdminPassword(t *testing.T) {
	tests := []struct {
		name     string
		given    string
		expected string
		wantErr  bool
	}{
		{"match", "admin", "admin", false},
		{"mismatch", "guest", "admin", true},
		{"prefix", "adm", "admin", true},
		{"empty given", "", "admin", true},
		{"nothing configured", "", "", true},
		{"case sensitive", "Admin", "admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckAdminPassword(tt.given, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckAdminPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPassword) {
				t.Errorf("Expected ErrInvalidPassword, got %v", err)
			}
		})
	}
}

func TestAdminToken_RoundTrip(t *testing.T) {
	token, err := IssueAdminToken("secret", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("IssueAdminToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("Expected JWT with 3 segments, got %q", token)
	}

	if err := ValidateAdminToken(token, "secret"); err != nil {
		t.Errorf("ValidateAdminToken() error = %v", err)
	}
}

func TestValidateAdminToken_Rejects(t *testing.T) {
	valid, _ := IssueAdminToken("secret", time.Hour, time.Now())
	expired, _ := IssueAdminToken("secret", time.Hour, time.Now().Add(-2*time.Hour))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty", "", "secret"},
		{"garbage", "not-a-token", "secret"},
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, "secret"},
		{"tampered", valid + "x", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminToken(tt.token, tt.secret)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/food-poll/models"
	"github.com/danielhkuo/food-poll/testutil"
)

func TestGetMenu(t *testing.T) {
	st, _ := setupTestStore(t)
	handler := NewVotingHandler(st)

	tests := []struct {
		name          string
		query         string
		checkResponse func(t *testing.T, menu models.Menu)
	}{
		{
			name:  "voter sees only available foods",
			query: "?userId=alice",
			checkResponse: func(t *testing.T, menu models.Menu) {
				if menu.Date != testutil.Today {
					t.Errorf("Expected date %s, got %s", testutil.Today, menu.Date)
				}
				for _, d := range menu.Deliveries {
					for _, f := range d.Foods {
						if !f.IsAvailableToday {
							t.Errorf("Unavailable food %s listed", f.ID)
						}
						if f.ID == "f1" && (!f.HasVoted || f.VoteCount != 2) {
							t.Errorf("Unexpected f1 entry: %+v", f)
						}
					}
				}
			},
		},
		{
			name:  "no user means no hasVoted",
			query: "",
			checkResponse: func(t *testing.T, menu models.Menu) {
				for _, d := range menu.Deliveries {
					for _, f := range d.Foods {
						if f.HasVoted {
							t.Errorf("Food %s marked voted without a user", f.ID)
						}
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/menu"+tt.query, nil, nil)
			w := httptest.NewRecorder()
			handler.GetMenu(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var menu models.Menu
			testutil.AssertJSON(t, w, &menu)
			tt.checkResponse(t, menu)
		})
	}
}

func TestCastVote(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		rawBody        string
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CastVoteResponse)
	}{
		{
			name: "new vote is cast",
			requestBody: models.CastVoteRequest{
				FoodID:             "f3",
				UserID:             "dave",
				AdditionalRequests: "  extra egg ",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CastVoteResponse) {
				if !resp.Voted {
					t.Error("Expected voted=true")
				}
				if resp.Vote.Date != testutil.Today {
					t.Errorf("Expected vote dated %s, got %s", testutil.Today, resp.Vote.Date)
				}
				if resp.Vote.AdditionalRequests != "  extra egg " {
					t.Errorf("Expected request text unchanged, got %q", resp.Vote.AdditionalRequests)
				}
			},
		},
		{
			name:           "whitespace-only request is kept",
			requestBody:    models.CastVoteRequest{FoodID: "f3", UserID: "dave", AdditionalRequests: "   "},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CastVoteResponse) {
				if resp.Vote.AdditionalRequests != "   " {
					t.Errorf("Expected whitespace request kept, got %q", resp.Vote.AdditionalRequests)
				}
			},
		},
		{
			name:           "existing vote is retracted",
			requestBody:    models.CastVoteRequest{FoodID: "f1", UserID: "alice"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.CastVoteResponse) {
				if resp.Voted {
					t.Error("Expected voted=false")
				}
				if resp.Vote.ID != "v1" {
					t.Errorf("Expected retracted vote v1, got %s", resp.Vote.ID)
				}
			},
		},
		{
			name:           "unknown food",
			requestBody:    models.CastVoteRequest{FoodID: "missing", UserID: "dave"},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unavailable food",
			requestBody:    models.CastVoteRequest{FoodID: "f2", UserID: "dave"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing food id",
			requestBody:    models.CastVoteRequest{UserID: "dave"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "blank user id",
			requestBody:    models.CastVoteRequest{FoodID: "f1", UserID: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			rawBody:        "not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, _ := setupTestStore(t)
			handler := NewVotingHandler(st)

			var req *http.Request
			if tt.rawBody != "" {
				req = httptest.NewRequest("POST", "/votes", strings.NewReader(tt.rawBody))
			} else {
				req = testutil.MakeRequest("POST", "/votes", tt.requestBody, nil)
			}
			w := httptest.NewRecorder()
			handler.CastVote(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil {
				var resp models.CastVoteResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestCastVoteToggle(t *testing.T) {
	st, _ := setupTestStore(t)
	handler := NewVotingHandler(st)

	body := models.CastVoteRequest{FoodID: "f3", UserID: "dave"}
	statuses := []int{http.StatusCreated, http.StatusOK, http.StatusCreated}

	for i, expected := range statuses {
		w := httptest.NewRecorder()
		handler.CastVote(w, testutil.MakeRequest("POST", "/votes", body, nil))
		if w.Code != expected {
			t.Errorf("Call %d: expected %d, got %d", i+1, expected, w.Code)
		}
	}

	if n := len(st.VotesForDay(testutil.Today)); n != 4 {
		t.Errorf("Expected 4 votes today, got %d", n)
	}
}

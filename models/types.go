// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// DateLayout is the calendar-day format used for Vote.Date
const DateLayout = "2006-01-02"

// Domain types

type Delivery struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Food struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DeliveryID       string `json:"deliveryId"`
	IsAvailableToday bool   `json:"isAvailableToday"`
}

type Vote struct {
	ID                 string `json:"id"`
	FoodID             string `json:"foodId"`
	UserID             string `json:"userId"`
	AdditionalRequests string `json:"additionalRequests,omitempty"`
	Date               string `json:"date"`
}

// Snapshot is the full state exchanged with every persistence backend
type Snapshot struct {
	Deliveries []Delivery `json:"deliveries"`
	Foods      []Food     `json:"foods"`
	Votes      []Vote     `json:"votes"`
}

// Normalize replaces nil collections with empty ones so they encode as []
func (s Snapshot) Normalize() Snapshot {
	if s.Deliveries == nil {
		s.Deliveries = []Delivery{}
	}
	if s.Foods == nil {
		s.Foods = []Food{}
	}
	if s.Votes == nil {
		s.Votes = []Vote{}
	}
	return s
}

// Request types

type AddDeliveryRequest struct {
	Name string `json:"name"`
}

type AddFoodRequest struct {
	Name       string `json:"name"`
	DeliveryID string `json:"deliveryId"`
}

type CastVoteRequest struct {
	FoodID             string `json:"foodId"`
	UserID             string `json:"userId"`
	AdditionalRequests string `json:"additionalRequests"`
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}

// Response types

type CastVoteResponse struct {
	Voted bool `json:"voted"`
	Vote  Vote `json:"vote"`
}

type DeleteResponse struct {
	Deleted    bool `json:"deleted"`
	Deliveries int  `json:"deliveries"`
	Foods      int  `json:"foods"`
	Votes      int  `json:"votes"`
}

type ClearVotesResponse struct {
	Date    string `json:"date"`
	Removed int    `json:"removed"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// View types

// MenuFood is a food annotated with today's voting state
type MenuFood struct {
	Food
	VoteCount int  `json:"voteCount"`
	HasVoted  bool `json:"hasVoted"`
}

type MenuDelivery struct {
	Delivery
	Foods []MenuFood `json:"foods"`
}

type Menu struct {
	Date       string         `json:"date"`
	Deliveries []MenuDelivery `json:"deliveries"`
}

// DailyReport is the plain-text order export for one day
type DailyReport struct {
	Date     string `json:"date"`
	Filename string `json:"filename"`
	Body     string `json:"body"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, response, and view types for the API.

# Domain Types

The three persisted entities, encoded with camelCase JSON keys:

  - Delivery: id, name
  - Food: id, name, deliveryId, isAvailableToday
  - Vote: id, foodId, userId, additionalRequests, date (YYYY-MM-DD)

Snapshot carries all three collections together. It is the unit every
persistence backend loads and saves, and the body of /api/fetchData and
/api/saveData.

# Request Types

  - AddDeliveryRequest: name
  - AddFoodRequest: name, deliveryId
  - CastVoteRequest: foodId, userId, additionalRequests
  - AdminLoginRequest: password

# Response Types

  - CastVoteResponse: voted, vote
  - DeleteResponse: deleted, cascade counts
  - ClearVotesResponse: date, removed
  - AdminLoginResponse: token
  - MessageResponse: message
  - ErrorResponse: error, message

# View Types

Menu, MenuDelivery and MenuFood describe the voter and admin menus with
today's vote counts. DailyReport is the plain-text order export.
*/
package models

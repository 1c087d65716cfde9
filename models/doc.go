// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateContestRequest: title, organizer, sport, price, prize type
  - UpdatePayoutsRequest: per-segment percent or custom label
  - UpdatePlayersRequest: roster entries (name, slug, optional number)
  - AddPaymentOptionRequest: method, handle, instructions
  - AssignNumbersRequest: explicit digit permutations (or empty for random)
  - SaveScoresRequest: (segment, home_score, away_score) tuples
  - ClaimSquareRequest: row, col, name, email

# Response Types

  - CreateContestResponse: contest_id, organizer_key
  - PublishContestResponse: share_slug, share_url
  - ClaimSquareResponse: square_id, message
  - SaveScoresResponse / WinnersResponse: SegmentResult lists
  - ErrorResponse: error, message

# Domain Types

  - Contest: configuration and lifecycle state
  - Square: one grid cell with payment status and claimant
  - Score: one segment's entered score and resolved winning square
  - PaymentOption: out-of-band payment instructions
  - SegmentResult: resolved winner, payout or prize label, change flag

# Constants

Statuses:

	StatusDraft, StatusOpen, StatusLocked, StatusInProgress, StatusCompleted

Sports and their segments:

	SportFootball → q1, q2, q3, final
	SportBaseball → game1 … game7

Square payment states:

	SquareAvailable, SquarePending, SquarePaid

Prize types:

	PrizePercentage, PrizeCustom
*/
package models

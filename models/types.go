// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Contest status constants
const (
	StatusDraft      = "draft"
	StatusOpen       = "open"
	StatusLocked     = "locked"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Sport constants
const (
	SportFootball = "football"
	SportBaseball = "baseball"
)

// Prize type constants
const (
	PrizePercentage = "percentage"
	PrizeCustom     = "custom"
)

// Square payment status constants
const (
	SquareAvailable = "available"
	SquarePending   = "pending"
	SquarePaid      = "paid"
)

// FootballSegments lists the scoring segments of a football contest in play
// order: three quarters plus the final score.
var FootballSegments = []string{"q1", "q2", "q3", "final"}

// BaseballSegments lists the scoring segments of a baseball contest: up to
// seven games of a series, each resolved independently.
var BaseballSegments = []string{"game1", "game2", "game3", "game4", "game5", "game6", "game7"}

// PaymentMethods are the accepted out-of-band payment option types.
var PaymentMethods = []string{"venmo", "paypal", "cashapp", "zelle", "other"}

// Request types

type CreateContestRequest struct {
	Title               string  `json:"title"`
	OrganizerName       string  `json:"organizer_name"`
	OrganizerEmail      string  `json:"organizer_email"`
	Sport               string  `json:"sport"`
	SquarePrice         float64 `json:"square_price"`
	PrizeType           string  `json:"prize_type"`
	MaxSquaresPerPerson int     `json:"max_squares_per_person"`
	HomeTeam            string  `json:"home_team"`
	AwayTeam            string  `json:"away_team"`
}

type PayoutEntry struct {
	Segment     string  `json:"segment"`
	Percent     float64 `json:"percent"`
	CustomLabel string  `json:"custom_label,omitempty"`
}

type UpdatePayoutsRequest struct {
	Payouts []PayoutEntry `json:"payouts"`
}

type PlayerEntry struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	JerseyNumber *int   `json:"jersey_number,omitempty"`
}

type UpdatePlayersRequest struct {
	Players []PlayerEntry `json:"players"`
}

type AddPaymentOptionRequest struct {
	Method       string `json:"method"`
	Handle       string `json:"handle"`
	Instructions string `json:"instructions"`
}

// AssignNumbersRequest carries explicit digit assignments. Both fields nil
// means "generate random permutations for me".
type AssignNumbersRequest struct {
	RowNumbers []int `json:"row_numbers"`
	ColNumbers []int `json:"col_numbers"`
}

type ScoreEntry struct {
	Segment   string `json:"segment"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

type SaveScoresRequest struct {
	Scores []ScoreEntry `json:"scores"`
}

type ClaimSquareRequest struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Response types

type CreateContestResponse struct {
	ContestID    string `json:"contest_id"`
	OrganizerKey string `json:"organizer_key"`
}

type PublishContestResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type TransitionResponse struct {
	Status string `json:"status"`
}

type AssignNumbersResponse struct {
	RowNumbers []int `json:"row_numbers"`
	ColNumbers []int `json:"col_numbers"`
}

type AddPaymentOptionResponse struct {
	PaymentOptionID string `json:"payment_option_id"`
}

type ClaimSquareResponse struct {
	SquareID string `json:"square_id"`
	Message  string `json:"message"`
}

type SaveScoresResponse struct {
	Results []SegmentResult `json:"results"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type Contest struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	OrganizerName       string    `json:"organizer_name"`
	OrganizerEmail      string    `json:"-"` // Never expose in JSON
	Sport               string    `json:"sport"`
	Status              string    `json:"status"`
	SquarePrice         float64   `json:"square_price"`
	PrizeType           string    `json:"prize_type"`
	MaxSquaresPerPerson int       `json:"max_squares_per_person"`
	RowNumbers          []int     `json:"row_numbers,omitempty"`
	ColNumbers          []int     `json:"col_numbers,omitempty"`
	HomeTeam            string    `json:"home_team"`
	AwayTeam            string    `json:"away_team"`
	ShareSlug           *string   `json:"share_slug,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type Square struct {
	ID            string     `json:"id"`
	ContestID     string     `json:"contest_id"`
	Row           int        `json:"row"`
	Col           int        `json:"col"`
	PaymentStatus string     `json:"payment_status"`
	ClaimantName  *string    `json:"claimant_name,omitempty"`
	ClaimantEmail *string    `json:"claimant_email,omitempty"` // Admin views only; public grid blanks it
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type Score struct {
	ContestID       string    `json:"contest_id"`
	Segment         string    `json:"segment"`
	HomeScore       int       `json:"home_score"`
	AwayScore       int       `json:"away_score"`
	WinningSquareID *string   `json:"winning_square_id,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaymentOption struct {
	ID           string    `json:"id"`
	ContestID    string    `json:"contest_id"`
	Method       string    `json:"method"`
	Handle       string    `json:"handle"`
	Instructions string    `json:"instructions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ContestView struct {
	Contest        Contest         `json:"contest"`
	PaymentOptions []PaymentOption `json:"payment_options"`
	Players        []PlayerEntry   `json:"players"`
}

type AdminContestView struct {
	Contest        Contest         `json:"contest"`
	OrganizerEmail string          `json:"organizer_email"`
	PaymentOptions []PaymentOption `json:"payment_options"`
	Players        []PlayerEntry   `json:"players"`
	Squares        []Square        `json:"squares"`
}

type GridView struct {
	ContestID string   `json:"contest_id"`
	Status    string   `json:"status"`
	Squares   []Square `json:"squares"`
}

// SegmentResult describes the outcome of winner resolution for one segment.
// A segment can have a winning position without a winner: the square at the
// position exists but nobody claimed it. WinningSquareID is set whenever the
// position resolves; ClaimantName stays null for unclaimed squares.
type SegmentResult struct {
	Segment         string   `json:"segment"`
	HomeScore       int      `json:"home_score"`
	AwayScore       int      `json:"away_score"`
	WinningRow      *int     `json:"winning_row,omitempty"`
	WinningCol      *int     `json:"winning_col,omitempty"`
	WinningSquareID *string  `json:"winning_square_id,omitempty"`
	ClaimantName    *string  `json:"claimant_name,omitempty"`
	Payout          *float64 `json:"payout,omitempty"`
	PrizeLabel      string   `json:"prize_label,omitempty"`
	NewWinner       bool     `json:"new_winner,omitempty"`
}

type WinnersResponse struct {
	ContestID string          `json:"contest_id"`
	Results   []SegmentResult `json:"results"`
}

// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"log/slog"

	"github.com/dustin/go-humanize"
)

// Winner describes a newly resolved winning claim for one segment. EventID
// is unique per notification so downstream delivery can deduplicate.
type Winner struct {
	EventID       string
	ContestID     string
	ContestTitle  string
	Segment       string
	SquareID      string
	Row           int
	Col           int
	ClaimantName  string
	ClaimantEmail string
	Payout        *float64 // nil for custom-prize contests
	PrizeLabel    string   // set instead of Payout for custom prizes
}

// Notifier receives new-winner events. The score handler calls it exactly
// once per segment whose resolved winner changed on save; unchanged
// re-saves produce no event. Delivery (email etc.) is the implementation's
// concern.
type Notifier interface {
	WinnerChanged(w Winner)
}

// LogNotifier writes winner events to the structured log. It stands in for
// a real email dispatcher in development and tests.
type LogNotifier struct{}

func (LogNotifier) WinnerChanged(w Winner) {
	prize := w.PrizeLabel
	if w.Payout != nil {
		prize = "$" + humanize.CommafWithDigits(*w.Payout, 2)
	}
	slog.Info("winner notification",
		"event_id", w.EventID,
		"contest_id", w.ContestID,
		"segment", w.Segment,
		"square_id", w.SquareID,
		"claimant", w.ClaimantName,
		"prize", prize,
	)
}

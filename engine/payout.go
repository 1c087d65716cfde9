// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "github.com/squarepool/api/models"

// PayoutAmount computes the prize for one segment. Custom-prize contests
// have no numeric payout (the segment's label stands in for it), so the
// result is nil. Percentage contests pay a share of the full pot:
//
//	squarePrice × 100 squares × percent/100
//
// An unset segment percent is treated as 0, never an error.
func PayoutAmount(prizeType string, squarePrice, percent float64) *float64 {
	if prizeType == models.PrizeCustom {
		return nil
	}
	amount := squarePrice * GridSquares * (percent / 100)
	return &amount
}

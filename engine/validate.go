// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/squarepool/api/models"
)

var (
	ErrNotPermutation    = errors.New("numbers must be a permutation of the digits 0-9")
	ErrNumbersMismatch   = errors.New("row and column numbers must be set together")
	ErrUnknownSegment    = errors.New("unknown segment for sport")
	ErrPercentOutOfRange = errors.New("payout percent must be between 0 and 100")
	ErrPayoutOverflow    = errors.New("payout percentages cannot sum to more than 100")
	ErrClaimLimit        = errors.New("square limit reached for this participant")
	ErrPlayerName        = errors.New("player name is required")
	ErrPlayerSlug        = errors.New("player slug is required and must be unique")
)

// SegmentsFor returns the scoring segments for a sport, nil for an unknown
// sport.
func SegmentsFor(sport string) []string {
	switch sport {
	case models.SportFootball:
		return models.FootballSegments
	case models.SportBaseball:
		return models.BaseballSegments
	}
	return nil
}

// ValidSegment reports whether segment is scored in the given sport.
func ValidSegment(sport, segment string) bool {
	for _, s := range SegmentsFor(sport) {
		if s == segment {
			return true
		}
	}
	return false
}

// ValidateNumbers checks a contest's digit assignment invariant: row and
// column numbers are both unset, or both exact permutations of 0-9.
func ValidateNumbers(rowNumbers, colNumbers []int) error {
	if rowNumbers == nil && colNumbers == nil {
		return nil
	}
	if rowNumbers == nil || colNumbers == nil {
		return ErrNumbersMismatch
	}
	if err := validatePermutation(rowNumbers); err != nil {
		return fmt.Errorf("row numbers: %w", err)
	}
	if err := validatePermutation(colNumbers); err != nil {
		return fmt.Errorf("column numbers: %w", err)
	}
	return nil
}

func validatePermutation(nums []int) error {
	if len(nums) != GridSize {
		return ErrNotPermutation
	}
	var seen [GridSize]bool
	for _, n := range nums {
		if n < 0 || n > 9 || seen[n] {
			return ErrNotPermutation
		}
		seen[n] = true
	}
	return nil
}

// ValidatePayouts checks a payout configuration against the sport's segment
// list: every segment known, every percent in [0,100], and the percents
// summing to at most 100. Custom-prize contests carry labels instead; their
// percents are expected to be coerced to 0 before this runs.
func ValidatePayouts(sport string, payouts []models.PayoutEntry) error {
	var sum float64
	seen := make(map[string]bool, len(payouts))
	for _, p := range payouts {
		if !ValidSegment(sport, p.Segment) {
			return fmt.Errorf("%w: %q", ErrUnknownSegment, p.Segment)
		}
		if seen[p.Segment] {
			return fmt.Errorf("duplicate payout for segment %q", p.Segment)
		}
		seen[p.Segment] = true
		if p.Percent < 0 || p.Percent > 100 {
			return fmt.Errorf("%w: segment %q", ErrPercentOutOfRange, p.Segment)
		}
		sum += p.Percent
	}
	if sum > 100 {
		return ErrPayoutOverflow
	}
	return nil
}

// ValidatePlayers checks a roster: non-empty names and non-empty,
// contest-unique slugs. Slugs are compared case-insensitively.
func ValidatePlayers(players []models.PlayerEntry) error {
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			return ErrPlayerName
		}
		slug := strings.ToLower(strings.TrimSpace(p.Slug))
		if slug == "" || seen[slug] {
			return fmt.Errorf("%w: %q", ErrPlayerSlug, p.Slug)
		}
		seen[slug] = true
	}
	return nil
}

// ClaimAllowed enforces the per-person square limit. existing is the count
// of the claimant's non-available squares in the contest (matched
// case-insensitively by email, which is the caller's job). A max of zero or
// less means unlimited.
func ClaimAllowed(existing, max int) error {
	if max > 0 && existing >= max {
		return fmt.Errorf("%w: limit is %d", ErrClaimLimit, max)
	}
	return nil
}

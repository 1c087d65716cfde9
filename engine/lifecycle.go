// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"

	"github.com/squarepool/api/models"
)

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNoPaymentOptions     = errors.New("at least one payment option is required before publishing")
	ErrScoresAlreadyEntered = errors.New("cannot reopen the grid after scores have been entered")
	ErrNumbersNotAssigned   = errors.New("row and column numbers must be assigned before starting")
)

// TransitionContext carries the persisted facts the transition guards need.
// The guards check results, not mechanisms: NumbersAssigned is true whenever
// both digit permutations are set, regardless of whether the organizer typed
// them in or had them generated.
type TransitionContext struct {
	PaymentOptions  int
	NumbersAssigned bool
	Scores          int
}

// CanTransition reports whether a contest may move from one status to
// another. It returns nil when the transition is allowed, a guard error when
// the transition exists but its precondition fails, and ErrInvalidTransition
// for any pair not in the lifecycle table. Callers must not persist a status
// change when an error is returned.
//
// The lifecycle is:
//
//	draft → open → locked → in_progress → completed
//	                locked → open            (reopen, while no scores exist)
func CanTransition(from, to string, ctx TransitionContext) error {
	switch {
	case from == models.StatusDraft && to == models.StatusOpen:
		if ctx.PaymentOptions == 0 {
			return ErrNoPaymentOptions
		}
	case from == models.StatusOpen && to == models.StatusLocked:
		// Always allowed

	case from == models.StatusLocked && to == models.StatusOpen:
		if ctx.Scores > 0 {
			return ErrScoresAlreadyEntered
		}
	case from == models.StatusLocked && to == models.StatusInProgress:
		if !ctx.NumbersAssigned {
			return ErrNumbersNotAssigned
		}
	case from == models.StatusInProgress && to == models.StatusCompleted:
		// Organizer-driven, no guard

	default:
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

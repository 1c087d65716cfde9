// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine contains the pure domain rules for squares contests: the
lifecycle state machine, winner resolution, payout math, and configuration
validation.

Nothing in this package touches the database or any ambient state. Every
function takes explicit inputs and returns a result or an error, so the
rules are trivially testable and winner resolution is idempotent by
construction. Handlers gather the persisted facts, call in here for the
decision, and persist the outcome.

# Lifecycle

Contests move through draft → open → locked → in_progress → completed,
with one backward edge (locked → open) for reopening a grid before any
scores exist:

	err := engine.CanTransition(from, to, engine.TransitionContext{
		PaymentOptions:  optionCount,
		NumbersAssigned: rowNums != nil,
		Scores:          scoreCount,
	})

A nil error means the transition (and only then) may be persisted.

# Winner resolution

The winning cell for a segment is the intersection of the row assigned the
home score's last digit and the column assigned the away score's last
digit:

	ref := engine.ResolveWinner(home, away, rowNums, colNums, squares)

ref is nil when the contest has no numbers yet. An unclaimed ref (Claimed
false) means the segment has a winning position but no winner to pay.

# Payouts

	amount := engine.PayoutAmount(prizeType, squarePrice, percent)

nil for custom-prize contests, otherwise squarePrice × 100 × percent/100.

# Validation

ValidateNumbers, ValidatePayouts, ValidatePlayers, and ClaimAllowed each
enforce one invariant from the data model and return sentinel errors that
handlers map onto HTTP status codes with errors.Is.
*/
package engine

// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

// GridSize is the number of rows and columns in every contest grid.
// GridSquares is the total cell count. Both are hard constants of the
// domain, not configuration.
const (
	GridSize    = 10
	GridSquares = GridSize * GridSize
)

// SquareRef is the slice of square state winner resolution needs.
type SquareRef struct {
	ID           string
	Row          int
	Col          int
	Claimed      bool
	ClaimantName string
}

// WinningPosition locates the grid cell that wins a segment: the row whose
// assigned digit equals the home score's last digit crossed with the column
// whose digit equals the away score's last digit. Scores are non-negative,
// so mod 10 is the plain remainder.
//
// Returns ok=false when either permutation is unset or the digit is missing
// from it. A valid 0-9 permutation always contains every digit; the lookup
// guard exists so corrupt data degrades to "no winner" instead of a bogus
// cell.
func WinningPosition(homeScore, awayScore int, rowNumbers, colNumbers []int) (row, col int, ok bool) {
	if len(rowNumbers) != GridSize || len(colNumbers) != GridSize {
		return 0, 0, false
	}

	homeDigit := homeScore % 10
	awayDigit := awayScore % 10

	row = indexOf(rowNumbers, homeDigit)
	col = indexOf(colNumbers, awayDigit)
	if row < 0 || col < 0 {
		return 0, 0, false
	}
	return row, col, true
}

// ResolveWinner returns the square occupying the winning position for a
// segment, or nil when no position resolves. The square is returned whether
// or not it was claimed; "unclaimed winner" is a presentation distinction,
// not a resolution one. The function is pure: identical inputs always yield
// the identical result.
func ResolveWinner(homeScore, awayScore int, rowNumbers, colNumbers []int, squares []SquareRef) *SquareRef {
	row, col, ok := WinningPosition(homeScore, awayScore, rowNumbers, colNumbers)
	if !ok {
		return nil
	}

	for i := range squares {
		if squares[i].Row == row && squares[i].Col == col {
			return &squares[i]
		}
	}
	return nil
}

// WinnerChanged reports whether a re-saved score produced a different
// winning square than the previous save. A change (including none→some and
// some→none) is a new-winner event eligible for one outward notification;
// an unchanged winner is not.
func WinnerChanged(prev, next *string) bool {
	if prev == nil && next == nil {
		return false
	}
	if prev == nil || next == nil {
		return true
	}
	return *prev != *next
}

func indexOf(nums []int, digit int) int {
	for i, n := range nums {
		if n == digit {
			return i
		}
	}
	return -1
}

// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/squarepool/api/models"
	"github.com/squarepool/api/testutil"
)

func TestGetContestPublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)
	_, _, slug := testutil.CreateTestContest(t, db, cfg, models.StatusOpen, models.SportFootball)

	req := testutil.MakeRequest("GET", "/contests/"+slug, nil, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	handler.GetContest(w, req)
	testutil.AssertStatus(t, w, 200)

	var view models.ContestView
	testutil.AssertJSON(t, w, &view)
	if view.Contest.Title != "Test Contest" {
		t.Errorf("title = %q", view.Contest.Title)
	}

	// Organizer email never appears in the public payload
	if strings.Contains(w.Body.String(), "organizer@example.com") {
		t.Error("public view leaked the organizer email")
	}
}

func TestGetContestUnknownSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/contests/nope", nil, nil)
	req.SetPathValue("slug", "nope")
	w := httptest.NewRecorder()
	handler.GetContest(w, req)
	testutil.AssertStatus(t, w, 404)
}

func TestGetGridStripsEmails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)
	contestID, _, slug := testutil.CreateTestContest(t, db, cfg, models.StatusOpen, models.SportFootball)
	testutil.ClaimTestSquare(t, db, contestID, 2, 3, "Pat", "pat@example.com", models.SquarePending)

	req := testutil.MakeRequest("GET", "/contests/"+slug+"/grid", nil, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	handler.GetGrid(w, req)
	testutil.AssertStatus(t, w, 200)

	var grid models.GridView
	testutil.AssertJSON(t, w, &grid)
	if len(grid.Squares) != 100 {
		t.Fatalf("squares = %d, want 100", len(grid.Squares))
	}

	for _, s := range grid.Squares {
		if s.ClaimantEmail != nil {
			t.Fatalf("grid leaked claimant email for square (%d,%d)", s.Row, s.Col)
		}
		if s.Row == 2 && s.Col == 3 {
			if s.PaymentStatus != models.SquarePending {
				t.Errorf("claimed square status = %q", s.PaymentStatus)
			}
			if s.ClaimantName == nil || *s.ClaimantName != "Pat" {
				t.Error("grid missing claimant name")
			}
		}
	}
}

func TestGetWinners(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)
	contestID, _, slug := testutil.CreateTestContest(t, db, cfg, models.StatusCompleted, models.SportFootball)
	testutil.SetTestNumbers(t, db, contestID,
		[]int{7, 2, 9, 0, 4, 1, 6, 3, 8, 5}, []int{5, 8, 3, 6, 1, 9, 2, 0, 7, 4})
	testutil.SetTestPayout(t, db, contestID, "q1", 25, "")
	testutil.SetTestPayout(t, db, contestID, "final", 50, "")

	claimedID := testutil.ClaimTestSquare(t, db, contestID, 7, 8, "Pat", "pat@example.com", models.SquarePaid)

	// q1 won by the claimed square; final resolves to an unclaimed one.
	// Scores are inserted out of play order to exercise the ordering.
	unclaimedID := squareIDAt(t, db, contestID, 4, 8)
	testutil.AddTestScore(t, db, contestID, "final", 24, 17, &unclaimedID)
	testutil.AddTestScore(t, db, contestID, "q1", 23, 17, &claimedID)

	req := testutil.MakeRequest("GET", "/contests/"+slug+"/winners", nil, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	handler.GetWinners(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.WinnersResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}

	// Play order: q1 before final, q2/q3 skipped entirely
	if resp.Results[0].Segment != "q1" || resp.Results[1].Segment != "final" {
		t.Fatalf("segment order = %s, %s", resp.Results[0].Segment, resp.Results[1].Segment)
	}

	q1 := resp.Results[0]
	if q1.ClaimantName == nil || *q1.ClaimantName != "Pat" {
		t.Errorf("q1 claimant = %v", q1.ClaimantName)
	}
	if q1.Payout == nil || *q1.Payout != 250 {
		t.Errorf("q1 payout = %v, want 250", q1.Payout)
	}

	final := resp.Results[1]
	if final.WinningSquareID == nil || *final.WinningSquareID != unclaimedID {
		t.Errorf("final winning square = %v", final.WinningSquareID)
	}
	if final.ClaimantName != nil {
		t.Errorf("final claimant = %v, want nil for unclaimed square", final.ClaimantName)
	}
	if final.Payout == nil || *final.Payout != 500 {
		t.Errorf("final payout = %v, want 500", final.Payout)
	}
}

func TestGetWinnersNoScores(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)
	_, _, slug := testutil.CreateTestContest(t, db, cfg, models.StatusInProgress, models.SportFootball)

	req := testutil.MakeRequest("GET", "/contests/"+slug+"/winners", nil, nil)
	req.SetPathValue("slug", slug)
	w := httptest.NewRecorder()
	handler.GetWinners(w, req)
	testutil.AssertStatus(t, w, 200)

	var resp models.WinnersResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Results) != 0 {
		t.Errorf("results = %d, want 0", len(resp.Results))
	}
}

func squareIDAt(t *testing.T, db *sql.DB, contestID string, row, col int) string {
	t.Helper()
	var id string
	err := db.QueryRow(`
		SELECT id FROM square WHERE contest_id = $1 AND row_index = $2 AND col_index = $3
	`, contestID, row, col).Scan(&id)
	if err != nil {
		t.Fatalf("failed to look up square (%d,%d): %v", row, col, err)
	}
	return id
}

// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/squarepool/api/cliparse"
	"github.com/squarepool/api/engine"
	"github.com/squarepool/api/middleware"
	"github.com/squarepool/api/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetContest handles GET /contests/{slug}
// Public contest view: configuration, payment options, and roster, but no
// claimant emails and no organizer email.
func (h *ResultsHandler) GetContest(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	contest, err := getContestBySlug(h.db, shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	options, err := getPaymentOptions(h.db, contest.ID)
	if err != nil {
		slog.Error("failed to query payment options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	players, err := getPlayers(h.db, contest.ID)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContestView{
		Contest:        *contest,
		PaymentOptions: options,
		Players:        players,
	})
}

// GetGrid handles GET /contests/{slug}/grid
// The 100 squares with claim state. Claimant emails are stripped; the
// public view gets names only.
func (h *ResultsHandler) GetGrid(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var contestID, status string
	err := h.db.QueryRow(`
		SELECT id, status FROM contest WHERE share_slug = $1
	`, shareSlug).Scan(&contestID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	squares, err := getSquares(h.db, contestID)
	if err != nil {
		slog.Error("failed to query squares", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range squares {
		squares[i].ClaimantEmail = nil
	}

	middleware.JSONResponse(w, http.StatusOK, models.GridView{
		ContestID: contestID,
		Status:    status,
		Squares:   squares,
	})
}

// GetWinners handles GET /contests/{slug}/winners
// One result per scored segment. A result with a winning square but no
// claimant name is a winning position nobody claimed - distinct from a
// segment with no winning position at all (no numbers when it was scored).
func (h *ResultsHandler) GetWinners(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	contest, err := getContestBySlug(h.db, shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT s.segment, s.home_score, s.away_score, s.winning_square_id,
		       sq.row_index, sq.col_index, sq.claimant_name, sq.payment_status,
		       p.percent, p.custom_label
		FROM score s
		LEFT JOIN square sq ON sq.id = s.winning_square_id
		LEFT JOIN payout p ON p.contest_id = s.contest_id AND p.segment = s.segment
		WHERE s.contest_id = $1
	`, contest.ID)
	if err != nil {
		slog.Error("failed to query winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	bySegment := make(map[string]models.SegmentResult)
	for rows.Next() {
		var res models.SegmentResult
		var winningRow, winningCol *int
		var claimantName, paymentStatus, customLabel *string
		var percent *float64
		if err := rows.Scan(&res.Segment, &res.HomeScore, &res.AwayScore, &res.WinningSquareID,
			&winningRow, &winningCol, &claimantName, &paymentStatus,
			&percent, &customLabel); err != nil {
			slog.Error("failed to scan winner row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if res.WinningSquareID != nil {
			res.WinningRow = winningRow
			res.WinningCol = winningCol
			if paymentStatus != nil && *paymentStatus != models.SquareAvailable {
				res.ClaimantName = claimantName
			}
			pct := 0.0
			if percent != nil {
				pct = *percent
			}
			res.Payout = engine.PayoutAmount(contest.PrizeType, contest.SquarePrice, pct)
			if customLabel != nil {
				res.PrizeLabel = *customLabel
			}
		}
		bySegment[res.Segment] = res
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read winner rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Present in play order, skipping unscored segments
	results := []models.SegmentResult{}
	for _, segment := range engine.SegmentsFor(contest.Sport) {
		if res, scored := bySegment[segment]; scored {
			results = append(results, res)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnersResponse{
		ContestID: contest.ID,
		Results:   results,
	})
}

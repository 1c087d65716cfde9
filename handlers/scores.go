// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/squarepool/api/auth"
	"github.com/squarepool/api/cliparse"
	"github.com/squarepool/api/engine"
	"github.com/squarepool/api/middleware"
	"github.com/squarepool/api/models"
	"github.com/squarepool/api/notify"
)

type ScoreHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewScoreHandler(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *ScoreHandler {
	return &ScoreHandler{db: db, cfg: cfg, notifier: notifier}
}

// SaveScores handles POST /contests/{id}/scores
// Upserts the submitted segments and re-resolves each one's winning square
// from scratch. Resolution is pure and recomputed on every save, so a
// corrected score always overwrites the stale winning_square_id. A segment
// whose resolved winner changed fires one notification event when the new
// winning square has a claimant.
func (h *ScoreHandler) SaveScores(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest_id is required")
		return
	}

	key := r.Header.Get("X-Organizer-Key")
	if err := auth.ValidateOrganizerKey(contestID, key, h.cfg.OrganizerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid organizer key")
		return
	}

	var req models.SaveScoresRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Scores) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scores cannot be empty")
		return
	}

	contest, err := getContestByID(h.db, contestID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if contest.Status != models.StatusInProgress && contest.Status != models.StatusCompleted {
		middleware.ErrorResponse(w, http.StatusConflict, "Scores can only be entered once the contest has started")
		return
	}
	if contest.RowNumbers == nil || contest.ColNumbers == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Scores cannot be entered before numbers are assigned")
		return
	}

	// Validate every entry before touching anything
	seen := make(map[string]bool, len(req.Scores))
	for _, entry := range req.Scores {
		if !engine.ValidSegment(contest.Sport, entry.Segment) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown segment "+entry.Segment+" for "+contest.Sport)
			return
		}
		if seen[entry.Segment] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "duplicate segment "+entry.Segment)
			return
		}
		seen[entry.Segment] = true
		if entry.HomeScore < 0 || entry.AwayScore < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "scores cannot be negative")
			return
		}
	}

	refs, emails, err := h.loadSquareRefs(contestID)
	if err != nil {
		slog.Error("failed to query squares", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	payouts, err := h.loadPayouts(contestID)
	if err != nil {
		slog.Error("failed to query payouts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	results := make([]models.SegmentResult, 0, len(req.Scores))
	// Segments are independent; each gets its own upsert and resolution
	for _, entry := range req.Scores {
		var prev *string
		err := h.db.QueryRow(`
			SELECT winning_square_id FROM score WHERE contest_id = $1 AND segment = $2
		`, contestID, entry.Segment).Scan(&prev)
		if err != nil && err != sql.ErrNoRows {
			slog.Error("failed to query score", "error", err, "segment", entry.Segment)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		ref := engine.ResolveWinner(entry.HomeScore, entry.AwayScore,
			contest.RowNumbers, contest.ColNumbers, refs)

		var winningID *string
		if ref != nil {
			winningID = &ref.ID
		}

		_, err = h.db.Exec(`
			INSERT INTO score (contest_id, segment, home_score, away_score, winning_square_id, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (contest_id, segment) DO UPDATE
			SET home_score = EXCLUDED.home_score,
			    away_score = EXCLUDED.away_score,
			    winning_square_id = EXCLUDED.winning_square_id,
			    updated_at = EXCLUDED.updated_at
		`, contestID, entry.Segment, entry.HomeScore, entry.AwayScore, winningID, time.Now())

		if err != nil {
			slog.Error("failed to upsert score", "error", err, "segment", entry.Segment)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save scores")
			return
		}

		result := models.SegmentResult{
			Segment:         entry.Segment,
			HomeScore:       entry.HomeScore,
			AwayScore:       entry.AwayScore,
			WinningSquareID: winningID,
		}

		p := payouts[entry.Segment]
		if ref != nil {
			row, col := ref.Row, ref.Col
			result.WinningRow = &row
			result.WinningCol = &col
			result.Payout = engine.PayoutAmount(contest.PrizeType, contest.SquarePrice, p.Percent)
			result.PrizeLabel = p.CustomLabel
			if ref.Claimed {
				name := ref.ClaimantName
				result.ClaimantName = &name
			}
		}

		changed := engine.WinnerChanged(prev, winningID)
		result.NewWinner = changed && ref != nil && ref.Claimed

		if result.NewWinner {
			h.notifier.WinnerChanged(notify.Winner{
				EventID:       uuid.NewString(),
				ContestID:     contestID,
				ContestTitle:  contest.Title,
				Segment:       entry.Segment,
				SquareID:      ref.ID,
				Row:           ref.Row,
				Col:           ref.Col,
				ClaimantName:  ref.ClaimantName,
				ClaimantEmail: emails[ref.ID],
				Payout:        result.Payout,
				PrizeLabel:    p.CustomLabel,
			})
		}

		results = append(results, result)
	}

	slog.Info("scores saved", "contest_id", contestID, "segments", len(results))

	middleware.JSONResponse(w, http.StatusOK, models.SaveScoresResponse{Results: results})
}

// loadSquareRefs loads the contest's grid in the shape winner resolution
// takes, plus an id→email map for notifications.
func (h *ScoreHandler) loadSquareRefs(contestID string) ([]engine.SquareRef, map[string]string, error) {
	rows, err := h.db.Query(`
		SELECT id, row_index, col_index, payment_status, claimant_name, claimant_email
		FROM square
		WHERE contest_id = $1
	`, contestID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	refs := make([]engine.SquareRef, 0, engine.GridSquares)
	emails := make(map[string]string)
	for rows.Next() {
		var ref engine.SquareRef
		var paymentStatus string
		var name, email *string
		if err := rows.Scan(&ref.ID, &ref.Row, &ref.Col, &paymentStatus, &name, &email); err != nil {
			return nil, nil, err
		}
		ref.Claimed = paymentStatus != models.SquareAvailable
		if name != nil {
			ref.ClaimantName = *name
		}
		if email != nil {
			emails[ref.ID] = *email
		}
		refs = append(refs, ref)
	}
	return refs, emails, rows.Err()
}

func (h *ScoreHandler) loadPayouts(contestID string) (map[string]models.PayoutEntry, error) {
	rows, err := h.db.Query(`
		SELECT segment, percent, custom_label FROM payout WHERE contest_id = $1
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payouts := make(map[string]models.PayoutEntry)
	for rows.Next() {
		var p models.PayoutEntry
		if err := rows.Scan(&p.Segment, &p.Percent, &p.CustomLabel); err != nil {
			return nil, err
		}
		payouts[p.Segment] = p
	}
	return payouts, rows.Err()
}

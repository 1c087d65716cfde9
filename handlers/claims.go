// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/squarepool/api/auth"
	"github.com/squarepool/api/cliparse"
	"github.com/squarepool/api/engine"
	"github.com/squarepool/api/middleware"
	"github.com/squarepool/api/models"
)

type ClaimHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewClaimHandler(db *sql.DB, cfg cliparse.Config) *ClaimHandler {
	return &ClaimHandler{db: db, cfg: cfg}
}

// ClaimSquare handles POST /contests/{slug}/claim
// Moves one square from available to pending for the claimant. The write is
// conditioned on the square still being available, so two racing claimants
// get exactly one success and one "already claimed" rejection.
func (h *ClaimHandler) ClaimSquare(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var req models.ClaimSquareRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Row < 0 || req.Row >= engine.GridSize || req.Col < 0 || req.Col >= engine.GridSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "row and col must be between 0 and 9")
		return
	}
	if len(req.Name) < 2 || len(req.Name) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be 2-50 characters")
		return
	}
	if !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email must be a valid email")
		return
	}

	var contestID, status string
	var maxPerPerson int
	err := h.db.QueryRow(`
		SELECT id, status, max_squares_per_person FROM contest WHERE share_slug = $1
	`, shareSlug).Scan(&contestID, &status, &maxPerPerson)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Contest is not open for claims")
		return
	}

	// Per-person limit: count this email's existing claims, case-insensitive.
	// The count is advisory; the availability condition below is what keeps
	// racing claims safe.
	if maxPerPerson > 0 {
		var existing int
		err := h.db.QueryRow(`
			SELECT COUNT(*) FROM square
			WHERE contest_id = $1
			  AND LOWER(claimant_email) = LOWER($2)
			  AND payment_status != $3
		`, contestID, req.Email, models.SquareAvailable).Scan(&existing)

		if err != nil {
			slog.Error("failed to count claims", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if err := engine.ClaimAllowed(existing, maxPerPerson); err != nil {
			middleware.ErrorResponse(w, http.StatusConflict, err.Error())
			return
		}
	}

	// Atomic claim: update-if-still-available. No matching row means someone
	// else got there first.
	var squareID string
	err = h.db.QueryRow(`
		UPDATE square
		SET payment_status = $1, claimant_name = $2, claimant_email = $3, claimed_at = $4
		WHERE contest_id = $5 AND row_index = $6 AND col_index = $7 AND payment_status = $8
		RETURNING id
	`, models.SquarePending, req.Name, req.Email, time.Now(),
		contestID, req.Row, req.Col, models.SquareAvailable).Scan(&squareID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusConflict, "Square already claimed - pick another")
		return
	}
	if err != nil {
		slog.Error("failed to claim square", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to claim square")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.OrganizerKeySalt)
	slog.Info("square claimed",
		"contest_id", contestID,
		"square_id", squareID,
		"row", req.Row,
		"col", req.Col,
		"ip_hash", ipHash,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimSquareResponse{
		SquareID: squareID,
		Message:  "Square claimed - send payment to the organizer to confirm it",
	})
}

// MarkPaid handles POST /contests/{id}/squares/{row}/{col}/paid
// pending → paid, once the organizer has received the money.
func (h *ClaimHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	contestID, row, col, ok := h.authorizeSquare(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec(`
		UPDATE square
		SET payment_status = $1, paid_at = $2
		WHERE contest_id = $3 AND row_index = $4 AND col_index = $5 AND payment_status = $6
	`, models.SquarePaid, time.Now(), contestID, row, col, models.SquarePending)

	if err != nil {
		slog.Error("failed to mark square paid", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Square is not pending payment")
		return
	}

	slog.Info("square marked paid", "contest_id", contestID, "row", row, "col", col)

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{Status: models.SquarePaid})
}

// ReleaseSquare handles POST /contests/{id}/squares/{row}/{col}/release
// Any state → available; clears the claimant fields.
func (h *ClaimHandler) ReleaseSquare(w http.ResponseWriter, r *http.Request) {
	contestID, row, col, ok := h.authorizeSquare(w, r)
	if !ok {
		return
	}

	res, err := h.db.Exec(`
		UPDATE square
		SET payment_status = $1, claimant_name = NULL, claimant_email = NULL,
		    claimed_at = NULL, paid_at = NULL
		WHERE contest_id = $2 AND row_index = $3 AND col_index = $4
	`, models.SquareAvailable, contestID, row, col)

	if err != nil {
		slog.Error("failed to release square", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Square not found")
		return
	}

	slog.Info("square released", "contest_id", contestID, "row", row, "col", col)

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{Status: models.SquareAvailable})
}

// authorizeSquare validates the organizer key and parses the square
// coordinates from the path.
func (h *ClaimHandler) authorizeSquare(w http.ResponseWriter, r *http.Request) (contestID string, row, col int, ok bool) {
	contestID = r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest_id is required")
		return "", 0, 0, false
	}

	key := r.Header.Get("X-Organizer-Key")
	if err := auth.ValidateOrganizerKey(contestID, key, h.cfg.OrganizerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid organizer key")
		return "", 0, 0, false
	}

	row, err := strconv.Atoi(r.PathValue("row"))
	if err != nil || row < 0 || row >= engine.GridSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "row must be between 0 and 9")
		return "", 0, 0, false
	}
	col, err = strconv.Atoi(r.PathValue("col"))
	if err != nil || col < 0 || col >= engine.GridSize {
		middleware.ErrorResponse(w, http.StatusBadRequest, "col must be between 0 and 9")
		return "", 0, 0, false
	}

	return contestID, row, col, true
}

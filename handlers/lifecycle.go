// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/squarepool/api/auth"
	"github.com/squarepool/api/engine"
	"github.com/squarepool/api/middleware"
	"github.com/squarepool/api/models"
)

// Publish handles POST /contests/{id}/publish
// draft → open: requires at least one payment option, assigns the share slug.
func (h *ContestHandler) Publish(w http.ResponseWriter, r *http.Request) {
	contestID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	status, tctx, err := h.transitionContext(contestID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := engine.CanTransition(status, models.StatusOpen, tctx); err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}

	shareSlug := auth.GenerateShareSlug(contestID, h.cfg.ShareSlugSalt)

	_, err = h.db.Exec(`
		UPDATE contest SET status = $1, share_slug = $2, updated_at = $3 WHERE id = $4
	`, models.StatusOpen, shareSlug, time.Now(), contestID)

	if err != nil {
		slog.Error("failed to publish contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish contest")
		return
	}

	slog.Info("contest published", "contest_id", contestID, "share_slug", shareSlug)

	middleware.JSONResponse(w, http.StatusOK, models.PublishContestResponse{
		ShareSlug: shareSlug,
		ShareURL:  "https://squarepool.app/c/" + shareSlug,
	})
}

// Lock handles POST /contests/{id}/lock (open → locked)
func (h *ContestHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, models.StatusLocked)
}

// Reopen handles POST /contests/{id}/reopen (locked → open)
// Rejected once any score row exists for the contest.
func (h *ContestHandler) Reopen(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, models.StatusOpen)
}

// Start handles POST /contests/{id}/start (locked → in_progress)
// Requires row/column numbers to be assigned; the guard checks the result,
// not how it was produced.
func (h *ContestHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, models.StatusInProgress)
}

// Complete handles POST /contests/{id}/complete (in_progress → completed)
func (h *ContestHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.applyTransition(w, r, models.StatusCompleted)
}

// AssignNumbers handles POST /contests/{id}/numbers
// An empty body generates random permutations; an explicit body must carry
// two valid 0-9 permutations. Rejected once the contest is in progress.
func (h *ContestHandler) AssignNumbers(w http.ResponseWriter, r *http.Request) {
	contestID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.AssignNumbersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var status string
	err := h.db.QueryRow(`SELECT status FROM contest WHERE id = $1`, contestID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status == models.StatusInProgress || status == models.StatusCompleted {
		middleware.ErrorResponse(w, http.StatusConflict, "Numbers are frozen once the contest has started")
		return
	}

	rowNums, colNums := req.RowNumbers, req.ColNumbers
	if rowNums == nil && colNums == nil {
		rowNums = shuffledDigits()
		colNums = shuffledDigits()
	}

	if err := engine.ValidateNumbers(rowNums, colNums); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.db.Exec(`
		UPDATE contest SET row_numbers = $1, col_numbers = $2, updated_at = $3 WHERE id = $4
	`, encodeNumbers(rowNums), encodeNumbers(colNums), time.Now(), contestID)

	if err != nil {
		slog.Error("failed to assign numbers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to assign numbers")
		return
	}

	slog.Info("numbers assigned", "contest_id", contestID)

	middleware.JSONResponse(w, http.StatusOK, models.AssignNumbersResponse{
		RowNumbers: rowNums,
		ColNumbers: colNums,
	})
}

// applyTransition runs the shared flow for the guard-only lifecycle
// endpoints: authorize, gather guard facts, ask the engine, persist. Status
// is never written when the engine rejects the transition.
func (h *ContestHandler) applyTransition(w http.ResponseWriter, r *http.Request, to string) {
	contestID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	status, tctx, err := h.transitionContext(contestID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := engine.CanTransition(status, to, tctx); err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
		return
	}

	_, err = h.db.Exec(`
		UPDATE contest SET status = $1, updated_at = $2 WHERE id = $3
	`, to, time.Now(), contestID)

	if err != nil {
		slog.Error("failed to update status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	slog.Info("contest status changed", "contest_id", contestID, "from", status, "to", to)

	middleware.JSONResponse(w, http.StatusOK, models.TransitionResponse{Status: to})
}

// transitionContext loads the current status plus every fact the lifecycle
// guards can ask about.
func (h *ContestHandler) transitionContext(contestID string) (string, engine.TransitionContext, error) {
	var status string
	var rowNums, colNums *string
	var tctx engine.TransitionContext

	err := h.db.QueryRow(`
		SELECT c.status, c.row_numbers, c.col_numbers,
		       (SELECT COUNT(*) FROM payment_option po WHERE po.contest_id = c.id),
		       (SELECT COUNT(*) FROM score s WHERE s.contest_id = c.id)
		FROM contest c
		WHERE c.id = $1
	`, contestID).Scan(&status, &rowNums, &colNums, &tctx.PaymentOptions, &tctx.Scores)
	if err != nil {
		return "", engine.TransitionContext{}, err
	}

	tctx.NumbersAssigned = rowNums != nil && colNums != nil
	return status, tctx, nil
}

func shuffledDigits() []int {
	nums := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	rand.Shuffle(len(nums), func(i, j int) {
		nums[i], nums[j] = nums[j], nums[i]
	})
	return nums
}

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

	"github.com/google/uuid"

	"github.com/squarepool/api/auth"
	"github.com/squarepool/api/cliparse"
	"github.com/squarepool/api/engine"
	"github.com/squarepool/api/middleware"
	"github.com/squarepool/api/models"
)

type ContestHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewContestHandler(db *sql.DB, cfg cliparse.Config) *ContestHandler {
	return &ContestHandler{db: db, cfg: cfg}
}

// CreateContest handles POST /contests
// Creates the contest and all 100 grid squares in one transaction.
func (h *ContestHandler) CreateContest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.OrganizerName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "organizer_name is required")
		return
	}
	if !strings.Contains(req.OrganizerEmail, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "organizer_email must be a valid email")
		return
	}
	if req.Sport != models.SportFootball && req.Sport != models.SportBaseball {
		middleware.ErrorResponse(w, http.StatusBadRequest, "sport must be football or baseball")
		return
	}
	if req.SquarePrice < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "square_price cannot be negative")
		return
	}
	if req.PrizeType == "" {
		req.PrizeType = models.PrizePercentage
	}
	if req.PrizeType != models.PrizePercentage && req.PrizeType != models.PrizeCustom {
		middleware.ErrorResponse(w, http.StatusBadRequest, "prize_type must be percentage or custom")
		return
	}
	if req.MaxSquaresPerPerson < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "max_squares_per_person cannot be negative")
		return
	}

	contestID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate contest ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contest")
		return
	}

	organizerKey := auth.GenerateOrganizerKey(contestID, h.cfg.OrganizerKeySalt)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(`
		INSERT INTO contest (id, title, organizer_name, organizer_email, sport, status,
		                     square_price, prize_type, max_squares_per_person,
		                     home_team, away_team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, contestID, req.Title, req.OrganizerName, req.OrganizerEmail, req.Sport,
		models.StatusDraft, req.SquarePrice, req.PrizeType, req.MaxSquaresPerPerson,
		req.HomeTeam, req.AwayTeam, now, now)

	if err != nil {
		slog.Error("failed to insert contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contest")
		return
	}

	// Create all 100 squares up front; positions are immutable afterwards
	for row := 0; row < engine.GridSize; row++ {
		for col := 0; col < engine.GridSize; col++ {
			_, err = tx.Exec(`
				INSERT INTO square (id, contest_id, row_index, col_index, payment_status)
				VALUES ($1, $2, $3, $4, $5)
			`, uuid.NewString(), contestID, row, col, models.SquareAvailable)
			if err != nil {
				slog.Error("failed to insert square", "error", err, "row", row, "col", col)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contest")
				return
			}
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contest")
		return
	}

	slog.Info("contest created", "contest_id", contestID, "sport", req.Sport, "organizer", req.OrganizerName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateContestResponse{
		ContestID:    contestID,
		OrganizerKey: organizerKey,
	})
}

// GetContestAdmin handles GET /contests/{id}/admin
// Returns the full contest state including claimant emails.
func (h *ContestHandler) GetContestAdmin(w http.ResponseWriter, r *http.Request) {
	contestID, ok := h.authorize(w, r)
	if !ok {
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

	options, err := getPaymentOptions(h.db, contestID)
	if err != nil {
		slog.Error("failed to query payment options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	players, err := getPlayers(h.db, contestID)
	if err != nil {
		slog.Error("failed to query players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	squares, err := getSquares(h.db, contestID)
	if err != nil {
		slog.Error("failed to query squares", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminContestView{
		Contest:        *contest,
		OrganizerEmail: contest.OrganizerEmail,
		PaymentOptions: options,
		Players:        players,
		Squares:        squares,
	})
}

// UpdatePayouts handles PUT /contests/{id}/payouts
// Replaces the per-segment payout configuration. Percentage contests are
// validated against the sum invariant; custom contests get their percents
// coerced to 0 on save.
func (h *ContestHandler) UpdatePayouts(w http.ResponseWriter, r *http.Request) {
	contestID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.UpdatePayoutsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var sport, status, prizeType string
	err := h.db.QueryRow(`
		SELECT sport, status, prize_type FROM contest WHERE id = $1
	`, contestID).Scan(&sport, &status, &prizeType)

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
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot change payouts once the contest has started")
		return
	}

	payouts := req.Payouts
	if prizeType == models.PrizeCustom {
		// Labels carry the prize; percents are meaningless and stored as 0
		for i := range payouts {
			payouts[i].Percent = 0
		}
	}

	if err := engine.ValidatePayouts(sport, payouts); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM payout WHERE contest_id = $1`, contestID); err != nil {
		slog.Error("failed to clear payouts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save payouts")
		return
	}

	for _, p := range payouts {
		_, err := tx.Exec(`
			INSERT INTO payout (contest_id, segment, percent, custom_label)
			VALUES ($1, $2, $3, $4)
		`, contestID, p.Segment, p.Percent, p.CustomLabel)
		if err != nil {
			slog.Error("failed to insert payout", "error", err, "segment", p.Segment)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save payouts")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save payouts")
		return
	}

	slog.Info("payouts updated", "contest_id", contestID, "segments", len(payouts))

	middleware.JSONResponse(w, http.StatusOK, models.UpdatePayoutsRequest{Payouts: payouts})
}

// UpdatePlayers handles PUT /contests/{id}/players
// Replaces the roster wholesale.
func (h *ContestHandler) UpdatePlayers(w http.ResponseWriter, r *http.Request) {
	contestID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.UpdatePlayersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := engine.ValidatePlayers(req.Players); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM contest WHERE id = $1)`, contestID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM player WHERE contest_id = $1`, contestID); err != nil {
		slog.Error("failed to clear players", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save players")
		return
	}

	for _, p := range req.Players {
		_, err := tx.Exec(`
			INSERT INTO player (contest_id, slug, name, jersey_number)
			VALUES ($1, $2, $3, $4)
		`, contestID, strings.ToLower(strings.TrimSpace(p.Slug)), p.Name, p.JerseyNumber)
		if err != nil {
			slog.Error("failed to insert player", "error", err, "slug", p.Slug)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save players")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save players")
		return
	}

	slog.Info("players updated", "contest_id", contestID, "count", len(req.Players))

	middleware.JSONResponse(w, http.StatusOK, req)
}

// AddPaymentOption handles POST /contests/{id}/payment-options
func (h *ContestHandler) AddPaymentOption(w http.ResponseWriter, r *http.Request) {
	contestID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.AddPaymentOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if !validPaymentMethod(req.Method) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "method must be one of: venmo, paypal, cashapp, zelle, other")
		return
	}
	if req.Handle == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "handle is required")
		return
	}

	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM contest WHERE id = $1)`, contestID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query contest", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contest not found")
		return
	}

	optionID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate option ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add payment option")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO payment_option (id, contest_id, method, handle, instructions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, optionID, contestID, req.Method, req.Handle, req.Instructions, time.Now())

	if err != nil {
		slog.Error("failed to insert payment option", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add payment option")
		return
	}

	slog.Info("payment option added", "contest_id", contestID, "method", req.Method)

	middleware.JSONResponse(w, http.StatusCreated, models.AddPaymentOptionResponse{
		PaymentOptionID: optionID,
	})
}

// authorize validates the X-Organizer-Key header against the path's contest
// ID. Failures are uniform 401s, so callers cannot probe which contests
// exist.
func (h *ContestHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	contestID := r.PathValue("id")
	if contestID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contest_id is required")
		return "", false
	}

	key := r.Header.Get("X-Organizer-Key")
	if err := auth.ValidateOrganizerKey(contestID, key, h.cfg.OrganizerKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid organizer key")
		return "", false
	}
	return contestID, true
}

func validPaymentMethod(method string) bool {
	for _, m := range models.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Shared row readers

func getContestByID(db *sql.DB, contestID string) (*models.Contest, error) {
	return scanContest(db.QueryRow(`
		SELECT id, title, organizer_name, organizer_email, sport, status,
		       square_price, prize_type, max_squares_per_person,
		       row_numbers, col_numbers, home_team, away_team, share_slug,
		       created_at, updated_at
		FROM contest
		WHERE id = $1
	`, contestID))
}

func getContestBySlug(db *sql.DB, slug string) (*models.Contest, error) {
	return scanContest(db.QueryRow(`
		SELECT id, title, organizer_name, organizer_email, sport, status,
		       square_price, prize_type, max_squares_per_person,
		       row_numbers, col_numbers, home_team, away_team, share_slug,
		       created_at, updated_at
		FROM contest
		WHERE share_slug = $1
	`, slug))
}

func scanContest(row *sql.Row) (*models.Contest, error) {
	var c models.Contest
	var rowNums, colNums *string
	err := row.Scan(
		&c.ID, &c.Title, &c.OrganizerName, &c.OrganizerEmail, &c.Sport, &c.Status,
		&c.SquarePrice, &c.PrizeType, &c.MaxSquaresPerPerson,
		&rowNums, &colNums, &c.HomeTeam, &c.AwayTeam, &c.ShareSlug,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.RowNumbers = decodeNumbers(rowNums)
	c.ColNumbers = decodeNumbers(colNums)
	return &c, nil
}

func getPaymentOptions(db *sql.DB, contestID string) ([]models.PaymentOption, error) {
	rows, err := db.Query(`
		SELECT id, contest_id, method, handle, instructions, created_at
		FROM payment_option
		WHERE contest_id = $1
		ORDER BY created_at
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []models.PaymentOption{}
	for rows.Next() {
		var opt models.PaymentOption
		if err := rows.Scan(&opt.ID, &opt.ContestID, &opt.Method, &opt.Handle, &opt.Instructions, &opt.CreatedAt); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func getPlayers(db *sql.DB, contestID string) ([]models.PlayerEntry, error) {
	rows, err := db.Query(`
		SELECT slug, name, jersey_number
		FROM player
		WHERE contest_id = $1
		ORDER BY slug
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.PlayerEntry{}
	for rows.Next() {
		var p models.PlayerEntry
		if err := rows.Scan(&p.Slug, &p.Name, &p.JerseyNumber); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func getSquares(db *sql.DB, contestID string) ([]models.Square, error) {
	rows, err := db.Query(`
		SELECT id, contest_id, row_index, col_index, payment_status,
		       claimant_name, claimant_email, claimed_at, paid_at
		FROM square
		WHERE contest_id = $1
		ORDER BY row_index, col_index
	`, contestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	squares := []models.Square{}
	for rows.Next() {
		var s models.Square
		if err := rows.Scan(&s.ID, &s.ContestID, &s.Row, &s.Col, &s.PaymentStatus,
			&s.ClaimantName, &s.ClaimantEmail, &s.ClaimedAt, &s.PaidAt); err != nil {
			return nil, err
		}
		squares = append(squares, s)
	}
	return squares, rows.Err()
}

// Number encoding: digits stored comma-joined ("7,2,9,0,4,1,6,3,8,5").
// Both columns are null until assignment.

func encodeNumbers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func decodeNumbers(s *string) []int {
	if s == nil || *s == "" {
		return nil
	}
	parts := strings.Split(*s, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}
	return nums
}

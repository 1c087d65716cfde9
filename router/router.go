// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/squarepool/api/cliparse"
	"github.com/squarepool/api/handlers"
	"github.com/squarepool/api/middleware"
	"github.com/squarepool/api/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, notifier notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(db, cfg)
	claimHandler := handlers.NewClaimHandler(db, cfg)
	scoreHandler := handlers.NewScoreHandler(db, cfg, notifier)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contest management (organizer operations)
	mux.HandleFunc("POST /contests", middleware.WithLogging(contestHandler.CreateContest))
	mux.HandleFunc("GET /contests/{id}/admin", middleware.WithLogging(contestHandler.GetContestAdmin))
	mux.HandleFunc("PUT /contests/{id}/payouts", middleware.WithLogging(contestHandler.UpdatePayouts))
	mux.HandleFunc("PUT /contests/{id}/players", middleware.WithLogging(contestHandler.UpdatePlayers))
	mux.HandleFunc("POST /contests/{id}/payment-options", middleware.WithLogging(contestHandler.AddPaymentOption))

	// Lifecycle transitions (organizer operations)
	mux.HandleFunc("POST /contests/{id}/publish", middleware.WithLogging(contestHandler.Publish))
	mux.HandleFunc("POST /contests/{id}/lock", middleware.WithLogging(contestHandler.Lock))
	mux.HandleFunc("POST /contests/{id}/reopen", middleware.WithLogging(contestHandler.Reopen))
	mux.HandleFunc("POST /contests/{id}/numbers", middleware.WithLogging(contestHandler.AssignNumbers))
	mux.HandleFunc("POST /contests/{id}/start", middleware.WithLogging(contestHandler.Start))
	mux.HandleFunc("POST /contests/{id}/complete", middleware.WithLogging(contestHandler.Complete))

	// Scores and square management (organizer operations)
	mux.HandleFunc("POST /contests/{id}/scores", middleware.WithLogging(scoreHandler.SaveScores))
	mux.HandleFunc("POST /contests/{id}/squares/{row}/{col}/paid", middleware.WithLogging(claimHandler.MarkPaid))
	mux.HandleFunc("POST /contests/{id}/squares/{row}/{col}/release", middleware.WithLogging(claimHandler.ReleaseSquare))

	// Public operations (share slug)
	mux.HandleFunc("GET /contests/{slug}", middleware.WithLogging(resultsHandler.GetContest))
	mux.HandleFunc("GET /contests/{slug}/grid", middleware.WithLogging(resultsHandler.GetGrid))
	mux.HandleFunc("POST /contests/{slug}/claim", middleware.WithLogging(claimHandler.ClaimSquare))
	mux.HandleFunc("GET /contests/{slug}/winners", middleware.WithLogging(resultsHandler.GetWinners))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("squarepool API v1"))
	})

	return mux
}

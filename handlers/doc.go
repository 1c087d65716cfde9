// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Squarepool API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ContestHandler: contest creation, configuration, and lifecycle
  - ClaimHandler: public square claims plus organizer paid/release actions
  - ScoreHandler: score entry with winner resolution and notification
  - ResultsHandler: public contest, grid, and winners views

Handlers are created via constructor functions that accept *sql.DB and
Config; ScoreHandler additionally takes a notify.Notifier.

# Contest Lifecycle

Contests progress draft → open → locked → in_progress → completed, with a
locked → open reopen path while no scores exist:

	POST /contests                  → CreateContest (returns organizer_key)
	POST /contests/{id}/publish     → Publish (needs a payment option; makes the share slug)
	POST /contests/{id}/lock        → Lock
	POST /contests/{id}/reopen      → Reopen (no scores yet)
	POST /contests/{id}/numbers     → AssignNumbers (explicit or random)
	POST /contests/{id}/start       → Start (needs numbers)
	POST /contests/{id}/complete    → Complete

The transition guards live in the engine package; handlers only gather the
facts and persist approved transitions. Organizer operations require the
X-Organizer-Key header, validated statelessly so an invalid key gets the
same 401 whether or not the contest exists.

# Claim Flow

Participants interact via the share slug:

	GET  /contests/{slug}        → public contest view
	GET  /contests/{slug}/grid   → the 100 squares, names only
	POST /contests/{slug}/claim  → claim an available square

Claims are written with an update-if-still-available condition, so two
racing claimants get exactly one success; the loser receives a specific
"already claimed" 409 rather than a generic failure. The per-person limit
counts existing non-available squares by email, case-insensitively.

# Scores and Winners

	POST /contests/{id}/scores     → SaveScores (upsert + winner resolution)
	GET  /contests/{slug}/winners  → GetWinners

Each save recomputes the winning square for every submitted segment via
engine.ResolveWinner and overwrites the stored winning_square_id. When a
segment's resolved winner changes and the square has a claimant, one
notify.Winner event is emitted.
*/
package handlers

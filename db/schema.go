// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Contests
CREATE TABLE IF NOT EXISTS contest (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    organizer_name TEXT NOT NULL,
    organizer_email TEXT NOT NULL,
    sport TEXT NOT NULL CHECK (sport IN ('football', 'baseball')),
    status TEXT NOT NULL DEFAULT 'draft'
        CHECK (status IN ('draft', 'open', 'locked', 'in_progress', 'completed')),
    square_price REAL NOT NULL CHECK (square_price >= 0),
    prize_type TEXT NOT NULL DEFAULT 'percentage' CHECK (prize_type IN ('percentage', 'custom')),
    max_squares_per_person INTEGER NOT NULL DEFAULT 0,
    row_numbers TEXT,
    col_numbers TEXT,
    home_team TEXT NOT NULL DEFAULT '',
    away_team TEXT NOT NULL DEFAULT '',
    share_slug TEXT UNIQUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_contest_share_slug ON contest(share_slug);
CREATE INDEX IF NOT EXISTS idx_contest_status ON contest(status);

-- Per-segment payout configuration
CREATE TABLE IF NOT EXISTS payout (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    segment TEXT NOT NULL,
    percent REAL NOT NULL DEFAULT 0 CHECK (percent >= 0 AND percent <= 100),
    custom_label TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (contest_id, segment)
);

-- Squares: all 100 cells created with the contest
CREATE TABLE IF NOT EXISTS square (
    id TEXT NOT NULL UNIQUE,
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    row_index INTEGER NOT NULL CHECK (row_index >= 0 AND row_index <= 9),
    col_index INTEGER NOT NULL CHECK (col_index >= 0 AND col_index <= 9),
    payment_status TEXT NOT NULL DEFAULT 'available'
        CHECK (payment_status IN ('available', 'pending', 'paid')),
    claimant_name TEXT,
    claimant_email TEXT,
    claimed_at TIMESTAMP,
    paid_at TIMESTAMP,
    PRIMARY KEY (contest_id, row_index, col_index)
);

CREATE INDEX IF NOT EXISTS idx_square_contest ON square(contest_id);
CREATE INDEX IF NOT EXISTS idx_square_claimant ON square(contest_id, claimant_email);

-- Scores: one row per scoring segment, upserted on entry
CREATE TABLE IF NOT EXISTS score (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    segment TEXT NOT NULL,
    home_score INTEGER NOT NULL CHECK (home_score >= 0),
    away_score INTEGER NOT NULL CHECK (away_score >= 0),
    winning_square_id TEXT,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (contest_id, segment)
);

-- Out-of-band payment options
CREATE TABLE IF NOT EXISTS payment_option (
    id TEXT PRIMARY KEY,
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    method TEXT NOT NULL CHECK (method IN ('venmo', 'paypal', 'cashapp', 'zelle', 'other')),
    handle TEXT NOT NULL,
    instructions TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_payment_option_contest ON payment_option(contest_id);

-- Roster shown along the grid axes
CREATE TABLE IF NOT EXISTS player (
    contest_id TEXT NOT NULL REFERENCES contest(id) ON DELETE CASCADE,
    slug TEXT NOT NULL,
    name TEXT NOT NULL,
    jersey_number INTEGER,
    PRIMARY KEY (contest_id, slug)
);
`

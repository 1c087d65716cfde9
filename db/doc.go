// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns schema creation for the Squarepool API.

CreateSchema runs an idempotent DDL script (IF NOT EXISTS everywhere) at
startup. The schema sticks to types and defaults that both PostgreSQL and
SQLite accept, since either driver can back the server.

Tables:

  - contest: fundraiser configuration and lifecycle status
  - payout: per-segment percent or custom prize label
  - square: the 100 grid cells, keyed (contest_id, row_index, col_index)
  - score: one row per scoring segment, upserted on entry
  - payment_option: organizer's out-of-band payment instructions
  - player: optional roster shown along the grid
*/
package db

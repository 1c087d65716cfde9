// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Squarepool API server.

Squarepool runs "squares" game-day fundraisers: a 10×10 grid contest tied
to a football or baseball game, where participants claim squares, pay the
organizer out of band, and winners fall out of the live score's last
digits matched against randomly assigned row/column numbers.

# Starting the Server

The server reads environment variables (a .env file is honored) or CLI
flags:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 4180 -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL (or SQLite, with -t sqlite) connection string
  - ORGANIZER_KEY_SALT (-organizer-salt): Secret for organizer key HMAC
  - SHARE_SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 4180)
  - DATABASE_TYPE (-t): postgres (default) or sqlite

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: pure domain rules (lifecycle, winner resolution, payouts)
  - handlers: HTTP request handlers (contests, claims, scores, results)
  - router: Route definitions using Go 1.22+ routing
  - notify: winner notification boundary
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Key generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

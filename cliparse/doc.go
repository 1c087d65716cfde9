// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles server configuration from CLI flags and
environment variables.

Flags take precedence; environment variables fill in anything not passed
on the command line:

  - -p / PORT: server port (default 4180)
  - -d / DATABASE_URL: database connection string (required)
  - -t / DATABASE_TYPE: postgres (default) or sqlite
  - -organizer-salt / ORGANIZER_KEY_SALT: organizer key HMAC salt (required)
  - -slug-salt / SHARE_SLUG_SALT: share slug HMAC salt (required)

Secrets should come from the environment in production; the flags exist
for local development.
*/
package cliparse

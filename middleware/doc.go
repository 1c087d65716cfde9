// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP plumbing shared by all handlers.

# Logging

WithLogging wraps a handler func and emits slog entries at request start
and completion with method, path, and duration.

# JSON Helpers

JSONResponse and ErrorResponse write JSON bodies with the right headers;
ErrorResponse uses the models.ErrorResponse shape. ParseJSONBody decodes
a request body into a target struct.

# CORS

CORS handles cross-origin headers and OPTIONS preflight for browser
clients.

# Client IP

GetClientIP resolves the caller's address through X-Forwarded-For and
X-Real-IP before falling back to RemoteAddr. Claims log only a salted
hash of it (see auth.HashIP).
*/
package middleware

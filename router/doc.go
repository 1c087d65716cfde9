// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires URL patterns to handlers using Go 1.22+ method
routing.

Organizer routes address contests by ID and require the X-Organizer-Key
header; public routes address them by share slug. Every route is wrapped
in the logging middleware.

	mux := router.NewRouter(db, cfg, notify.LogNotifier{})
*/
package router

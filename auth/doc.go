// Copyright (c) 2026 Squarepool.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and validation for the Squarepool
API.

# Organizer Keys

Organizer keys are HMAC-SHA256 over the contest ID with a server-side
salt, so they can be validated statelessly:

	key := auth.GenerateOrganizerKey(contestID, salt)
	err := auth.ValidateOrganizerKey(contestID, key, salt)

Validation happens before any database lookup, which means an invalid key
is rejected identically whether or not the contest exists.

# Share Slugs

Public contest URLs use short base62 slugs derived from the contest ID:

	slug := auth.GenerateShareSlug(contestID, salt)

# IDs and IP Hashing

GenerateID produces random hex identifiers from crypto/rand. HashIP
produces a salted, truncated hash used in claim logging instead of raw
addresses.
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and privacy helpers.

# Sessions

Each page load gets a fresh random session ID (a v4 UUID) stored in the
insights_session cookie:

	id := auth.NewSessionID()
	auth.SetSessionCookie(w, id, cfg.SessionTTL)

	id, err := auth.SessionID(r) // ErrNoSession if missing or malformed

The cookie is HttpOnly and SameSite=Lax. It carries no data besides the ID;
all session state lives in memory on the server.

# IP Hashing

Client IPs of question submissions are stored as a salted one-way hash:

	ipHash := auth.HashIP(clientIP, cfg.IPHashSalt)

Returns 16 hex characters (64 bits), enough to spot repeat submitters without
storing the address.
*/
package auth

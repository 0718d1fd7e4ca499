// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the optional submission log database and creates its schema.

# Drivers

Two drivers are registered:

  - sqlite (modernc.org/sqlite, pure Go, the default)
  - postgres (github.com/lib/pq)

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Tables

question_submission: questions posted from the home page form

	id          TEXT PRIMARY KEY (uuid)
	question    TEXT NOT NULL
	name, email TEXT (optional, '' when missing)
	ip_hash     TEXT (salted hash, NULL without a salt)
	user_agent  TEXT
	forwarded   BOOLEAN (true once the third-party endpoint was reached)
	created_at  TIMESTAMP

The survey dataset itself is never stored; it is fetched fresh for every
page session.

# Usage

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

CreateSchema is idempotent (IF NOT EXISTS).
*/
package db

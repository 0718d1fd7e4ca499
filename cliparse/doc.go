// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p                 Server port (default 3318)
	-sheet             Published spreadsheet ID
	-sheet-url         Full CSV export URL (overrides -sheet)
	-fetch-timeout     Upstream request timeout (default 10s)
	-submit-url        Question submission endpoint
	-d                 Database URL for the submission log
	-t                 Database type: sqlite (default) or postgres
	-ip-salt           Salt for hashing submitter IPs
	-insight-question  Question summarized on the home page (default Q1)
	-insight-interval  Trending insight rotation (default 7s)
	-session-ttl       Idle page session lifetime (default 30m)
	-max-sessions      Live page sessions kept before evicting the least recently used (default 1000)

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	SHEET_ID         → -sheet
	SHEET_URL        → -sheet-url
	FETCH_TIMEOUT    → -fetch-timeout
	SUBMIT_URL       → -submit-url
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	IP_HASH_SALT     → -ip-salt
	INSIGHT_QUESTION → -insight-question
	INSIGHT_INTERVAL → -insight-interval
	SESSION_TTL      → -session-ttl
	MAX_SESSIONS     → -max-sessions

CLI flags take precedence over environment variables. main loads a .env file
into the environment before parsing, if one exists.

# Validation

Nothing is required. ParseFlags returns an error for malformed numbers or
durations and for a database type other than sqlite or postgres. With no
SUBMIT_URL the question form is disabled; with no DATABASE_URL submissions
are not logged.
*/
package cliparse

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey insights server.

The site reads a published survey spreadsheet, lets visitors slice the
answers by location, gender, marital status and age, and compares how two
groups answered each question. Visitors can also send in questions of their
own.

# Starting the Server

Every setting has a default, so the server runs with no configuration:

	go run .

Or with flags:

	go run . -p 8080 -sheet <spreadsheet id> -submit-url https://script.example/exec

A .env file in the working directory is loaded first if present.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - SHEET_ID (-sheet) or SHEET_URL (-sheet-url): Survey source
  - SUBMIT_URL (-submit-url): Question form endpoint; form disabled when unset
  - DATABASE_URL (-d), DATABASE_TYPE (-t): Question log (sqlite or postgres)
  - IP_HASH_SALT (-ip-salt): Salt for hashed submitter IPs
  - INSIGHT_QUESTION, INSIGHT_INTERVAL, SESSION_TTL, FETCH_TIMEOUT

# Architecture

  - sheet: Fetches the spreadsheet CSV export
  - survey: Parsing, filtering, counting and insight generation
  - render: Card grid, mirrored charts, insight rotation and HTML templates
  - session: Per-page state keyed by cookie
  - submit: Question forwarding and the optional log
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, JSON and CSV helpers
  - models: JSON request/response types
  - auth: Session cookies and IP hashing
  - db: Database connection and schema
  - cliparse: Configuration parsing

The HTTP server and the idle session sweeper run in one errgroup and stop
together on SIGINT or SIGTERM.

See package documentation for each component.
*/
package main

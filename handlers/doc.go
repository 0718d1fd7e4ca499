// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey insights site.

# Handler Types

Each handler is a struct holding its dependencies:

  - SheetHandler: CSV proxy for the published spreadsheet
  - HomeHandler: Landing page with the trending insight panel
  - InsightsHandler: Filterable card grid backed by a page session
  - QuestionsHandler: Visitor question submission

Handlers are created via constructor functions:

	sheetHandler := handlers.NewSheetHandler(source)
	insightsHandler := handlers.NewInsightsHandler(sessions, renderer)

# Sheet Proxy

	GET /api/get-sheet-data → GetSheetData

Every request fetches the sheet once and relays it as text/csv with caching
disabled. An upstream non-2xx status is mirrored with a JSON error body; a
network failure answers 500.

# Page Sessions

Loading a page creates a session and sets its cookie. Interactions are plain
form posts that change the session and redirect back to the view:

	GET  /insights                   → Page (fetch, new session)
	GET  /insights/view              → View (re-render, no fetch)
	POST /insights/filters           → SetFilter (facet, value)
	POST /insights/cards/toggle → ToggleCard
	POST /insights/mode              → SetMode (split or common)
	GET  /insights/trending          → Trending (JSON, 204 if none)
	DELETE /insights/session         → EndSession

A missing or expired session redirects to /insights, which starts over.

# Stateless Summary

	GET /api/summary?location=&gender=&marital_status=&age_group=

Fetches, filters and returns the grid as JSON without creating a session.

# Questions

	POST /questions → Submit

Accepts the home page form or a JSON body. The question is forwarded once to
the configured endpoint and, if a database is configured, logged with a
hashed client IP.
*/
package handlers

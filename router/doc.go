// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey insights site.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Services{...}, cfg)

# Endpoints

Health:

	GET /health

Data (stateless):

	GET /api/get-sheet-data      - Sheet CSV proxy
	GET /api/get-sheet-data.php  - Same, legacy path
	GET /api/summary             - Filtered grid as JSON

Pages:

	GET /          - Home with trending insights and question form
	GET /insights  - Insights grid (starts a page session)

Page session (cookie):

	GET    /insights/view              - Re-render current state
	POST   /insights/filters           - Change one facet
	POST   /insights/cards/toggle - Expand or collapse a card
	POST   /insights/mode              - Split or common ground charts
	GET    /insights/trending          - Current trending insight
	DELETE /insights/session           - End the session

Questions:

	POST /questions - Submit a visitor question

Any other GET renders the 404 page.

# Handler Initialization

The router creates handler instances from the shared services:

	sheetHandler := handlers.NewSheetHandler(svc.Source)
	insightsHandler := handlers.NewInsightsHandler(svc.Sessions, svc.Renderer)
	questionsHandler := handlers.NewQuestionsHandler(svc.Forwarder, svc.Store, svc.Sessions, svc.Renderer, cfg)

Every route except the health check is wrapped in request logging.
*/
package router

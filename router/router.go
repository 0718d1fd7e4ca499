// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/survey-insights/cliparse"
	"github.com/danielhkuo/survey-insights/handlers"
	"github.com/danielhkuo/survey-insights/middleware"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/session"
	"github.com/danielhkuo/survey-insights/sheet"
	"github.com/danielhkuo/survey-insights/submit"
)

// Services are the long-lived dependencies shared by the handlers. Store and
// Forwarder may be nil.
type Services struct {
	Source    sheet.Source
	Sessions  *session.Manager
	Renderer  *render.Renderer
	Forwarder *submit.Forwarder
	Store     *submit.Store
}

func NewRouter(svc Services, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sheetHandler := handlers.NewSheetHandler(svc.Source)
	homeHandler := handlers.NewHomeHandler(svc.Sessions, svc.Renderer)
	insightsHandler := handlers.NewInsightsHandler(svc.Sessions, svc.Renderer)
	questionsHandler := handlers.NewQuestionsHandler(svc.Forwarder, svc.Store, svc.Sessions, svc.Renderer, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sheet proxy; the .php path is kept for pages that still use it
	mux.HandleFunc("GET /api/get-sheet-data", middleware.WithLogging(sheetHandler.GetSheetData))
	mux.HandleFunc("GET /api/get-sheet-data.php", middleware.WithLogging(sheetHandler.GetSheetData))
	mux.HandleFunc("GET /api/summary", middleware.WithLogging(insightsHandler.Summary))

	// Pages
	mux.HandleFunc("GET /{$}", middleware.WithLogging(homeHandler.Home))
	mux.HandleFunc("GET /insights", middleware.WithLogging(insightsHandler.Page))

	// Page session interactions
	mux.HandleFunc("GET /insights/view", middleware.WithLogging(insightsHandler.View))
	mux.HandleFunc("POST /insights/filters", middleware.WithLogging(insightsHandler.SetFilter))
	mux.HandleFunc("POST /insights/cards/toggle", middleware.WithLogging(insightsHandler.ToggleCard))
	mux.HandleFunc("POST /insights/mode", middleware.WithLogging(insightsHandler.SetMode))
	mux.HandleFunc("GET /insights/trending", middleware.WithLogging(insightsHandler.Trending))
	mux.HandleFunc("DELETE /insights/session", middleware.WithLogging(insightsHandler.EndSession))

	// Questions
	mux.HandleFunc("POST /questions", middleware.WithLogging(questionsHandler.Submit))

	// Everything else
	mux.HandleFunc("GET /", middleware.WithLogging(homeHandler.NotFound))

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-insights/auth"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/session"
)

type HomeHandler struct {
	sessions *session.Manager
	renderer *render.Renderer
}

func NewHomeHandler(sessions *session.Manager, renderer *render.Renderer) *HomeHandler {
	return &HomeHandler{sessions: sessions, renderer: renderer}
}

// Home handles GET /
// Loads a fresh session whose insights rotate in the trending panel. A failed
// fetch only blanks the panel; the question form still works.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	page := render.HomePage{
		Interval: h.sessions.Interval(),
		Fade:     render.FadeDuration,
	}

	oldID, _ := auth.SessionID(r)
	s, err := h.sessions.Replace(r.Context(), oldID, r.URL.Query())
	if err != nil {
		slog.Error("failed to load trending insights", "error", err)
		auth.ClearSessionCookie(w)
		page.LoadError = render.LoadErrorMessage
	} else {
		auth.SetSessionCookie(w, s.ID, h.sessions.TTL())
		page.Insights = s.Insights()
		if insight, _, _, ok := s.Trending(); ok {
			page.Trending = &insight
		}
	}

	if err := h.renderer.Page(w, http.StatusOK, render.PageHome, page); err != nil {
		slog.Error("failed to render page", "page", render.PageHome, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// NotFound renders the error page for unknown paths
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Page(w, http.StatusNotFound, render.PageError, render.ErrorPage{Message: "Page not found."}); err != nil {
		slog.Error("failed to render page", "page", render.PageError, "error", err)
		http.NotFound(w, r)
	}
}

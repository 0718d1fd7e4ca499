// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-insights/auth"
	"github.com/danielhkuo/survey-insights/middleware"
	"github.com/danielhkuo/survey-insights/models"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/session"
	"github.com/danielhkuo/survey-insights/survey"
)

const insightsViewPath = "/insights/view"

type InsightsHandler struct {
	sessions *session.Manager
	renderer *render.Renderer
}

func NewInsightsHandler(sessions *session.Manager, renderer *render.Renderer) *InsightsHandler {
	return &InsightsHandler{sessions: sessions, renderer: renderer}
}

// Page handles GET /insights
// Each load fetches the sheet again and replaces the visitor's session.
func (h *InsightsHandler) Page(w http.ResponseWriter, r *http.Request) {
	oldID, _ := auth.SessionID(r)

	s, err := h.sessions.Replace(r.Context(), oldID, r.URL.Query())
	if err != nil {
		slog.Error("failed to load insights", "error", err)
		auth.ClearSessionCookie(w)
		h.page(w, http.StatusBadGateway, render.PageInsights, render.InsightsPage{LoadError: render.LoadErrorMessage})
		return
	}

	auth.SetSessionCookie(w, s.ID, h.sessions.TTL())
	h.page(w, http.StatusOK, render.PageInsights, s.View())
}

// View handles GET /insights/view
// Re-renders the current session without fetching. ?fragment=grid or
// ?fragment=filters returns just that block.
func (h *InsightsHandler) View(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}

	view := s.View()
	name := r.URL.Query().Get("fragment")
	if name == "" {
		h.page(w, http.StatusOK, render.PageInsights, view)
		return
	}

	var data any
	switch name {
	case "grid":
		data = view.Grid
	case "filters":
		data = view
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Fragment(&buf, name, data); err != nil {
		slog.Error("failed to render fragment", "fragment", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// SetFilter handles POST /insights/filters
func (h *InsightsHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}

	facet := r.FormValue("facet")
	if facet == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "facet is required")
		return
	}

	if err := s.SetFilter(facet, r.FormValue("value")); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, insightsViewPath, http.StatusSeeOther)
}

// ToggleCard handles POST /insights/cards/toggle
// The question ID is a form field: IDs are free text from the sheet and may be
// empty or contain slashes.
func (h *InsightsHandler) ToggleCard(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
		return
	}
	ids, present := r.PostForm["id"]
	if !present {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	if _, err := s.Toggle(ids[0]); err != nil {
		if errors.Is(err, render.ErrUnknownCard) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
			return
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to toggle card")
		return
	}

	http.Redirect(w, r, insightsViewPath, http.StatusSeeOther)
}

// SetMode handles POST /insights/mode
func (h *InsightsHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	s, ok := h.current(w, r)
	if !ok {
		return
	}

	if err := s.SetMode(r.FormValue("mode")); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	http.Redirect(w, r, insightsViewPath, http.StatusSeeOther)
}

// Trending handles GET /insights/trending
// Polled by the home page; answers 204 when there is nothing to show.
func (h *InsightsHandler) Trending(w http.ResponseWriter, r *http.Request) {
	middleware.NoCache(w)

	id, err := auth.SessionID(r)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s, err := h.sessions.Get(id)
	if err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	insight, index, total, ok := s.Trending()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TrendingResponse{
		Headline:     insight.Headline,
		QuestionText: insight.QuestionText,
		Stat:         insight.Stat,
		Caption:      insight.Caption,
		Index:        index,
		Total:        total,
	})
}

// EndSession handles DELETE /insights/session
func (h *InsightsHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if id, err := auth.SessionID(r); err == nil {
		if h.sessions.Close(id) {
			slog.Info("session closed", "session", id)
		}
	}
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/summary
// Stateless: fetches, filters by the query and returns the grid as JSON.
func (h *InsightsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ds, err := h.sessions.Load(r.Context())
	if err != nil {
		slog.Error("failed to load summary", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, render.LoadErrorMessage)
		return
	}

	fs, err := survey.FilterFromQuery(r.URL.Query(), ds)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := survey.Apply(ds, fs)
	grid := render.BuildGrid(rows)

	resp := models.SummaryResponse{
		Filters: make(map[string]string, len(survey.Facets)),
		Rows:    len(rows),
		Cards:   make([]models.CardSummary, 0, len(grid.Cards)),
		Empty:   grid.Empty,
		Message: grid.Message,
	}
	for _, f := range survey.Facets {
		resp.Filters[string(f)] = fs.Get(f)
	}

	for i, g := range survey.GroupByQuestion(rows) {
		counts := survey.CountResponses(g.Rows)
		card := models.CardSummary{
			QuestionID:   g.ID,
			QuestionText: g.Text(),
			TopResponse:  grid.Cards[i].TopResponse,
			Responses:    len(g.Rows),
			Counts:       make([]models.ResponseCount, 0, counts.Len()),
		}
		for _, rc := range counts.Ranked() {
			card.Counts = append(card.Counts, models.ResponseCount{
				Response: rc.Response,
				Count:    rc.Count,
				Percent:  survey.RoundPercent(survey.Percent(rc.Count, len(g.Rows))),
			})
		}
		resp.Cards = append(resp.Cards, card)
	}

	middleware.NoCache(w)
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// current resolves the session from the cookie, redirecting to a fresh page
// load when it is missing or expired
func (h *InsightsHandler) current(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := auth.SessionID(r)
	if err == nil {
		s, err := h.sessions.Get(id)
		if err == nil {
			return s, true
		}
	}
	http.Redirect(w, r, "/insights", http.StatusSeeOther)
	return nil, false
}

func (h *InsightsHandler) page(w http.ResponseWriter, status int, name string, data any) {
	if err := h.renderer.Page(w, status, name, data); err != nil {
		slog.Error("failed to render page", "page", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

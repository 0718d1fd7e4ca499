// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/danielhkuo/survey-insights/auth"
	"github.com/danielhkuo/survey-insights/cliparse"
	"github.com/danielhkuo/survey-insights/middleware"
	"github.com/danielhkuo/survey-insights/models"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/session"
	"github.com/danielhkuo/survey-insights/submit"
)

// Alerts shown above the question form.
const (
	AlertEmptyQuestion = "Please enter a question before submitting."
	AlertTooLong       = "That question is too long."
	AlertNotConfigured = "Question submission is currently unavailable."
	AlertSubmitFailed  = "Something went wrong sending your question. Please try again."
)

const thanksMessage = "Thanks! Your question was received."

type QuestionsHandler struct {
	forwarder *submit.Forwarder
	store     *submit.Store
	sessions  *session.Manager
	renderer  *render.Renderer
	cfg       cliparse.Config
}

// NewQuestionsHandler wires question submission. store may be nil when no
// database is configured.
func NewQuestionsHandler(forwarder *submit.Forwarder, store *submit.Store, sessions *session.Manager, renderer *render.Renderer, cfg cliparse.Config) *QuestionsHandler {
	return &QuestionsHandler{
		forwarder: forwarder,
		store:     store,
		sessions:  sessions,
		renderer:  renderer,
		cfg:       cfg,
	}
}

// Submit handles POST /questions
// Accepts the home page form or a JSON body. The question is forwarded once;
// the third-party reply is never inspected.
func (h *QuestionsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	asJSON := isJSON(r)

	var sub submit.Submission
	if asJSON {
		var req models.SubmitQuestionRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		sub = submit.Submission{Question: req.Question, Name: req.Name, Email: req.Email}
	} else {
		sub = submit.Submission{
			Question: r.FormValue("question"),
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
		}
	}

	sub, err := sub.Normalize()
	if err != nil {
		h.fail(w, r, asJSON, http.StatusBadRequest, alertFor(err), sub)
		return
	}

	err = h.forwarder.Submit(r.Context(), sub)
	if errors.Is(err, submit.ErrNotConfigured) {
		h.fail(w, r, asJSON, http.StatusServiceUnavailable, AlertNotConfigured, sub)
		return
	}
	forwarded := err == nil
	if err != nil {
		slog.Error("failed to forward question", "error", err)
	}

	id := h.record(r, sub, forwarded)

	if !forwarded {
		h.fail(w, r, asJSON, http.StatusBadGateway, AlertSubmitFailed, sub)
		return
	}

	slog.Info("question submitted", "id", id, "length", len(sub.Question))

	if asJSON {
		middleware.JSONResponse(w, http.StatusCreated, models.SubmitQuestionResponse{
			ID:        id,
			Forwarded: true,
			Message:   thanksMessage,
		})
		return
	}
	if err := h.renderer.Page(w, http.StatusOK, render.PageThanks, render.ThanksPage{Question: sub.Question}); err != nil {
		slog.Error("failed to render page", "page", render.PageThanks, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

// record logs the submission when a store is configured and returns its ID
func (h *QuestionsHandler) record(r *http.Request, sub submit.Submission, forwarded bool) string {
	if h.store == nil {
		return ""
	}

	rec := submit.Record{
		Question:  sub.Question,
		Name:      sub.Name,
		Email:     sub.Email,
		Forwarded: forwarded,
	}
	if ip := middleware.GetClientIP(r); ip != "" && h.cfg.IPHashSalt != "" {
		hash := auth.HashIP(ip, h.cfg.IPHashSalt)
		rec.IPHash = &hash
	}
	if ua := r.UserAgent(); ua != "" {
		rec.UserAgent = &ua
	}

	saved, err := h.store.Save(r.Context(), rec)
	if err != nil {
		slog.Error("failed to record question", "error", err)
		return ""
	}
	return saved.ID
}

// fail re-renders the form with an alert, keeping what the visitor typed
func (h *QuestionsHandler) fail(w http.ResponseWriter, r *http.Request, asJSON bool, status int, alert string, sub submit.Submission) {
	if asJSON {
		middleware.ErrorResponse(w, status, alert)
		return
	}

	page := render.HomePage{
		Interval: h.sessions.Interval(),
		Fade:     render.FadeDuration,
		Alert:    alert,
		Question: sub.Question,
	}
	if id, err := auth.SessionID(r); err == nil {
		if s, err := h.sessions.Get(id); err == nil {
			page.Insights = s.Insights()
			if insight, _, _, ok := s.Trending(); ok {
				page.Trending = &insight
			}
		}
	}

	if err := h.renderer.Page(w, status, render.PageHome, page); err != nil {
		slog.Error("failed to render page", "page", render.PageHome, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func alertFor(err error) string {
	switch {
	case errors.Is(err, submit.ErrQuestionTooLong):
		return AlertTooLong
	default:
		return AlertEmptyQuestion
	}
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

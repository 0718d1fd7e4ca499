// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/survey-insights/survey"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func TestRenderer_Templates(t *testing.T) {
	r := newRenderer(t)

	for _, name := range []string{PageHome, PageInsights, PageError, PageThanks, "grid", "card", "chart", "trending", "filters"} {
		assert.True(t, r.Has(name), name)
	}
}

func TestRenderer_InsightsPage(t *testing.T) {
	r := newRenderer(t)
	ds := survey.Parse(chartCSV)
	cs := NewCardSet(ds.Rows())
	_, err := cs.Toggle("Q1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	err = r.Page(w, http.StatusOK, PageInsights, InsightsPage{
		Grid:    cs.View(ModeSplit),
		Filters: survey.NewFilterState().Options(ds),
		Mode:    ModeSplit,
		Rows:    "9",
	})
	require.NoError(t, err)

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "Best trait?")
	assert.Contains(t, body, "question-card expanded")
	assert.Contains(t, body, "width: 50.00%")
	assert.Contains(t, body, `<span class="bar-percentage">25%</span>`)
	assert.Contains(t, body, "Show common ground")
}

func TestRenderer_EmptyGrid(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "grid", BuildGrid(nil)))
	assert.Contains(t, buf.String(), EmptyMessage)
}

func TestRenderer_LoadError(t *testing.T) {
	r := newRenderer(t)

	w := httptest.NewRecorder()
	require.NoError(t, r.Page(w, http.StatusBadGateway, PageInsights, InsightsPage{LoadError: LoadErrorMessage}))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), LoadErrorMessage)
	assert.NotContains(t, w.Body.String(), "question-card")
}

func TestRenderer_HomePage(t *testing.T) {
	r := newRenderer(t)
	insight := survey.Insight{Headline: survey.HeadlineToday, QuestionText: "Best trait?", Stat: "38%", Caption: "of all 8 respondents chose 'Kindness'."}

	w := httptest.NewRecorder()
	require.NoError(t, r.Page(w, http.StatusOK, PageHome, HomePage{
		Trending: &insight,
		Interval: 7 * time.Second,
		Fade:     FadeDuration,
	}))

	body := w.Body.String()
	assert.Contains(t, body, "Today&#39;s Insight")
	assert.Contains(t, body, "38%")
	assert.Contains(t, body, "7000")
}

func TestRenderer_MissingFragmentIsNoop(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	require.NoError(t, r.Fragment(&buf, "sidebar", nil))
	assert.Zero(t, buf.Len())
}

func TestRenderer_UnknownPage(t *testing.T) {
	r := newRenderer(t)

	w := httptest.NewRecorder()
	assert.Error(t, r.Page(w, http.StatusOK, "nope", nil))
	assert.Zero(t, w.Body.Len())
}

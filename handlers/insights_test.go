// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/survey-insights/auth"
	"github.com/danielhkuo/survey-insights/models"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/session"
	"github.com/danielhkuo/survey-insights/sheet"
	"github.com/danielhkuo/survey-insights/testutil"
)

// idleScheduler never fires, so insights stay on the first entry
type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) func() { return func() {} }

type brokenSource struct{}

func (brokenSource) Fetch(context.Context) (string, error) {
	return "", &sheet.UpstreamError{StatusCode: http.StatusBadGateway}
}

func newTestManager(src sheet.Source) *session.Manager {
	return session.NewManager(src, session.Options{
		Scheduler:       idleScheduler{},
		InsightQuestion: "Q1",
		InsightInterval: 7 * time.Second,
		TTL:             time.Minute,
	})
}

func newTestRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}
	return r
}

func newInsightsHandler(t *testing.T, src sheet.Source) (*InsightsHandler, *session.Manager) {
	t.Helper()
	m := newTestManager(src)
	return NewInsightsHandler(m, newTestRenderer(t)), m
}

// loadInsights performs GET /insights and returns the session cookie
func loadInsights(t *testing.T, h *InsightsHandler, query string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest("GET", "/insights"+query, nil)
	w := httptest.NewRecorder()
	h.Page(w, req)
	return w, testutil.SessionCookie(w)
}

func TestInsightsPage(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	w, cookie := loadInsights(t, h, "")

	testutil.AssertStatus(t, w, http.StatusOK)
	if cookie == nil || !auth.ValidSessionID(cookie.Value) {
		t.Fatal("Expected a session cookie")
	}
	if cookie.MaxAge != 60 {
		t.Errorf("Expected cookie to live for the TTL, got MaxAge %d", cookie.MaxAge)
	}
	if m.Len() != 1 {
		t.Errorf("Expected 1 live session, got %d", m.Len())
	}

	body := w.Body.String()
	for _, want := range []string{"Favourite season, honestly?", "Cats or dogs?", "7 responses", `action="/insights/filters"`} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestInsightsPage_SeedsGender(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	w, cookie := loadInsights(t, h, "?gender=Female")
	testutil.AssertStatus(t, w, http.StatusOK)

	s, err := m.Get(cookie.Value)
	if err != nil {
		t.Fatalf("Expected session: %v", err)
	}
	if got := s.Filters().Get("gender"); got != "Female" {
		t.Errorf("Expected gender seeded to Female, got %s", got)
	}
	if !strings.Contains(w.Body.String(), "4 responses") {
		t.Error("Expected only female rows counted")
	}
}

func TestInsightsPage_ReplacesSession(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	_, first := loadInsights(t, h, "")

	req := httptest.NewRequest("GET", "/insights", nil)
	req.AddCookie(first)
	w := httptest.NewRecorder()
	h.Page(w, req)

	second := testutil.SessionCookie(w)
	if second == nil || second.Value == first.Value {
		t.Fatal("Expected a new session ID on reload")
	}
	if m.Len() != 1 {
		t.Errorf("Expected the old session to be torn down, %d live", m.Len())
	}
	if _, err := m.Get(first.Value); err == nil {
		t.Error("Old session should be gone")
	}
}

func TestInsightsPage_FetchFailure(t *testing.T) {
	h, m := newInsightsHandler(t, brokenSource{})

	w, _ := loadInsights(t, h, "")

	testutil.AssertStatus(t, w, http.StatusBadGateway)
	if !strings.Contains(w.Body.String(), render.LoadErrorMessage) {
		t.Errorf("Expected placeholder message, got: %s", w.Body.String())
	}
	if m.Len() != 0 {
		t.Error("No session should exist after a failed load")
	}
}

func TestInsightsPage_EmptySheet(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(""))

	w, _ := loadInsights(t, h, "")

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), render.EmptyMessage) {
		t.Error("Expected empty-state message")
	}
}

func TestSessionRoutes_RedirectWithoutSession(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	stale := &http.Cookie{Name: auth.SessionCookie, Value: auth.NewSessionID()}

	routes := []struct {
		name    string
		handler http.HandlerFunc
		req     *http.Request
	}{
		{"view", h.View, httptest.NewRequest("GET", "/insights/view", nil)},
		{"filters", h.SetFilter, testutil.MakeFormRequest("POST", "/insights/filters", url.Values{"facet": {"gender"}, "value": {"Male"}}, nil)},
		{"toggle", h.ToggleCard, testutil.MakeFormRequest("POST", "/insights/cards/toggle", url.Values{"id": {"Q1"}}, stale)},
		{"mode", h.SetMode, testutil.MakeFormRequest("POST", "/insights/mode", url.Values{"mode": {"common"}}, stale)},
	}

	for _, tc := range routes {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.handler(w, tc.req)
			testutil.AssertRedirect(t, w, "/insights")
		})
	}
}

func TestSetFilter(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	w := httptest.NewRecorder()
	h.SetFilter(w, testutil.MakeFormRequest("POST", "/insights/filters", url.Values{"facet": {"location"}, "value": {"Abuja"}}, cookie))
	testutil.AssertRedirect(t, w, "/insights/view")

	s, _ := m.Get(cookie.Value)
	if got := s.Filters().Get("location"); got != "Abuja" {
		t.Errorf("Expected location Abuja, got %s", got)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/insights/view", nil)
	req.AddCookie(cookie)
	h.View(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "3 responses") {
		t.Error("Expected the filtered row count on the re-rendered page")
	}
}

func TestSetFilter_Invalid(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	testCases := []struct {
		name string
		form url.Values
	}{
		{"missing facet", url.Values{"value": {"Lagos"}}},
		{"unknown facet", url.Values{"facet": {"height"}, "value": {"tall"}}},
		{"unobserved value", url.Values{"facet": {"location"}, "value": {"Paris"}}},
		{"bad age bucket", url.Values{"facet": {"age_group"}, "value": {"ancient"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.SetFilter(w, testutil.MakeFormRequest("POST", "/insights/filters", tc.form, cookie))

			testutil.AssertStatus(t, w, http.StatusBadRequest)
			var resp models.ErrorResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Error != "Bad Request" {
				t.Errorf("Expected 'Bad Request', got '%s'", resp.Error)
			}
		})
	}

	s, _ := m.Get(cookie.Value)
	if !s.Filters().IsWildcard() {
		t.Error("Rejected filters must not change the session")
	}
}

func TestToggleCard(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	toggle := func(id string) *httptest.ResponseRecorder {
		req := testutil.MakeFormRequest("POST", "/insights/cards/toggle", url.Values{"id": {id}}, cookie)
		w := httptest.NewRecorder()
		h.ToggleCard(w, req)
		return w
	}

	testutil.AssertRedirect(t, toggle("Q1"), "/insights/view")

	s, _ := m.Get(cookie.Value)
	grid := s.View().Grid
	if !grid.Cards[0].Expanded || grid.Cards[0].Chart == nil {
		t.Fatal("Expected Q1 expanded with a chart")
	}

	// Opening Q2 closes Q1
	testutil.AssertRedirect(t, toggle("Q2"), "/insights/view")
	grid = s.View().Grid
	if grid.Cards[0].Expanded || !grid.Cards[1].Expanded {
		t.Error("Expected only Q2 expanded")
	}

	w := toggle("Q404")
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestToggleCard_FreeTextIDs(t *testing.T) {
	csv := `QuestionID,QuestionText,ResponseValue,Gender,Location,MaritalStatus,Age
Q/1,Slash in the id?,Yes,Male,Lagos,Single,23
Q/1,Slash in the id?,No,Female,Lagos,Single,31
,No id at all?,Maybe,Female,Abuja,Married,40
`
	h, m := newInsightsHandler(t, sheet.StaticSource(csv))
	page, cookie := loadInsights(t, h, "")

	if !strings.Contains(page.Body.String(), `action="/insights/cards/toggle"`) {
		t.Error("Expected cards to post to the fixed toggle route")
	}
	if !strings.Contains(page.Body.String(), `name="id" value="Q/1"`) {
		t.Error("Expected the raw question ID in the form body")
	}

	s, _ := m.Get(cookie.Value)
	for i, id := range []string{"Q/1", ""} {
		w := httptest.NewRecorder()
		h.ToggleCard(w, testutil.MakeFormRequest("POST", "/insights/cards/toggle", url.Values{"id": {id}}, cookie))
		testutil.AssertRedirect(t, w, "/insights/view")

		card := s.View().Grid.Cards[i]
		if card.QuestionID != id || !card.Expanded || card.Chart == nil {
			t.Errorf("Expected card %q expanded with a chart, got %+v", id, card)
		}
	}

	// No id field at all
	w := httptest.NewRecorder()
	h.ToggleCard(w, testutil.MakeFormRequest("POST", "/insights/cards/toggle", url.Values{}, cookie))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestSetMode(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	w := httptest.NewRecorder()
	h.SetMode(w, testutil.MakeFormRequest("POST", "/insights/mode", url.Values{"mode": {"common"}}, cookie))
	testutil.AssertRedirect(t, w, "/insights/view")

	s, _ := m.Get(cookie.Value)
	if s.Mode() != render.ModeCommonGround {
		t.Errorf("Expected common ground mode, got %s", s.Mode())
	}

	w = httptest.NewRecorder()
	h.SetMode(w, testutil.MakeFormRequest("POST", "/insights/mode", url.Values{"mode": {"upside-down"}}, cookie))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestView_Fragment(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	get := func(fragment string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/insights/view?fragment="+fragment, nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		h.View(w, req)
		return w
	}

	w := get("grid")
	testutil.AssertStatus(t, w, http.StatusOK)
	body := w.Body.String()
	if !strings.HasPrefix(body, `<div id="question-grid">`) {
		t.Errorf("Expected just the grid block, got: %s", body)
	}
	if strings.Contains(body, "<html") {
		t.Error("Fragment should not include the page shell")
	}

	w = get("filters")
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `name="facet"`) {
		t.Error("Expected filter forms")
	}

	w = get("sidebar")
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestTrending(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	req := httptest.NewRequest("GET", "/insights/trending", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.Trending(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.TrendingResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Headline != "Today's Insight" {
		t.Errorf("Unexpected headline '%s'", resp.Headline)
	}
	if resp.Stat != "60%" {
		t.Errorf("Expected '60%%', got '%s'", resp.Stat)
	}
	if resp.Total != 3 || resp.Index != 0 {
		t.Errorf("Expected index 0 of 3, got %d of %d", resp.Index, resp.Total)
	}
}

func TestTrending_NothingToShow(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	// No session
	w := httptest.NewRecorder()
	h.Trending(w, httptest.NewRequest("GET", "/insights/trending", nil))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	// Session without insights for the question
	empty, _ := newInsightsHandler(t, sheet.StaticSource("QuestionID,ResponseValue\n"))
	_, cookie := loadInsights(t, empty, "")
	req := httptest.NewRequest("GET", "/insights/trending", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	empty.Trending(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestEndSession(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))
	_, cookie := loadInsights(t, h, "")

	req := httptest.NewRequest("DELETE", "/insights/session", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	h.EndSession(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)
	if m.Len() != 0 {
		t.Error("Expected session to be closed")
	}
	if c := testutil.SessionCookie(w); c == nil || c.MaxAge >= 0 {
		t.Error("Expected session cookie to be cleared")
	}

	// Ending twice is harmless
	w = httptest.NewRecorder()
	h.EndSession(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)
}

func TestSummary(t *testing.T) {
	h, m := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	req := httptest.NewRequest("GET", "/api/summary?gender=Female&age_group=25-34", nil)
	w := httptest.NewRecorder()
	h.Summary(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SummaryResponse
	testutil.AssertJSON(t, w, &resp)

	// Female aged 25-34: Winter (31), Winter (29)
	if resp.Rows != 2 {
		t.Fatalf("Expected 2 rows, got %d", resp.Rows)
	}
	if resp.Filters["gender"] != "Female" || resp.Filters["location"] != "all" {
		t.Errorf("Unexpected filters echo: %v", resp.Filters)
	}
	if len(resp.Cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(resp.Cards))
	}
	card := resp.Cards[0]
	if card.QuestionID != "Q1" || card.TopResponse != "Winter" || card.Responses != 2 {
		t.Errorf("Unexpected card %+v", card)
	}
	if len(card.Counts) != 1 || card.Counts[0].Percent != 100 {
		t.Errorf("Unexpected counts %+v", card.Counts)
	}
	if m.Len() != 0 {
		t.Error("Summary must not create sessions")
	}
}

func TestSummary_Ranking(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	w := httptest.NewRecorder()
	h.Summary(w, httptest.NewRequest("GET", "/api/summary", nil))

	var resp models.SummaryResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Rows != 7 || len(resp.Cards) != 2 {
		t.Fatalf("Expected 7 rows in 2 cards, got %d rows in %d", resp.Rows, len(resp.Cards))
	}
	counts := resp.Cards[0].Counts
	if counts[0].Response != "Summer" || counts[0].Count != 3 || counts[0].Percent != 60 {
		t.Errorf("Expected Summer 3 (60%%) first, got %+v", counts[0])
	}
	if counts[1].Response != "Winter" || counts[1].Percent != 40 {
		t.Errorf("Expected Winter 40%% second, got %+v", counts[1])
	}
}

func TestSummary_EmptyAndErrors(t *testing.T) {
	h, _ := newInsightsHandler(t, sheet.StaticSource(testutil.SampleCSV))

	w := httptest.NewRecorder()
	h.Summary(w, httptest.NewRequest("GET", "/api/summary?location=Abuja&marital_status=Single&gender=Male", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SummaryResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Empty || resp.Message != render.EmptyMessage || len(resp.Cards) != 0 {
		t.Errorf("Expected empty state, got %+v", resp)
	}

	w = httptest.NewRecorder()
	h.Summary(w, httptest.NewRequest("GET", "/api/summary?location=Paris", nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	broken, _ := newInsightsHandler(t, brokenSource{})
	w = httptest.NewRecorder()
	broken.Summary(w, httptest.NewRequest("GET", "/api/summary", nil))
	testutil.AssertStatus(t, w, http.StatusBadGateway)
}

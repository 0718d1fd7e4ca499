// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/survey"
)

// Session is the state behind one loaded page: the fetched dataset, the
// current filter selection and the rendered card grid. All methods are safe
// for concurrent use; a request arriving mid-redraw waits for it to finish.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	dataset  *survey.Dataset
	filters  survey.FilterState
	rows     []survey.Row
	cards    *render.CardSet
	mode     render.Mode
	insights []survey.Insight
	cycler   *render.Cycler
}

func newSession(id string, ds *survey.Dataset, filters survey.FilterState, insights []survey.Insight, now time.Time) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		dataset:   ds,
		filters:   filters,
		mode:      render.ModeSplit,
		insights:  insights,
		cycler:    render.NewCycler(insights),
	}
	s.applyFilters()
	return s
}

// applyFilters re-runs the filter pass over the dataset and rebuilds the
// grid. Expanded cards and cached charts are discarded.
func (s *Session) applyFilters() {
	s.rows = survey.Apply(s.dataset, s.filters)
	s.cards = render.NewCardSet(s.rows)
}

// SetFilter changes one facet and, if the value is accepted, runs exactly one
// apply pass. A rejected value leaves the session untouched.
func (s *Session) SetFilter(facet, value string) error {
	f, err := survey.ParseFacet(facet)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.filters.Clone()
	if err := next.Set(f, value, s.dataset); err != nil {
		return err
	}
	s.filters = next
	s.applyFilters()
	return nil
}

// Toggle expands or collapses a question card.
func (s *Session) Toggle(questionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards.Toggle(questionID)
}

// SetMode switches how charts are drawn. Cached charts are kept.
func (s *Session) SetMode(mode string) error {
	m, err := render.ParseMode(mode)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
	return nil
}

// Filters returns a copy of the current selection.
func (s *Session) Filters() survey.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// Mode returns the current chart mode.
func (s *Session) Mode() render.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// View projects the session into the insights page.
func (s *Session) View() render.InsightsPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return render.InsightsPage{
		Grid:    s.cards.View(s.mode),
		Filters: s.filters.Options(s.dataset),
		Mode:    s.mode,
		Rows:    humanize.Comma(int64(len(s.rows))),
	}
}

// Insights returns the precomputed insight sequence.
func (s *Session) Insights() []survey.Insight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]survey.Insight(nil), s.insights...)
}

// Trending returns the insight currently shown by the cycler along with its
// position in the sequence.
func (s *Session) Trending() (insight survey.Insight, index, total int, ok bool) {
	return s.cycler.Snapshot()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) idle(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastSeen()) > ttl
}

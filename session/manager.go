// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/danielhkuo/survey-insights/auth"
	"github.com/danielhkuo/survey-insights/render"
	"github.com/danielhkuo/survey-insights/sheet"
	"github.com/danielhkuo/survey-insights/survey"
)

// ErrNotFound is returned for unknown, closed or expired sessions.
var ErrNotFound = errors.New("session not found")

// Options tunes a Manager. Zero fields take the defaults below.
type Options struct {
	Scheduler       render.Scheduler
	InsightQuestion string
	InsightInterval time.Duration
	TTL             time.Duration
	MaxSessions     int
}

const (
	defaultInsightQuestion = "Q1"
	defaultInsightInterval = 7 * time.Second
	defaultTTL             = 30 * time.Minute
	defaultMaxSessions     = 1000
)

// Manager owns every live session. Each session is created from a fresh
// fetch of the sheet and lives until it is replaced, closed, evicted or idle
// past the TTL. One shared rotation advances every session's insights, and
// it only runs while there is something to rotate.
type Manager struct {
	source      sheet.Source
	scheduler   render.Scheduler
	question    string
	interval    time.Duration
	ttl         time.Duration
	maxSessions int
	now         func() time.Time

	mu           sync.Mutex
	sessions     map[string]*Session
	stopRotation func()
}

func NewManager(source sheet.Source, opts Options) *Manager {
	m := &Manager{
		source:      source,
		scheduler:   opts.Scheduler,
		question:    opts.InsightQuestion,
		interval:    opts.InsightInterval,
		ttl:         opts.TTL,
		maxSessions: opts.MaxSessions,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
	if m.scheduler == nil {
		m.scheduler = render.TickerScheduler{}
	}
	if m.question == "" {
		m.question = defaultInsightQuestion
	}
	if m.interval <= 0 {
		m.interval = defaultInsightInterval
	}
	if m.ttl <= 0 {
		m.ttl = defaultTTL
	}
	if m.maxSessions <= 0 {
		m.maxSessions = defaultMaxSessions
	}
	return m
}

// TTL returns the idle lifetime of a session.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Interval returns how often the insight panel rotates.
func (m *Manager) Interval() time.Duration {
	return m.interval
}

// Load fetches and parses the sheet without creating a session.
func (m *Manager) Load(ctx context.Context) (*survey.Dataset, error) {
	text, err := m.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey data: %w", err)
	}
	return survey.Parse(text), nil
}

// Create fetches the sheet, seeds the filters from q and registers a new
// session in the insight rotation. When the manager is full the least
// recently seen session is evicted first. A failed fetch creates nothing.
func (m *Manager) Create(ctx context.Context, q url.Values) (*Session, error) {
	ds, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}

	filters := survey.NewFilterState()
	filters.SeedFromQuery(q, ds)

	s := newSession(auth.NewSessionID(), ds, filters, survey.GenerateInsights(ds, m.question), m.now())

	m.mu.Lock()
	evicted := ""
	if len(m.sessions) >= m.maxSessions {
		evicted = m.evictLocked()
	}
	m.sessions[s.ID] = s
	if len(s.insights) > 0 && m.stopRotation == nil {
		m.stopRotation = m.scheduler.Every(m.interval, m.advance)
	}
	live := len(m.sessions)
	m.mu.Unlock()

	if evicted != "" {
		slog.Info("session evicted", "session", evicted, "max", m.maxSessions)
	}
	slog.Info("session created", "session", s.ID, "rows", ds.Len(), "live", live)
	return s, nil
}

// evictLocked drops the least recently seen session and returns its ID.
func (m *Manager) evictLocked() string {
	var oldest *Session
	for _, s := range m.sessions {
		if oldest == nil || s.LastSeen().Before(oldest.LastSeen()) {
			oldest = s
		}
	}
	if oldest == nil {
		return ""
	}
	m.removeLocked(oldest.ID)
	return oldest.ID
}

// removeLocked deletes a session and halts the rotation once nothing is left.
func (m *Manager) removeLocked(id string) {
	delete(m.sessions, id)
	if len(m.sessions) == 0 && m.stopRotation != nil {
		m.stopRotation()
		m.stopRotation = nil
	}
}

// advance moves every live session to its next insight.
func (m *Manager) advance() {
	m.mu.Lock()
	cyclers := make([]*render.Cycler, 0, len(m.sessions))
	for _, s := range m.sessions {
		cyclers = append(cyclers, s.cycler)
	}
	m.mu.Unlock()

	for _, c := range cyclers {
		c.Advance()
	}
}

// Replace tears down oldID, if it exists, and creates a new session.
func (m *Manager) Replace(ctx context.Context, oldID string, q url.Values) (*Session, error) {
	if oldID != "" && m.Close(oldID) {
		slog.Info("session replaced", "session", oldID)
	}
	return m.Create(ctx, q)
}

// Get returns a live session and marks it used.
func (m *Manager) Get(id string) (*Session, error) {
	now := m.now()

	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && s.idle(now, m.ttl) {
		m.removeLocked(id)
		m.mu.Unlock()
		slog.Info("session expired", "session", id)
		return nil, ErrNotFound
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	s.touch(now)
	return s, nil
}

// Close removes a session. It reports whether the session existed.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	if ok {
		m.removeLocked(id)
	}
	return ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes every session idle longer than the TTL at now and returns how
// many were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	expired := 0
	for id, s := range m.sessions {
		if s.idle(now, m.ttl) {
			m.removeLocked(id)
			expired++
		}
	}
	m.mu.Unlock()

	if expired > 0 {
		slog.Info("expired idle sessions", "count", expired)
	}
	return expired
}

// Run sweeps every interval until ctx is done, then closes all sessions.
func (m *Manager) Run(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.CloseAll()
			return nil
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}

// CloseAll drops every session and stops the rotation.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.sessions {
		m.removeLocked(id)
	}
}

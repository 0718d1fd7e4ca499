// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"sync"
	"time"

	"github.com/danielhkuo/survey-insights/survey"
)

// FadeDuration is how long the trending panel cross-fades between insights.
const FadeDuration = 500 * time.Millisecond

// Scheduler runs fn every d until the returned stop function is called.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// TickerScheduler is a Scheduler backed by time.Ticker.
type TickerScheduler struct{}

func (TickerScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// Cycler steps through a fixed list of insights, wrapping back to the first
// after the last. It owns no timer; whoever schedules the rotation calls
// Advance.
type Cycler struct {
	mu       sync.Mutex
	insights []survey.Insight
	index    int
}

// NewCycler copies insights into a new cycler positioned at the first one.
func NewCycler(insights []survey.Insight) *Cycler {
	c := &Cycler{insights: make([]survey.Insight, len(insights))}
	copy(c.insights, insights)
	return c
}

// Advance moves to the next insight.
func (c *Cycler) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.insights) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.insights)
}

// Snapshot returns the insight on display together with its position and
// the sequence length, all read at the same instant.
func (c *Cycler) Snapshot() (insight survey.Insight, index, total int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.insights) == 0 {
		return survey.Insight{}, 0, 0, false
	}
	return c.insights[c.index], c.index, len(c.insights), true
}

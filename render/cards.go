// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"errors"

	"github.com/danielhkuo/survey-insights/survey"
)

// ErrUnknownCard is returned when toggling a question that is not on the grid.
var ErrUnknownCard = errors.New("unknown question card")

// CardSet is the interactive state of one rendered grid: which card is open
// and which charts have been drawn. At most one card is expanded at a time,
// and a card's chart is built the first time it opens and then reused.
type CardSet struct {
	grid     Grid
	groups   map[string][]survey.Row
	charts   map[string]*Chart
	expanded string
	splits   [2]Split
}

// NewCardSet builds the grid for rows and starts with every card collapsed.
func NewCardSet(rows []survey.Row) *CardSet {
	cs := &CardSet{
		grid:   BuildGrid(rows),
		groups: make(map[string][]survey.Row),
		charts: make(map[string]*Chart),
		splits: DefaultSplits,
	}
	for _, g := range survey.GroupByQuestion(rows) {
		cs.groups[g.ID] = g.Rows
	}
	return cs
}

// Toggle opens the card for id, closing any other open card, or closes it if
// it was already open. It reports whether the card is now expanded.
func (cs *CardSet) Toggle(id string) (bool, error) {
	if _, ok := cs.groups[id]; !ok {
		return false, ErrUnknownCard
	}
	if cs.expanded == id {
		cs.expanded = ""
		return false, nil
	}

	cs.expanded = id
	if _, built := cs.charts[id]; !built {
		chart := BuildChart(cs.groups[id], cs.splits, ChartSize, ModeSplit)
		cs.charts[id] = &chart
	}
	return true, nil
}

// Expanded returns the open card's question ID, or "" if none is open.
func (cs *CardSet) Expanded() string {
	return cs.expanded
}

// Chart returns the cached chart for id, if it has been built.
func (cs *CardSet) Chart(id string) (*Chart, bool) {
	c, ok := cs.charts[id]
	return c, ok
}

// View projects the card set into a Grid, attaching cached charts drawn in
// the given mode.
func (cs *CardSet) View(mode Mode) Grid {
	out := Grid{Empty: cs.grid.Empty, Message: cs.grid.Message}
	out.Cards = make([]Card, len(cs.grid.Cards))
	for i, card := range cs.grid.Cards {
		card.Expanded = card.QuestionID == cs.expanded
		if c, ok := cs.charts[card.QuestionID]; ok {
			drawn := c.WithMode(mode)
			card.Chart = &drawn
		}
		out.Cards[i] = card
	}
	return out
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/survey-insights/survey"
)

// EmptyMessage is shown when the filters leave no rows.
const EmptyMessage = "No insights found for the selected filters."

// NoAnswer stands in for a top response when a question has none.
const NoAnswer = "N/A"

// ChartSize is how many responses a mirrored chart shows.
const ChartSize = 5

// Mode selects how mirrored bar widths are drawn.
type Mode string

const (
	// ModeSplit sizes each bar by its own group's percentage.
	ModeSplit Mode = "split"
	// ModeCommonGround sizes both bars by the smaller of the two percentages.
	ModeCommonGround Mode = "common"
)

// ParseMode accepts "split" or "common".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSplit, ModeCommonGround:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown chart mode %q", s)
}

// Split is one side of a mirrored chart.
type Split struct {
	Label  string
	Column string
	Value  string
}

// DefaultSplits compares male and female respondents.
var DefaultSplits = [2]Split{
	{Label: "He/Him", Column: survey.ColGender, Value: survey.GenderMale},
	{Label: "She/Her", Column: survey.ColGender, Value: survey.GenderFemale},
}

// Card is the collapsed summary of one question.
type Card struct {
	QuestionID   string
	QuestionText string
	TopResponse  string
	Responses    string
	Expanded     bool
	Chart        *Chart
}

// Grid is the card view for a filtered slice of the dataset.
type Grid struct {
	Cards   []Card
	Empty   bool
	Message string
}

// BuildGrid makes one card per question, in order of first appearance.
func BuildGrid(rows []survey.Row) Grid {
	groups := survey.GroupByQuestion(rows)
	if len(groups) == 0 {
		return Grid{Empty: true, Message: EmptyMessage}
	}

	cards := make([]Card, 0, len(groups))
	for _, g := range groups {
		cards = append(cards, newCard(g))
	}
	return Grid{Cards: cards}
}

func newCard(g survey.QuestionGroup) Card {
	counts := survey.CountResponses(g.Rows)
	top := NoAnswer
	if rc, ok := counts.Top(); ok && rc.Response != "" {
		top = rc.Response
	}
	return Card{
		QuestionID:   g.ID,
		QuestionText: g.Text(),
		TopResponse:  top,
		Responses:    humanize.Comma(int64(len(g.Rows))),
	}
}

// Bar is one side of a chart row.
type Bar struct {
	Percent float64
	Width   float64
	Label   string
}

// ChartRow is one response drawn as two opposing bars.
type ChartRow struct {
	Response string
	Left     Bar
	Right    Bar
}

// Chart is a mirrored bar chart comparing two splits.
type Chart struct {
	Left  Split
	Right Split
	Mode  Mode
	Rows  []ChartRow
}

// BuildChart compares the top n responses across two splits of rows. Bars
// carry the unrounded percentage of their own group; labels are rounded.
func BuildChart(rows []survey.Row, splits [2]Split, n int, mode Mode) Chart {
	left := survey.SplitBy(rows, splits[0].Column, splits[0].Value)
	right := survey.SplitBy(rows, splits[1].Column, splits[1].Value)
	leftCounts := survey.CountResponses(left)
	rightCounts := survey.CountResponses(right)

	chart := Chart{Left: splits[0], Right: splits[1], Mode: ModeSplit}
	for _, resp := range survey.TopN(leftCounts, rightCounts, n) {
		chart.Rows = append(chart.Rows, ChartRow{
			Response: resp,
			Left:     newBar(survey.Percent(leftCounts.Get(resp), len(left))),
			Right:    newBar(survey.Percent(rightCounts.Get(resp), len(right))),
		})
	}
	return chart.WithMode(mode)
}

func newBar(pct float64) Bar {
	return Bar{Percent: pct, Width: pct, Label: fmt.Sprintf("%d%%", survey.RoundPercent(pct))}
}

// WithMode returns a copy of the chart with bar widths drawn for mode.
// Labels always keep each group's own percentage.
func (c Chart) WithMode(mode Mode) Chart {
	out := c
	out.Mode = mode
	out.Rows = make([]ChartRow, len(c.Rows))
	for i, row := range c.Rows {
		row.Left.Width = row.Left.Percent
		row.Right.Width = row.Right.Percent
		if mode == ModeCommonGround {
			w := min(row.Left.Percent, row.Right.Percent)
			row.Left.Width = w
			row.Right.Width = w
		}
		out.Rows[i] = row
	}
	return out
}

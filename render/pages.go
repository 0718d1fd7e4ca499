// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"time"

	"github.com/danielhkuo/survey-insights/survey"
)

// HomePage is the landing page with the trending insight panel and the
// question form.
type HomePage struct {
	Trending  *survey.Insight
	Insights  []survey.Insight
	Interval  time.Duration
	Fade      time.Duration
	LoadError string
	Alert     string
	Question  string
}

// InsightsPage is the filterable card grid.
type InsightsPage struct {
	Grid      Grid
	Filters   []survey.FacetOptions
	Mode      Mode
	Rows      string
	LoadError string
}

// ThanksPage confirms a submitted question.
type ThanksPage struct {
	Question string
}

// ErrorPage is a bare message page.
type ErrorPage struct {
	Message string
}

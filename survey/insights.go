// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Gender values the sheet uses for the two demographic splits.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// Insight headlines, in cycling order.
const (
	HeadlineToday = "Today's Insight"
	HeadlineWeek  = "This Week's Finding"
	HeadlineMonth = "This Month's Trending Topic"
)

// Insight is one precomputed finding shown in the trending panel.
type Insight struct {
	Headline     string `json:"headline"`
	QuestionText string `json:"question_text"`
	Stat         string `json:"stat"`
	Caption      string `json:"caption"`
}

// GenerateInsights summarizes one question: the overall top answer share,
// then the top answer among female and among male respondents. Findings with
// no rows behind them are left out, so the result may be empty.
func GenerateInsights(ds *Dataset, questionID string) []Insight {
	rows := FilterQuestion(ds.Rows(), questionID)
	if len(rows) == 0 {
		return nil
	}
	text := rows[0].QuestionText()

	var insights []Insight
	if top, ok := CountResponses(rows).Top(); ok {
		pct := RoundPercent(Percent(top.Count, len(rows)))
		insights = append(insights, Insight{
			Headline:     HeadlineToday,
			QuestionText: text,
			Stat:         fmt.Sprintf("%d%%", pct),
			Caption: fmt.Sprintf("of all %s respondents chose '%s'.",
				humanize.Comma(int64(len(rows))), top.Response),
		})
	}

	for _, split := range []struct {
		gender   string
		headline string
		label    string
	}{
		{GenderFemale, HeadlineWeek, "female"},
		{GenderMale, HeadlineMonth, "male"},
	} {
		group := SplitBy(rows, ColGender, split.gender)
		top, ok := CountResponses(group).Top()
		if !ok {
			continue
		}
		insights = append(insights, Insight{
			Headline:     split.headline,
			QuestionText: text,
			Stat:         fmt.Sprintf("'%s'", top.Response),
			Caption:      fmt.Sprintf("was the most frequent answer among %s respondents.", split.label),
		})
	}

	return insights
}

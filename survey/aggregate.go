// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"math"
	"sort"
)

// Apply returns the rows of ds that pass every active facet in fs, in dataset
// order. An all-wildcard state returns the whole dataset.
func Apply(ds *Dataset, fs FilterState) []Row {
	rows := ds.Rows()
	if fs.IsWildcard() {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if fs.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// QuestionGroup is the rows answering one question, in original order.
type QuestionGroup struct {
	ID   string
	Rows []Row
}

// Text returns the question text from the group's first row.
func (g QuestionGroup) Text() string {
	if len(g.Rows) == 0 {
		return ""
	}
	return g.Rows[0].QuestionText()
}

// GroupByQuestion buckets rows by QuestionID. Groups are ordered by the first
// appearance of each ID.
func GroupByQuestion(rows []Row) []QuestionGroup {
	index := make(map[string]int)
	var groups []QuestionGroup
	for _, r := range rows {
		id := r.QuestionID()
		i, ok := index[id]
		if !ok {
			i = len(groups)
			index[id] = i
			groups = append(groups, QuestionGroup{ID: id})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}

// FilterQuestion returns the rows whose QuestionID equals id.
func FilterQuestion(rows []Row, id string) []Row {
	return SplitBy(rows, ColQuestionID, id)
}

// SplitBy returns the rows whose column equals value.
func SplitBy(rows []Row, column, value string) []Row {
	var out []Row
	for _, r := range rows {
		if v, ok := r.Get(column); ok && v == value {
			out = append(out, r)
		}
	}
	return out
}

// ResponseCount is one entry of a frequency table.
type ResponseCount struct {
	Response string
	Count    int
}

// ResponseCounts is a frequency table of ResponseValue. It only holds values
// that occurred, and remembers the order in which each first occurred.
type ResponseCounts struct {
	order  []string
	counts map[string]int
}

// CountResponses tallies ResponseValue over rows. Rows too short to carry a
// response are skipped.
func CountResponses(rows []Row) ResponseCounts {
	rc := ResponseCounts{counts: make(map[string]int)}
	for _, r := range rows {
		v, ok := r.Get(ColResponseValue)
		if !ok {
			continue
		}
		if _, seen := rc.counts[v]; !seen {
			rc.order = append(rc.order, v)
		}
		rc.counts[v]++
	}
	return rc
}

// Get returns the count for a response, 0 when it never occurred.
func (rc ResponseCounts) Get(response string) int {
	return rc.counts[response]
}

// Len returns the number of distinct responses.
func (rc ResponseCounts) Len() int {
	return len(rc.order)
}

// Keys returns the distinct responses in first-seen order.
func (rc ResponseCounts) Keys() []string {
	out := make([]string, len(rc.order))
	copy(out, rc.order)
	return out
}

// Ranked sorts the table by count, highest first. Equal counts keep their
// first-seen order.
func (rc ResponseCounts) Ranked() []ResponseCount {
	out := make([]ResponseCount, len(rc.order))
	for i, k := range rc.order {
		out[i] = ResponseCount{Response: k, Count: rc.counts[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns the most frequent response.
func (rc ResponseCounts) Top() (ResponseCount, bool) {
	ranked := rc.Ranked()
	if len(ranked) == 0 {
		return ResponseCount{}, false
	}
	return ranked[0], true
}

// TopN merges two tables and returns up to n responses ranked by their
// combined count. Candidates are a's keys followed by b's new keys, and that
// order breaks ties.
func TopN(a, b ResponseCounts, n int) []string {
	if n <= 0 {
		return nil
	}

	keys := a.Keys()
	for _, k := range b.order {
		if _, ok := a.counts[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return a.Get(keys[i])+b.Get(keys[i]) > a.Get(keys[j])+b.Get(keys[j])
	})

	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Percent returns count as a percentage of groupSize. An empty group is 0%.
func Percent(count, groupSize int) float64 {
	if groupSize <= 0 {
		return 0
	}
	return float64(count) / float64(groupSize) * 100
}

// RoundPercent rounds a percentage to the nearest whole number for display.
func RoundPercent(p float64) int {
	return int(math.Round(p))
}

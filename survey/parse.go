// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"strings"
)

// Parse converts published-sheet CSV text into a Dataset.
//
// The first line names the columns. Every later non-empty line is split on
// commas outside quoted fields and zipped onto the header by position; short
// lines leave trailing columns absent and extra values are dropped. Parse
// never fails: empty or header-only input yields an empty dataset.
func Parse(text string) *Dataset {
	ds := &Dataset{header: newHeader(nil)}

	text = strings.TrimSpace(text)
	if text == "" {
		return ds
	}

	lines := strings.Split(text, "\n")
	ds.header = newHeader(splitLine(lines[0]))

	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := splitLine(line)
		if n := len(ds.header.names); len(values) > n {
			values = values[:n]
		}
		ds.rows = append(ds.rows, Row{header: ds.header, values: values})
	}

	return ds
}

// splitLine splits one line on commas that are not inside double quotes and
// cleans each token.
func splitLine(line string) []string {
	line = strings.TrimRight(line, "\r")

	var fields []string
	inQuotes := false
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, cleanField(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, cleanField(line[start:]))
}

// cleanField trims a token, strips its surrounding quotes and unescapes
// doubled quotes inside it.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.TrimSpace(strings.ReplaceAll(s[1:len(s)-1], `""`, `"`))
	}
	return strings.TrimSpace(strings.Trim(s, `"`))
}

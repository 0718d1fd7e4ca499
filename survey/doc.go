// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey holds the survey data pipeline: parsing the published sheet,
filtering by demographic facets, and counting responses.

# Parsing

	ds := survey.Parse(csvText)

Parse never fails. Empty input produces an empty Dataset, which callers render
as an empty state.

# Filtering

FilterState tracks one selection per facet (location, gender, marital_status,
age_group). Each starts as All:

	fs := survey.NewFilterState()
	if err := fs.Set(survey.FacetGender, "Female", ds); err != nil {
		// value was never observed in ds
	}
	rows := survey.Apply(ds, fs)

Age groups are "min-max" or "min+" and match rows whose Age parses as a number
inside the inclusive range.

# Counting

	counts := survey.CountResponses(rows)
	top, ok := counts.Top()

Ranking is by count, highest first. Ties keep the order in which responses
first appeared in the rows.
*/
package survey

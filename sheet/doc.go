// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sheet fetches the published survey spreadsheet as CSV.

	src := sheet.NewHTTPSource(sheet.SheetURL(id), 10*time.Second)
	csvText, err := src.Fetch(ctx)

Failures wrap ErrUpstream. When the host answered with a non-2xx status the
code is available through StatusCode(err) so callers can pass it along.
*/
package sheet

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session keeps the state behind each loaded insights page.

A Session is created on page load from a fresh fetch of the sheet, is
replaced wholesale when the page is reloaded and is torn down when the
visitor navigates away or stays idle past the TTL. Every filter change runs
one apply pass (filter, group, rebuild grid); card toggles and mode changes
only touch the rendered view.

	m := session.NewManager(src, session.Options{TTL: 30 * time.Minute})
	s, err := m.Create(ctx, r.URL.Query())
	...
	err = s.SetFilter("location", "Lagos")
	page := s.View()

Sessions are keyed by the ID stored in the session cookie (see package auth).
*/
package session

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultSheetID is the published survey spreadsheet.
const DefaultSheetID = "1Co4oNp5L6aXUx6_jdGGFtRSzyNKg9aPc"

// ErrUpstream marks any failure to obtain CSV from the spreadsheet host.
var ErrUpstream = errors.New("spreadsheet fetch failed")

// UpstreamError is returned when the spreadsheet host answers with a non-2xx
// status. StatusCode is 0 when the request never got a response.
type UpstreamError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%v: %v", ErrUpstream, e.Err)
	}
	return fmt.Sprintf("%v: upstream returned %d", ErrUpstream, e.StatusCode)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}

// StatusCode extracts the upstream HTTP status from err, or 0.
func StatusCode(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}

// Source supplies the raw survey CSV.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// SheetURL returns the published CSV export URL for a spreadsheet.
func SheetURL(sheetID string) string {
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(sheetID) + "/gviz/tq?tqx=out:csv"
}

// HTTPSource fetches the CSV export over HTTP. Every call makes exactly one
// request; nothing is cached or retried.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns a source for url with a request timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Fetch returns the response body verbatim.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "text/csv")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Err: fmt.Errorf("failed to read sheet body: %w", err)}
	}
	return string(body), nil
}

// StaticSource serves fixed CSV text. Useful for tests and offline demos.
type StaticSource string

func (s StaticSource) Fetch(context.Context) (string, error) {
	return string(s), nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MaxQuestionLen caps the length of a submitted question, in bytes.
const MaxQuestionLen = 2000

var (
	ErrEmptyQuestion   = errors.New("question is required")
	ErrQuestionTooLong = errors.New("question is too long")
	ErrNotConfigured   = errors.New("question submission is not configured")
)

// Submission is a visitor's question from the home page form.
type Submission struct {
	Question string
	Name     string
	Email    string
}

// Normalize trims the fields and checks the question is usable.
func (s Submission) Normalize() (Submission, error) {
	s.Question = strings.TrimSpace(s.Question)
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	if s.Question == "" {
		return s, ErrEmptyQuestion
	}
	if len(s.Question) > MaxQuestionLen {
		return s, ErrQuestionTooLong
	}
	return s, nil
}

func (s Submission) form() url.Values {
	v := url.Values{}
	v.Set("question", s.Question)
	if s.Name != "" {
		v.Set("name", s.Name)
	}
	if s.Email != "" {
		v.Set("email", s.Email)
	}
	return v
}

// Forwarder posts submissions to a third-party script endpoint. The endpoint's
// reply is never read: any response at all counts as delivered, and only a
// transport failure is an error.
type Forwarder struct {
	URL    string
	Client *http.Client
}

// NewForwarder returns a forwarder for url with a request timeout.
func NewForwarder(url string, timeout time.Duration) *Forwarder {
	return &Forwarder{URL: url, Client: &http.Client{Timeout: timeout}}
}

// Submit sends s once. There is no retry.
func (f *Forwarder) Submit(ctx context.Context, s Submission) error {
	if f == nil || f.URL == "" {
		return ErrNotConfigured
	}
	s, err := s.Normalize()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, strings.NewReader(s.form().Encode()))
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to forward submission: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

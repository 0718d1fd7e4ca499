// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/survey-insights/auth"
	"github.com/danielhkuo/survey-insights/cliparse"
	"github.com/danielhkuo/survey-insights/db"
)

// SampleCSV is a small survey export covering two questions, both genders
// and every filter facet
const SampleCSV = `QuestionID,QuestionText,ResponseValue,Gender,Location,MaritalStatus,Age
Q1,"Favourite season, honestly?",Summer,Male,Lagos,Single,23
Q1,"Favourite season, honestly?",Winter,Female,Lagos,Married,31
Q1,"Favourite season, honestly?",Summer,Female,Abuja,Single,45
Q1,"Favourite season, honestly?",Summer,Male,Abuja,Married,67
Q1,"Favourite season, honestly?",Winter,Female,Lagos,Single,29
Q2,Cats or dogs?,Dogs,Male,Lagos,Single,23
Q2,Cats or dogs?,Cats,Female,Abuja,Married,38
`

// SetupTestDB opens a fresh SQLite database in a temp dir with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// Submission is one row of the question_submission table
type Submission struct {
	ID        string
	Question  string
	Name      string
	Email     string
	IPHash    *string
	UserAgent *string
	Forwarded bool
}

// Submissions reads back every logged question, newest first
func Submissions(t *testing.T, conn *sql.DB) []Submission {
	t.Helper()

	rows, err := conn.Query(`
		SELECT id, question, name, email, ip_hash, user_agent, forwarded
		FROM question_submission
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		t.Fatalf("Failed to query submissions: %v", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		var ipHash, userAgent sql.NullString
		if err := rows.Scan(&sub.ID, &sub.Question, &sub.Name, &sub.Email, &ipHash, &userAgent, &sub.Forwarded); err != nil {
			t.Fatalf("Failed to scan submission: %v", err)
		}
		if ipHash.Valid {
			sub.IPHash = &ipHash.String
		}
		if userAgent.Valid {
			sub.UserAgent = &userAgent.String
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to read submissions: %v", err)
	}
	return out
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseType:    db.TypeSQLite,
		IPHashSalt:      "test-ip-salt",
		InsightQuestion: "Q1",
		InsightInterval: 7 * time.Second,
		SessionTTL:      30 * time.Minute,
		MaxSessions:     100,
		FetchTimeout:    2 * time.Second,
	}
}

// Upstream is a fake HTTP endpoint standing in for the sheet export or the
// question script. It records every request it receives.
type Upstream struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	forms  []url.Values
	hits   int
}

// NewUpstream starts a fake endpoint answering every request with status and body
func NewUpstream(t *testing.T, status int, body string) *Upstream {
	t.Helper()

	u := &Upstream{status: status, body: body}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form := url.Values{}
		if r.Method == http.MethodPost {
			if err := r.ParseForm(); err == nil {
				form = r.PostForm
			}
		}

		u.mu.Lock()
		u.hits++
		u.forms = append(u.forms, form)
		status, body := u.status, u.body
		u.mu.Unlock()

		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(u.Close)

	return u
}

// Respond changes what later requests receive
func (u *Upstream) Respond(status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.status, u.body = status, body
}

// Hits returns the number of requests served
func (u *Upstream) Hits() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits
}

// Forms returns the decoded POST bodies received so far
func (u *Upstream) Forms() []url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]url.Values(nil), u.forms...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded request carrying the session cookie, if any
func MakeFormRequest(method, path string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

// SessionCookie returns the session cookie set on the response, or nil
func SessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			return c
		}
	}
	return nil
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 303 to the given location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %s, got %s", location, got)
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

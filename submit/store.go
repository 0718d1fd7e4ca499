// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is a logged submission.
type Record struct {
	ID        string
	Question  string
	Name      string
	Email     string
	IPHash    *string
	UserAgent *string
	Forwarded bool
	CreatedAt time.Time
}

// Store keeps a local log of submissions in the question_submission table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save inserts a record, assigning its ID and timestamp.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO question_submission (id, question, name, email, ip_hash, user_agent, forwarded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.Question, rec.Name, rec.Email, rec.IPHash, rec.UserAgent, rec.Forwarded, rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("failed to save submission: %w", err)
	}
	return rec, nil
}

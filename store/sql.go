// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollconnect/auth"
	"github.com/danielhkuo/pollconnect/cliparse"
	"github.com/danielhkuo/pollconnect/db"
	"github.com/danielhkuo/pollconnect/models"
)

// SQLStore keeps poll documents as JSON text in a relational database.
// It backs the postgres and sqlite configurations.
type SQLStore struct {
	db      *sql.DB
	backend string
	// SQLite has a single writer; UpdatePoll rounds are serialized in
	// process so concurrent callers do not spend their retries on each other
	swapMu sync.Mutex
}

// NewSQL wraps an open connection and creates the schema if needed
func NewSQL(conn *sql.DB, backend string) (*SQLStore, error) {
	if err := db.CreateSchema(conn); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn, backend: backend}, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, user models.User) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM app_user WHERE username = $1
	`, user.Username).Scan(&exists)
	if err == nil {
		return ErrDuplicate
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("could not look up user: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_user (username, password, created_at)
		VALUES ($1, $2, $3)
	`, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not insert user: %w", err)
	}
	return nil
}

func (s *SQLStore) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT username, password, created_at FROM app_user WHERE username = $1
	`, username).Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("could not load user: %w", err)
	}
	return user, nil
}

func (s *SQLStore) InsertPoll(ctx context.Context, poll models.Poll) (string, error) {
	id, err := auth.GenerateID(12)
	if err != nil {
		return "", err
	}
	poll.ID = id
	poll.Rev = 0
	if poll.CreatedAt.IsZero() {
		poll.CreatedAt = time.Now()
	}

	doc, err := json.Marshal(poll)
	if err != nil {
		return "", fmt.Errorf("could not encode poll: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO poll (id, username, doc, rev, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, poll.Username, string(doc), 0, poll.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("could not insert poll: %w", err)
	}
	return id, nil
}

func (s *SQLStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	return getPoll(ctx, s.db, id)
}

func (s *SQLStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc, rev FROM poll ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("could not list polls: %w", err)
	}
	defer rows.Close()

	polls := []models.Poll{}
	for rows.Next() {
		var id, doc string
		var rev int64
		if err := rows.Scan(&id, &doc, &rev); err != nil {
			return nil, fmt.Errorf("could not scan poll: %w", err)
		}
		poll, err := decodeJSONPoll(id, doc, rev)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not list polls: %w", err)
	}
	return polls, nil
}

func (s *SQLStore) UpdatePoll(ctx context.Context, id string, fn func(poll *models.Poll) error) (models.Poll, error) {
	if s.backend == cliparse.DatabaseSQLite {
		s.swapMu.Lock()
		defer s.swapMu.Unlock()
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		poll, updated, err := s.tryUpdate(ctx, id, fn)
		if err != nil {
			return models.Poll{}, err
		}
		if updated {
			return poll, nil
		}
	}
	return models.Poll{}, ErrConflict
}

// tryUpdate runs one compare-and-swap round: read, apply fn, then write
// only if rev is unchanged. updated is false when another writer bumped
// rev in between.
func (s *SQLStore) tryUpdate(ctx context.Context, id string, fn func(poll *models.Poll) error) (models.Poll, bool, error) {
	poll, err := getPoll(ctx, s.db, id)
	if err != nil {
		return models.Poll{}, false, err
	}

	rev := poll.Rev
	if err := fn(&poll); err != nil {
		return models.Poll{}, false, err
	}
	poll.ID = id
	poll.Rev = rev + 1

	doc, err := json.Marshal(poll)
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("could not encode poll: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE poll SET doc = $1, rev = $2 WHERE id = $3 AND rev = $4
	`, string(doc), poll.Rev, id, rev)
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("could not update poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("could not update poll: %w", err)
	}
	return poll, n == 1, nil
}

func (s *SQLStore) DeletePoll(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM poll WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("could not delete poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete poll: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close(context.Context) error {
	return s.db.Close()
}

func (s *SQLStore) Backend() string {
	return s.backend
}

// DB exposes the underlying connection, used by tests to seed raw documents
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func getPoll(ctx context.Context, q *sql.DB, id string) (models.Poll, error) {
	var doc string
	var rev int64
	err := q.QueryRowContext(ctx, `
		SELECT doc, rev FROM poll WHERE id = $1
	`, id).Scan(&doc, &rev)
	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("could not load poll: %w", err)
	}
	return decodeJSONPoll(id, doc, rev)
}

func decodeJSONPoll(id, doc string, rev int64) (models.Poll, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return models.Poll{}, fmt.Errorf("could not decode poll %s: %w", id, err)
	}

	data, err := json.Marshal(NormalizeLegacyPoll(raw))
	if err != nil {
		return models.Poll{}, fmt.Errorf("could not encode poll %s: %w", id, err)
	}

	var poll models.Poll
	if err := json.Unmarshal(data, &poll); err != nil {
		return models.Poll{}, fmt.Errorf("could not decode poll %s: %w", id, err)
	}
	// Columns are authoritative over the document body
	poll.ID = id
	poll.Rev = rev
	return poll, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

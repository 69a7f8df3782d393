// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/pollconnect/cliparse"
	"github.com/danielhkuo/pollconnect/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrConflict  = errors.New("concurrent update conflict")
)

// Number of compare-and-swap rounds UpdatePoll attempts before giving up
const maxUpdateAttempts = 5

// Store is the data-access handle for the users and polls collections.
// It is opened once at startup and closed at shutdown.
type Store interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, username string) (models.User, error)

	InsertPoll(ctx context.Context, poll models.Poll) (string, error)
	GetPoll(ctx context.Context, id string) (models.Poll, error)
	ListPolls(ctx context.Context) ([]models.Poll, error)
	// UpdatePoll loads the poll, applies fn and writes it back atomically.
	// fn may run more than once if another writer got there first.
	UpdatePoll(ctx context.Context, id string, fn func(poll *models.Poll) error) (models.Poll, error)
	DeletePoll(ctx context.Context, id string) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Backend() string
}

// Open connects to the backend selected in cfg
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseMongo:
		return NewMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName)

	case cliparse.DatabasePostgres, cliparse.DatabaseSQLite:
		conn, err := sql.Open(driverName(cfg.DatabaseType), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if cfg.DatabaseType == cliparse.DatabaseSQLite {
			// sqlite allows a single writer
			conn.SetMaxOpenConns(1)
		}
		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		s, err := NewSQL(conn, cfg.DatabaseType)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}

func driverName(databaseType string) string {
	if databaseType == cliparse.DatabaseSQLite {
		return "sqlite"
	}
	return "postgres"
}

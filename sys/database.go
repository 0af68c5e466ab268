package sys

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/mattn/go-sqlite3"
)

type TrollAction string

const (
	TrollActionStart  TrollAction = "start"
	TrollActionStop   TrollAction = "stop"
	TrollActionClear  TrollAction = "clear"
	TrollActionExpire TrollAction = "expire"
)

// TrollEvent is one row of the troll_history audit trail.
type TrollEvent struct {
	ID              int64
	TargetID        snowflake.ID
	ActorID         snowflake.ID
	Action          TrollAction
	DurationMinutes int
	CreatedAt       time.Time
}

// Database wraps the sqlite file holding bot state and the audit trail.
type Database struct {
	db *sql.DB
}

func OpenDatabase(ctx context.Context, dataSourceName string) (*Database, error) {
	// The driver registers itself via its init() function.
	_ = sqlite3.SQLiteDriver{}

	if dir := filepath.Dir(dataSourceName); dir != "." {
		if err := os.MkdirAll(dir, dataDirMode); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(5)

	d := &Database{db: db}
	if err := d.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	LogDatabase(MsgDatabaseInitSuccess)
	return d, nil
}

func (d *Database) init(ctx context.Context) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := d.db.ExecContext(initCtx, p); err != nil {
			return fmt.Errorf(MsgDatabasePragmaError, p, err)
		}
	}

	tx, err := d.db.BeginTx(initCtx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	tableQueries := []string{
		`CREATE TABLE IF NOT EXISTS bot_config (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS troll_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			target_id TEXT NOT NULL,
			actor_id TEXT NOT NULL,
			action TEXT NOT NULL,
			duration_minutes INTEGER DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
	}
	for _, q := range tableQueries {
		if _, err := tx.ExecContext(initCtx, q); err != nil {
			return fmt.Errorf(MsgDatabaseTableError, err)
		}
	}

	return tx.Commit()
}

func (d *Database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// --- Bot Config ---

// GetBotConfig returns "" when the key has never been set.
func (d *Database) GetBotConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx, "SELECT value FROM bot_config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (d *Database) SetBotConfig(ctx context.Context, key, value string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO bot_config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// --- Troll History ---

func (d *Database) LogTrollEvent(ctx context.Context, ev TrollEvent) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO troll_history (target_id, actor_id, action, duration_minutes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, ev.TargetID.String(), ev.ActorID.String(), string(ev.Action), ev.DurationMinutes, ev.CreatedAt.UTC())
	return err
}

// RecentTrollEvents returns up to limit events, newest first.
func (d *Database) RecentTrollEvents(ctx context.Context, limit int) ([]TrollEvent, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, target_id, actor_id, action, duration_minutes, created_at
		FROM troll_history ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []TrollEvent
	for rows.Next() {
		var ev TrollEvent
		var targetStr, actorStr, action string
		if err := rows.Scan(&ev.ID, &targetStr, &actorStr, &action, &ev.DurationMinutes, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan troll event: %w", err)
		}
		ev.TargetID, err = snowflake.Parse(targetStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse target ID '%s' for troll event %d: %w", targetStr, ev.ID, err)
		}
		// Actor is 0 for events raised by the bot itself.
		ev.ActorID, _ = snowflake.Parse(actorStr)
		ev.Action = TrollAction(action)
		events = append(events, ev)
	}
	return events, rows.Err()
}

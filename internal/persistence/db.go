// Package persistence provides SQLite-based saved-game storage. The engine
// has no knowledge of it: snapshots are opaque JSON blobs of PlayerState
// and CampaignState keyed by a session ID.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/kingpin/internal/game"
)

// ErrNotFound reports a missing save session.
var ErrNotFound = errors.New("save not found")

// DB wraps a SQLite connection for saved games.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		session_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		player_json TEXT NOT NULL,
		campaign_json TEXT NOT NULL,
		day INTEGER NOT NULL,
		net_worth INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_updated ON saves(updated_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRow is one saved session as listed.
type SaveRow struct {
	SessionID string `db:"session_id"`
	Seed      int64  `db:"seed"`
	Day       int    `db:"day"`
	NetWorth  int64  `db:"net_worth"`
	UpdatedAt string `db:"updated_at"`
}

// NewSession allocates a fresh session identifier.
func NewSession() string {
	return uuid.NewString()
}

// Save upserts a snapshot of one session.
func (db *DB) Save(sessionID string, seed int64, p *game.PlayerState, camp *game.CampaignState) error {
	playerJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal player: %w", err)
	}
	campJSON, err := json.Marshal(camp)
	if err != nil {
		return fmt.Errorf("marshal campaign: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO saves (session_id, seed, player_json, campaign_json, day, net_worth, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			seed=excluded.seed,
			player_json=excluded.player_json,
			campaign_json=excluded.campaign_json,
			day=excluded.day,
			net_worth=excluded.net_worth,
			updated_at=excluded.updated_at`,
		sessionID, seed, string(playerJSON), string(campJSON),
		p.Day, p.NetWorth(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

// Load restores a session's snapshot.
func (db *DB) Load(sessionID string) (*game.PlayerState, *game.CampaignState, int64, error) {
	var row struct {
		Seed         int64  `db:"seed"`
		PlayerJSON   string `db:"player_json"`
		CampaignJSON string `db:"campaign_json"`
	}
	err := db.conn.Get(&row, `SELECT seed, player_json, campaign_json FROM saves WHERE session_id = ?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var p game.PlayerState
	if err := json.Unmarshal([]byte(row.PlayerJSON), &p); err != nil {
		return nil, nil, 0, fmt.Errorf("unmarshal player: %w", err)
	}
	var camp game.CampaignState
	if err := json.Unmarshal([]byte(row.CampaignJSON), &camp); err != nil {
		return nil, nil, 0, fmt.Errorf("unmarshal campaign: %w", err)
	}
	return &p, &camp, row.Seed, nil
}

// List returns saved sessions, newest first.
func (db *DB) List() ([]SaveRow, error) {
	var rows []SaveRow
	err := db.conn.Select(&rows, `
		SELECT session_id, seed, day, net_worth, updated_at
		FROM saves ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return rows, nil
}

// Delete removes a saved session.
func (db *DB) Delete(sessionID string) error {
	_, err := db.conn.Exec(`DELETE FROM saves WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}

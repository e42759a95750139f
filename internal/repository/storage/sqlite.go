package storage

import (
	"context"
	"database/sql"
	"fmt"

	// import the SQLite driver to register it with the database/sql package.
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS game_results (
	id          TEXT PRIMARY KEY,
	player_x    TEXT NOT NULL,
	player_o    TEXT NOT NULL,
	winner      TEXT NOT NULL,
	duration_ns INTEGER NOT NULL,
	played_at   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS game_results_player_x ON game_results (player_x, played_at);
CREATE INDEX IF NOT EXISTS game_results_player_o ON game_results (player_o, played_at);
`

type Storage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*Storage, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

// Init - creates the players and game_results tables if they are missing.
func (that *Storage) Init(ctx context.Context) error {
	_, err := that.Connection.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("can't create tables: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}

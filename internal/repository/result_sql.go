package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const resultColumns = `id, player_x, player_o, winner, duration_ns, played_at`

type sqlGameResult struct {
	conn *sql.DB
}

func NewSQLGameResultRepository(conn *sql.DB) GameResultRepository {
	return &sqlGameResult{
		conn: conn,
	}
}

func (that *sqlGameResult) Add(ctx context.Context, result *entity.GameResult) error {
	query := `INSERT INTO game_results (` + resultColumns + `) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.ID,
		result.PlayerX,
		result.PlayerO,
		result.Winner,
		int64(result.Duration),
		result.PlayedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("can't save game result: %w", err)
	}

	return nil
}

func (that *sqlGameResult) GetByID(ctx context.Context, id string) (*entity.GameResult, error) {
	query := `SELECT ` + resultColumns + ` FROM game_results WHERE id = ?`

	result, err := scanResult(that.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game result: %w", err)
	}

	return result, nil
}

func (that *sqlGameResult) GetPlayerGames(ctx context.Context, playerID string, limit int) ([]*entity.GameResult, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT ` + resultColumns + ` FROM game_results
		WHERE player_x = ? OR player_o = ?
		ORDER BY played_at DESC, rowid DESC
		LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, playerID, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("can't get player games: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("can't scan game result: %w", err)
		}

		results = append(results, result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate game results: %w", err)
	}

	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (*entity.GameResult, error) {
	var (
		result   entity.GameResult
		duration int64
		playedAt int64
	)

	if err := row.Scan(&result.ID, &result.PlayerX, &result.PlayerO, &result.Winner, &duration, &playedAt); err != nil {
		return nil, err
	}

	result.Duration = time.Duration(duration)
	result.PlayedAt = time.Unix(0, playedAt).UTC()

	return &result, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sqlPlayer struct {
	conn *sql.DB
}

func NewSQLPlayerRepository(conn *sql.DB) PlayerRepository {
	return &sqlPlayer{
		conn: conn,
	}
}

func (that *sqlPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ?`, player.Name).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("can't check player name: %w", err)
	case owner != player.ID:
		return fmt.Errorf("%w: %q", ErrPlayerNameTaken, player.Name)
	}

	query := `INSERT INTO players (id, name) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`

	if _, err = tx.ExecContext(ctx, query, player.ID, player.Name); err != nil {
		return fmt.Errorf("can't save player: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit player: %w", err)
	}

	return nil
}

func (that *sqlPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	return that.findOne(ctx, `SELECT id, name FROM players WHERE id = ?`, id)
}

func (that *sqlPlayer) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	return that.findOne(ctx, `SELECT id, name FROM players WHERE name = ?`, name)
}

func (that *sqlPlayer) findOne(ctx context.Context, query string, arg string) (*entity.Player, error) {
	var player entity.Player

	err := that.conn.QueryRowContext(ctx, query, arg).Scan(&player.ID, &player.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find player: %w", err)
	}

	return &player, nil
}

func (that *sqlPlayer) List(ctx context.Context) ([]*entity.Player, error) {
	rows, err := that.conn.QueryContext(ctx, `SELECT id, name FROM players ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("can't list players: %w", err)
	}
	defer rows.Close()

	var players []*entity.Player
	for rows.Next() {
		var player entity.Player
		if err = rows.Scan(&player.ID, &player.Name); err != nil {
			return nil, fmt.Errorf("can't scan player: %w", err)
		}

		players = append(players, &player)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate players: %w", err)
	}

	return players, nil
}

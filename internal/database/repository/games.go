package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yochat/yochat/internal/game"
)

// GameRepo handles game sessions.
type GameRepo struct {
	db DBTX
}

func NewGameRepo(db DBTX) *GameRepo { return &GameRepo{db: db} }

func (r *GameRepo) Insert(ctx context.Context, g game.Game) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO games(id, score, money, reputation, completed_orders, served_today, served_total, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?);
	`, g.ID, g.Score, g.Money, g.Reputation, g.CompletedOrders, g.ServedToday, g.ServedTotal, g.CreatedAt)
	return err
}

func (r *GameRepo) Get(ctx context.Context, id string) (game.Game, error) {
	var g game.Game
	err := r.db.QueryRowContext(ctx, `
	SELECT id, score, money, reputation, completed_orders, served_today, served_total, created_at
	FROM games WHERE id = ?`, id).
		Scan(&g.ID, &g.Score, &g.Money, &g.Reputation, &g.CompletedOrders, &g.ServedToday, &g.ServedTotal, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Game{}, ErrNotFound
	}
	return g, err
}

func (r *GameRepo) Update(ctx context.Context, g game.Game) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE games SET score = ?, money = ?, reputation = ?, completed_orders = ?,
	 served_today = ?, served_total = ?
	WHERE id = ?`,
		g.Score, g.Money, g.Reputation, g.CompletedOrders, g.ServedToday, g.ServedTotal, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Top returns the highest-scoring games, descending.
func (r *GameRepo) Top(ctx context.Context, limit int) ([]game.Game, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, score, money, reputation, completed_orders, served_today, served_total, created_at
	FROM games ORDER BY score DESC, created_at ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Game
	for rows.Next() {
		var g game.Game
		if err := rows.Scan(&g.ID, &g.Score, &g.Money, &g.Reputation, &g.CompletedOrders,
			&g.ServedToday, &g.ServedTotal, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

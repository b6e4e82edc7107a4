package repository

import (
	"context"

	"github.com/yochat/yochat/internal/game"
)

// MistakeRepo records violations.
type MistakeRepo struct {
	db DBTX
}

func NewMistakeRepo(db DBTX) *MistakeRepo { return &MistakeRepo{db: db} }

func (r *MistakeRepo) Insert(ctx context.Context, gameID string, m game.Mistake) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO mistakes(game_id, order_id, violation, consequence, created_at)
	VALUES(?, ?, ?, ?, ?);
	`, gameID, m.OrderID, m.Violation, m.Consequence, m.At)
	return err
}

func (r *MistakeRepo) ListByGame(ctx context.Context, gameID string) ([]game.Mistake, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT order_id, violation, consequence, created_at
	FROM mistakes WHERE game_id = ? ORDER BY created_at ASC, id ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Mistake
	for rows.Next() {
		var m game.Mistake
		if err := rows.Scan(&m.OrderID, &m.Violation, &m.Consequence, &m.At); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MistakeRepo) CountByGame(ctx context.Context, gameID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mistakes WHERE game_id = ?`, gameID).Scan(&n)
	return n, err
}

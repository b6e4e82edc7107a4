package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/yochat/yochat/internal/game"
)

// OrderRepo handles orders.
type OrderRepo struct {
	db DBTX
}

func NewOrderRepo(db DBTX) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Insert(ctx context.Context, o game.Order) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO orders(id, game_id, customer_id, restrictions, items, status, wait_minutes, total_price, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, o.ID, o.GameID, o.CustomerID, marshalList(o.Restrictions), marshalList(o.Items),
		o.Status, o.WaitMinutes, o.TotalPrice, o.CreatedAt)
	return err
}

func (r *OrderRepo) Get(ctx context.Context, gameID, id string) (game.Order, error) {
	var o game.Order
	var restr, items string
	err := r.db.QueryRowContext(ctx, `
	SELECT id, game_id, customer_id, restrictions, items, status, wait_minutes, total_price, created_at
	FROM orders WHERE game_id = ? AND id = ?`, gameID, id).
		Scan(&o.ID, &o.GameID, &o.CustomerID, &restr, &items, &o.Status, &o.WaitMinutes, &o.TotalPrice, &o.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Order{}, ErrNotFound
	}
	if err != nil {
		return game.Order{}, err
	}
	o.Restrictions = unmarshalList[game.Restriction](restr)
	o.Items = unmarshalList[string](items)
	return o, nil
}

// Active returns the game's PENDING orders, oldest first.
func (r *OrderRepo) Active(ctx context.Context, gameID string) ([]game.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, game_id, customer_id, restrictions, items, status, wait_minutes, total_price, created_at
	FROM orders WHERE game_id = ? AND status = ? ORDER BY created_at ASC`, gameID, game.OrderPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Order
	for rows.Next() {
		var o game.Order
		var restr, items string
		if err := rows.Scan(&o.ID, &o.GameID, &o.CustomerID, &restr, &items, &o.Status,
			&o.WaitMinutes, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.Restrictions = unmarshalList[game.Restriction](restr)
		o.Items = unmarshalList[string](items)
		out = append(out, o)
	}
	return out, rows.Err()
}

// Resolve marks an order SERVED or FAILED and records the final wait.
func (r *OrderRepo) Resolve(ctx context.Context, id string, status game.OrderStatus, waitMinutes int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, wait_minutes = ? WHERE id = ?`, status, waitMinutes, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

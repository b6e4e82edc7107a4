package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yochat/yochat/internal/game"
)

// CustomerRepo handles generated diners.
type CustomerRepo struct {
	db DBTX
}

func NewCustomerRepo(db DBTX) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) Insert(ctx context.Context, gameID string, c game.Customer) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO customers(id, game_id, name, traits, mood, restrictions, tier,
	 patience, tip_tendency, influence, visit_history, favorite_items, disliked_items,
	 total_spent, average_spending, satisfaction_history, last_visit,
	 return_probability, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		c.ID, gameID, c.Name, marshalList(c.Traits), c.Mood, marshalList(c.Restrictions),
		c.Tier, c.PatienceThreshold, c.TipTendency, c.InfluenceScore,
		marshalList(c.VisitHistory), marshalList(c.FavoriteItems), marshalList(c.DislikedItems),
		c.TotalSpent, c.AverageSpending, marshalList(c.SatisfactionHistory), c.LastVisit,
		c.ReturnProbability)
	return err
}

func (r *CustomerRepo) Get(ctx context.Context, id string) (game.Customer, error) {
	var c game.Customer
	var traits, restr, visits, favs, disliked, history string
	var lastVisit sql.NullTime
	err := r.db.QueryRowContext(ctx, `
	SELECT id, name, traits, mood, restrictions, tier, patience, tip_tendency,
	 influence, visit_history, favorite_items, disliked_items, total_spent,
	 average_spending, satisfaction_history, last_visit, return_probability
	FROM customers WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &traits, &c.Mood, &restr, &c.Tier, &c.PatienceThreshold,
			&c.TipTendency, &c.InfluenceScore, &visits, &favs, &disliked, &c.TotalSpent,
			&c.AverageSpending, &history, &lastVisit, &c.ReturnProbability)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Customer{}, ErrNotFound
	}
	if err != nil {
		return game.Customer{}, err
	}
	c.Traits = unmarshalList[game.Trait](traits)
	c.Restrictions = unmarshalList[game.Restriction](restr)
	c.VisitHistory = unmarshalList[time.Time](visits)
	c.FavoriteItems = unmarshalList[string](favs)
	c.DislikedItems = unmarshalList[string](disliked)
	c.SatisfactionHistory = unmarshalList[float64](history)
	if lastVisit.Valid {
		at := lastVisit.Time
		c.LastVisit = &at
	}
	c.Reviews, err = r.reviews(ctx, c.ID)
	return c, err
}

// ListByGame returns every customer attached to a game, insertion order.
func (r *CustomerRepo) ListByGame(ctx context.Context, gameID string) ([]game.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM customers WHERE game_id = ? ORDER BY created_at ASC, id ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	out := make([]game.Customer, 0, len(ids))
	for _, id := range ids {
		c, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c game.Customer) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE customers SET mood = ?, tier = ?, favorite_items = ?, disliked_items = ?,
	 total_spent = ?, satisfaction_history = ?
	WHERE id = ?`,
		c.Mood, c.Tier, marshalList(c.FavoriteItems), marshalList(c.DislikedItems),
		c.TotalSpent, marshalList(c.SatisfactionHistory), c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CustomerRepo) AddReview(ctx context.Context, customerID string, rv game.Review) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO reviews(id, customer_id, order_id, rating, comment, incident_reported, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?);
	`, rv.ID, customerID, rv.OrderID, rv.Rating, rv.Comment, rv.IncidentReported, rv.CreatedAt)
	return err
}

func (r *CustomerRepo) reviews(ctx context.Context, customerID string) ([]game.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, order_id, rating, comment, incident_reported, created_at
	FROM reviews WHERE customer_id = ? ORDER BY created_at ASC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Review
	for rows.Next() {
		var (
			rv game.Review
			at time.Time
		)
		if err := rows.Scan(&rv.ID, &rv.OrderID, &rv.Rating, &rv.Comment, &rv.IncidentReported, &at); err != nil {
			return nil, err
		}
		rv.CreatedAt = at
		out = append(out, rv)
	}
	return out, rows.Err()
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yochat/yochat/internal/database"
	"github.com/yochat/yochat/internal/game"
	"github.com/yochat/yochat/internal/llm"
)

// stubProvider returns canned content and counts calls so tests can assert
// on caching behavior.
type stubProvider struct {
	mu       sync.Mutex
	customer llm.CustomerSpec
	menu     []llm.MenuItemSpec
	menuErr  error

	menuCalls        int
	consequenceCalls int
}

func (p *stubProvider) GenerateCustomer(context.Context) (llm.CustomerSpec, error) {
	return p.customer, nil
}

func (p *stubProvider) GenerateMenu(context.Context, llm.MenuRequest) ([]llm.MenuItemSpec, error) {
	p.mu.Lock()
	p.menuCalls++
	p.mu.Unlock()
	return p.menu, p.menuErr
}

func (p *stubProvider) GenerateConsequence(_ context.Context, req llm.ConsequenceRequest) (llm.ConsequenceSpec, error) {
	p.mu.Lock()
	p.consequenceCalls++
	p.mu.Unlock()
	return llm.ConsequenceSpec{
		Description:      "The " + req.Violation + " incident",
		VisualEffect:     "smoke",
		SoundEffect:      "gasp",
		MoneyImpact:      -50,
		ScoreImpact:      -100,
		ReputationImpact: -5,
	}, nil
}

func defaultStub() *stubProvider {
	return &stubProvider{
		customer: llm.CustomerSpec{
			Name:                "Sage Lindqvist",
			DietaryRestrictions: []string{"vegan"},
			PatienceLevel:       5,
			TipTendency:         0.2,
		},
		menu: []llm.MenuItemSpec{
			{Name: "Market Salad", Description: "Greens", Price: 10, PreparationTime: 5},
			{Name: "Harvest Curry", Description: "Warm", Price: 15, PreparationTime: 12},
		},
	}
}

func newService(t *testing.T, provider llm.Provider, settings Settings) (*GameService, *sql.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return NewGameService(db, provider, settings), db
}

func TestStartGameDefaults(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{})
	g, err := svc.StartGame(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, g.ID)
	require.Equal(t, 1000.0, g.Money)
	require.Equal(t, 50.0, g.Reputation)

	state, err := svc.GameState(context.Background(), g.ID)
	require.NoError(t, err)
	require.Equal(t, g.ID, state.Game.ID)
	require.Empty(t, state.ActiveOrders)
}

func TestGenerateOrder(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	svc, _ := newService(t, stub, Settings{Seed: 1})
	ctx := context.Background()

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)

	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, "Sage Lindqvist", bundle.Customer.Name)
	require.Equal(t, []game.Restriction{game.RestrictionVegan}, bundle.Customer.Restrictions)
	require.Equal(t, []string{"Market Salad", "Harvest Curry"}, bundle.Order.Items)
	require.Equal(t, 25.0, bundle.Order.TotalPrice)
	require.Equal(t, game.OrderPending, bundle.Order.Status)
	require.Len(t, bundle.Menu, 2)

	// the menu for an identical restriction set is generated once
	_, err = svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)
	require.Equal(t, 1, stub.menuCalls)

	state, err := svc.GameState(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, state.ActiveOrders, 2)
	require.Len(t, state.Customers, 2)
}

func TestGenerateOrderUnknownGame(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{})
	_, err := svc.GenerateOrder(context.Background(), "missing")
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestGenerateOrderMenuFallback(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	stub.menuErr = errors.New("provider down")
	svc, _ := newService(t, stub, Settings{})
	ctx := context.Background()

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, bundle.Menu, 1)
	require.Equal(t, "Safe Default Item", bundle.Menu[0].Name)
	require.Equal(t, 9.99, bundle.Order.TotalPrice)
}

func TestCustomerNormalization(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	stub.customer = llm.CustomerSpec{
		Name:                "Remy Castellanos",
		PersonalityTraits:   []string{"foodie", "dramatic"},
		DietaryRestrictions: []string{"carnivore"},
		PatienceLevel:       99,
		TipTendency:         3,
	}
	svc, _ := newService(t, stub, Settings{})
	ctx := context.Background()

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	c := bundle.Customer
	require.Equal(t, []game.Trait{game.TraitFoodie}, c.Traits)
	require.Equal(t, []game.Restriction{game.RestrictionVegan}, c.Restrictions)
	require.Equal(t, 10, c.PatienceThreshold)
	require.Equal(t, 0.5, c.TipTendency)
	require.Equal(t, game.MoodNeutral, c.Mood)
	require.Equal(t, game.TierFirstTime, c.Tier)
	require.Equal(t, 0.5, c.ReturnProbability)
}

func TestServeOrderSuccess(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{ViolationChance: 0})
	ctx := context.Background()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return start })

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	// served immediately: satisfaction 80, tip 25 * 0.2 * 0.8 = 4
	res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, bundle.Order.Items)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Nil(t, res.Consequence)
	require.NotNil(t, res.Reward)
	require.Equal(t, 80.0, res.Satisfaction)
	require.InDelta(t, 4.0, res.Reward.Tip, 0.001)
	require.Equal(t, 140, res.Reward.Score)
	require.InDelta(t, 1029.0, res.GameState.Money, 0.001)
	require.Equal(t, 51.5, res.GameState.Reputation)
	require.Equal(t, 1, res.GameState.CompletedOrders)
	require.Equal(t, 0, res.GameState.ActiveOrders)
	require.Equal(t, 0, res.GameState.Mistakes)

	// an order can only be served once
	_, err = svc.ServeOrder(ctx, g.ID, bundle.Order.ID, bundle.Order.Items)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestServeOrderWaitPenalty(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{ViolationChance: 0})
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, bundle.Order.Items)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 60.0, res.Satisfaction)
}

func TestServeOrderFavoritesAboveEighty(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	stub.customer.PersonalityTraits = []string{"FOODIE"}
	svc, _ := newService(t, stub, Settings{ViolationChance: 0})
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return fixed })

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	// foodie served instantly: 80 + 10, over the favorites threshold
	res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, bundle.Order.Items)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 90.0, res.Satisfaction)

	state, err := svc.GameState(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, state.Customers, 1)
	require.ElementsMatch(t, bundle.Order.Items, state.Customers[0].FavoriteItems)
	require.Empty(t, state.Customers[0].Reviews)
}

func TestServeOrderLowSatisfactionReview(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{ViolationChance: 0})
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return now })

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	// 26 minutes late: 80 - 52, under the review threshold but still a serve
	now = now.Add(26 * time.Minute)
	res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, bundle.Order.Items)
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, 28.0, res.Satisfaction)

	state, err := svc.GameState(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, state.Customers, 1)
	c := state.Customers[0]
	require.Empty(t, c.FavoriteItems)
	require.Len(t, c.Reviews, 1)
	require.Equal(t, 1, c.Reviews[0].Rating)
	require.Equal(t, "Disappointing experience", c.Reviews[0].Comment)
	require.True(t, c.Reviews[0].IncidentReported)
	require.Equal(t, bundle.Order.ID, c.Reviews[0].OrderID)
}

func TestServeOrderMoneyFloor(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{ViolationChance: 0, StartingMoney: 30})
	ctx := context.Background()

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	require.Equal(t, 30.0, g.Money)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	// consequence costs 50 against a 30 balance: money floors at zero
	res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, []string{"Mystery Meat"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.Equal(t, 0.0, res.GameState.Money)
	require.Equal(t, 0, res.GameState.Score)
}

func TestServeOrderWrongItems(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	svc, db := newService(t, stub, Settings{ViolationChance: 0})
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return fixed })

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	bundle, err := svc.GenerateOrder(ctx, g.ID)
	require.NoError(t, err)

	res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, []string{"Mystery Meat", "Harvest Curry"})
	require.NoError(t, err)
	require.False(t, res.Success)
	require.NotNil(t, res.Consequence)
	require.Equal(t, "The WRONG_ITEM incident", res.Consequence.Description)
	require.Equal(t, 30.0, res.Satisfaction)
	require.Equal(t, 0, res.GameState.Score)
	require.InDelta(t, 950.0, res.GameState.Money, 0.001)
	require.Equal(t, 45.0, res.GameState.Reputation)
	require.Equal(t, 1, res.GameState.Mistakes)
	require.Equal(t, 0, res.GameState.ActiveOrders)

	state, err := svc.GameState(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, state.Mistakes, 1)
	require.Equal(t, game.WrongItemViolation, state.Mistakes[0].Violation)

	var status string
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = ?`, bundle.Order.ID).Scan(&status))
	require.Equal(t, string(game.OrderFailed), status)
}

func TestServeOrderDietaryViolationCached(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	svc, _ := newService(t, stub, Settings{ViolationChance: 1, Seed: 7})
	ctx := context.Background()

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		bundle, err := svc.GenerateOrder(ctx, g.ID)
		require.NoError(t, err)
		res, err := svc.ServeOrder(ctx, g.ID, bundle.Order.ID, bundle.Order.Items)
		require.NoError(t, err)
		require.False(t, res.Success)
		require.Equal(t, "The VEGAN incident", res.Consequence.Description)
	}
	require.Equal(t, 1, stub.consequenceCalls)
}

func TestServeOrderUnknownIDs(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t, defaultStub(), Settings{})
	ctx := context.Background()

	_, err := svc.ServeOrder(ctx, "missing", "order", nil)
	require.ErrorIs(t, err, ErrGameNotFound)

	g, err := svc.StartGame(ctx)
	require.NoError(t, err)
	_, err = svc.ServeOrder(ctx, g.ID, "missing", nil)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestLeaderboardTopTen(t *testing.T) {
	t.Parallel()

	svc, db := newService(t, defaultStub(), Settings{})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		g, err := svc.StartGame(ctx)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `UPDATE games SET score = ? WHERE id = ?`, i*10, g.ID)
		require.NoError(t, err)
	}

	top, err := svc.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, top, 10)
	require.Equal(t, 110, top[0].Score)
	require.Equal(t, 20, top[9].Score)
}

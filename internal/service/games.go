package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yochat/yochat/internal/database"
	"github.com/yochat/yochat/internal/database/repository"
	"github.com/yochat/yochat/internal/game"
	"github.com/yochat/yochat/internal/llm"
)

// Sentinel errors surfaced as 404s by the HTTP layer.
var (
	ErrGameNotFound     = errors.New("game not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
)

const leaderboardSize = 10

// Settings tunes a GameService.
type Settings struct {
	ViolationChance    float64 // chance a served order trips a dietary violation
	StartingMoney      float64
	StartingReputation float64
	Seed               int64 // 0 means time-seeded
}

// GameService orchestrates game sessions over the repositories and the
// content provider. Menus and consequences are generated once per restriction
// set / violation and cached in-process.
type GameService struct {
	DB       *sql.DB
	Provider llm.Provider

	settings Settings
	now      func() time.Time

	mu           sync.Mutex
	rng          *rand.Rand
	menus        map[string][]game.MenuItem
	consequences map[string]game.Consequence
}

func NewGameService(db *sql.DB, provider llm.Provider, settings Settings) *GameService {
	if settings.ViolationChance < 0 {
		settings.ViolationChance = 0
	}
	if settings.ViolationChance > 1 {
		settings.ViolationChance = 1
	}
	if settings.StartingMoney <= 0 {
		settings.StartingMoney = game.StartingMoney
	}
	if settings.StartingReputation <= 0 {
		settings.StartingReputation = game.StartingReputation
	}
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &GameService{
		DB:           db,
		Provider:     provider,
		settings:     settings,
		now:          database.Now,
		rng:          rand.New(rand.NewSource(seed)),
		menus:        map[string][]game.MenuItem{},
		consequences: map[string]game.Consequence{},
	}
}

// SetClock overrides the service clock. Tests use it to control wait times.
func (s *GameService) SetClock(now func() time.Time) { s.now = now }

// StartGame creates and persists a fresh session.
func (s *GameService) StartGame(ctx context.Context) (game.Game, error) {
	g := game.Game{
		ID:         uuid.NewString(),
		Money:      s.settings.StartingMoney,
		Reputation: s.settings.StartingReputation,
		CreatedAt:  s.now(),
	}
	if err := repository.NewGameRepo(s.DB).Insert(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("start game: %w", err)
	}
	return g, nil
}

// OrderBundle is what GenerateOrder hands back: the new order plus the menu
// and customer it was built from.
type OrderBundle struct {
	Order    game.Order      `json:"order"`
	Menu     []game.MenuItem `json:"menu_items"`
	Customer game.Customer   `json:"customer"`
}

// GenerateOrder creates a customer, resolves a menu for their restrictions,
// and opens a pending order covering the full menu.
func (s *GameService) GenerateOrder(ctx context.Context, gameID string) (OrderBundle, error) {
	if _, err := repository.NewGameRepo(s.DB).Get(ctx, gameID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return OrderBundle{}, ErrGameNotFound
		}
		return OrderBundle{}, err
	}

	customer, err := s.generateCustomer(ctx)
	if err != nil {
		return OrderBundle{}, fmt.Errorf("generate customer: %w", err)
	}

	menu, err := s.menuFor(ctx, customer.Restrictions)
	if err != nil {
		return OrderBundle{}, fmt.Errorf("generate menu: %w", err)
	}

	order := game.Order{
		ID:           uuid.NewString(),
		GameID:       gameID,
		CustomerID:   customer.ID,
		Restrictions: customer.Restrictions,
		Status:       game.OrderPending,
		CreatedAt:    s.now(),
	}
	for _, item := range menu {
		order.Items = append(order.Items, item.Name)
		order.TotalPrice += item.Price
	}

	err = database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := repository.NewCustomerRepo(tx).Insert(ctx, gameID, customer); err != nil {
			return err
		}
		return repository.NewOrderRepo(tx).Insert(ctx, order)
	})
	if err != nil {
		return OrderBundle{}, fmt.Errorf("persist order: %w", err)
	}
	return OrderBundle{Order: order, Menu: menu, Customer: customer}, nil
}

// Reward summarizes a successful serve.
type Reward struct {
	Money   float64 `json:"money"`
	Tip     float64 `json:"tip"`
	Score   int     `json:"score"`
	Message string  `json:"message"`
}

// Snapshot is the game-state excerpt returned with every serve result.
type Snapshot struct {
	Score           int     `json:"score"`
	Money           float64 `json:"money"`
	Reputation      float64 `json:"reputation"`
	Mistakes        int     `json:"mistakes"`
	CompletedOrders int     `json:"completed_orders"`
	ActiveOrders    int     `json:"active_orders"`
}

// ServeResult is the outcome of serving an order.
type ServeResult struct {
	Success      bool              `json:"success"`
	Consequence  *game.Consequence `json:"consequence,omitempty"`
	Reward       *Reward           `json:"reward,omitempty"`
	Satisfaction float64           `json:"customer_satisfaction"`
	Mood         game.Mood         `json:"customer_mood"`
	GameState    Snapshot          `json:"game_state"`
}

// ServeOrder resolves a pending order against the items actually served.
// Wrong items and dietary violations fail the order and trigger a
// consequence; otherwise the customer pays up, tips by satisfaction, and the
// game advances.
func (s *GameService) ServeOrder(ctx context.Context, gameID, orderID string, itemsServed []string) (ServeResult, error) {
	gameRepo := repository.NewGameRepo(s.DB)
	g, err := gameRepo.Get(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ServeResult{}, ErrGameNotFound
		}
		return ServeResult{}, err
	}
	order, err := repository.NewOrderRepo(s.DB).Get(ctx, gameID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ServeResult{}, ErrOrderNotFound
		}
		return ServeResult{}, err
	}
	if order.Status != game.OrderPending {
		return ServeResult{}, ErrOrderNotFound
	}
	customer, err := repository.NewCustomerRepo(s.DB).Get(ctx, order.CustomerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ServeResult{}, ErrCustomerNotFound
		}
		return ServeResult{}, err
	}

	waitMinutes := int(s.now().Sub(order.CreatedAt).Minutes())
	if waitMinutes < 0 {
		waitMinutes = 0
	}
	order.WaitMinutes = waitMinutes

	var violations []string
	for range game.WrongItems(itemsServed, order.Items) {
		violations = append(violations, game.WrongItemViolation)
	}
	if len(order.Restrictions) > 0 && s.roll() < s.settings.ViolationChance {
		violations = append(violations, string(order.Restrictions[s.intn(len(order.Restrictions))]))
	}

	if len(violations) > 0 {
		return s.resolveViolation(ctx, g, order, customer, violations)
	}
	return s.resolveSuccess(ctx, g, order, customer, itemsServed)
}

func (s *GameService) resolveViolation(ctx context.Context, g game.Game, order game.Order, customer game.Customer, violations []string) (ServeResult, error) {
	violation := violations[0]
	consequence := s.consequenceFor(ctx, violation)

	satisfaction := game.ViolationSatisfaction(len(violations))
	customer.SatisfactionHistory = append(customer.SatisfactionHistory, satisfaction)

	var review *game.Review
	if satisfaction < 30 {
		review = &game.Review{
			ID:               uuid.NewString(),
			OrderID:          order.ID,
			Rating:           game.ReviewRating(satisfaction),
			Comment:          consequence.Description,
			IncidentReported: true,
			CreatedAt:        s.now(),
		}
	}

	g.Score = maxInt(0, g.Score+consequence.ScoreImpact)
	g.Money = maxFloat(0, g.Money+consequence.MoneyImpact)
	g.Reputation = clamp(g.Reputation+consequence.ReputationImpact, 0, 100)

	mistake := game.Mistake{
		OrderID:     order.ID,
		Violation:   violation,
		Consequence: consequence.Description,
		At:          s.now(),
	}

	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := repository.NewGameRepo(tx).Update(ctx, g); err != nil {
			return err
		}
		if err := repository.NewOrderRepo(tx).Resolve(ctx, order.ID, game.OrderFailed, order.WaitMinutes); err != nil {
			return err
		}
		if err := repository.NewCustomerRepo(tx).Update(ctx, customer); err != nil {
			return err
		}
		if review != nil {
			if err := repository.NewCustomerRepo(tx).AddReview(ctx, customer.ID, *review); err != nil {
				return err
			}
		}
		return repository.NewMistakeRepo(tx).Insert(ctx, order.GameID, mistake)
	})
	if err != nil {
		return ServeResult{}, fmt.Errorf("resolve violation: %w", err)
	}

	snap, err := s.snapshot(ctx, g)
	if err != nil {
		return ServeResult{}, err
	}
	return ServeResult{
		Success:      false,
		Consequence:  &consequence,
		Satisfaction: satisfaction,
		Mood:         customer.Mood,
		GameState:    snap,
	}, nil
}

func (s *GameService) resolveSuccess(ctx context.Context, g game.Game, order game.Order, customer game.Customer, itemsServed []string) (ServeResult, error) {
	satisfaction := game.ServeSatisfaction(customer, order.WaitMinutes)
	tip := game.Tip(order.TotalPrice, customer.TipTendency, satisfaction)

	customer.SatisfactionHistory = append(customer.SatisfactionHistory, satisfaction)
	customer.TotalSpent += order.TotalPrice + tip
	if satisfaction > 80 {
		for _, item := range itemsServed {
			if !containsString(customer.FavoriteItems, item) {
				customer.FavoriteItems = append(customer.FavoriteItems, item)
			}
		}
	}

	var review *game.Review
	if satisfaction > 90 || satisfaction < 30 {
		comment := "Excellent service!"
		if satisfaction < 30 {
			comment = "Disappointing experience"
		}
		review = &game.Review{
			ID:               uuid.NewString(),
			OrderID:          order.ID,
			Rating:           game.ReviewRating(satisfaction),
			Comment:          comment,
			IncidentReported: satisfaction < 30,
			CreatedAt:        s.now(),
		}
	}

	scoreGain := 100 + int(satisfaction/2)
	g.Score += scoreGain
	g.Money += order.TotalPrice + tip
	g.CompletedOrders++
	g.ServedToday++
	g.ServedTotal++
	g.Reputation = clamp(g.Reputation+(satisfaction-50)/20, 0, 100)

	err := database.WithTx(s.DB, func(tx *sql.Tx) error {
		if err := repository.NewGameRepo(tx).Update(ctx, g); err != nil {
			return err
		}
		if err := repository.NewOrderRepo(tx).Resolve(ctx, order.ID, game.OrderServed, order.WaitMinutes); err != nil {
			return err
		}
		if err := repository.NewCustomerRepo(tx).Update(ctx, customer); err != nil {
			return err
		}
		if review != nil {
			return repository.NewCustomerRepo(tx).AddReview(ctx, customer.ID, *review)
		}
		return nil
	})
	if err != nil {
		return ServeResult{}, fmt.Errorf("resolve success: %w", err)
	}

	snap, err := s.snapshot(ctx, g)
	if err != nil {
		return ServeResult{}, err
	}
	return ServeResult{
		Success: true,
		Reward: &Reward{
			Money:   order.TotalPrice + tip,
			Tip:     tip,
			Score:   scoreGain,
			Message: fmt.Sprintf("Order served successfully! Customer satisfaction: %.0f%%", satisfaction),
		},
		Satisfaction: satisfaction,
		Mood:         customer.Mood,
		GameState:    snap,
	}, nil
}

// State is the full session view.
type State struct {
	Game         game.Game       `json:"game"`
	ActiveOrders []game.Order    `json:"active_orders"`
	Customers    []game.Customer `json:"customers"`
	Mistakes     []game.Mistake  `json:"mistakes"`
}

// GameState loads the full state of one session.
func (s *GameService) GameState(ctx context.Context, gameID string) (State, error) {
	g, err := repository.NewGameRepo(s.DB).Get(ctx, gameID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return State{}, ErrGameNotFound
		}
		return State{}, err
	}
	orders, err := repository.NewOrderRepo(s.DB).Active(ctx, gameID)
	if err != nil {
		return State{}, err
	}
	customers, err := repository.NewCustomerRepo(s.DB).ListByGame(ctx, gameID)
	if err != nil {
		return State{}, err
	}
	mistakes, err := repository.NewMistakeRepo(s.DB).ListByGame(ctx, gameID)
	if err != nil {
		return State{}, err
	}
	return State{Game: g, ActiveOrders: orders, Customers: customers, Mistakes: mistakes}, nil
}

// Leaderboard returns the top sessions by score.
func (s *GameService) Leaderboard(ctx context.Context) ([]game.Game, error) {
	return repository.NewGameRepo(s.DB).Top(ctx, leaderboardSize)
}

func (s *GameService) generateCustomer(ctx context.Context) (game.Customer, error) {
	spec, err := s.Provider.GenerateCustomer(ctx)
	if err != nil {
		return game.Customer{}, err
	}

	customer := game.Customer{
		ID:                uuid.NewString(),
		Name:              spec.Name,
		Mood:              game.MoodNeutral,
		Tier:              game.TierFirstTime,
		PatienceThreshold: clampInt(spec.PatienceLevel, 1, 10),
		TipTendency:       clamp(spec.TipTendency, 0, 0.5),
		InfluenceScore:    1,
		ReturnProbability: 0.5,
	}
	if customer.Name == "" {
		customer.Name = fmt.Sprintf("Customer_%04d", 1000+s.intn(9000))
	}
	for _, t := range spec.PersonalityTraits {
		if trait := game.Trait(strings.ToUpper(strings.TrimSpace(t))); knownTrait(trait) {
			customer.Traits = append(customer.Traits, trait)
		}
	}
	for _, r := range spec.DietaryRestrictions {
		if restr := game.Restriction(strings.ToUpper(strings.TrimSpace(r))); knownRestriction(restr) {
			customer.Restrictions = append(customer.Restrictions, restr)
		}
	}
	if len(customer.Restrictions) == 0 {
		// the house specialty question has to come up for someone
		customer.Restrictions = []game.Restriction{game.RestrictionVegan}
	}
	return customer, nil
}

// menuFor returns the cached menu for a restriction set, generating it on
// first use. Generation failures fall back to a safe default so the game
// never stalls on the provider.
func (s *GameService) menuFor(ctx context.Context, restrictions []game.Restriction) ([]game.MenuItem, error) {
	key := menuKey(restrictions)

	s.mu.Lock()
	cached, ok := s.menus[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	names := make([]string, 0, len(restrictions))
	for _, r := range restrictions {
		names = append(names, string(r))
	}
	specs, err := s.Provider.GenerateMenu(ctx, llm.MenuRequest{Restrictions: names, Count: 3})

	var menu []game.MenuItem
	if err != nil || len(specs) == 0 {
		menu = []game.MenuItem{{
			Name:         "Safe Default Item",
			Description:  "A simple item that meets all dietary restrictions",
			Price:        9.99,
			Restrictions: restrictions,
			PrepMinutes:  10,
		}}
	} else {
		for _, spec := range specs {
			menu = append(menu, game.MenuItem{
				Name:         spec.Name,
				Description:  spec.Description,
				Price:        spec.Price,
				Restrictions: restrictions,
				PrepMinutes:  spec.PreparationTime,
			})
		}
	}

	s.mu.Lock()
	s.menus[key] = menu
	s.mu.Unlock()
	return menu, nil
}

// consequenceFor returns the cached consequence for a violation, generating
// it on first use with a deterministic fallback.
func (s *GameService) consequenceFor(ctx context.Context, violation string) game.Consequence {
	s.mu.Lock()
	cached, ok := s.consequences[violation]
	s.mu.Unlock()
	if ok {
		return cached
	}

	var c game.Consequence
	spec, err := s.Provider.GenerateConsequence(ctx, llm.ConsequenceRequest{Violation: violation})
	if err != nil {
		c = game.Consequence{
			Description:      fmt.Sprintf("Customer is unhappy about the %s violation", violation),
			VisualEffect:     "angry_customer",
			SoundEffect:      "complaint",
			MoneyImpact:      -50,
			ScoreImpact:      -100,
			ReputationImpact: -5,
		}
	} else {
		c = game.Consequence{
			Description:      spec.Description,
			VisualEffect:     spec.VisualEffect,
			SoundEffect:      spec.SoundEffect,
			MoneyImpact:      spec.MoneyImpact,
			ScoreImpact:      spec.ScoreImpact,
			ReputationImpact: spec.ReputationImpact,
		}
	}

	s.mu.Lock()
	s.consequences[violation] = c
	s.mu.Unlock()
	return c
}

func (s *GameService) snapshot(ctx context.Context, g game.Game) (Snapshot, error) {
	mistakes, err := repository.NewMistakeRepo(s.DB).CountByGame(ctx, g.ID)
	if err != nil {
		return Snapshot{}, err
	}
	active, err := repository.NewOrderRepo(s.DB).Active(ctx, g.ID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Score:           g.Score,
		Money:           g.Money,
		Reputation:      g.Reputation,
		Mistakes:        mistakes,
		CompletedOrders: g.CompletedOrders,
		ActiveOrders:    len(active),
	}, nil
}

func (s *GameService) roll() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *GameService) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func menuKey(restrictions []game.Restriction) string {
	names := make([]string, 0, len(restrictions))
	for _, r := range restrictions {
		names = append(names, string(r))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func knownTrait(t game.Trait) bool {
	switch t {
	case game.TraitPatient, game.TraitImpatient, game.TraitPicky, game.TraitGenerous,
		game.TraitInfluencer, game.TraitKaren, game.TraitRegular, game.TraitFoodie,
		game.TraitHealthConscious:
		return true
	}
	return false
}

func knownRestriction(r game.Restriction) bool {
	for _, known := range game.AllRestrictions {
		if r == known {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

package llm

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// OfflineProvider is a deterministic, seedable generator used when no API key
// is configured and by tests. It mimics the interface and output shapes so the
// rest of the app stays identical whichever provider is wired.
type OfflineProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewOfflineProvider(seed int64) *OfflineProvider {
	return &OfflineProvider{rng: rand.New(rand.NewSource(seed))}
}

var (
	offlineTraits = []string{
		"PATIENT", "IMPATIENT", "PICKY", "GENEROUS", "INFLUENCER",
		"KAREN", "REGULAR", "FOODIE", "HEALTH_CONSCIOUS",
	}
	offlineRestrictions = []string{
		"GLUTEN", "LACTOSE", "VEGAN", "VEGETARIAN", "HALAL", "KOSHER", "NUT",
	}
	offlineFirstNames = []string{
		"Quinoa", "Basil", "Saffron", "Miso", "Tahini", "Kale", "Pesto", "Umami",
	}
	offlineLastNames = []string{
		"Jackson", "Nguyen", "Okafor", "Petrov", "Ramirez", "Schmidt", "Tanaka",
	}
)

func (p *OfflineProvider) GenerateCustomer(ctx context.Context) (CustomerSpec, error) {
	if err := ctx.Err(); err != nil {
		return CustomerSpec{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	traits := p.pick(offlineTraits, 2)
	restrictions := p.pick(offlineRestrictions, 1+p.rng.Intn(2))
	return CustomerSpec{
		Name:                fmt.Sprintf("%s %s", p.one(offlineFirstNames), p.one(offlineLastNames)),
		PersonalityTraits:   traits,
		DietaryRestrictions: restrictions,
		PatienceLevel:       1 + p.rng.Intn(10),
		TipTendency:         float64(p.rng.Intn(51)) / 100,
	}, nil
}

func (p *OfflineProvider) GenerateMenu(ctx context.Context, req MenuRequest) ([]MenuItemSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	count := req.Count
	if count <= 0 {
		count = 3
	}
	label := "everything-friendly"
	if len(req.Restrictions) > 0 {
		label = strings.ToLower(strings.Join(req.Restrictions, "-")) + "-safe"
	}
	bases := []string{"Buddha Bowl", "Stuffed Peppers", "Garden Flatbread", "Harvest Curry", "Market Salad", "Root Veg Roast"}
	items := make([]MenuItemSpec, 0, count)
	for i := 0; i < count; i++ {
		base := bases[p.rng.Intn(len(bases))]
		items = append(items, MenuItemSpec{
			Name:            fmt.Sprintf("%s %s #%d", properCap(label), base, i+1),
			Description:     fmt.Sprintf("A %s take on the classic %s.", label, strings.ToLower(base)),
			Price:           8 + float64(p.rng.Intn(1200))/100,
			PreparationTime: 5 + p.rng.Intn(20),
		})
	}
	return items, nil
}

func (p *OfflineProvider) GenerateConsequence(ctx context.Context, req ConsequenceRequest) (ConsequenceSpec, error) {
	if err := ctx.Err(); err != nil {
		return ConsequenceSpec{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	effects := map[string]struct{ visual, sound string }{
		"GLUTEN":  {"bloat_cloud", "rumble"},
		"LACTOSE": {"green_face", "gurgle"},
		"VEGAN":   {"protest_signs", "chanting"},
		"NUT":     {"red_alert", "siren"},
	}
	fx, ok := effects[strings.ToUpper(req.Violation)]
	if !ok {
		fx = struct{ visual, sound string }{"angry_customer", "complaint"}
	}
	return ConsequenceSpec{
		Description:      fmt.Sprintf("Customer discovers the %s violation and makes it everyone's problem", req.Violation),
		VisualEffect:     fx.visual,
		SoundEffect:      fx.sound,
		MoneyImpact:      -float64(30 + p.rng.Intn(41)),
		ScoreImpact:      -(50 + p.rng.Intn(101)),
		ReputationImpact: -float64(2 + p.rng.Intn(7)),
	}, nil
}

// pick returns n distinct entries from pool.
func (p *OfflineProvider) pick(pool []string, n int) []string {
	idx := p.rng.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, 0, n)
	for _, i := range idx[:n] {
		out = append(out, pool[i])
	}
	return out
}

func (p *OfflineProvider) one(pool []string) string {
	return pool[p.rng.Intn(len(pool))]
}

func properCap(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

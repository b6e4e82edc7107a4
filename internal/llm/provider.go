package llm

import "context"

// Provider defines the generators used by the game service.
type Provider interface {
	GenerateCustomer(ctx context.Context) (CustomerSpec, error)
	GenerateMenu(ctx context.Context, req MenuRequest) ([]MenuItemSpec, error)
	GenerateConsequence(ctx context.Context, req ConsequenceRequest) (ConsequenceSpec, error)
}

// CustomerSpec is the generated shape of a new diner.
type CustomerSpec struct {
	Name                string   `json:"name"`
	PersonalityTraits   []string `json:"personality_traits"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	PatienceLevel       int      `json:"patience_level"` // 1..10
	TipTendency         float64  `json:"tip_tendency"`   // 0..0.5
}

// MenuRequest asks for dishes safe under the given restrictions.
type MenuRequest struct {
	Restrictions []string `json:"restrictions"`
	Count        int      `json:"count"`
}

// MenuItemSpec is one generated dish.
type MenuItemSpec struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	PreparationTime int     `json:"preparation_time"`
}

// ConsequenceRequest asks for the fallout of violating one restriction.
type ConsequenceRequest struct {
	Violation string `json:"violation"`
}

// ConsequenceSpec is the generated fallout.
type ConsequenceSpec struct {
	Description      string  `json:"description"`
	VisualEffect     string  `json:"visual_effect"`
	SoundEffect      string  `json:"sound_effect"`
	MoneyImpact      float64 `json:"money_impact"`
	ScoreImpact      int     `json:"score_impact"`
	ReputationImpact float64 `json:"reputation_impact"`
}

package game

import "time"

// Restriction is a dietary restriction a customer may carry.
type Restriction string

const (
	RestrictionGluten     Restriction = "GLUTEN"
	RestrictionLactose    Restriction = "LACTOSE"
	RestrictionVegan      Restriction = "VEGAN"
	RestrictionVegetarian Restriction = "VEGETARIAN"
	RestrictionHalal      Restriction = "HALAL"
	RestrictionKosher     Restriction = "KOSHER"
	RestrictionNut        Restriction = "NUT"
)

// AllRestrictions lists every known restriction, used for validation and
// by the offline generator.
var AllRestrictions = []Restriction{
	RestrictionGluten, RestrictionLactose, RestrictionVegan,
	RestrictionVegetarian, RestrictionHalal, RestrictionKosher, RestrictionNut,
}

// ConsequenceKind classifies what happens when a restriction is violated.
type ConsequenceKind string

const (
	ConsequenceRefund           ConsequenceKind = "REFUND"
	ConsequenceToiletExplosion  ConsequenceKind = "TOILET_EXPLOSION"
	ConsequenceAnger            ConsequenceKind = "ANGER"
	ConsequenceFlatulence       ConsequenceKind = "FLATULENCE"
	ConsequenceReligiousOffense ConsequenceKind = "RELIGIOUS_OFFENSE"
	ConsequenceSeizure          ConsequenceKind = "SEIZURE"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

const (
	OrderPending OrderStatus = "PENDING"
	OrderServed  OrderStatus = "SERVED"
	OrderFailed  OrderStatus = "FAILED"
)

// Trait is a customer personality trait.
type Trait string

const (
	TraitPatient         Trait = "PATIENT"
	TraitImpatient       Trait = "IMPATIENT"
	TraitPicky           Trait = "PICKY"
	TraitGenerous        Trait = "GENEROUS"
	TraitInfluencer      Trait = "INFLUENCER"
	TraitKaren           Trait = "KAREN"
	TraitRegular         Trait = "REGULAR"
	TraitFoodie          Trait = "FOODIE"
	TraitHealthConscious Trait = "HEALTH_CONSCIOUS"
)

// Mood is a customer's current mood.
type Mood string

const (
	MoodHappy   Mood = "HAPPY"
	MoodNeutral Mood = "NEUTRAL"
	MoodAnnoyed Mood = "ANNOYED"
	MoodAngry   Mood = "ANGRY"
	MoodHangry  Mood = "HANGRY"
)

// Tier buckets customers by visit frequency.
type Tier string

const (
	TierFirstTime Tier = "FIRST_TIME"
	TierRegular   Tier = "REGULAR"
	TierFrequent  Tier = "FREQUENT"
	TierVIP       Tier = "VIP"
)

// MenuItem is a dish safe for a given restriction set.
type MenuItem struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Restrictions []Restriction `json:"restrictions"`
	PrepMinutes  int           `json:"preparation_time"`
}

// Review is feedback left by a customer after an order resolves.
type Review struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"order_id"`
	Rating           int       `json:"rating"`
	Comment          string    `json:"comment"`
	IncidentReported bool      `json:"incident_reported"`
	CreatedAt        time.Time `json:"timestamp"`
}

// Customer is a generated diner with personality and dietary needs.
type Customer struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	Traits              []Trait       `json:"personality_traits"`
	Mood                Mood          `json:"current_mood"`
	Restrictions        []Restriction `json:"dietary_restrictions"`
	Tier                Tier          `json:"current_tier"`
	PatienceThreshold   int           `json:"patience_threshold"` // 1..10
	TipTendency         float64       `json:"tip_tendency"`       // 0..0.5
	InfluenceScore      int           `json:"influence_score"`    // 1..100
	VisitHistory        []time.Time   `json:"visit_history"`
	FavoriteItems       []string      `json:"favorite_items"`
	DislikedItems       []string      `json:"disliked_items"`
	TotalSpent          float64       `json:"total_spent"`
	AverageSpending     float64       `json:"average_spending"`
	SatisfactionHistory []float64     `json:"satisfaction_history"`
	LastVisit           *time.Time    `json:"last_visit"`
	ReturnProbability   float64       `json:"return_probability"` // 0..1
	Reviews             []Review      `json:"reviews_given"`
}

// Order is a customer's pending request for a set of menu items.
type Order struct {
	ID           string        `json:"id"`
	GameID       string        `json:"-"`
	CustomerID   string        `json:"customer_id"`
	Restrictions []Restriction `json:"restrictions"`
	Items        []string      `json:"items_ordered"`
	Status       OrderStatus   `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	WaitMinutes  int           `json:"wait_time"`
	TotalPrice   float64       `json:"total_price"`
}

// Mistake records a violation and the consequence it triggered.
type Mistake struct {
	OrderID     string    `json:"order_id"`
	Violation   string    `json:"violation"`
	Consequence string    `json:"consequence"`
	At          time.Time `json:"timestamp"`
}

// Game is one player session.
type Game struct {
	ID              string    `json:"player_id"`
	Score           int       `json:"score"`
	Money           float64   `json:"money"`
	Reputation      float64   `json:"reputation"` // 0..100
	CompletedOrders int       `json:"completed_orders"`
	ServedToday     int       `json:"daily_customers_served"`
	ServedTotal     int       `json:"total_customers_served"`
	CreatedAt       time.Time `json:"-"`
}

// Consequence is what befalls the player after a dietary violation.
type Consequence struct {
	Description      string  `json:"description"`
	VisualEffect     string  `json:"visual_effect"`
	SoundEffect      string  `json:"sound_effect"`
	MoneyImpact      float64 `json:"money_impact"`
	ScoreImpact      int     `json:"score_impact"`
	ReputationImpact float64 `json:"reputation_impact"`
}

package game

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// StartingMoney and StartingReputation are the defaults for a fresh game;
	// config may override them.
	StartingMoney      = 1000.0
	StartingReputation = 50.0

	// DefaultViolationChance is the base probability that a served order
	// trips a dietary violation even when the items match.
	DefaultViolationChance = 0.3
)

// WrongItemViolation marks a served item that was never ordered.
const WrongItemViolation = "WRONG_ITEM"

// TraitWeights tunes how a personality trait colors outcomes.
type TraitWeights struct {
	ComplaintChance  float64
	ReturnRate       float64
	TipModifier      float64
	ReputationImpact float64
}

var traitWeights = map[Trait]TraitWeights{
	TraitKaren: {
		ComplaintChance:  0.8,
		ReturnRate:       0.3,
		TipModifier:      -0.5,
		ReputationImpact: -2.0,
	},
	TraitInfluencer: {
		ComplaintChance:  0.4,
		ReturnRate:       0.6,
		TipModifier:      0.2,
		ReputationImpact: 3.0,
	},
}

// WeightsFor returns the tuning weights for a trait; the zero value means
// the trait carries no special weighting.
func WeightsFor(t Trait) TraitWeights { return traitWeights[t] }

// HasTrait reports whether the customer carries the given trait.
func (c Customer) HasTrait(t Trait) bool {
	for _, have := range c.Traits {
		if have == t {
			return true
		}
	}
	return false
}

// OutcomeFacts feeds BaselineSatisfaction.
type OutcomeFacts struct {
	Perfect          bool
	HasMistakes      bool
	DietaryViolation bool
}

// BaselineSatisfaction scores an order outcome against the customer model:
// start at 70, dock impatient customers for waiting relative to their patience
// threshold, reward a perfect order, punish mistakes, and zero out entirely on
// a dietary violation.
func BaselineSatisfaction(c Customer, facts OutcomeFacts, waitMinutes int) float64 {
	s := 70.0
	if c.HasTrait(TraitImpatient) && c.PatienceThreshold > 0 {
		s -= (float64(waitMinutes) / float64(c.PatienceThreshold)) * 10
	}
	if facts.Perfect {
		s += 20
	} else if facts.HasMistakes {
		s -= 30
	}
	if facts.DietaryViolation {
		s = 0
	}
	return clamp(s, 0, 100)
}

// ServeSatisfaction scores a successfully served order. Waiting costs two
// points a minute, impatient customers lose three more per minute, and
// foodies forgive ten points of anything.
func ServeSatisfaction(c Customer, waitMinutes int) float64 {
	s := 80.0 - float64(waitMinutes)*2
	if c.HasTrait(TraitImpatient) {
		s -= float64(waitMinutes) * 3
	}
	if c.HasTrait(TraitFoodie) {
		s += 10
	}
	return clamp(s, 0, 100)
}

// ViolationSatisfaction scores a botched order by violation count.
func ViolationSatisfaction(violations int) float64 {
	return clamp(50-float64(violations)*20, 0, 100)
}

// Tip computes the gratuity for an order: tendency scaled by satisfaction.
func Tip(orderTotal, tipTendency, satisfaction float64) float64 {
	return orderTotal * tipTendency * (satisfaction / 100)
}

// ReviewRating maps satisfaction onto a 1..5 star rating.
func ReviewRating(satisfaction float64) int {
	r := int(satisfaction / 20)
	if r < 1 {
		r = 1
	}
	return r
}

// itemMatchDistance is the levenshtein budget under which a served item name
// still counts as the ordered item. Two edits tolerates the typos players
// actually make without letting "Tofu Bowl" pass for "Poke Bowl".
const itemMatchDistance = 2

// MatchOrdered reports whether a served item matches any ordered item,
// tolerating small spelling differences. Comparison is case-insensitive.
func MatchOrdered(served string, ordered []string) bool {
	s := normalizeItem(served)
	for _, o := range ordered {
		if levenshtein.ComputeDistance(s, normalizeItem(o)) <= itemMatchDistance {
			return true
		}
	}
	return false
}

// WrongItems returns the served items that match nothing in the order.
func WrongItems(served, ordered []string) []string {
	var wrong []string
	for _, s := range served {
		if !MatchOrdered(s, ordered) {
			wrong = append(wrong, s)
		}
	}
	return wrong
}

func normalizeItem(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
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

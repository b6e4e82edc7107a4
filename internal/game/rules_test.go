package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServeSatisfaction(t *testing.T) {
	t.Parallel()

	plain := Customer{PatienceThreshold: 5}
	impatient := Customer{Traits: []Trait{TraitImpatient}, PatienceThreshold: 5}
	foodie := Customer{Traits: []Trait{TraitFoodie}, PatienceThreshold: 5}

	cases := []struct {
		name     string
		customer Customer
		wait     int
		want     float64
	}{
		{"instant serve", plain, 0, 80},
		{"five minute wait", plain, 5, 70},
		{"impatient pays extra", impatient, 5, 55},
		{"foodie forgives", foodie, 5, 80},
		{"floor at zero", impatient, 60, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ServeSatisfaction(tc.customer, tc.wait))
		})
	}
}

func TestViolationSatisfaction(t *testing.T) {
	t.Parallel()

	require.Equal(t, 30.0, ViolationSatisfaction(1))
	require.Equal(t, 10.0, ViolationSatisfaction(2))
	require.Equal(t, 0.0, ViolationSatisfaction(3))
	require.Equal(t, 0.0, ViolationSatisfaction(10))
}

func TestBaselineSatisfaction(t *testing.T) {
	t.Parallel()

	c := Customer{Traits: []Trait{TraitImpatient}, PatienceThreshold: 5}

	perfect := BaselineSatisfaction(c, OutcomeFacts{Perfect: true}, 0)
	require.Equal(t, 90.0, perfect)

	mistakes := BaselineSatisfaction(c, OutcomeFacts{HasMistakes: true}, 0)
	require.Equal(t, 40.0, mistakes)

	// a ten minute wait against patience 5 docks 20 points
	waited := BaselineSatisfaction(c, OutcomeFacts{}, 10)
	require.Equal(t, 50.0, waited)

	violated := BaselineSatisfaction(c, OutcomeFacts{Perfect: true, DietaryViolation: true}, 0)
	require.Equal(t, 0.0, violated)
}

func TestTip(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 4.5, Tip(30, 0.15, 100), 1e-9)
	require.InDelta(t, 2.25, Tip(30, 0.15, 50), 1e-9)
	require.Equal(t, 0.0, Tip(30, 0.15, 0))
}

func TestReviewRating(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, ReviewRating(0))
	require.Equal(t, 1, ReviewRating(25))
	require.Equal(t, 2, ReviewRating(45))
	require.Equal(t, 4, ReviewRating(95))
	require.Equal(t, 5, ReviewRating(100))
}

func TestMatchOrdered(t *testing.T) {
	t.Parallel()

	ordered := []string{"Vegan Buddha Bowl", "Stuffed Peppers"}

	require.True(t, MatchOrdered("Vegan Buddha Bowl", ordered))
	require.True(t, MatchOrdered("vegan buddha bowl", ordered))
	require.True(t, MatchOrdered("Vegan Budda Bowl", ordered))  // one typo
	require.True(t, MatchOrdered("Stuffed  Peppers ", ordered)) // whitespace noise
	require.False(t, MatchOrdered("Beef Burger", ordered))
	require.False(t, MatchOrdered("Vegan Noodle Bowl", ordered)) // too far off
}

func TestWrongItems(t *testing.T) {
	t.Parallel()

	ordered := []string{"Garden Flatbread", "Market Salad"}
	wrong := WrongItems([]string{"Garden Flatbread", "Pepperoni Pizza", "Lamb Kebab"}, ordered)
	require.Equal(t, []string{"Pepperoni Pizza", "Lamb Kebab"}, wrong)

	require.Empty(t, WrongItems([]string{"Market Salad"}, ordered))
	require.Empty(t, WrongItems(nil, ordered))
}

func TestWeightsFor(t *testing.T) {
	t.Parallel()

	karen := WeightsFor(TraitKaren)
	require.Equal(t, 0.8, karen.ComplaintChance)
	require.Equal(t, -2.0, karen.ReputationImpact)

	// unweighted traits come back zero
	require.Zero(t, WeightsFor(TraitPatient))
}

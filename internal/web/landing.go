package web

import (
	"fmt"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// Card describes one navigation card. The two instances below are the whole
// data model of the landing page.
type Card struct {
	Icon        g.Node
	Title       string
	ButtonLabel string
	Href        string
}

// Cards returns the landing page's navigation cards in display order.
func Cards() []Card {
	return []Card{
		{Icon: CalendarIcon(), Title: "Plan Your Event", ButtonLabel: "Start Planning", Href: "/plan-event"},
		{Icon: GamepadIcon(), Title: "Sandbox Mode", ButtonLabel: "Enter Training Game", Href: "/game"},
	}
}

// LandingPage renders the full landing document: animated vortex backdrop,
// hero heading, and the two navigation cards.
func LandingPage(theme Theme) g.Node {
	return c.HTML5(c.HTML5Props{
		Title:       "Yo Chat, Is This Vegan?",
		Description: "Event planning and a sandbox training game for dietary-restriction chaos.",
		Language:    "en",
		Head: []g.Node{
			StyleEl(g.Raw(Stylesheet(theme))),
		},
		Body: []g.Node{
			Div(Class("vortex"), Aria("hidden", "true")),
			Main(Class("landing"),
				H1(Class("hero stagger-item stagger-1"), g.Text("Yo Chat, Is This Vegan?")),
				Div(Class("card-row"),
					navCards(Cards()),
				),
			),
		},
	})
}

// navCards staggers each card after the hero, which occupies slot one.
func navCards(cards []Card) g.Node {
	nodes := make([]g.Node, 0, len(cards))
	for i, card := range cards {
		nodes = append(nodes, navCard(card, i+2))
	}
	return g.Group(nodes)
}

func navCard(card Card, slot int) g.Node {
	return Div(Class(fmt.Sprintf("card stagger-item stagger-%d", slot)),
		Span(Class("card-icon"), card.Icon),
		H2(g.Text(card.Title)),
		A(Class("card-button"), Href(card.Href), g.Text(card.ButtonLabel)),
	)
}

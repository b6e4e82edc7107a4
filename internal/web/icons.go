package web

import (
	g "maragu.dev/gomponents"
)

// Inline lucide-style glyphs so the page carries no asset dependencies.

func CalendarIcon() g.Node {
	return svg(
		g.El("rect", g.Attr("x", "3"), g.Attr("y", "4"), g.Attr("width", "18"), g.Attr("height", "18"), g.Attr("rx", "2"), g.Attr("ry", "2")),
		line("16", "2", "16", "6"),
		line("8", "2", "8", "6"),
		line("3", "10", "21", "10"),
	)
}

func GamepadIcon() g.Node {
	return svg(
		line("6", "11", "10", "11"),
		line("8", "9", "8", "13"),
		line("15", "12", "15.01", "12"),
		line("18", "10", "18.01", "10"),
		g.El("path", g.Attr("d", "M17.32 5H6.68a4 4 0 0 0-3.978 3.59c-.006.052-.01.101-.017.152C2.604 9.416 2 14.456 2 16a3 3 0 0 0 3 3c1 0 1.5-.5 2-1l1.414-1.414A2 2 0 0 1 9.828 16h4.344a2 2 0 0 1 1.414.586L17 18c.5.5 1 1 2 1a3 3 0 0 0 3-3c0-1.545-.604-6.584-.685-7.258-.007-.05-.011-.1-.017-.151A4 4 0 0 0 17.32 5z")),
	)
}

func svg(children ...g.Node) g.Node {
	attrs := []g.Node{
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("width", "48"),
		g.Attr("height", "48"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
	}
	return g.El("svg", append(attrs, children...)...)
}

func line(x1, y1, x2, y2 string) g.Node {
	return g.El("line", g.Attr("x1", x1), g.Attr("y1", y1), g.Attr("x2", x2), g.Attr("y2", y2))
}

package sink

import (
	"html"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/geom"
)

// textItem is a label to draw centered on pos, with entities decoded.
type textItem struct {
	pos  geom.Vec2
	text string
}

// labels returns the set side labels in AB, AC, BC order followed by the
// theta label, matching the SVG fragment order.
func labels(l diagram.Layout) []textItem {
	out := make([]textItem, 0, 4)
	for _, s := range diagram.Sides {
		if text, ok := l.Label(s); ok {
			out = append(out, textItem{pos: l.Anchor(s), text: html.UnescapeString(text)})
		}
	}
	return append(out, textItem{pos: l.Theta(), text: html.UnescapeString(l.ThetaLabel())})
}

package diagram

import (
	"math"

	"github.com/matzehuels/mathproblem/pkg/geom"
	"github.com/matzehuels/mathproblem/pkg/render/svg"
)

type label struct {
	text string
	set  bool
}

// Layout is a positioned right-triangle diagram. Layout is a value type: all
// points are stored in arrays, so assigning a Layout copies it and no method
// mutates its receiver.
type Layout struct {
	a, b, c     geom.Vec2
	anchors     [3]geom.Vec2 // indexed by Side
	labels      [3]label     // indexed by Side
	theta       geom.Vec2
	thetaVertex Vertex
	thetaLabel  string
	bracket     [3]geom.Vec2
}

// A returns the right-angle vertex.
func (l Layout) A() geom.Vec2 { return l.a }

// B returns the end of the horizontal leg.
func (l Layout) B() geom.Vec2 { return l.b }

// C returns the end of the vertical leg.
func (l Layout) C() geom.Vec2 { return l.c }

// Vertices returns A, B and C.
func (l Layout) Vertices() [3]geom.Vec2 { return [3]geom.Vec2{l.a, l.b, l.c} }

// Centroid returns the mean of the three vertices.
func (l Layout) Centroid() geom.Vec2 { return geom.Centroid(l.a, l.b, l.c) }

// Anchor returns the point the label of side s is centered on.
func (l Layout) Anchor(s Side) geom.Vec2 {
	if !s.valid() {
		return geom.Vec2{}
	}
	return l.anchors[s]
}

// Label returns the label of side s and whether it is drawn.
func (l Layout) Label(s Side) (string, bool) {
	if !s.valid() {
		return "", false
	}
	return l.labels[s].text, l.labels[s].set
}

// Theta returns the theta marker position.
func (l Layout) Theta() geom.Vec2 { return l.theta }

// ThetaVertex returns the vertex the theta marker belongs to.
func (l Layout) ThetaVertex() Vertex { return l.thetaVertex }

// ThetaLabel returns the text drawn at the theta marker.
func (l Layout) ThetaLabel() string { return l.thetaLabel }

// Bracket returns the three points of the right-angle bracket.
func (l Layout) Bracket() [3]geom.Vec2 { return l.bracket }

// WithLabel returns a copy of l with side s labelled text.
func (l Layout) WithLabel(s Side, text string) Layout {
	if s.valid() {
		l.labels[s] = label{text: text, set: true}
	}
	return l
}

// WithoutLabel returns a copy of l with the label of side s removed.
func (l Layout) WithoutLabel(s Side) Layout {
	if s.valid() {
		l.labels[s] = label{}
	}
	return l
}

// Translate returns a copy of l with every point shifted by offset.
func (l Layout) Translate(offset geom.Vec2) Layout {
	return l.mapPoints(func(p geom.Vec2) geom.Vec2 { return geom.Add(p, offset) })
}

// Rotate returns a copy of l with every point rotated about the origin by
// deg degrees clockwise.
func (l Layout) Rotate(deg float64) Layout {
	return l.mapPoints(func(p geom.Vec2) geom.Vec2 { return geom.Rotate(p, deg) })
}

// rotateAbout rotates about pivot by moving pivot to the origin, rotating and
// moving back.
func (l Layout) rotateAbout(pivot geom.Vec2, deg float64) Layout {
	back := pivot
	pivot.Negate()
	return l.Translate(pivot).Rotate(deg).Translate(back)
}

// Bounds returns the box around the vertices, label anchors and theta
// marker. Bracket points are excluded.
func (l Layout) Bounds() geom.Box {
	box := geom.BoxOf(l.a, l.b, l.c, l.theta)
	for _, p := range l.anchors {
		box.AddPoint(p)
	}
	return box
}

// Reposition returns a copy of l shifted so that the bounds start at
// (Padding, Padding). No point ends up below Padding.
func (l Layout) Reposition() Layout {
	off := l.Bounds().Min
	off.Negate()
	// p - min rounds to a value >= 0 and adding Padding to it cannot round
	// below Padding; a single Padding-min offset can.
	return l.Translate(off).Translate(geom.V(Padding, Padding))
}

// Canvas returns the width and height of a canvas that holds the layout with
// Padding on every side.
func (l Layout) Canvas() (width, height float64) {
	box := l.Bounds()
	return math.Ceil(box.Max.X + Padding), math.Ceil(box.Max.Y + Padding)
}

// Fragments returns the SVG fragments of the diagram in drawing order: the
// triangle outline, the right-angle bracket, the set side labels in AB, AC,
// BC order and the theta label.
func (l Layout) Fragments() []string {
	out := make([]string, 0, 6)
	out = append(out,
		svg.Triangle(l.a, l.b, l.c),
		svg.Polyline(l.bracket[:], svg.Red),
	)
	for _, s := range Sides {
		if lb := l.labels[s]; lb.set {
			out = append(out, svg.Text(l.anchors[s], lb.text))
		}
	}
	return append(out, svg.Text(l.theta, l.thetaLabel))
}

// SVG returns a standalone SVG document sized by Canvas.
func (l Layout) SVG() []byte {
	w, h := l.Canvas()
	return svg.Document(l.Fragments(), w, h)
}

func (l Layout) mapPoints(f func(geom.Vec2) geom.Vec2) Layout {
	l.a, l.b, l.c = f(l.a), f(l.b), f(l.c)
	for i := range l.anchors {
		l.anchors[i] = f(l.anchors[i])
	}
	for i := range l.bracket {
		l.bracket[i] = f(l.bracket[i])
	}
	l.theta = f(l.theta)
	return l
}

package geom

import "math"

// Line is the infinite line through P1 and P2. It is only used as a probe
// for distance queries and is never drawn.
type Line struct {
	P1, P2 Vec2
}

// L creates a Line through p1 and p2.
func L(p1, p2 Vec2) Line { return Line{P1: p1, P2: p2} }

// DistanceToLine returns the perpendicular distance from pt to the line
// through l.P1 and l.P2. The line must have non-zero length.
func DistanceToLine(pt Vec2, l Line) float64 {
	d := Distance(l.P1, l.P2)
	a := (l.P2.Y-l.P1.Y)*pt.X - (l.P2.X-l.P1.X)*pt.Y + l.P2.X*l.P1.Y - l.P2.Y*l.P1.X
	return math.Abs(a) / d
}

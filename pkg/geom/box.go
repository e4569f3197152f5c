package geom

import "math"

// Box is an axis-aligned bounding box accumulated point by point.
//
// A fresh box from [NewBox] holds inverted infinite corners so the first
// [Box.AddPoint] sets both Min and Max. Once a point has been added,
// Min.X <= Max.X and Min.Y <= Max.Y.
type Box struct {
	Min, Max Vec2
}

// NewBox returns an empty box.
func NewBox() Box {
	return Box{
		Min: Vec2{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec2{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// BoxOf returns the smallest box containing all pts.
func BoxOf(pts ...Vec2) Box {
	b := NewBox()
	for _, p := range pts {
		b.AddPoint(p)
	}
	return b
}

// AddPoint widens b to include pt.
func (b *Box) AddPoint(pt Vec2) {
	b.Min.X = math.Min(b.Min.X, pt.X)
	b.Min.Y = math.Min(b.Min.Y, pt.Y)
	b.Max.X = math.Max(b.Max.X, pt.X)
	b.Max.Y = math.Max(b.Max.Y, pt.Y)
}

// Empty reports whether no point has been added yet.
func (b Box) Empty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Center returns the midpoint of the box corners.
func (b Box) Center() Vec2 { return Midpoint(b.Min, b.Max) }

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

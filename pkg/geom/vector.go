package geom

import "math"

// Vec2 is a point or displacement on the canvas.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V creates a Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Zero returns the origin.
func Zero() Vec2 { return Vec2{} }

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Scale multiplies v in place by k.
func (v *Vec2) Scale(k float64) {
	v.X *= k
	v.Y *= k
}

// Normalize rescales v in place to unit length.
// v must not be the zero vector.
func (v *Vec2) Normalize() {
	l := v.Length()
	v.X /= l
	v.Y /= l
}

// Negate flips the sign of both components in place.
func (v *Vec2) Negate() {
	v.X = -v.X
	v.Y = -v.Y
}

// Translate adds offset to v in place.
func (v *Vec2) Translate(offset Vec2) {
	v.X += offset.X
	v.Y += offset.Y
}

// Add returns a + b.
func Add(a, b Vec2) Vec2 { return Vec2{X: a.X + b.X, Y: a.Y + b.Y} }

// Sub returns a - b.
func Sub(a, b Vec2) Vec2 { return Vec2{X: a.X - b.X, Y: a.Y - b.Y} }

// ScaleBy returns p scaled by k.
func ScaleBy(p Vec2, k float64) Vec2 { return Vec2{X: p.X * k, Y: p.Y * k} }

// DivideBy returns p divided by k.
func DivideBy(p Vec2, k float64) Vec2 { return Vec2{X: p.X / k, Y: p.Y / k} }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec2) Vec2 {
	p := Add(a, b)
	p.Scale(0.5)
	return p
}

// Direction returns the unit vector pointing from a toward b.
// a and b must differ.
func Direction(a, b Vec2) Vec2 {
	d := Sub(b, a)
	d.Normalize()
	return d
}

// Distance returns the length of the segment ab.
func Distance(a, b Vec2) float64 {
	return Sub(b, a).Length()
}

// Centroid returns the arithmetic mean of the given points.
// It returns the origin for an empty argument list.
func Centroid(pts ...Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range pts {
		sum.Translate(p)
	}
	return DivideBy(sum, float64(len(pts)))
}

// Rotate turns p about the origin by deg degrees. Positive angles rotate
// clockwise on a y-down canvas.
func Rotate(p Vec2, deg float64) Vec2 {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Vec2{
		X: p.X*cos + p.Y*sin,
		Y: -p.X*sin + p.Y*cos,
	}
}

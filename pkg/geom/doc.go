// Package geom provides the small set of 2D primitives used by the diagram
// layout engine.
//
// # Coordinate System
//
// All coordinates live on an SVG-style canvas: x grows to the right and y
// grows downward. Under that convention [Rotate] turns points clockwise for
// positive angles.
//
// # Mutability
//
// [Vec2] is a plain value type. Methods with pointer receivers ([Vec2.Scale],
// [Vec2.Normalize], [Vec2.Negate], [Vec2.Translate]) modify the receiver in
// place; the package-level functions ([Add], [Sub], [Midpoint], [Direction],
// [Rotate], ...) always return fresh values and never touch their inputs.
//
// # Preconditions
//
// The primitives do not validate their inputs. Normalizing a zero vector,
// asking for the direction between two equal points, or measuring the
// distance to a zero-length [Line] divides by zero and yields NaN or Inf.
// Callers that accept untrusted geometry validate it before reaching this
// package (see the diagram builder).
package geom

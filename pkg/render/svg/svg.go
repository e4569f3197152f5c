// Package svg emits the fixed vocabulary of SVG fragments used by triangle
// diagrams: an outlined triangle, a colored polyline and a centered text
// label.
//
// Every function is pure and total over finite coordinates. Text content is
// inserted verbatim: callers may pass entities such as &theta;, &pi; or
// &sup2; and they reach the document unescaped.
//
// Coordinates are rounded to two decimals, and whole numbers are written
// without a fraction, so 95.5 becomes "95.50" and 15 becomes "15". Fragments
// compared against full-precision output will differ in the third decimal
// onward; compare geometry through diagram.Layout instead.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mathproblem/pkg/geom"
)

// FontSize is the size of every text label.
const FontSize = 12

// Color is an RGB stroke color.
type Color struct {
	R, G, B uint8
}

// Common stroke colors.
var (
	Black = Color{0, 0, 0}
	Red   = Color{255, 0, 0}
)

// Triangle returns a closed, unfilled outline through a, b and c with a
// solid black stroke.
func Triangle(a, b, c geom.Vec2) string {
	return fmt.Sprintf(`<polygon points="%s %s %s" style="fill:none;stroke:black;" />`+"\n",
		point(a), point(b), point(c))
}

// Polyline returns an open, unfilled polyline through points in order.
func Polyline(points []geom.Vec2, c Color) string {
	coords := make([]string, len(points))
	for i, p := range points {
		coords[i] = point(p)
	}
	return fmt.Sprintf(`<polyline points="%s" style="fill:none;stroke:rgb(%d, %d, %d);" />`+"\n",
		strings.Join(coords, " "), c.R, c.G, c.B)
}

// Text returns a label centered horizontally on pos.
func Text(pos geom.Vec2, content string) string {
	return fmt.Sprintf(`<text x="%s" y="%s" fill="black" font-size="%d" text-anchor="middle">%s</text>`+"\n",
		num(pos.X), num(pos.Y), FontSize, content)
}

// Document wraps fragments in a standalone <svg> root of the given size.
func Document(fragments []string, width, height float64) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(width), num(height), num(width), num(height))
	for _, f := range fragments {
		buf.WriteString("  ")
		buf.WriteString(f)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func point(p geom.Vec2) string { return num(p.X) + "," + num(p.Y) }

// num formats with two decimals and drops a trailing ".00".
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimSuffix(s, ".00")
	if s == "-0" {
		return "0"
	}
	return s
}

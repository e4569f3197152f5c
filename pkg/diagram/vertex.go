package diagram

import (
	"strings"

	"github.com/matzehuels/mathproblem/pkg/errors"
)

// Vertex names the acute vertex that hosts the theta marker.
type Vertex int

const (
	VertexB Vertex = iota + 1 // end of the horizontal leg, the default
	VertexC                   // end of the vertical leg
)

// String returns "B" or "C".
func (v Vertex) String() string {
	switch v {
	case VertexB:
		return "B"
	case VertexC:
		return "C"
	default:
		return "?"
	}
}

// Valid reports whether v is VertexB or VertexC.
func (v Vertex) Valid() bool { return v == VertexB || v == VertexC }

// ParseVertex accepts "b" or "c" in any case.
func ParseVertex(s string) (Vertex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B":
		return VertexB, nil
	case "C":
		return VertexC, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidGeometry, "theta vertex must be B or C, got %q", s)
}

// Side names one of the three triangle sides. The order of the constants is
// the order labels are emitted in.
type Side int

const (
	SideAB Side = iota // horizontal leg
	SideAC             // vertical leg
	SideBC             // hypotenuse
)

// Sides lists every side in emission order.
var Sides = [...]Side{SideAB, SideAC, SideBC}

// String returns "AB", "AC" or "BC".
func (s Side) String() string {
	switch s {
	case SideAB:
		return "AB"
	case SideAC:
		return "AC"
	case SideBC:
		return "BC"
	default:
		return "?"
	}
}

func (s Side) valid() bool { return s >= SideAB && s <= SideBC }

// ParseSide accepts "ab", "ac" or "bc" in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AB":
		return SideAB, nil
	case "AC":
		return SideAC, nil
	case "BC":
		return SideBC, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "side must be AB, AC or BC, got %q", s)
}

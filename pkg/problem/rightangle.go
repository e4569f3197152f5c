package problem

import (
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/mathproblem/pkg/diagram"
)

// Drawing scale for right-angle diagrams: the hypotenuse maps to
// DiagramScale units and no leg is drawn shorter than MinLegLength.
const (
	DiagramScale = 150.0
	MinLegLength = 35.0
)

// Triple is a Pythagorean triple with A² + B² = C².
type Triple struct{ A, B, C int }

// TripleFor derives a triple from a >= 3. Even a gives (a, (a/2)²-1,
// (a/2)²+1); odd a gives (a, (a²-1)/2, (a²+1)/2).
func TripleFor(a int) Triple {
	if a%2 == 0 {
		b := (a/2)*(a/2) - 1
		return Triple{a, b, b + 2}
	}
	b := (a*a - 1) / 2
	return Triple{a, b, b + 1}
}

// RightAngle returns a "find the ratio" problem on a random Pythagorean
// triple with a rotated diagram.
func (g *Generator) RightAngle(level int) (Problem, error) {
	if err := validateLevel(KindRightAngle, level); err != nil {
		return Problem{}, err
	}

	t := TripleFor(g.between(3, 15))
	legAB := math.Max(float64(t.A)/float64(t.C)*DiagramScale, MinLegLength)
	legAC := math.Max(float64(t.B)/float64(t.C)*DiagramScale, MinLegLength)

	vertex := diagram.VertexC
	if g.coin() {
		vertex = diagram.VertexB
	}
	fn := TrigFunc(g.between(int(Sin), int(Cot)))
	rotation := g.between(0, 360)

	missing := NoSide
	switch level {
	case 2:
		missing = Hypotenuse
	case 3:
		missing = TriangleSide(g.between(int(Opposite), int(Hypotenuse)))
	}

	a, b, c := strconv.Itoa(t.A), strconv.Itoa(t.B), strconv.Itoa(t.C)
	values := map[TriangleSide]string{Hypotenuse: c}
	if vertex == diagram.VertexB {
		values[Adjacent], values[Opposite] = a, b
	} else {
		values[Adjacent], values[Opposite] = b, a
	}

	fig := &diagram.Request{
		LegAB:    legAB,
		LegAC:    legAC,
		Rotation: float64(rotation),
		Theta:    vertex.String(),
		Labels:   diagram.Labels{AB: diagram.Str(a), AC: diagram.Str(b), BC: diagram.Str(c)},
	}
	switch hidden := sideOf(missing, vertex); hidden {
	case diagram.SideAB:
		fig.Labels.AB = nil
	case diagram.SideAC:
		fig.Labels.AC = nil
	case diagram.SideBC:
		fig.Labels.BC = nil
	}

	layout, err := fig.Build()
	if err != nil {
		return Problem{}, fmt.Errorf("layout diagram: %w", err)
	}

	num, den := fn.Ratio()
	return Problem{
		Kind:    KindRightAngle,
		Level:   level,
		Prompt:  fmt.Sprintf("Find %s &theta;", fn),
		Steps:   rightAngleSteps(fn, missing, values),
		Answer:  values[num] + "/" + values[den],
		Figure:  fig,
		Diagram: layout.Fragments(),
	}, nil
}

// sideOf maps a side named relative to theta onto the triangle. It returns
// -1 for NoSide.
func sideOf(s TriangleSide, vertex diagram.Vertex) diagram.Side {
	switch s {
	case Hypotenuse:
		return diagram.SideBC
	case Adjacent:
		if vertex == diagram.VertexB {
			return diagram.SideAB
		}
		return diagram.SideAC
	case Opposite:
		if vertex == diagram.VertexB {
			return diagram.SideAC
		}
		return diagram.SideAB
	}
	return -1
}

func sideNoun(s TriangleSide) string {
	if s == Hypotenuse {
		return "hypotenuse"
	}
	return s.String() + " side"
}

func rightAngleSteps(fn TrigFunc, missing TriangleSide, v map[TriangleSide]string) []string {
	num, den := fn.Ratio()
	steps := make([]string, 0, 4)

	if fn.Needs(missing) {
		switch missing {
		case Hypotenuse:
			steps = append(steps, fmt.Sprintf("Calculate missing hypotenuse side: C&sup2; = %s&sup2; + %s&sup2;.", v[Opposite], v[Adjacent]))
		case Opposite:
			steps = append(steps, fmt.Sprintf("Calculate missing opposite side: %s&sup2; = A&sup2; + %s&sup2;.", v[Hypotenuse], v[Adjacent]))
		case Adjacent:
			steps = append(steps, fmt.Sprintf("Calculate missing adjacent side: %s&sup2; = %s&sup2; + B&sup2;.", v[Hypotenuse], v[Opposite]))
		}
	}

	return append(steps,
		fmt.Sprintf("Identify %s: %s.", sideNoun(num), v[num]),
		fmt.Sprintf("Identify %s: %s.", sideNoun(den), v[den]),
		fmt.Sprintf("Divide %s (%s) / %s (%s).", num, v[num], den, v[den]),
	)
}

package problem

import (
	"fmt"
	"strings"
)

// Transform is one change applied to a base trig graph.
type Transform int

const (
	HorizontalStretch Transform = iota
	HorizontalShift
	VerticalStretch
	VerticalShift
)

// graph is y = a·f((x + h·π) / b) + k. Zero fields are not applied.
type graph struct {
	fn TrigFunc
	a  int // vertical stretch, ±2..5
	b  int // horizontal stretch, ±2..5
	h  int // horizontal shift in multiples of π, ±1..3
	k  int // vertical shift, ±1..3
}

// GraphTransform asks which transformations turn y = sin(x) or y = cos(x)
// into the given function. level is the number of distinct transformations.
func (g *Generator) GraphTransform(level int) (Problem, error) {
	if err := validateLevel(KindGraphTransform, level); err != nil {
		return Problem{}, err
	}

	gr := graph{fn: Sin}
	if g.coin() {
		gr.fn = Cos
	}

	order := []Transform{HorizontalStretch, HorizontalShift, VerticalStretch, VerticalShift}
	g.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for _, t := range order[:level] {
		switch t {
		case HorizontalStretch:
			gr.b = g.signed(2, 5)
		case HorizontalShift:
			gr.h = g.signed(1, 3)
		case VerticalStretch:
			gr.a = g.signed(2, 5)
		case VerticalShift:
			gr.k = g.signed(1, 3)
		}
	}

	steps := gr.steps()
	return Problem{
		Kind:   KindGraphTransform,
		Level:  level,
		Prompt: fmt.Sprintf("Describe the transformations that take y = %s(x) to y = %s.", gr.fn, gr),
		Steps:  steps,
		Answer: strings.Join(steps, "; "),
	}, nil
}

// signed returns a value in [lo, hi] with a random sign.
func (g *Generator) signed(lo, hi int) int {
	v := g.between(lo, hi)
	if g.coin() {
		return -v
	}
	return v
}

func piMultiple(n int) string {
	if n == 1 {
		return "&pi;"
	}
	return fmt.Sprintf("%d&pi;", n)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) string {
	if n < 0 {
		return " - "
	}
	return " + "
}

// String renders the right-hand side, e.g. "-3 sin((x + 2&pi;) / 2) + 1".
func (gr graph) String() string {
	arg := "x"
	if gr.h != 0 {
		arg += sign(gr.h) + piMultiple(abs(gr.h))
	}
	if gr.b != 0 {
		if gr.h != 0 {
			arg = "(" + arg + ")"
		}
		arg = fmt.Sprintf("%s / %d", arg, gr.b)
	}

	var sb strings.Builder
	if gr.a != 0 {
		fmt.Fprintf(&sb, "%d ", gr.a)
	}
	fmt.Fprintf(&sb, "%s(%s)", gr.fn, arg)
	if gr.k != 0 {
		fmt.Fprintf(&sb, "%s%d", sign(gr.k), abs(gr.k))
	}
	return sb.String()
}

// steps describes the transformations in the order they act on the graph.
func (gr graph) steps() []string {
	var out []string
	if gr.b != 0 {
		s := fmt.Sprintf("Stretch horizontally by a factor of %d", abs(gr.b))
		if gr.b < 0 {
			s += " and reflect across the y-axis"
		}
		out = append(out, s+".")
	}
	if gr.h != 0 {
		dir := "left"
		if gr.h < 0 {
			dir = "right"
		}
		out = append(out, fmt.Sprintf("Shift %s by %s.", dir, piMultiple(abs(gr.h))))
	}
	if gr.a != 0 {
		s := fmt.Sprintf("Stretch vertically by a factor of %d", abs(gr.a))
		if gr.a < 0 {
			s += " and reflect across the x-axis"
		}
		out = append(out, s+".")
	}
	if gr.k != 0 {
		dir := "up"
		if gr.k < 0 {
			dir = "down"
		}
		out = append(out, fmt.Sprintf("Shift %s by %d.", dir, abs(gr.k)))
	}
	return out
}

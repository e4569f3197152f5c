// Package problem generates randomized math practice problems with solution
// steps.
//
// Three kinds are supported:
//
//   - [KindAddition]: column addition, level 1 without carries and level 2
//     with carries.
//   - [KindRightAngle]: right-triangle trigonometry on a Pythagorean triple,
//     with a diagram. Level 1 shows every side, level 2 hides the hypotenuse
//     and level 3 hides a random side.
//   - [KindGraphTransform]: describe the transformations applied to sin or
//     cos. The level is the number of transformations (1-4).
//
// A [Generator] owns a seeded PCG source, so the same seed and call sequence
// always produce the same problems:
//
//	g := problem.NewGenerator(42)
//	p, err := g.Generate(problem.KindRightAngle, 2, problem.Params{})
package problem

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
)

// Kind identifies a problem generator.
type Kind string

const (
	KindAddition       Kind = "addition"
	KindRightAngle     Kind = "right-angle"
	KindGraphTransform Kind = "graph-transform"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindAddition, KindRightAngle, KindGraphTransform}

// ParseKind accepts a kind name, case-insensitively. "right_angle" and
// "graph_transform" are accepted as aliases.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown problem kind %q (must be one of: addition, right-angle, graph-transform)", s)
}

// Levels returns the inclusive level range of k.
func (k Kind) Levels() (lo, hi int) {
	switch k {
	case KindAddition:
		return 1, 2
	case KindRightAngle:
		return 1, 3
	case KindGraphTransform:
		return 1, 4
	}
	return 0, 0
}

// HasDiagram reports whether problems of kind k carry a figure.
func (k Kind) HasDiagram() bool { return k == KindRightAngle }

// Problem is one generated exercise. Prompt, Steps and Answer may contain
// HTML entities such as &theta; or &sup2;.
type Problem struct {
	ID     string           `json:"id" yaml:"id"`
	Kind   Kind             `json:"kind" yaml:"kind"`
	Level  int              `json:"level" yaml:"level"`
	Prompt string           `json:"prompt" yaml:"prompt"`
	Steps  []string         `json:"steps" yaml:"steps"`
	Answer string           `json:"answer" yaml:"answer"`
	Figure *diagram.Request `json:"figure,omitempty" yaml:"figure,omitempty"`
	// Diagram holds the SVG fragments of Figure.
	Diagram []string `json:"diagram,omitempty" yaml:"diagram,omitempty"`
}

// Layout builds the diagram of p. It fails with errors.ErrCodeNotFound when p
// has no figure.
func (p Problem) Layout() (diagram.Layout, error) {
	if p.Figure == nil {
		return diagram.Layout{}, errors.New(errors.ErrCodeNotFound, "problem %s has no diagram", p.ID)
	}
	return p.Figure.Build()
}

// Set is a batch of problems generated together.
type Set struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Level     int       `json:"level" yaml:"level"`
	Seed      uint64    `json:"seed" yaml:"seed"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Problems  []Problem `json:"problems" yaml:"problems"`
}

// Params holds the kind-specific generator settings. Zero values select the
// defaults.
type Params struct {
	MinDigits int `json:"min_digits,omitempty" yaml:"min_digits,omitempty"`
	MaxDigits int `json:"max_digits,omitempty" yaml:"max_digits,omitempty"`
}

// Default addition operand sizes.
const (
	DefaultMinDigits = 1
	DefaultMaxDigits = 2
	// MaxDigits bounds operand size so sums stay well inside int range.
	MaxDigits = 9
)

// Generator produces problems from a deterministic random source. It is not
// safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

// Generate dispatches to the generator for kind.
func (g *Generator) Generate(kind Kind, level int, params Params) (Problem, error) {
	switch kind {
	case KindAddition:
		lo, hi := params.MinDigits, params.MaxDigits
		if lo == 0 {
			lo = DefaultMinDigits
		}
		if hi == 0 {
			hi = max(DefaultMaxDigits, lo)
		}
		return g.Addition(level, lo, hi)
	case KindRightAngle:
		return g.RightAngle(level)
	case KindGraphTransform:
		return g.GraphTransform(level)
	}
	return Problem{}, errors.New(errors.ErrCodeInvalidKind, "unknown problem kind %q", kind)
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) coin() bool { return g.rng.IntN(2) == 1 }

func validateLevel(kind Kind, level int) error {
	lo, hi := kind.Levels()
	return errors.ValidateLevel(string(kind), level, lo, hi)
}

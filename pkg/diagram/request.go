package diagram

import (
	"github.com/matzehuels/mathproblem/pkg/errors"
)

// Labels holds the optional side labels of a Request. A nil entry is an
// unknown side.
type Labels struct {
	AB *string `json:"ab" yaml:"ab"`
	AC *string `json:"ac" yaml:"ac"`
	BC *string `json:"bc" yaml:"bc"`
}

// Request is the serializable description of a diagram: everything Build
// needs, in a form that survives JSON and YAML. Layouts are deterministic, so
// storing a Request is enough to reproduce the drawing.
type Request struct {
	LegAB      float64 `json:"leg_ab" yaml:"leg_ab"`
	LegAC      float64 `json:"leg_ac" yaml:"leg_ac"`
	Rotation   float64 `json:"rotation,omitempty" yaml:"rotation,omitempty"`
	Theta      string  `json:"theta,omitempty" yaml:"theta,omitempty"` // "B" (default) or "C"
	ThetaLabel string  `json:"theta_label,omitempty" yaml:"theta_label,omitempty"`
	Labels     Labels  `json:"labels" yaml:"labels"`
}

// Str returns a pointer to s, for filling Labels.
func Str(s string) *string { return &s }

// Options converts r into builder options, validating the theta vertex and
// every label.
func (r Request) Options() ([]Option, error) {
	opts := []Option{WithRotation(r.Rotation)}

	if r.Theta != "" {
		v, err := ParseVertex(r.Theta)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithThetaAt(v))
	}
	if r.ThetaLabel != "" {
		if err := errors.ValidateLabel(r.ThetaLabel); err != nil {
			return nil, err
		}
		opts = append(opts, WithThetaLabel(r.ThetaLabel))
	}

	for s, text := range map[Side]*string{SideAB: r.Labels.AB, SideAC: r.Labels.AC, SideBC: r.Labels.BC} {
		if text == nil {
			continue
		}
		if err := errors.ValidateLabel(*text); err != nil {
			return nil, err
		}
		opts = append(opts, WithLabel(s, *text))
	}
	return opts, nil
}

// Build validates r and lays out the diagram.
func (r Request) Build() (Layout, error) {
	opts, err := r.Options()
	if err != nil {
		return Layout{}, err
	}
	return Build(r.LegAB, r.LegAC, opts...)
}

package diagram

import (
	"encoding/json"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/geom"
)

// layoutJSON is the wire form of a Layout. A nil label is an unknown side.
type layoutJSON struct {
	A           geom.Vec2    `json:"a"`
	B           geom.Vec2    `json:"b"`
	C           geom.Vec2    `json:"c"`
	Anchors     anchorsJSON  `json:"anchors"`
	Labels      labelsJSON   `json:"labels"`
	Theta       geom.Vec2    `json:"theta"`
	ThetaVertex string       `json:"theta_vertex"`
	ThetaLabel  string       `json:"theta_label"`
	Bracket     [3]geom.Vec2 `json:"bracket"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
}

type anchorsJSON struct {
	AB geom.Vec2 `json:"ab"`
	AC geom.Vec2 `json:"ac"`
	BC geom.Vec2 `json:"bc"`
}

type labelsJSON struct {
	AB *string `json:"ab"`
	AC *string `json:"ac"`
	BC *string `json:"bc"`
}

// MarshalJSON encodes the layout with its canvas size.
func (l Layout) MarshalJSON() ([]byte, error) {
	w, h := l.Canvas()
	return json.Marshal(layoutJSON{
		A: l.a, B: l.b, C: l.c,
		Anchors: anchorsJSON{
			AB: l.anchors[SideAB],
			AC: l.anchors[SideAC],
			BC: l.anchors[SideBC],
		},
		Labels: labelsJSON{
			AB: l.labels[SideAB].ptr(),
			AC: l.labels[SideAC].ptr(),
			BC: l.labels[SideBC].ptr(),
		},
		Theta:       l.theta,
		ThetaVertex: l.thetaVertex.String(),
		ThetaLabel:  l.thetaLabel,
		Bracket:     l.bracket,
		Width:       w,
		Height:      h,
	})
}

// UnmarshalJSON decodes a layout written by MarshalJSON. The canvas size is
// recomputed and the stored width and height are ignored.
func (l *Layout) UnmarshalJSON(data []byte) error {
	var raw layoutJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode layout")
	}
	v, err := ParseVertex(raw.ThetaVertex)
	if err != nil {
		return err
	}
	*l = Layout{
		a: raw.A, b: raw.B, c: raw.C,
		anchors: [3]geom.Vec2{raw.Anchors.AB, raw.Anchors.AC, raw.Anchors.BC},
		labels: [3]label{
			fromPtr(raw.Labels.AB),
			fromPtr(raw.Labels.AC),
			fromPtr(raw.Labels.BC),
		},
		theta:       raw.Theta,
		thetaVertex: v,
		thetaLabel:  raw.ThetaLabel,
		bracket:     raw.Bracket,
	}
	return nil
}

func (lb label) ptr() *string {
	if !lb.set {
		return nil
	}
	s := lb.text
	return &s
}

func fromPtr(s *string) label {
	if s == nil {
		return label{}
	}
	return label{text: *s, set: true}
}

package diagram

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mathproblem/pkg/errors"
)

func TestRequest_Build(t *testing.T) {
	req := Request{
		LegAB:    150,
		LegAC:    80,
		Rotation: 35,
		Theta:    "c",
		Labels:   Labels{AB: Str("8"), AC: Str("15")},
	}
	got, err := req.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := mustBuild(t, 150, 80,
		WithRotation(35),
		WithThetaAt(VertexC),
		WithLabel(SideAB, "8"),
		WithLabel(SideAC, "15"),
	)
	if got != want {
		t.Error("Request.Build differs from Build with the same options")
	}
	if _, ok := got.Label(SideBC); ok {
		t.Error("nil label should leave side unknown")
	}
}

func TestRequest_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code errors.Code
	}{
		{"bad vertex", Request{LegAB: 1, LegAC: 1, Theta: "A"}, errors.ErrCodeInvalidGeometry},
		{"markup label", Request{LegAB: 1, LegAC: 1, Labels: Labels{AB: Str("<b>")}}, errors.ErrCodeInvalidLabel},
		{"markup theta", Request{LegAB: 1, LegAC: 1, ThetaLabel: "<x>"}, errors.ErrCodeInvalidLabel},
		{"zero leg", Request{LegAB: 0, LegAC: 1}, errors.ErrCodeInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.req.Build(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRequest_Encoding(t *testing.T) {
	req := Request{LegAB: 90, LegAC: 120, Theta: "B", Labels: Labels{BC: Str("25")}}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON Request
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatal(err)
	}

	out, err := yaml.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML Request
	if err := yaml.Unmarshal(out, &fromYAML); err != nil {
		t.Fatal(err)
	}

	want, _ := req.Build()
	for name, r := range map[string]Request{"json": fromJSON, "yaml": fromYAML} {
		got, err := r.Build()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got != want {
			t.Errorf("%s round trip changed the layout", name)
		}
	}
}

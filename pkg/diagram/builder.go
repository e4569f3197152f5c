package diagram

import (
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/geom"
)

// Visual constants. They encode a fixed drawing style and are not derived
// from the triangle geometry.
const (
	// LabelMargin offsets the leg labels away from their side.
	LabelMargin = 15.0
	// HypotenuseLabelOffset pushes the BC label away from the triangle.
	HypotenuseLabelOffset = 20.0
	// BracketSize is the edge length of the right-angle bracket.
	BracketSize = 15.0
	// Padding is the minimum distance of every rendered point from the
	// canvas origin after repositioning.
	Padding = 15.0
	// ThetaClearance is the distance the theta marker keeps from both sides
	// meeting at the theta vertex.
	ThetaClearance = 6.0
	// DefaultThetaLabel is drawn at the theta marker.
	DefaultThetaLabel = "&theta;"
)

const (
	thetaStepDivisions = 15 // step = distance(vertex, centroid) / thetaStepDivisions
	thetaSamples       = 30
)

// Option configures a Builder.
type Option func(*Builder)

// WithRotation rotates the finished triangle clockwise about its centroid.
func WithRotation(deg float64) Option { return func(b *Builder) { b.Rotation(deg) } }

// WithThetaAt places the theta marker at v.
func WithThetaAt(v Vertex) Option { return func(b *Builder) { b.ThetaAt(v) } }

// WithLabel sets the label of one side.
func WithLabel(s Side, text string) Option { return func(b *Builder) { b.Label(s, text) } }

// WithLabels sets all three side labels.
func WithLabels(ab, ac, bc string) Option {
	return func(b *Builder) { b.Label(SideAB, ab).Label(SideAC, ac).Label(SideBC, bc) }
}

// WithUnknown clears the label of one side so it is not drawn.
func WithUnknown(s Side) Option { return func(b *Builder) { b.Unknown(s) } }

// WithThetaLabel replaces the text drawn at the theta marker.
func WithThetaLabel(text string) Option { return func(b *Builder) { b.ThetaLabel(text) } }

// Build lays out a right triangle with horizontal leg legAB and vertical leg
// legAC. It is shorthand for NewBuilder followed by Builder.Build.
func Build(legAB, legAC float64, opts ...Option) (Layout, error) {
	b := NewBuilder(legAB, legAC)
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}

// Builder accumulates diagram inputs. The zero rotation and VertexB are the
// defaults. A Builder is not safe for concurrent use but may be reused: every
// Build call starts from scratch.
type Builder struct {
	legAB, legAC float64
	rotation     float64
	vertex       Vertex
	labels       [3]label
	thetaLabel   string
}

// NewBuilder returns a builder for legs of the given lengths.
func NewBuilder(legAB, legAC float64) *Builder {
	return &Builder{
		legAB:      legAB,
		legAC:      legAC,
		vertex:     VertexB,
		thetaLabel: DefaultThetaLabel,
	}
}

// Rotation sets the clockwise rotation in degrees. Zero disables rotation.
func (b *Builder) Rotation(deg float64) *Builder { b.rotation = deg; return b }

// ThetaAt selects the vertex hosting the theta marker.
func (b *Builder) ThetaAt(v Vertex) *Builder { b.vertex = v; return b }

// Label sets the text drawn next to side s.
func (b *Builder) Label(s Side, text string) *Builder {
	if s.valid() {
		b.labels[s] = label{text: text, set: true}
	}
	return b
}

// Unknown marks side s as the unknown: its label is not drawn.
func (b *Builder) Unknown(s Side) *Builder {
	if s.valid() {
		b.labels[s] = label{}
	}
	return b
}

// ThetaLabel sets the text drawn at the theta marker.
func (b *Builder) ThetaLabel(text string) *Builder { b.thetaLabel = text; return b }

// Build validates the inputs and returns the positioned layout.
// Non-positive or non-finite legs, a non-finite rotation and an unknown theta
// vertex fail with errors.ErrCodeInvalidGeometry.
func (b *Builder) Build() (Layout, error) {
	if err := errors.ValidateLeg("AB", b.legAB); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateLeg("AC", b.legAC); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateAngle(b.rotation); err != nil {
		return Layout{}, err
	}
	if !b.vertex.Valid() {
		return Layout{}, errors.New(errors.ErrCodeInvalidGeometry, "theta vertex must be B or C, got %d", int(b.vertex))
	}

	l := b.place()
	if b.rotation != 0 {
		l = l.rotateAbout(l.Centroid(), b.rotation)
	}
	return l.Reposition(), nil
}

// place computes the unrotated layout with A at the origin.
func (b *Builder) place() Layout {
	a := geom.Zero()
	pb := geom.V(b.legAB, 0)
	pc := geom.V(0, b.legAC)

	abAnchor := geom.Midpoint(a, pb)
	abAnchor.Y -= LabelMargin

	acAnchor := geom.Midpoint(a, pc)
	acAnchor.X -= LabelMargin

	// Pushing along AC-anchor -> BC-midpoint approximates the outward normal
	// of the hypotenuse for the aspect ratios generated here.
	bcMid := geom.Midpoint(pb, pc)
	push := geom.Direction(acAnchor, bcMid)
	push.Scale(HypotenuseLabelOffset)
	bcAnchor := geom.Add(bcMid, push)

	centroid := geom.Centroid(a, pb, pc)
	var path, side1, side2 geom.Line
	if b.vertex == VertexB {
		path = geom.L(pb, centroid)
		side1 = geom.L(a, pb)
		side2 = geom.L(pb, pc)
	} else {
		path = geom.L(pc, centroid)
		side1 = geom.L(a, pc)
		side2 = geom.L(pb, pc)
	}

	return Layout{
		a: a, b: pb, c: pc,
		anchors:     [3]geom.Vec2{abAnchor, acAnchor, bcAnchor},
		labels:      b.labels,
		theta:       thetaPosition(path, side1, side2, ThetaClearance),
		thetaVertex: b.vertex,
		thetaLabel:  b.thetaLabel,
		bracket: [3]geom.Vec2{
			geom.V(BracketSize, 0),
			geom.V(BracketSize, BracketSize),
			geom.V(0, BracketSize),
		},
	}
}

// thetaPosition walks from path.P1 toward path.P2 in fixed steps and returns
// the first sample farther than tolerance from both l1 and l2. If no sample
// qualifies it returns path.P1.
func thetaPosition(path, l1, l2 geom.Line, tolerance float64) geom.Vec2 {
	dir := geom.Direction(path.P1, path.P2)
	step := geom.Distance(path.P1, path.P2) / thetaStepDivisions

	for i := range thetaSamples {
		p := geom.Add(path.P1, geom.ScaleBy(dir, float64(i)*step))
		if geom.DistanceToLine(p, l1) > tolerance && geom.DistanceToLine(p, l2) > tolerance {
			return p
		}
	}
	return path.P1
}

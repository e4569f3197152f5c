package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/fonts"
	"github.com/matzehuels/mathproblem/pkg/render/svg"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// MaxScale bounds the PNG scale factor.
const MaxScale = 8.0

// MaxPixels bounds the area of a rendered PNG. A 150 x 150 diagram at
// MaxScale needs about 4 million.
const MaxPixels = 16 << 20

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes l on a white background. The image is the layout's
// canvas size multiplied by the scale factor, and may not exceed MaxPixels.
func RenderPNG(l diagram.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if math.IsNaN(r.scale) || r.scale <= 0 || r.scale > MaxScale {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be in (0, %g], got %v", MaxScale, r.scale)
	}

	w, h := l.Canvas()
	pw, ph := math.Ceil(w*r.scale), math.Ceil(h*r.scale)
	if pw*ph > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png of %gx%g pixels exceeds the %d pixel limit; lower the scale or the leg lengths", pw, ph, MaxPixels)
	}

	face, err := fonts.Face(svg.FontSize * r.scale)
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	dc := gg.NewContext(int(pw), int(ph))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Paths go through the context matrix; line widths and glyphs do not.
	dc.Scale(r.scale, r.scale)
	dc.SetLineWidth(r.scale)

	a, b, c := l.A(), l.B(), l.C()
	dc.MoveTo(a.X, a.Y)
	dc.LineTo(b.X, b.Y)
	dc.LineTo(c.X, c.Y)
	dc.ClosePath()
	dc.SetRGB(0, 0, 0)
	dc.Stroke()

	br := l.Bracket()
	dc.MoveTo(br[0].X, br[0].Y)
	for _, p := range br[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.SetRGB255(int(svg.Red.R), int(svg.Red.G), int(svg.Red.B))
	dc.Stroke()

	dc.SetFontFace(face)
	dc.SetRGB(0, 0, 0)
	for _, t := range labels(l) {
		dc.DrawStringAnchored(t.text, t.pos.X, t.pos.Y, 0.5, 0)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

package sink

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/geom"
	"github.com/matzehuels/mathproblem/pkg/render/svg"
)

// pdfFont is the family the Go fonts are registered under. Core PDF fonts
// are Latin-1 only and cannot draw θ or π.
const pdfFont = "go"

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	title string
}

// WithTitle sets the document title metadata.
func WithTitle(t string) PDFOption {
	return func(r *pdfRenderer) { r.title = t }
}

// RenderPDF renders l as a single-page PDF whose page is the layout canvas,
// one PDF point per layout unit.
func RenderPDF(l diagram.Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{title: "Right triangle"}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := l.Canvas()
	pdf := newPDF(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	}, r.title)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	drawLayout(pdf, l)
	return output(pdf)
}

func newPDF(init *gofpdf.InitType, title string) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(init)
	pdf.SetTitle(title, true)
	pdf.SetCreator("mathproblem", true)
	pdf.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", gobold.TTF)
	pdf.SetFont(pdfFont, "", svg.FontSize)
	return pdf
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLayout draws l in page coordinates.
func drawLayout(pdf *gofpdf.Fpdf, l diagram.Layout) {
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(0, 0, 0)
	v := l.Vertices()
	pdf.Polygon([]gofpdf.PointType{point(v[0]), point(v[1]), point(v[2])}, "D")

	pdf.SetDrawColor(int(svg.Red.R), int(svg.Red.G), int(svg.Red.B))
	br := l.Bracket()
	for i := 1; i < len(br); i++ {
		pdf.Line(br[i-1].X, br[i-1].Y, br[i].X, br[i].Y)
	}

	pdf.SetFont(pdfFont, "", svg.FontSize)
	pdf.SetTextColor(0, 0, 0)
	for _, t := range labels(l) {
		pdf.Text(t.pos.X-pdf.GetStringWidth(t.text)/2, t.pos.Y, t.text)
	}
}

func point(p geom.Vec2) gofpdf.PointType { return gofpdf.PointType{X: p.X, Y: p.Y} }

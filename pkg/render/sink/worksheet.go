package sink

import (
	"fmt"
	"html"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/geom"
	"github.com/matzehuels/mathproblem/pkg/problem"
)

const (
	sheetMargin  = 50.0
	lineHeight   = 16.0
	answerSpace  = 48.0
	titleSize    = 16.0
	headingSize  = 13.0
	worksheetPts = 11.0
)

// WorksheetOption configures worksheet rendering.
type WorksheetOption func(*worksheetRenderer)

type worksheetRenderer struct {
	answerKey bool
	title     string
}

// WithAnswerKey appends a section listing every answer and its solution
// steps.
func WithAnswerKey() WorksheetOption {
	return func(r *worksheetRenderer) { r.answerKey = true }
}

// WithWorksheetTitle overrides the heading printed on the first page.
func WithWorksheetTitle(t string) WorksheetOption {
	return func(r *worksheetRenderer) { r.title = t }
}

// RenderWorksheetPDF renders set as an A4 worksheet.
func RenderWorksheetPDF(set *problem.Set, opts ...WorksheetOption) ([]byte, error) {
	if set == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "worksheet requires a problem set")
	}
	r := worksheetRenderer{title: fmt.Sprintf("%s, level %d", set.Kind, set.Level)}
	for _, opt := range opts {
		opt(&r)
	}

	pdf := newPDF(&gofpdf.InitType{UnitStr: "pt", SizeStr: "A4"}, r.title)
	pdf.SetMargins(sheetMargin, sheetMargin, sheetMargin)
	pdf.SetAutoPageBreak(true, sheetMargin)
	pdf.AddPage()
	_, pageH := pdf.GetPageSize()

	heading(pdf, r.title, titleSize)
	for i, p := range set.Problems {
		pdf.SetFont(pdfFont, "", worksheetPts)
		pdf.MultiCell(0, lineHeight, fmt.Sprintf("%d.  %s", i+1, html.UnescapeString(p.Prompt)), "", "L", false)

		if p.Figure != nil {
			l, err := p.Layout()
			if err != nil {
				return nil, fmt.Errorf("problem %d: %w", i+1, err)
			}
			_, h := l.Canvas()
			if pdf.GetY()+h > pageH-sheetMargin {
				pdf.AddPage()
			}
			top := pdf.GetY()
			drawLayout(pdf, l.Translate(geom.V(sheetMargin, top)))
			pdf.SetY(top + h)
		}
		pdf.Ln(answerSpace)
	}

	if r.answerKey {
		pdf.AddPage()
		heading(pdf, "Answer key", headingSize)
		for i, p := range set.Problems {
			pdf.SetFont(pdfFont, "B", worksheetPts)
			pdf.MultiCell(0, lineHeight, fmt.Sprintf("%d.  %s", i+1, html.UnescapeString(p.Answer)), "", "L", false)
			pdf.SetFont(pdfFont, "", worksheetPts)
			for _, step := range p.Steps {
				pdf.SetX(sheetMargin + 18)
				pdf.MultiCell(0, lineHeight, html.UnescapeString(step), "", "L", false)
			}
			pdf.Ln(lineHeight / 2)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout worksheet: %w", err)
	}
	return output(pdf)
}

func heading(pdf *gofpdf.Fpdf, text string, size float64) {
	pdf.SetFont(pdfFont, "B", size)
	pdf.MultiCell(0, size*1.5, text, "", "L", false)
	pdf.Ln(lineHeight / 2)
}

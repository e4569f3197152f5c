// Package sink provides output format renderers for triangle diagrams and
// problem sets.
//
// # Overview
//
// A "sink" transforms a computed [diagram.Layout] into a final output
// format. This package provides renderers for:
//
//   - SVG: the layout's own standalone document
//   - JSON: layout data export for external tools
//   - PNG: raster output drawn with fogleman/gg
//   - PDF: vector output drawn with gofpdf
//
// All four draw the same primitives: the triangle outline, the red
// right-angle bracket, the set side labels and the theta label. Text may
// carry HTML entities (&theta;, &pi;, &sup2;); the SVG and JSON sinks keep
// them verbatim and the raster and PDF sinks decode them to the symbols
// they name.
//
// # Format Dispatch
//
// [Render] selects a renderer by [Format]:
//
//	f, err := sink.ParseFormat("png")
//	if err != nil {
//	    return err
//	}
//	data, err := sink.Render(layout, f, sink.WithScale(3))
//
// # Worksheets
//
// [RenderWorksheetPDF] lays out a whole [problem.Set] as a printable
// worksheet: one numbered prompt per problem with its diagram underneath,
// and with [WithAnswerKey] a final section listing every answer and its
// solution steps.
package sink

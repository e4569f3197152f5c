// Package render groups the diagram renderers.
//
// [svg] emits the three fragment kinds a triangle diagram is made of: the
// outlined triangle, the red right-angle bracket and centered text. A
// [diagram.Layout] assembles them into a document.
//
// [sink] turns a layout into a deliverable format:
//
//	data, err := sink.Render(layout, sink.FormatPNG, sink.WithScale(4))
//
// PNG and PDF are drawn natively from the layout geometry, so no external
// converter is needed. [sink.RenderWorksheetPDF] lays out a whole problem set
// on A4 pages.
//
// [svg]: github.com/matzehuels/mathproblem/pkg/render/svg
// [sink]: github.com/matzehuels/mathproblem/pkg/render/sink
// [diagram.Layout]: github.com/matzehuels/mathproblem/pkg/diagram#Layout
// [sink.RenderWorksheetPDF]: github.com/matzehuels/mathproblem/pkg/render/sink#RenderWorksheetPDF
package render

// Package pkg provides the core libraries for mathproblem.
//
// # Overview
//
// Mathproblem generates randomized practice problems and draws the
// right-triangle figures that trigonometry problems need. The pkg directory
// is organized into four areas:
//
//  1. Geometry and drawing: [geom], [diagram], [render/svg], [render/sink]
//  2. Problems: [problem]
//  3. Orchestration: [pipeline]
//  4. Infrastructure: [cache], [store], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	problem.Generator (kind, level, seed)
//	         ↓
//	    problem.Set with diagram.Request figures
//	         ↓
//	    diagram.Build (place, rotate, reposition)
//	         ↓
//	    diagram.Layout → render/svg fragments
//	         ↓
//	    render/sink → SVG/PNG/PDF/JSON, worksheet PDF
//
// The [pipeline] Runner ties these steps together behind a [cache], and the
// CLI and HTTP API both go through it.
//
// # Quick Start
//
// Draw a labeled triangle:
//
//	l, err := diagram.Build(30, 40,
//	    diagram.WithLabels("3", "4", "x"),
//	    diagram.WithRotation(30))
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("triangle.svg", l.SVG(), 0o644)
//
// Generate a set and render its figures as PNG:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Generate(ctx, pipeline.Options{
//	    Kind:    "right-angle",
//	    Level:   2,
//	    Count:   10,
//	    Formats: []string{"png"},
//	})
//
// # Main Packages
//
// [geom] - Vector, line and axis-aligned box arithmetic in SVG coordinates
// (y grows downward).
//
// [diagram] - The triangle layout builder: leg lengths, rotation, theta
// marker placement, side labels and the right-angle bracket.
//
// [render/svg] - The fixed set of SVG fragments a layout is drawn with.
//
// [render/sink] - Output formats. SVG is the layout's own document; PNG is
// rasterized with gg, PDF drawn with gofpdf.
//
// [problem] - Seeded generators for addition, right-angle trigonometry and
// graph-transformation problems.
//
// [store] - Problem-set persistence in memory, SQLite or MongoDB.
//
// [cache] - File, Redis and null caches for layouts, renders and sets.
//
// [observability] - Hook interfaces for pipeline, cache, HTTP and store events.
//
// [geom]: github.com/matzehuels/mathproblem/pkg/geom
// [diagram]: github.com/matzehuels/mathproblem/pkg/diagram
// [render/svg]: github.com/matzehuels/mathproblem/pkg/render/svg
// [render/sink]: github.com/matzehuels/mathproblem/pkg/render/sink
// [problem]: github.com/matzehuels/mathproblem/pkg/problem
// [pipeline]: github.com/matzehuels/mathproblem/pkg/pipeline
// [cache]: github.com/matzehuels/mathproblem/pkg/cache
// [store]: github.com/matzehuels/mathproblem/pkg/store
// [observability]: github.com/matzehuels/mathproblem/pkg/observability
// [errors]: github.com/matzehuels/mathproblem/pkg/errors
// [buildinfo]: github.com/matzehuels/mathproblem/pkg/buildinfo
package pkg

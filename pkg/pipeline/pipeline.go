// Package pipeline provides the generate → lay out → render pipeline for
// math problems.
//
// This package is shared by the CLI and the HTTP API so that both produce
// identical problem sets and diagrams and share one caching scheme.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: draw problems from a seeded [problem.Generator]
//  2. Layout: build the triangle diagram of every problem that has a figure
//  3. Render: produce each diagram in the requested formats (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached by layout hash and render options, so the
// same diagram is rendered once no matter which set it appears in.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    Kind:    "right-angle",
//	    Level:   2,
//	    Count:   10,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, p := range result.Set.Problems {
//	    png := result.Artifacts[p.ID]["png"]
//	    // ...
//	}
//
// Render a single diagram:
//
//	res, err := runner.RenderDiagram(ctx, req, pipeline.RenderOptions{Formats: []string{"pdf"}})
package pipeline

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mathproblem/pkg/cache"
	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCount is the number of problems in a set.
	DefaultCount = 10

	// MaxCount bounds the size of a single set.
	MaxCount = 100

	// DefaultScale is the PNG scale factor.
	DefaultScale = sink.DefaultScale
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// RenderOptions configures diagram rendering.
type RenderOptions struct {
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // skip cache reads

	Logger *log.Logger `json:"-"`
}

// Options contains all configuration for generating a problem set. It
// supports JSON serialization for API requests.
type Options struct {
	Kind      string `json:"kind"`
	Level     int    `json:"level"`
	Count     int    `json:"count,omitempty"`
	Seed      uint64 `json:"seed,omitempty"` // 0 draws a fresh seed
	MinDigits int    `json:"min_digits,omitempty"`
	MaxDigits int    `json:"max_digits,omitempty"`

	// Formats lists the formats every diagram is rendered in. Empty renders
	// nothing beyond the SVG fragments stored on each problem.
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	kind      problem.Kind
	validated bool
}

// Result contains the outputs of a generate run.
type Result struct {
	// Set is the generated problem set.
	Set *problem.Set

	// Artifacts maps problem id to rendered outputs keyed by format. Only
	// problems with a diagram have an entry.
	Artifacts map[string]map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// DiagramResult contains the outputs of rendering one diagram.
type DiagramResult struct {
	Layout     diagram.Layout
	LayoutHash string
	Artifacts  map[string][]byte
	CacheInfo  CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ProblemCount int
	DiagramCount int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo counts cache hits for layouts and artifacts.
type CacheInfo struct {
	LayoutHits     int
	ArtifactHits   int
	ArtifactMisses int
}

func (c *CacheInfo) add(o CacheInfo) {
	c.LayoutHits += o.LayoutHits
	c.ArtifactHits += o.ArtifactHits
	c.ArtifactMisses += o.ArtifactMisses
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are supported. Format names must
// already be lower case.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		if string(parsed) != f {
			return errors.New(errors.ErrCodeInvalidFormat, "format %q must be lower case", f)
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults. It is
// idempotent; a zero Seed is replaced once with a random one so that the
// seed reported in the set reproduces it.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	kind, err := problem.ParseKind(o.Kind)
	if err != nil {
		return err
	}
	lo, hi := kind.Levels()
	if err := errors.ValidateLevel(string(kind), o.Level, lo, hi); err != nil {
		return err
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.Count < 0 || o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "count must be 1 - %d, got %d", MaxCount, o.Count)
	}
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}

	render := o.renderOptions()
	if err := render.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if len(o.Formats) > 0 {
		o.Formats = render.Formats
	}
	o.Scale = render.Scale
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.Kind = string(kind)
	o.kind = kind
	o.validated = true
	return nil
}

// Params returns the generator parameters.
func (o *Options) Params() problem.Params {
	return problem.Params{MinDigits: o.MinDigits, MaxDigits: o.MaxDigits}
}

func (o *Options) renderOptions() RenderOptions {
	return RenderOptions{
		Formats: o.Formats,
		Scale:   o.Scale,
		Refresh: o.Refresh,
		Logger:  o.Logger,
	}
}

// ValidateAndSetDefaults checks the formats and applies defaults: SVG when no
// format is given and [DefaultScale]. Duplicate formats are dropped.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(sink.FormatSVG)}
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			return err
		}
		if seen[string(parsed)] {
			continue
		}
		seen[string(parsed)] = true
		formats = append(formats, string(parsed))
	}
	o.Formats = formats

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > sink.MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %v", sink.MaxScale, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format. Scale only
// changes PNG bytes, so it is left out of other keys.
func (o *RenderOptions) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == string(sink.FormatPNG) {
		opts.Scale = o.Scale
	}
	return opts
}

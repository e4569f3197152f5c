package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mathproblem/pkg/cache"
	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/observability"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/render/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Generate draws a problem set and renders every diagram in opts.Formats.
func (r *Runner) Generate(ctx context.Context, opts Options) (_ *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnGenerateStart(ctx, opts.Kind, opts.Level, opts.Count)
	defer func() {
		count := 0
		if err == nil {
			count = opts.Count
		}
		hooks.OnGenerateComplete(ctx, opts.Kind, count, time.Since(start), err)
	}()

	set, layouts, err := GenerateSet(opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result := &Result{
		Set:       set,
		Artifacts: make(map[string]map[string][]byte),
	}
	result.Stats.ProblemCount = len(set.Problems)
	result.Stats.DiagramCount = len(layouts)
	result.Stats.GenerateTime = time.Since(start)

	r.Logger.Info("generated problems",
		"kind", set.Kind,
		"level", set.Level,
		"count", len(set.Problems),
		"seed", set.Seed,
		"duration", result.Stats.GenerateTime)

	if len(opts.Formats) == 0 || len(layouts) == 0 {
		return result, nil
	}

	renderStart := time.Now()
	render := opts.renderOptions()
	for _, p := range set.Problems {
		l, ok := layouts[p.ID]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artifacts, info, err := r.RenderLayout(ctx, l, render)
		if err != nil {
			return nil, fmt.Errorf("render problem %s: %w", p.ID, err)
		}
		result.Artifacts[p.ID] = artifacts
		result.CacheInfo.add(info)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered diagrams",
		"diagrams", len(layouts),
		"formats", opts.Formats,
		"cached", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateSet draws opts.Count problems and lays out their diagrams. It does
// no caching and no rendering. opts must have been validated.
//
// Problem ids are derived from the set id and the problem's position, so a
// stored set keeps stable problem ids.
func GenerateSet(opts Options) (*problem.Set, map[string]diagram.Layout, error) {
	if !opts.validated {
		if err := opts.ValidateAndSetDefaults(); err != nil {
			return nil, nil, err
		}
	}

	setID := uuid.New()
	set := &problem.Set{
		ID:        setID.String(),
		Kind:      opts.kind,
		Level:     opts.Level,
		Seed:      opts.Seed,
		CreatedAt: time.Now().UTC(),
		Problems:  make([]problem.Problem, 0, opts.Count),
	}
	layouts := make(map[string]diagram.Layout)

	g := problem.NewGenerator(opts.Seed)
	for i := range opts.Count {
		p, err := g.Generate(opts.kind, opts.Level, opts.Params())
		if err != nil {
			return nil, nil, err
		}
		p.ID = uuid.NewSHA1(setID, []byte(strconv.Itoa(i))).String()
		if p.Figure != nil {
			l, err := p.Layout()
			if err != nil {
				return nil, nil, fmt.Errorf("layout problem %d: %w", i+1, err)
			}
			p.Diagram = l.Fragments()
			layouts[p.ID] = l
		}
		set.Problems = append(set.Problems, p)
	}
	return set, layouts, nil
}

// RenderDiagram lays out req and renders it in every requested format. The
// layout is cached by the hash of the request.
func (r *Runner) RenderDiagram(ctx context.Context, req diagram.Request, opts RenderOptions) (*DiagramResult, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	l, hit, err := r.layout(ctx, req, opts.Refresh)
	if err != nil {
		return nil, err
	}
	artifacts, info, err := r.RenderLayout(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	if hit {
		info.LayoutHits++
	}
	hash, err := layoutHash(l)
	if err != nil {
		return nil, err
	}
	return &DiagramResult{
		Layout:     l,
		LayoutHash: hash,
		Artifacts:  artifacts,
		CacheInfo:  info,
	}, nil
}

func (r *Runner) layout(ctx context.Context, req diagram.Request, refresh bool) (diagram.Layout, bool, error) {
	reqHash, err := cache.HashJSON(req)
	if err != nil {
		return diagram.Layout{}, false, fmt.Errorf("hash request: %w", err)
	}
	key := r.Keyer.DiagramKey(reqHash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var l diagram.Layout
			if err := json.Unmarshal(data, &l); err == nil {
				observability.Cache().OnCacheHit(ctx, "diagram")
				return l, true, nil
			}
			// A stale or corrupt entry falls through to a rebuild.
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	l, err := req.Build()
	if err != nil {
		return diagram.Layout{}, false, err
	}
	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLDiagram); err == nil {
			observability.Cache().OnCacheSet(ctx, "diagram", len(data))
		}
	}
	return l, false, nil
}

// RenderLayout renders l in every format of opts, reading and writing the
// artifact cache one format at a time.
func (r *Runner) RenderLayout(ctx context.Context, l diagram.Layout, opts RenderOptions) (_ map[string][]byte, info CacheInfo, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, info, err
	}
	hash, err := layoutHash(l)
	if err != nil {
		return nil, info, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				info.ArtifactHits++
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		data, err := sink.Render(l, sink.Format(format), sink.WithScale(opts.Scale))
		if err != nil {
			return nil, info, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		info.ArtifactMisses++

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return artifacts, info, nil
}

// Worksheet renders set as a PDF worksheet, cached by set id.
func (r *Runner) Worksheet(ctx context.Context, set *problem.Set, answerKey, refresh bool) ([]byte, bool, error) {
	if set == nil {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "worksheet requires a problem set")
	}
	key := r.Keyer.WorksheetKey(set.ID, cache.WorksheetKeyOpts{Format: string(sink.FormatPDF), AnswerKey: answerKey})
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "worksheet")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "worksheet")
	}

	var opts []sink.WorksheetOption
	if answerKey {
		opts = append(opts, sink.WithAnswerKey())
	}
	data, err := sink.RenderWorksheetPDF(set, opts...)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "worksheet", len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func layoutHash(l diagram.Layout) (string, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("serialize layout for cache key: %w", err)
	}
	return cache.Hash(data), nil
}

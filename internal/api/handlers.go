package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mathproblem/pkg/buildinfo"
	"github.com/matzehuels/mathproblem/pkg/cache"
	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/observability"
	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/render/sink"
	"github.com/matzehuels/mathproblem/pkg/store"
)

type createSetRequest struct {
	Kind      string `json:"kind"`
	Level     int    `json:"level"`
	Count     int    `json:"count"`
	Seed      uint64 `json:"seed"`
	MinDigits int    `json:"min_digits"`
	MaxDigits int    `json:"max_digits"`
}

type listSetsResponse struct {
	Sets []store.Summary `json:"sets"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleCreateSet(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateBody(setRequestSchema, body); err != nil {
		s.writeError(w, r, err)
		return
	}
	var req createSetRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	res, err := s.runner.Generate(r.Context(), pipeline.Options{
		Kind:      req.Kind,
		Level:     req.Level,
		Count:     req.Count,
		Seed:      req.Seed,
		MinDigits: req.MinDigits,
		MaxDigits: req.MaxDigits,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), res.Set); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.cacheSet(r.Context(), res.Set)

	w.Header().Set("Location", "/v1/sets/"+res.Set.ID)
	writeJSON(w, http.StatusCreated, res.Set)
}

func (s *Server) handleListSets(w http.ResponseWriter, r *http.Request) {
	var opts store.ListOptions
	q := r.URL.Query()
	if k := q.Get("kind"); k != "" {
		kind, err := problem.ParseKind(k)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Kind = kind
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > 500 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be an integer in 1 - 500, got %q", l))
			return
		}
		opts.Limit = n
	}

	sets, err := s.store.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sets == nil {
		sets = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, listSetsResponse{Sets: sets})
}

func (s *Server) handleGetSet(w http.ResponseWriter, r *http.Request) {
	set, err := s.loadSet(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSetID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = s.runner.Cache.Delete(r.Context(), s.runner.Keyer.SetKey(id))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWorksheet(w http.ResponseWriter, r *http.Request) {
	set, err := s.loadSet(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	answers, err := boolParam(r, "answers")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, _, err := s.runner.Worksheet(r.Context(), set, answers, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="worksheet-`+set.ID+`.pdf"`)
	writeArtifact(w, sink.FormatPDF, data)
}

func (s *Server) handleProblemDiagram(w http.ResponseWriter, r *http.Request) {
	set, err := s.loadSet(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > len(set.Problems) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "set %s has no problem %q", set.ID, chi.URLParam(r, "n")))
		return
	}
	p := set.Problems[n-1]
	if p.Figure == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "problem %d has no diagram", n))
		return
	}
	s.renderDiagram(w, r, *p.Figure)
}

func (s *Server) handleRenderDiagram(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateBody(diagramRequestSchema, body); err != nil {
		s.writeError(w, r, err)
		return
	}
	var req diagram.Request
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	s.renderDiagram(w, r, req)
}

// renderDiagram renders req in the format named by the "format" query
// parameter (default svg). PNG accepts a "scale" parameter.
func (s *Server) renderDiagram(w http.ResponseWriter, r *http.Request, req diagram.Request) {
	format := sink.FormatSVG
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := sink.ParseFormat(f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		format = parsed
	}
	opts := pipeline.RenderOptions{Formats: []string{string(format)}, Logger: s.logger}
	if sc := r.URL.Query().Get("scale"); sc != "" {
		v, err := strconv.ParseFloat(sc, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scale must be a number, got %q", sc))
			return
		}
		opts.Scale = v
	}

	res, err := s.runner.RenderDiagram(r.Context(), req, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("ETag", `"`+res.LayoutHash[:16]+`"`)
	writeArtifact(w, format, res.Artifacts[string(format)])
}

// loadSet reads the set named by the {id} parameter, through the cache.
func (s *Server) loadSet(r *http.Request) (*problem.Set, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateSetID(id); err != nil {
		return nil, err
	}
	ctx := r.Context()
	key := s.runner.Keyer.SetKey(id)
	if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
		var set problem.Set
		if err := json.Unmarshal(data, &set); err == nil {
			observability.Cache().OnCacheHit(ctx, "set")
			return &set, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "set")

	set, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, set)
	return set, nil
}

func (s *Server) cacheSet(ctx context.Context, set *problem.Set) {
	data, err := json.Marshal(set)
	if err != nil {
		return
	}
	if err := s.runner.Cache.Set(ctx, s.runner.Keyer.SetKey(set.ID), data, cache.TTLSet); err != nil {
		s.logger.Warn("cache set failed", "set", set.ID, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "set", len(data))
}

func writeArtifact(w http.ResponseWriter, f sink.Format, data []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "%s must be true or false, got %q", name, v)
	}
	return b, nil
}

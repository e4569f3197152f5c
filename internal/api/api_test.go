package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mathproblem/pkg/cache"
	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(Config{
		Runner: pipeline.NewRunner(c, nil, logger),
		Store:  store.NewMemoryStore(),
		Logger: logger,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func expectError(t *testing.T, resp *http.Response, status int, code errors.Code) {
	t.Helper()
	if resp.StatusCode != status {
		t.Errorf("status = %d, want %d", resp.StatusCode, status)
	}
	var body errorBody
	decode(t, resp, &body)
	if body.Error.Code != code {
		t.Errorf("code = %s (%s), want %s", body.Error.Code, body.Error.Message, code)
	}
	if body.Error.RequestID == "" {
		t.Error("missing request id")
	}
}

func TestHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/healthz", "")
	var health map[string]string
	decode(t, resp, &health)
	if resp.StatusCode != http.StatusOK || health["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, health)
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/version", "")
	var version map[string]string
	decode(t, resp, &version)
	if version["version"] == "" || version["go_version"] == "" {
		t.Errorf("version = %v", version)
	}
}

func TestSetLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/v1/sets", `{"kind":"right-angle","level":2,"count":3,"seed":42}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var set problem.Set
	decode(t, resp, &set)
	if len(set.Problems) != 3 || set.Seed != 42 || set.Kind != problem.KindRightAngle {
		t.Fatalf("created set = %+v", set)
	}
	if loc := resp.Header.Get("Location"); loc != "/v1/sets/"+set.ID {
		t.Errorf("Location = %q", loc)
	}
	for _, p := range set.Problems {
		if p.Figure == nil || len(p.Diagram) == 0 {
			t.Errorf("problem %s has no diagram", p.ID)
		}
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/sets/"+set.ID, "")
	var got problem.Set
	decode(t, resp, &got)
	if resp.StatusCode != http.StatusOK || got.ID != set.ID || got.Problems[2].Answer != set.Problems[2].Answer {
		t.Errorf("get = %d %+v", resp.StatusCode, got.ID)
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/sets?kind=right_angle", "")
	var list listSetsResponse
	decode(t, resp, &list)
	if len(list.Sets) != 1 || list.Sets[0].ID != set.ID || list.Sets[0].Count != 3 {
		t.Errorf("list = %+v", list)
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/sets/"+set.ID+"/problems/1/diagram?format=png", "")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("diagram = %d %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/sets/"+set.ID+"/worksheet?answers=true", "")
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("worksheet = %d %.8q", resp.StatusCode, data)
	}

	resp = do(t, http.MethodGet, srv.URL+"/v1/sets/"+set.ID+"/problems/4/diagram", "")
	expectError(t, resp, http.StatusNotFound, errors.ErrCodeNotFound)

	resp = do(t, http.MethodDelete, srv.URL+"/v1/sets/"+set.ID, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, srv.URL+"/v1/sets/"+set.ID, "")
	expectError(t, resp, http.StatusNotFound, errors.ErrCodeSetNotFound)
	resp = do(t, http.MethodDelete, srv.URL+"/v1/sets/"+set.ID, "")
	expectError(t, resp, http.StatusNotFound, errors.ErrCodeSetNotFound)
}

func TestCreateSet_Invalid(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"malformed", `{`, errors.ErrCodeInvalidInput},
		{"unknown kind", `{"kind":"division","level":1}`, errors.ErrCodeInvalidInput},
		{"missing level", `{"kind":"addition"}`, errors.ErrCodeInvalidInput},
		{"extra field", `{"kind":"addition","level":1,"colour":"red"}`, errors.ErrCodeInvalidInput},
		{"count too high", `{"kind":"addition","level":1,"count":1000}`, errors.ErrCodeInvalidInput},
		{"level out of range for kind", `{"kind":"addition","level":4}`, errors.ErrCodeInvalidLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/v1/sets", tt.body)
			expectError(t, resp, http.StatusBadRequest, tt.code)
		})
	}
}

func TestListSets_Invalid(t *testing.T) {
	srv := newTestServer(t)
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/sets?kind=bogus", ""), http.StatusBadRequest, errors.ErrCodeInvalidKind)
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/sets?limit=abc", ""), http.StatusBadRequest, errors.ErrCodeInvalidInput)

	resp := do(t, http.MethodGet, srv.URL+"/v1/sets", "")
	var list listSetsResponse
	decode(t, resp, &list)
	if list.Sets == nil || len(list.Sets) != 0 {
		t.Errorf("empty list = %+v", list)
	}
}

func TestGetSet_BadID(t *testing.T) {
	srv := newTestServer(t)
	expectError(t, do(t, http.MethodGet, srv.URL+"/v1/sets/nope", ""), http.StatusBadRequest, errors.ErrCodeInvalidID)
}

func TestRenderDiagram(t *testing.T) {
	srv := newTestServer(t)
	body := `{"leg_ab":3,"leg_ac":4,"labels":{"ab":"3","ac":"4","bc":null}}`

	resp := do(t, http.MethodPost, srv.URL+"/v1/diagrams?format=svg", body)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
		t.Fatalf("status = %d, type = %s", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	got, _ := io.ReadAll(resp.Body)
	want, _ := diagram.Build(3, 4, diagram.WithLabels("3", "4", ""), diagram.WithUnknown(diagram.SideBC))
	if !bytes.Equal(got, want.SVG()) {
		t.Errorf("svg =\n%s\nwant\n%s", got, want.SVG())
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("missing ETag")
	}

	resp = do(t, http.MethodPost, srv.URL+"/v1/diagrams?format=json", body)
	var l diagram.Layout
	decode(t, resp, &l)
	if l != want {
		t.Error("json diagram differs")
	}

	tests := []struct {
		name, query, body string
		code              errors.Code
	}{
		{"bad format", "?format=gif", body, errors.ErrCodeInvalidFormat},
		{"zero leg", "", `{"leg_ab":0,"leg_ac":4}`, errors.ErrCodeInvalidInput},
		{"markup label", "", `{"leg_ab":3,"leg_ac":4,"labels":{"ab":"<b>"}}`, errors.ErrCodeInvalidInput},
		{"bad theta", "", `{"leg_ab":3,"leg_ac":4,"theta":"A"}`, errors.ErrCodeInvalidInput},
		{"bad scale", "?format=png&scale=x", body, errors.ErrCodeInvalidInput},
		{"leg over schema max", "", `{"leg_ab":10000,"leg_ac":4}`, errors.ErrCodeInvalidInput},
		{"png too large", "?format=png&scale=8", `{"leg_ab":1000,"leg_ac":1000,"rotation":45}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/v1/diagrams"+tt.query, tt.body)
			expectError(t, resp, http.StatusBadRequest, tt.code)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/v2/nothing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

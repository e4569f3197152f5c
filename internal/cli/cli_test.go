package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/mathproblem/internal/config"
	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/store"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := New(&bytes.Buffer{}, LogInfo).RootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"SVG, png,,pdf ", []string{"svg", "png", "pdf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"cache", "completion", "diagram", "generate", "practice", "serve", "worksheet"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestGenerateCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "set.yaml")

	err := execute(t, "generate", "-k", "right-angle", "-l", "2", "-n", "3", "-s", "42",
		"-o", out, "--formats", "svg,json", "--out-dir", filepath.Join(dir, "figs"), "--save")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	set, err := readSetFile(out)
	if err != nil {
		t.Fatalf("read generated set: %v", err)
	}
	if set.Kind != problem.KindRightAngle || set.Seed != 42 || len(set.Problems) != 3 {
		t.Errorf("set = %+v", set)
	}

	figs, _ := filepath.Glob(filepath.Join(dir, "figs", "*"))
	if len(figs) != 6 {
		t.Errorf("wrote %d figures, want 6: %v", len(figs), figs)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	st, err := store.Open(context.Background(), cfg.Store)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if _, err := st.Get(context.Background(), set.ID); err != nil {
		t.Errorf("saved set not found: %v", err)
	}
}

func TestGenerateCommand_InvalidKind(t *testing.T) {
	isolate(t)
	err := execute(t, "generate", "-k", "division", "-o", filepath.Join(t.TempDir(), "x.json"))
	if !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("error = %v, want INVALID_KIND", err)
	}
}

func TestDiagramCommand(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "tri.json")

	err := execute(t, "diagram", "--ab", "30", "--ac", "40", "--label-ab", "3", "--label-bc", "x",
		"--theta", "C", "-f", "json", "-o", out)
	if err != nil {
		t.Fatalf("diagram: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var l diagram.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if l.ThetaVertex() != diagram.VertexC {
		t.Errorf("theta vertex = %v, want C", l.ThetaVertex())
	}
	if _, ok := l.Label(diagram.SideAC); ok {
		t.Error("AC should be unlabeled")
	}
	if text, ok := l.Label(diagram.SideBC); !ok || text != "x" {
		t.Errorf("BC label = %q, %v", text, ok)
	}
}

func TestDiagramCommand_Errors(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "tri.svg")

	if err := execute(t, "diagram", "--ab", "30", "-o", out); err == nil {
		t.Error("missing --ac should fail")
	}
	if err := execute(t, "diagram", "--ab", "30", "--ac", "40", "-f", "gif", "-o", out); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif error = %v", err)
	}
	if err := execute(t, "diagram", "--ab", "-1", "--ac", "40", "-o", out); !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("negative leg error = %v", err)
	}
}

func TestWorksheetCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	setFile := filepath.Join(dir, "set.json")
	if err := execute(t, "generate", "-k", "addition", "-n", "4", "-o", setFile); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "sheet.pdf")
	if err := execute(t, "worksheet", "--from", setFile, "--answers", "-o", out); err != nil {
		t.Fatalf("worksheet: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("worksheet is not a PDF: %q", data[:min(len(data), 16)])
	}

	if err := execute(t, "worksheet", "--from", setFile, "--set", "x"); err == nil {
		t.Error("--from and --set together should fail")
	}
}

func TestEncodeSet(t *testing.T) {
	set := &problem.Set{ID: "s", Kind: problem.KindAddition, Level: 1, Problems: []problem.Problem{{ID: "p", Prompt: "1 + 2", Answer: "3"}}}

	js, err := encodeSet(set, encodingJSON)
	if err != nil || !strings.Contains(string(js), `"prompt": "1 + 2"`) {
		t.Errorf("json = %s, %v", js, err)
	}
	ym, err := encodeSet(set, encodingYAML)
	if err != nil || !strings.Contains(string(ym), "prompt: 1 + 2") {
		t.Errorf("yaml = %s, %v", ym, err)
	}
	if _, err := encodeSet(set, "toml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("toml error = %v", err)
	}
}

func TestReadSetFile_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{"id":"x","problems":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readSetFile(empty); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty set error = %v", err)
	}

	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("problems: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readSetFile(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad yaml error = %v", err)
	}

	if _, err := readSetFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestArtifactName(t *testing.T) {
	p := problem.Problem{ID: "0123456789abcdef"}
	if got := artifactName(0, p, "png"); got != "01-01234567.png" {
		t.Errorf("artifactName = %q", got)
	}
}

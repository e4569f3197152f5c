package cli

import (
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout returns what fn prints to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name               string
		problems, diagrams int
		cached             bool
		want, absent       []string
	}{
		{"fresh", 6, 6, false, []string{"6 problems", "6 diagrams", "fresh"}, []string{"cached"}},
		{"cached without diagrams", 4, 0, true, []string{"4 problems", "cached"}, []string{"diagrams", "fresh"}},
		{"diagram only", 0, 1, false, []string{"1 diagrams"}, []string{"problems"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t, func() { printStats(tt.problems, tt.diagrams, tt.cached) })
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(out, a) {
					t.Errorf("output %q should not contain %q", out, a)
				}
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func()
		want  []string
	}{
		{"success", func() { printSuccess("wrote %d", 3) }, []string{"✓", "wrote 3"}},
		{"error", func() { printError("failed") }, []string{"✗", "failed"}},
		{"warning", func() { printWarning("redis %s", "cache") }, []string{"!", "redis cache"}},
		{"info", func() { printInfo("cleared") }, []string{"›", "cleared"}},
		{"file", func() { printFile("out.svg") }, []string{"→", "out.svg"}},
		{"key value", func() { printKeyValue("Canvas", "60x60") }, []string{"Canvas", "60x60"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t, tt.print)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestPlain(t *testing.T) {
	if got := plain("sin &theta; = x&sup2;"); got != "sin θ = x²" {
		t.Errorf("plain() = %q", got)
	}
}

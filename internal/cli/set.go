package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mathproblem/internal/config"
	"github.com/matzehuels/mathproblem/pkg/errors"
	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/store"
)

// Set encodings accepted by --encoding and recognized by file extension.
const (
	encodingJSON = "json"
	encodingYAML = "yaml"
)

// setSource holds the flags shared by commands that work on a problem set:
// either generation parameters, a set file or a stored set id.
type setSource struct {
	kind      string
	level     int
	count     int
	seed      uint64
	minDigits int
	maxDigits int

	from  string // set file written by generate
	setID string // id in the configured store
}

func (s *setSource) addFlags(cmd *cobra.Command, withStored bool) {
	cmd.Flags().StringVarP(&s.kind, "kind", "k", string(problem.KindRightAngle), "problem kind: addition, right-angle, graph-transform")
	cmd.Flags().IntVarP(&s.level, "level", "l", 1, "difficulty level")
	cmd.Flags().IntVarP(&s.count, "count", "n", pipeline.DefaultCount, "number of problems")
	cmd.Flags().Uint64VarP(&s.seed, "seed", "s", 0, "random seed (0 picks one)")
	cmd.Flags().IntVar(&s.minDigits, "min-digits", 0, "smallest addition operand size")
	cmd.Flags().IntVar(&s.maxDigits, "max-digits", 0, "largest addition operand size")
	if withStored {
		cmd.Flags().StringVar(&s.from, "from", "", "read the set from a JSON or YAML file")
		cmd.Flags().StringVar(&s.setID, "set", "", "load a saved set by id")
		cmd.MarkFlagsMutuallyExclusive("from", "set")
	}
}

func (s *setSource) options() pipeline.Options {
	return pipeline.Options{
		Kind:      s.kind,
		Level:     s.level,
		Count:     s.count,
		Seed:      s.seed,
		MinDigits: s.minDigits,
		MaxDigits: s.maxDigits,
	}
}

// loadSet resolves src into a problem set.
func (c *CLI) loadSet(ctx context.Context, cfg config.Config, runner *pipeline.Runner, src *setSource) (*problem.Set, error) {
	switch {
	case src.from != "":
		return readSetFile(src.from)
	case src.setID != "":
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		return st.Get(ctx, src.setID)
	}

	res, err := runner.Generate(ctx, src.options())
	if err != nil {
		return nil, err
	}
	return res.Set, nil
}

// readSetFile decodes a set file, choosing YAML for .yaml and .yml.
func readSetFile(path string) (*problem.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read set: %w", err)
	}
	var set problem.Set
	if enc := encodingFor(path); enc == encodingYAML {
		err = yaml.Unmarshal(data, &set)
	} else {
		err = json.Unmarshal(data, &set)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode set %s", path)
	}
	if len(set.Problems) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "set %s has no problems", path)
	}
	return &set, nil
}

// encodeSet renders set as indented JSON or YAML.
func encodeSet(set *problem.Set, encoding string) ([]byte, error) {
	if err := errors.ValidateFormat(encoding, encodingJSON, encodingYAML); err != nil {
		return nil, err
	}
	if encoding == encodingYAML {
		return yaml.Marshal(set)
	}
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodingFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return encodingYAML
	}
	return encodingJSON
}

func countFigures(problems []problem.Problem) int {
	n := 0
	for _, p := range problems {
		if p.Figure != nil {
			n++
		}
	}
	return n
}

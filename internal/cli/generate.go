package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/problem"
	"github.com/matzehuels/mathproblem/pkg/render/sink"
	"github.com/matzehuels/mathproblem/pkg/store"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	src      setSource
	encoding string  // json or yaml
	output   string  // set file; empty writes to stdout
	formats  string  // diagram formats, comma-separated
	outDir   string  // directory for diagram files
	scale    float64 // PNG scale
	save     bool    // persist to the configured store
	noCache  bool
	refresh  bool
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{encoding: encodingJSON}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a problem set",
		Long: `Generate a set of practice problems and write it as JSON or YAML.

With --formats, every diagram in the set is also rendered into --out-dir as
NN-<id>.<format>. With --save, the set is stored in the configured store so
the API and the worksheet --set flag can find it.`,
		Example: `  mathproblem generate -k addition -l 2 -n 20 -f yaml -o sums.yaml
  mathproblem generate -k right-angle --formats svg,png --out-dir figures`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "" && !cmd.Flags().Changed("encoding") {
				opts.encoding = encodingFor(opts.output)
			}
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	opts.src.addFlags(cmd, false)
	cmd.Flags().StringVarP(&opts.encoding, "encoding", "f", opts.encoding, "set encoding: json, yaml (default from -o extension)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.formats, "formats", "", "render diagrams: svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", ".", "directory for rendered diagrams")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the set to the configured store")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := opts.src.options()
	popts.Formats = parseFormats(opts.formats)
	popts.Scale = opts.scale
	popts.Refresh = opts.refresh
	popts.Logger = logger

	prog := newProgress(logger)
	res, err := runner.Generate(ctx, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d %s problems (seed %d)", res.Stats.ProblemCount, res.Set.Kind, res.Set.Seed))

	data, err := encodeSet(res.Set, opts.encoding)
	if err != nil {
		return err
	}

	// Status lines go to stdout too, so stay quiet when the set does.
	quiet := opts.output == ""
	if quiet {
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(opts.output, data, 0o644); err != nil {
			return fmt.Errorf("write set: %w", err)
		}
		printSuccess("Generated set %s", StyleHighlight.Render(res.Set.ID))
		printFile(opts.output)
	}

	files, err := writeArtifacts(opts.outDir, res)
	if err != nil {
		return err
	}
	if !quiet {
		for _, f := range files {
			printFile(f)
		}
		printStats(res.Stats.ProblemCount, res.Stats.DiagramCount, res.CacheInfo.ArtifactMisses == 0 && res.CacheInfo.ArtifactHits > 0)
	}

	if opts.save {
		if err := saveSet(ctx, cfg.Store, res.Set); err != nil {
			return err
		}
		logger.Info("Saved set", "id", res.Set.ID, "backend", cfg.Store.Backend)
		if !quiet {
			printNextStep("Print it", "mathproblem worksheet --set "+res.Set.ID+" --answers")
		}
	}
	return nil
}

// writeArtifacts writes every rendered diagram of res into dir, in problem
// order, and returns the written paths.
func writeArtifacts(dir string, res *pipeline.Result) ([]string, error) {
	if len(res.Artifacts) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	for i, p := range res.Set.Problems {
		for _, f := range sink.Formats {
			data, ok := res.Artifacts[p.ID][string(f)]
			if !ok {
				continue
			}
			path := filepath.Join(dir, artifactName(i, p, f))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func artifactName(i int, p problem.Problem, f sink.Format) string {
	id := p.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%02d-%s%s", i+1, id, f.Ext())
}

func saveSet(ctx context.Context, cfg store.Config, set *problem.Set) error {
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Save(ctx, set)
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mathproblem/pkg/diagram"
	"github.com/matzehuels/mathproblem/pkg/pipeline"
	"github.com/matzehuels/mathproblem/pkg/render/sink"
)

// diagramOpts holds the flags of the diagram command.
type diagramOpts struct {
	req     diagram.Request
	ab      string
	ac      string
	bc      string
	format  string
	scale   float64
	output  string
	noCache bool
	refresh bool
}

func (c *CLI) diagramCommand() *cobra.Command {
	opts := diagramOpts{format: string(sink.FormatSVG)}

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Draw a labeled right triangle",
		Long: `Draw the right triangle ABC with the right angle at A.

--ab and --ac are the leg lengths in drawing units; the hypotenuse BC follows.
Side labels are optional and support the HTML entities &theta; and &sup2;.
The theta marker sits at vertex B unless --theta C is given.`,
		Example: `  mathproblem diagram --ab 30 --ac 40 --label-ab 3 --label-ac 4 --label-bc x
  mathproblem diagram --ab 30 --ac 40 --rotation 45 -f png --scale 4 -o triangle.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("label-ab") {
				opts.req.Labels.AB = diagram.Str(opts.ab)
			}
			if flags.Changed("label-ac") {
				opts.req.Labels.AC = diagram.Str(opts.ac)
			}
			if flags.Changed("label-bc") {
				opts.req.Labels.BC = diagram.Str(opts.bc)
			}
			return c.runDiagram(cmd.Context(), &opts)
		},
	}

	cmd.Flags().Float64Var(&opts.req.LegAB, "ab", 0, "length of leg AB")
	cmd.Flags().Float64Var(&opts.req.LegAC, "ac", 0, "length of leg AC")
	cmd.Flags().Float64Var(&opts.req.Rotation, "rotation", 0, "rotation in degrees")
	cmd.Flags().StringVar(&opts.req.Theta, "theta", "", "vertex of the theta marker: B (default), C")
	cmd.Flags().StringVar(&opts.req.ThetaLabel, "theta-label", "", "theta marker text (default &theta;)")
	cmd.Flags().StringVar(&opts.ab, "label-ab", "", "label of side AB")
	cmd.Flags().StringVar(&opts.ac, "label-ac", "", "label of side AC")
	cmd.Flags().StringVar(&opts.bc, "label-bc", "", "label of hypotenuse BC")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, pdf, json")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout for svg and json, triangle.<format> otherwise)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	_ = cmd.MarkFlagRequired("ab")
	_ = cmd.MarkFlagRequired("ac")

	return cmd
}

func (c *CLI) runDiagram(ctx context.Context, opts *diagramOpts) error {
	logger := loggerFromContext(ctx)

	format, err := sink.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	output := opts.output
	toStdout := output == "" && (format == sink.FormatSVG || format == sink.FormatJSON)
	if output == "" && !toStdout {
		output = "triangle" + format.Ext()
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.RenderDiagram(ctx, opts.req, pipeline.RenderOptions{
		Formats: []string{string(format)},
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s diagram", format))

	data := res.Artifacts[string(format)]
	if toStdout {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write diagram: %w", err)
	}

	w, h := res.Layout.Canvas()
	printSuccess("Rendered diagram")
	printFile(output)
	printKeyValue("Canvas", fmt.Sprintf("%.0f × %.0f", w, h))
	printKeyValue("Layout", res.LayoutHash[:16])
	printStats(0, 1, res.CacheInfo.ArtifactHits > 0)
	return nil
}

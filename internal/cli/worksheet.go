package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// worksheetOpts holds the flags of the worksheet command.
type worksheetOpts struct {
	src       setSource
	answerKey bool
	output    string
	noCache   bool
	refresh   bool
}

func (c *CLI) worksheetCommand() *cobra.Command {
	var opts worksheetOpts

	cmd := &cobra.Command{
		Use:   "worksheet",
		Short: "Render a printable PDF worksheet",
		Long: `Render a problem set as an A4 PDF worksheet with numbered prompts and
figures. The set is generated from the kind, level and count flags unless
--from or --set names an existing one. --answers appends an answer key with
worked steps.`,
		Example: `  mathproblem worksheet -k right-angle -l 2 -n 8 --answers
  mathproblem worksheet --from sums.yaml -o sums.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWorksheet(cmd.Context(), &opts)
		},
	}

	opts.src.addFlags(cmd, true)
	cmd.Flags().BoolVar(&opts.answerKey, "answers", false, "append an answer key")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "worksheet.pdf", "output file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runWorksheet(ctx context.Context, opts *worksheetOpts) error {
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

	set, err := c.loadSet(ctx, cfg, runner, &opts.src)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d problems...", len(set.Problems)))
	spinner.Start()
	data, cached, err := runner.Worksheet(ctx, set, opts.answerKey, opts.refresh)
	if err != nil {
		spinner.StopWithError("Worksheet failed")
		return err
	}
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}
	prog.done("Rendered worksheet")

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write worksheet: %w", err)
	}

	printSuccess("Worksheet for set %s", StyleHighlight.Render(set.ID))
	printFile(opts.output)
	printStats(len(set.Problems), countFigures(set.Problems), cached)
	if !opts.answerKey {
		printNextStep("Include answers", "mathproblem worksheet --answers")
	}
	return nil
}

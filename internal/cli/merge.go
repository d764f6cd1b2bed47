package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/elementmerge/pkg/command"
	errs "github.com/matzehuels/elementmerge/pkg/errors"
	"github.com/matzehuels/elementmerge/pkg/merge"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// mergeOpts holds the command-line flags for the merge command.
type mergeOpts struct {
	target       string // element to merge into; empty means the first selected
	noProperties bool   // keep the target's documentation and properties as they are
	interactive  bool   // choose the target with the picker
	output       string // where to write the result; empty means back to the input
	dryRun       bool   // merge, report and undo without writing
	force        bool   // write even if the merged model fails validation
}

// mergeCommand creates the merge command.
func (c *CLI) mergeCommand() *cobra.Command {
	var opts mergeOpts

	cmd := &cobra.Command{
		Use:   "merge <model> <element-id> <element-id>...",
		Short: "Merge elements into a target element",
		Long: `Merge two or more elements of the same type and name into one.

The target keeps its identity. Every other selected element has its
relationships reconnected to the target, its diagram placements rebound to the
target (or migrated into an existing placement of the target on the same
diagram), and is then deleted. Unless --no-properties is given, documentation
and properties are appended to the target.

The merged model is checked before it is written. If the check fails nothing
is written unless --force is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]model.ID, len(args)-1)
			for i, a := range args[1:] {
				ids[i] = model.ID(a)
			}
			return c.runMerge(cmd.Context(), args[0], ids, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "element to merge into (default: first selected)")
	cmd.Flags().BoolVar(&opts.noProperties, "no-properties", false, "do not merge documentation and properties")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose the target interactively")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or store:<name> (default: overwrite input)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "write the model even if it fails validation")

	cmd.ValidArgsFunction = c.mergeArgs
	_ = cmd.RegisterFlagCompletionFunc("target", c.mergeTargets)

	return cmd
}

func (c *CLI) runMerge(ctx context.Context, ref string, ids []model.ID, opts mergeOpts) error {
	logger := loggerFromContext(ctx).With("model", ref)

	m, err := c.loadModel(ctx, ref)
	if err != nil {
		return err
	}

	var chooser merge.Chooser
	if opts.interactive {
		chooser = pickerChooser{model: m, out: os.Stderr}
	} else {
		fixed := merge.FixedChooser{Target: model.ID(opts.target)}
		if opts.noProperties {
			off := false
			fixed.MergeProperties = &off
		}
		chooser = fixed
	}

	stack := command.NewStack(0)
	merger := merge.NewMerger(m, stack, chooser, logger)
	merger.MergeProperties = c.mergePropertiesDefault()
	if opts.noProperties {
		merger.MergeProperties = false
	}

	res, err := merger.Merge(ctx, ids)
	if err != nil {
		return err
	}
	if res == nil {
		printInfo("Merge cancelled")
		return nil
	}

	invalid := m.Validate()
	if invalid != nil {
		logger.Warn("model has inconsistencies after merge", "error", invalid)
	}

	printMergeResult(res)
	printStats(m.Stats())

	if opts.dryRun {
		stack.Undo()
		printInfo("Dry run: nothing written")
		return nil
	}
	if invalid != nil && !opts.force {
		stack.Undo()
		return errs.Wrap(errs.ErrCodeInvalidModel, invalid, "merged model is invalid, use --force to write it anyway")
	}

	out := opts.output
	if out == "" {
		out = ref
	}
	if err := c.saveModel(ctx, out, m); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	stack.MarkSaved()
	printFile(out)
	return nil
}

func printMergeResult(res *merge.Result) {
	printSuccess("Merged %d element(s) into %s", len(res.Merged), StyleHighlight.Render(string(res.Target)))
	printDetail("%d relationship(s) reconnected", res.Relationships)
	printDetail("%d placement(s) rebound, %d migrated", res.Rebound, res.Migrated)
	if res.MergeProperties {
		printDetail("documentation and properties merged")
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/verify"
)

type checkJSON struct {
	Lifelines int              `json:"lifelines"`
	Findings  []verify.Finding `json:"findings"`
}

// checkCommand creates the check command for verifying scene invariants.
func (c *CLI) checkCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check [scene]",
		Short: "Verify the geometry invariants of every lifeline",
		Long: `Verify the geometry invariants of every lifeline.

For each lifeline the check confirms that:
  - clusters partition the activity bars exactly
  - every hull encloses its cluster
  - the outline never crosses itself
  - overlapping bars keep the minimum top spacing and nest to the right
  - the header ends inside the lifeline and no bar starts above it

Lifelines are checked concurrently. The command fails when any invariant
is violated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) runCheck(ctx context.Context, path string, asJSON bool) error {
	logger := loggerFromContext(ctx)
	_, ls, err := c.loadLifelines(path, "")
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newCheckSpinner(ctx, c.Err, "Checking lifelines", len(ls))
	spinner.Start()

	findings, err := verify.Lifelines(ctx, ls, spinner.Update)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Check failed after %d of %d lifelines", spinner.Checked(), len(ls)))
		return err
	}
	spinner.Stop()
	prog.done("checked", "lifelines", len(ls), "findings", len(findings))

	if asJSON {
		if findings == nil {
			findings = []verify.Finding{}
		}
		if err := writeJSON(c.Out, checkJSON{Lifelines: len(ls), Findings: findings}); err != nil {
			return err
		}
	} else if len(findings) == 0 {
		printSuccess(c.Out, "%d lifelines satisfy all invariants", len(ls))
	} else {
		for _, f := range findings {
			printWarning(c.Out, "%s", f)
		}
	}

	if len(findings) > 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "%d invariant violations", len(findings))
	}
	return nil
}

package cli

import (
	"github.com/spf13/cobra"
)

type hitJSON struct {
	Lifeline string `json:"lifeline"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Hit      bool   `json:"hit"`
}

// hitCommand creates the hit command for testing a point against a lifeline.
func (c *CLI) hitCommand() *cobra.Command {
	var (
		opts geometryOpts
		x, y int
	)
	cmd := &cobra.Command{
		Use:   "hit [scene]",
		Short: "Test whether a point selects a lifeline",
		Long: `Test whether a point selects a lifeline.

A point hits when it lies inside the widened hit-test outline or within
--hit-fuzz units of its boundary. With --lifeline only that lifeline is
tested; otherwise every lifeline that is hit is reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHit(args[0], opts, x, y)
		},
	}
	opts.register(cmd)
	cmd.Flags().IntVar(&x, "x", 0, "point x")
	cmd.Flags().IntVar(&y, "y", 0, "point y")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

func (c *CLI) runHit(path string, opts geometryOpts, x, y int) error {
	_, ls, err := c.loadLifelines(path, opts.lifeline)
	if err != nil {
		return err
	}

	out := make([]hitJSON, 0, len(ls))
	for _, l := range ls {
		hit, err := l.ContainsPoint(x, y)
		if err != nil {
			return err
		}
		out = append(out, hitJSON{Lifeline: l.ID(), X: x, Y: y, Hit: hit})
	}
	if opts.json {
		return writeJSON(c.Out, out)
	}

	hitAny := false
	for _, h := range out {
		if h.Hit {
			printSuccess(c.Out, "(%d,%d) hits %s", x, y, h.Lifeline)
			hitAny = true
		}
	}
	if !hitAny {
		printWarning(c.Out, "(%d,%d) hits no lifeline", x, y)
	}
	return nil
}

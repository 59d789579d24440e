package cli

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/lifeline"
	"github.com/matzehuels/lifeline/pkg/placement"
	"github.com/matzehuels/lifeline/pkg/scene"
)

// editOpts holds the flags shared by the editing commands.
type editOpts struct {
	lifeline string // lifeline to edit
	output   string // write the edited scene here
	json     bool   // emit JSON instead of styled text
}

func (o *editOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.lifeline, "lifeline", "l", "", "lifeline to edit (required)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "write the edited scene to this file")
	cmd.Flags().BoolVar(&o.json, "json", false, "print JSON")
	_ = cmd.MarkFlagRequired("lifeline")
}

// editJSON is the result of an edit: the edited bar and every sibling
// the cascade moved.
type editJSON struct {
	Lifeline string         `json:"lifeline"`
	Bar      lifeline.BarID `json:"bar"`
	Bounds   *geom.Rect     `json:"bounds,omitempty"`
	Deleted  bool           `json:"deleted,omitempty"`
	Moves    []lifeline.Bar `json:"moves"`
}

func newEditJSON(l *lifeline.Lifeline, id lifeline.BarID, bounds *geom.Rect, moves map[lifeline.BarID]geom.Rect) editJSON {
	out := editJSON{
		Lifeline: l.ID(),
		Bar:      id,
		Bounds:   bounds,
		Deleted:  bounds == nil,
		Moves:    make([]lifeline.Bar, 0, len(moves)),
	}
	for bar, r := range moves {
		out.Moves = append(out.Moves, lifeline.Bar{ID: bar, Bounds: r})
	}
	slices.SortFunc(out.Moves, func(a, b lifeline.Bar) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// =============================================================================
// place
// =============================================================================

// placeOpts holds the proposal flags of the place command.
type placeOpts struct {
	editOpts
	id     string
	x      int
	y      int
	width  int
	height int
}

// placeCommand creates the place command for adding an activity bar.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOpts{width: -1}
	cmd := &cobra.Command{
		Use:   "place [scene]",
		Short: "Place a new activity bar and relocate the bars it disturbs",
		Long: `Place a new activity bar and relocate the bars it disturbs.

The bar is centred on the lifeline unless --x is given, and uses the
configured default width unless --width is given. Its top is pushed below
any bar it would start inside, and it is shifted right when it nests in
another bar. Bars below it are then relocated until the layout settles.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			autoX := !cmd.Flags().Changed("x")
			return c.runPlace(args[0], opts, autoX)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.id, "id", "", "bar ID (default: random UUID)")
	cmd.Flags().IntVar(&opts.x, "x", 0, "left edge (default: centred on the lifeline)")
	cmd.Flags().IntVar(&opts.y, "y", 0, "top edge")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "width (default: configured bar width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "height")
	_ = cmd.MarkFlagRequired("y")
	_ = cmd.MarkFlagRequired("height")
	return cmd
}

func (c *CLI) runPlace(path string, opts placeOpts, autoX bool) error {
	s, l, err := c.loadLifeline(path, opts.lifeline)
	if err != nil {
		return err
	}

	id := opts.id
	if id == "" {
		id = uuid.NewString()
	}
	p := placement.Proposal{
		Bounds: geom.R(opts.x, opts.y, opts.width, opts.height),
		AutoX:  autoX,
	}

	rect, moves, err := c.newResolver().Place(l, lifeline.BarID(id), p)
	if err != nil {
		return err
	}
	c.Logger.Debug("bar placed", "lifeline", l.ID(), "bar", id, "bounds", rect, "moves", len(moves))

	return c.finishEdit(s, l, "Placed", newEditJSON(l, lifeline.BarID(id), &rect, moves), opts.editOpts)
}

// =============================================================================
// relocate
// =============================================================================

// relocateCommand creates the relocate command for moving or deleting a bar.
func (c *CLI) relocateCommand() *cobra.Command {
	var (
		opts editOpts
		bar  string
		to   string
		del  bool
	)
	cmd := &cobra.Command{
		Use:   "relocate [scene]",
		Short: "Move or delete an activity bar and relocate the bars it disturbs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (to == "") == !del {
				return errors.New(errors.ErrCodeInvalidInput, "exactly one of --to and --delete is required")
			}
			var target *geom.Rect
			if !del {
				r, err := parseRect(to)
				if err != nil {
					return err
				}
				target = &r
			}
			return c.runRelocate(args[0], opts, lifeline.BarID(bar), target)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&bar, "bar", "b", "", "bar to move (required)")
	cmd.Flags().StringVar(&to, "to", "", "new rectangle as x,y,width,height")
	cmd.Flags().BoolVar(&del, "delete", false, "delete the bar")
	_ = cmd.MarkFlagRequired("bar")
	return cmd
}

func (c *CLI) runRelocate(path string, opts editOpts, bar lifeline.BarID, to *geom.Rect) error {
	s, l, err := c.loadLifeline(path, opts.lifeline)
	if err != nil {
		return err
	}

	rect, moves, err := c.newResolver().Move(l, bar, to)
	if err != nil {
		return err
	}
	var bounds *geom.Rect
	if to != nil {
		bounds = &rect
	}
	return c.finishEdit(s, l, "Moved", newEditJSON(l, bar, bounds, moves), opts)
}

// finishEdit prints the edit result and optionally saves the scene.
func (c *CLI) finishEdit(s *scene.Scene, l *lifeline.Lifeline, verb string, res editJSON, opts editOpts) error {
	if opts.output != "" {
		if err := saveScene(s, l, opts.output); err != nil {
			return err
		}
	}
	if opts.json {
		return writeJSON(c.Out, res)
	}

	if res.Deleted {
		printSuccess(c.Out, "Deleted %s from %s", res.Bar, res.Lifeline)
	} else {
		printSuccess(c.Out, "%s %s on %s: %s", verb, res.Bar, res.Lifeline, res.Bounds)
	}
	if len(res.Moves) == 0 {
		printKeyValue(c.Out, "moves", StyleDim.Render("none"))
	}
	for _, m := range res.Moves {
		printMove(c.Out, string(m.ID), m.Bounds)
	}
	if opts.output != "" {
		printKeyValue(c.Out, "saved", opts.output)
	}
	return nil
}

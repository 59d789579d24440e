package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/geom"
	"github.com/matzehuels/lifeline/pkg/hull"
	"github.com/matzehuels/lifeline/pkg/lifeline"
)

// geometryOpts holds the flags shared by the read-only geometry commands.
type geometryOpts struct {
	lifeline string // restrict output to one lifeline
	json     bool   // emit JSON instead of styled text
}

func (o *geometryOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.lifeline, "lifeline", "l", "", "only this lifeline (default: all)")
	cmd.Flags().BoolVar(&o.json, "json", false, "print JSON")
}

// =============================================================================
// JSON Sinks
// =============================================================================

type outlineJSON struct {
	Lifeline string       `json:"lifeline"`
	Bars     int          `json:"bars"`
	Bands    int          `json:"bands"`
	Attach   geom.Polygon `json:"attach"`
	HitTest  geom.Polygon `json:"hit_test"`
}

type clusterJSON struct {
	Bars   []lifeline.BarID `json:"bars"`
	Bounds geom.Rect        `json:"bounds"`
	Hull   geom.Polygon     `json:"hull,omitempty"`
}

type clustersJSON struct {
	Lifeline string        `json:"lifeline"`
	Clusters []clusterJSON `json:"clusters"`
}

// =============================================================================
// outline
// =============================================================================

// outlineCommand creates the outline command.
func (c *CLI) outlineCommand() *cobra.Command {
	var opts geometryOpts
	cmd := &cobra.Command{
		Use:   "outline [scene]",
		Short: "Compose the outline polygons of each lifeline",
		Long: `Compose the outline polygons of each lifeline.

The attach polygon follows the header, the stem and the hulls of the
activity-bar clusters; messages connect to its boundary. The hit-test
polygon widens the stem so that thin lifelines are easy to select.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOutline(args[0], opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runOutline(path string, opts geometryOpts) error {
	_, ls, err := c.loadLifelines(path, opts.lifeline)
	if err != nil {
		return err
	}

	out := make([]outlineJSON, 0, len(ls))
	for _, l := range ls {
		o, err := l.Outline()
		if err != nil {
			return err
		}
		out = append(out, outlineJSON{
			Lifeline: l.ID(),
			Bars:     l.Len(),
			Bands:    o.Bands,
			Attach:   o.Attach,
			HitTest:  o.HitTest,
		})
	}
	if opts.json {
		return writeJSON(c.Out, out)
	}

	for _, o := range out {
		printTitle(c.Out, o.Lifeline)
		printKeyValue(c.Out, "bars", StyleNumber.Render(itoa(o.Bars)))
		printKeyValue(c.Out, "bands", StyleNumber.Render(itoa(o.Bands)))
		printPolygon(c.Out, "attach", o.Attach)
		printPolygon(c.Out, "hit-test", o.HitTest)
	}
	return nil
}

// =============================================================================
// group / hull
// =============================================================================

// groupCommand creates the group command.
func (c *CLI) groupCommand() *cobra.Command {
	var opts geometryOpts
	cmd := &cobra.Command{
		Use:   "group [scene]",
		Short: "List the overlap clusters of activity bars",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClusters(args[0], opts, false)
		},
	}
	opts.register(cmd)
	return cmd
}

// hullCommand creates the hull command.
func (c *CLI) hullCommand() *cobra.Command {
	var opts geometryOpts
	cmd := &cobra.Command{
		Use:   "hull [scene]",
		Short: "Compute the orthogonal hull of each cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runClusters(args[0], opts, true)
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) runClusters(path string, opts geometryOpts, withHull bool) error {
	_, ls, err := c.loadLifelines(path, opts.lifeline)
	if err != nil {
		return err
	}

	out := make([]clustersJSON, 0, len(ls))
	for _, l := range ls {
		entry := clustersJSON{Lifeline: l.ID(), Clusters: []clusterJSON{}}
		for _, bars := range l.Clusters() {
			cj := clusterJSON{Bars: make([]lifeline.BarID, len(bars))}
			rects := make([]geom.Rect, len(bars))
			for i, b := range bars {
				cj.Bars[i] = b.ID
				rects[i] = b.Bounds
			}
			cj.Bounds = geom.Bounds(rects)
			if withHull {
				cj.Hull = hull.Build(rects)
			}
			entry.Clusters = append(entry.Clusters, cj)
		}
		out = append(out, entry)
	}
	if opts.json {
		return writeJSON(c.Out, out)
	}

	for _, e := range out {
		printTitle(c.Out, e.Lifeline)
		for i, cl := range e.Clusters {
			key := "cluster " + itoa(i)
			printKeyValue(c.Out, key, joinIDs(cl.Bars)+" "+StyleDim.Render(cl.Bounds.String()))
			if withHull {
				printPolygon(c.Out, "", cl.Hull)
			}
		}
	}
	return nil
}

// Package cli implements the lifeline command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/buildinfo"
	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/lifeline"
	"github.com/matzehuels/lifeline/pkg/observability"
	"github.com/matzehuels/lifeline/pkg/placement"
	"github.com/matzehuels/lifeline/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "lifeline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// Out receives command results, Err receives progress output.
	Out io.Writer
	Err io.Writer

	configPath string
	verbose    bool
	overrides  overrides
}

// overrides holds global flags that take precedence over the config file.
type overrides struct {
	topSpacing int
	barWidth   int
	hitFuzz    int
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Lifeline computes sequence-diagram lifeline geometry",
		Long: `Lifeline is a CLI tool for the geometry of sequence-diagram lifelines:
it groups overlapping activity bars, composes the lifeline outline used for
attaching messages, hit-tests points against it, and places or relocates
activity bars without overlaps.

Every command reads a scene fixture (.yaml, .toml or .json).`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/lifeline/config.toml)")
	flags.IntVar(&c.overrides.topSpacing, "top-spacing", 0, "minimum gap between overlapping bar tops")
	flags.IntVar(&c.overrides.barWidth, "bar-width", 0, "width of bars placed without one")
	flags.IntVar(&c.overrides.hitFuzz, "hit-fuzz", 0, "tolerance around the hit-test outline")

	// Register all subcommands
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.groupCommand())
	root.AddCommand(c.hullCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.relocateCommand())
	root.AddCommand(c.hitCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies flag overrides and wires logging
// before any subcommand runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetOutlineHooks(hooks)
		observability.SetPlacementHooks(hooks)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("top-spacing") {
		cfg.TopSpacing = c.overrides.topSpacing
	}
	if flags.Changed("bar-width") {
		cfg.DefaultBarWidth = c.overrides.barWidth
	}
	if flags.Changed("hit-fuzz") {
		cfg.HitFuzz = c.overrides.hitFuzz
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "top_spacing", cfg.TopSpacing, "hit_fuzz", cfg.HitFuzz)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Engine Helpers
// =============================================================================

// newResolver creates a placement resolver sharing the CLI config and logger.
func (c *CLI) newResolver() *placement.Resolver {
	r := placement.New(c.Config)
	r.Logger = c.Logger
	return r
}

// loadLifelines reads a scene and builds either all lifelines or only
// the one named id.
func (c *CLI) loadLifelines(path, id string) (*scene.Scene, []*lifeline.Lifeline, error) {
	s, err := scene.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if id != "" {
		l, err := s.BuildLifeline(id, c.Config)
		if err != nil {
			return nil, nil, err
		}
		return s, []*lifeline.Lifeline{l}, nil
	}
	ls, err := s.Build(c.Config)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("scene loaded", "path", path, "lifelines", len(ls))
	return s, ls, nil
}

// loadLifeline reads a scene and builds the lifeline named id.
func (c *CLI) loadLifeline(path, id string) (*scene.Scene, *lifeline.Lifeline, error) {
	if id == "" {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "--lifeline is required")
	}
	s, ls, err := c.loadLifelines(path, id)
	if err != nil {
		return nil, nil, err
	}
	return s, ls[0], nil
}

// saveScene writes s with l replaced to output.
func saveScene(s *scene.Scene, l *lifeline.Lifeline, output string) error {
	if err := s.Replace(l); err != nil {
		return err
	}
	return scene.WriteFile(s, output)
}

// Package cli implements the elementmerge command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/elementmerge/pkg/buildinfo"
	"github.com/matzehuels/elementmerge/pkg/config"
	pkgio "github.com/matzehuels/elementmerge/pkg/io"
	"github.com/matzehuels/elementmerge/pkg/model"
	"github.com/matzehuels/elementmerge/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// storePrefix marks a model reference that names a stored model rather
	// than a file.
	storePrefix = "store:"
)

// LogInfo is the default log level, exported for use in main.go.
const LogInfo = log.InfoLevel

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	quiet      bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Elementmerge merges duplicate elements of architecture models",
		Long: `Elementmerge finds and merges duplicate elements of an architecture model.

Merging folds each selected element into a chosen target: relationships are
reconnected, diagram placements are rebound or migrated, and documentation and
properties are optionally carried over. Models are read from JSON files or from
a configured store (file, redis or mongo).`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.SetLevel(verbosity(c.verbose, c.quiet))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "log warnings and errors only")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.candidatesCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared State
// =============================================================================

// loadConfig loads the configuration once per invocation.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "backend", cfg.Store.Backend, "path", c.configPath)
	c.cfg = cfg
	return cfg, nil
}

// openStore opens the configured store. Callers must close it.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, cfg.StoreOptions())
}

// loadModel reads a model from a file path or, for "store:<name>", from the
// configured store.
func (c *CLI) loadModel(ctx context.Context, ref string) (*model.Model, error) {
	name, stored := strings.CutPrefix(ref, storePrefix)
	if !stored {
		m, err := pkgio.ImportJSON(ref)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", ref, err)
		}
		return m, nil
	}

	step := startStep(ctx, "Loading %s from the %s store", name, c.backend())
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, step.done(err, "")
	}
	defer st.Close()
	m, err := store.Load(ctx, st, name)
	if err := step.done(err, "Loaded "+ref); err != nil {
		return nil, err
	}
	return m, nil
}

// saveModel writes m back to ref, following the same rules as loadModel.
func (c *CLI) saveModel(ctx context.Context, ref string, m *model.Model) error {
	name, stored := strings.CutPrefix(ref, storePrefix)
	if !stored {
		step := startStep(ctx, "Writing %s", ref)
		return step.done(pkgio.ExportJSON(m, ref), "Wrote "+ref)
	}

	step := startStep(ctx, "Saving %s to the %s store", name, c.backend())
	st, err := c.openStore(ctx)
	if err != nil {
		return step.done(err, "")
	}
	defer st.Close()
	return step.done(store.Save(ctx, st, name, m), "Saved "+ref)
}

// backend names the configured store backend for progress output.
func (c *CLI) backend() string {
	cfg, err := c.loadConfig()
	if err != nil {
		return "configured"
	}
	return cfg.Store.Backend
}

// mergePropertiesDefault reports the configured initial choice for merging
// properties, falling back to true when no config can be read.
func (c *CLI) mergePropertiesDefault() bool {
	cfg, err := c.loadConfig()
	if err != nil {
		c.Logger.Warn("using default merge settings", "error", err)
		return true
	}
	return cfg.Merge.Properties
}

// Package cli implements the archdiagram command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: Write the architecture diagram as an image (png by default)
//   - dot: Print the Graphviz DOT source of the diagram
//   - describe: Summarize clusters, nodes and edges
//   - export: Write the diagram description as TOML or JSON
//   - completion: Generate shell completion scripts
//
// Every command works on the built-in URL shortener architecture unless
// --from points at a TOML or JSON description written by export.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging through
// charmbracelet/log. Logs go to stderr; command output goes to stdout.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/internal/topology"
	"github.com/matzehuels/archdiagram/pkg/buildinfo"
	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
	dio "github.com/matzehuels/archdiagram/pkg/io"
	"github.com/matzehuels/archdiagram/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "archdiagram"

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
	Out    io.Writer

	// CacheDir is where render --cache keeps artifacts. Empty selects
	// <user cache dir>/archdiagram.
	CacheDir string
}

// New creates a new CLI instance. Command output goes to out, logs to logw.
// Render hooks are routed to the CLI's logger.
func New(out, logw io.Writer, level log.Level) *CLI {
	logger := newLogger(logw, level)
	observability.SetRenderHooks(logHooks{logger: logger})
	return &CLI{
		Logger: logger,
		Out:    out,
	}
}

// openCache opens the on-disk artifact store. If it cannot be opened,
// rendering proceeds uncached.
func (c *CLI) openCache() cache.Store {
	dir := c.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			c.Logger.Warn("Cache disabled", "error", err)
			return cache.Disabled{}
		}
		dir = filepath.Join(base, appName)
	}
	store, err := cache.OpenDir(dir, cache.DefaultMaxAge)
	if err != nil {
		c.Logger.Warn("Cache disabled", "error", err)
		return cache.Disabled{}
	}
	c.Logger.Debug("Using cache", "dir", store.Root())
	return store
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archdiagram draws the URL shortener architecture",
		Long:         `Archdiagram renders the URL shortener's deployment architecture (load balancer, app servers, queue workers, Postgres and Redis) to an image with Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Diagram Loading
// =============================================================================

// sourceOpts are the flags shared by every command that loads a diagram.
type sourceOpts struct {
	from      string // TOML/JSON description; empty selects the built-in architecture
	direction string // rankdir override
	splines   string // splines override
}

func (o *sourceOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.from, "from", "", "read the diagram from a .toml or .json description instead of the built-in architecture")
	cmd.Flags().StringVar(&o.direction, "direction", "", "layout direction: LR (default), TB, BT, RL")
	cmd.Flags().StringVar(&o.splines, "splines", "", "edge routing: spline (default), ortho, polyline, curved, line")
}

// options converts the override flags into diagram options.
func (o *sourceOpts) options() ([]diagram.Option, error) {
	var opts []diagram.Option
	if o.direction != "" {
		if err := errors.ValidateDirection(o.direction); err != nil {
			return nil, err
		}
		opts = append(opts, diagram.WithDirection(o.direction))
	}
	if o.splines != "" {
		opts = append(opts, diagram.WithGraphAttr("splines", o.splines))
	}
	return opts, nil
}

// loadDiagram returns the diagram selected by o.
func (c *CLI) loadDiagram(o *sourceOpts) (*diagram.Diagram, error) {
	opts, err := o.options()
	if err != nil {
		return nil, err
	}
	if o.from == "" {
		c.Logger.Debug("Building built-in architecture")
		d, err := topology.Architecture(opts...)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "build architecture")
		}
		return d, nil
	}

	c.Logger.Debug("Importing diagram", "path", o.from)
	return dio.Import(o.from, opts...)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	return strings.Split(s, ",")
}

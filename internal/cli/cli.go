package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgmapper/pkg/buildinfo"
	"github.com/matzehuels/svgmapper/pkg/cache"
	"github.com/matzehuels/svgmapper/pkg/editor"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "svgmapper"

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

	logOut     io.Writer
	configPath string
	noCache    bool
	overrides  configFlags
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), logOut: w}
}

// SetLogLevel updates the logger's level. At debug level the core's
// observability hooks are routed to the logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "svgmapper annotates floor plans and exports them as SVG",
		Long: `svgmapper draws rooms and seats on top of a floor-plan image and exports
the result as a standalone SVG in the image's pixel coordinates.

Edit interactively in the terminal, or replay a gesture script for batch use.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+defaultConfigHint()+")")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "do not read or write the image info cache")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Session Factory
// =============================================================================

// newSession loads the configuration, applies flag overrides and opens a
// session with the file cache unless caching is disabled.
func (c *CLI) newSession(cmd *cobra.Command) (*editor.Session, func(), error) {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	store := newCache(c.noCache, c.Logger)
	s := editor.New(
		editor.WithConfig(cfg),
		editor.WithLogger(c.Logger),
		editor.WithCache(store, cacheKeyer()),
	)
	return s, func() { _ = store.Close() }, nil
}

func newCache(noCache bool, logger *log.Logger) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("file cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheKeyer scopes cache keys by release so a new info format never reads
// entries written by an older binary.
func cacheKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v"+buildinfo.Version+":")
}

// cacheDir returns the cache directory ($XDG_CACHE_HOME/svgmapper).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

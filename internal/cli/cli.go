// Package cli implements the polyfold command-line interface.
//
// # Commands
//
//   - skeleton: reconstruct vertices and the edge graph of a polyhedron
//   - automorphisms: enumerate the skeleton's automorphism group
//   - expand: expand canonical unfoldings into every isomorphic unfolding
//   - edgesets: extract spanning-tree edge sets from unfolding records
//   - serve: run the HTTP API
//   - cache: manage the local result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context and handed to the pipeline runner.
//
// # Configuration
//
// An optional TOML file (see internal/config) sets the cache backend, the
// search timeout and the server address. --config selects a file; flags
// override it.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/polyfold/polyfold/internal/config"
	"github.com/polyfold/polyfold/pkg/buildinfo"
	"github.com/polyfold/polyfold/pkg/cache"
	"github.com/polyfold/polyfold/pkg/pipeline"
)

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
	Config *config.Config

	configPath string
	verbose    bool
	noCache    bool
}

// New creates a CLI logging to w at level. Config starts at the defaults
// and is replaced by the file in the root command's pre-run.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "polyfold",
		Short: "Polyfold enumerates the symmetries and unfoldings of polyhedra",
		Long: `Polyfold reconstructs the vertex skeleton of a polyhedron given only face
adjacency, enumerates the skeleton's automorphism group, and expands canonical
edge unfoldings into every isomorphic copy on the same polyhedron.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/polyfold/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable result caching")

	root.AddCommand(c.skeletonCommand())
	root.AddCommand(c.automorphismsCommand())
	root.AddCommand(c.expandCommand())
	root.AddCommand(c.edgesetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// setup loads the config file and settles the log level: --verbose wins,
// then the file's log.level.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	level, _ := cfg.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.Config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Cache.Prefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// newCache opens the configured backend. An unusable file cache directory
// degrades to no caching; an unreachable redis is an error.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.Config.Cache
	if c.noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return rc, nil
	default:
		if cfg.Dir == "" {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", cfg.Dir, "error", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	}
}

// cacheLabel describes the active cache backend for status output.
func (c *CLI) cacheLabel() string {
	switch {
	case c.noCache || c.Config.Cache.Backend == config.BackendNone:
		return "disabled"
	case c.Config.Cache.Backend == config.BackendRedis:
		return "redis " + c.Config.Cache.RedisAddr
	}
	return c.Config.Cache.Dir
}

// pipelineOptions builds stage options from the config.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Timeout: c.Config.Search.Timeout,
		Workers: c.Config.Search.Workers,
		Logger:  c.Logger,
	}
}

// =============================================================================
// Output Helpers
// =============================================================================

// writeOutput writes through fn to path, or to stdout when path is empty.
func writeOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package cli implements the prospect command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prospect/pkg/buildinfo"
	"github.com/matzehuels/prospect/pkg/cache"
	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/export"
	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "prospect"

	// defaultAddr is where serve listens unless --addr is given.
	defaultAddr = ":8080"
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

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is read before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Prospect shows prospective provenance graphs of script trials",
		Long:         `Prospect fetches the prospective provenance graph of a trial, lays it out with Graphviz and lets you pan, zoom and export it from the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", defaultConfigPath(), "config file")

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Collaborators
// =============================================================================

// sourceFlags selects where graph descriptions come from.
type sourceFlags struct {
	baseURL string
	dir     string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "server publishing trials/<id>/prospective.dot")
	cmd.Flags().StringVar(&f.dir, "dir", "", "local directory laid out like the server")
}

// newSource builds the source selected by flags, falling back to the config
// file. A directory wins over a URL.
func (c *CLI) newSource(cmd *cobra.Command, f sourceFlags) (source.Source, error) {
	dir := override(cmd, "dir", f.dir, c.config.Dir)
	baseURL := override(cmd, "base-url", f.baseURL, c.config.BaseURL)
	switch {
	case dir != "":
		return source.NewDirSource(dir), nil
	case baseURL != "":
		s, err := source.NewHTTPSource(baseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "no trial source: set --base-url or --dir")
	}
}

// newRenderer returns the Graphviz renderer behind the cache selected by backend
// ("none", "file" or a redis URL). The returned func releases both.
func (c *CLI) newRenderer(ctx context.Context, backend string) (render.Renderer, func(), error) {
	gv := render.NewGraphvizRenderer()

	dir, err := renderCacheDir()
	if err != nil && (backend == "" || backend == "file") {
		c.Logger.Warn("render cache disabled", "err", err)
		backend = "none"
	}
	ch, err := cache.Open(ctx, backend, dir)
	if err != nil {
		gv.Close()
		return nil, nil, err
	}
	closer := func() {
		ch.Close()
		gv.Close()
	}
	return render.NewCachedRenderer(gv, ch, nil), closer, nil
}

// newSaver returns a GridFS saver when a Mongo URI is configured, else a
// file saver in dir. The returned func releases the saver.
func (c *CLI) newSaver(ctx context.Context, cmd *cobra.Command, dir, mongoURI, database string) (export.Saver, func(), error) {
	uri := override(cmd, "mongo-uri", mongoURI, c.config.MongoURI)
	if uri == "" {
		out := override(cmd, "out", dir, c.config.OutputDir)
		if out == "" {
			out = "."
		}
		return export.NewFileSaver(out), func() {}, nil
	}
	db := override(cmd, "mongo-database", database, c.config.MongoDatabase)
	if db == "" {
		db = appName
	}
	s, err := export.DialGridFS(ctx, uri, db, "")
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close(context.Background()) }, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/prospect/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// override returns the flag value when the flag was set or the config has no
// value, and the config value otherwise.
func override(cmd *cobra.Command, name, flagValue, configValue string) string {
	if configValue == "" || cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

// parseFormats parses a comma-separated format list. An empty list means SVG.
func parseFormats(s string) ([]export.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []export.Format{export.FormatSVG}, nil
	}
	var out []export.Format
	seen := make(map[export.Format]bool)
	for _, part := range strings.Split(s, ",") {
		f, err := export.ParseFormat(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

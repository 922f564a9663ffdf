package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/export"
	"github.com/matzehuels/prospect/pkg/source"
)

type viewOpts struct {
	source   sourceFlags
	watch    bool
	out      string
	mongoURI string
	mongoDB  string
	cache    string
	logFile  string
	pngScale float64
}

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts

	cmd := &cobra.Command{
		Use:   "view <trial>",
		Short: "Browse a trial's prospective graph in the terminal",
		Long: `Browse a trial's prospective graph in the terminal.

Drag with the mouse or use the arrow keys to pan, + and - to zoom, 0 to reset
the view and s, d, p or f to save the graph as SVG, DOT, PNG or PDF. With --watch and
--dir, the graph reloads whenever the trial's DOT file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd, args[0], opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload when the trial file changes (requires --dir)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "directory exports are saved to")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "save exports to GridFS at this MongoDB URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-database", "", "GridFS database (default prospect)")
	cmd.Flags().StringVar(&opts.cache, "cache", "file", "render cache: none, file or a redis:// URL")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG export scale factor")

	return cmd
}

func (c *CLI) runView(cmd *cobra.Command, trialID string, opts viewOpts) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	logger, closeLog, err := fileLogger(opts.logFile, c.Logger.GetLevel())
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := c.newSource(cmd, opts.source)
	if err != nil {
		return err
	}

	var watcher *fileWatcher
	if opts.watch {
		dir, ok := src.(*source.DirSource)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "--watch requires --dir")
		}
		if watcher, err = watchFile(dir.Path(trialID)); err != nil {
			return err
		}
		defer watcher.Close()
	}

	renderer, closeRenderer, err := c.newRenderer(ctx, override(cmd, "cache", opts.cache, c.config.Cache))
	if err != nil {
		return err
	}
	defer closeRenderer()

	saver, closeSaver, err := c.newSaver(ctx, cmd, opts.out, opts.mongoURI, opts.mongoDB)
	if err != nil {
		return err
	}
	defer closeSaver()

	var exportOpts []export.Option
	if opts.pngScale > 0 {
		exportOpts = append(exportOpts, export.WithPNGScale(opts.pngScale))
	}
	ex := export.New(renderer, saver, exportOpts...)

	m, err := newViewModel(ctx, trialID, src, renderer, ex, watcher, logger)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = p.Run()
	return err
}

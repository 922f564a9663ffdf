package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/prospect/pkg/errors"
	"github.com/matzehuels/prospect/pkg/export"
	"github.com/matzehuels/prospect/pkg/panel"
	"github.com/matzehuels/prospect/pkg/render"
	"github.com/matzehuels/prospect/pkg/source"
)

type exportOpts struct {
	source   sourceFlags
	formats  string
	out      string
	mongoURI string
	mongoDB  string
	cache    string
	pngScale float64
}

// exportCommand creates the export command, which saves a trial's graph
// without opening the viewer.
func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export <trial>",
		Short: "Save a trial's prospective graph as SVG, DOT, PNG or PDF",
		Long: `Save a trial's prospective graph as SVG, DOT, PNG or PDF.

Files are named prospective_<trial>.<format> and written to --out, or stored in
GridFS when --mongo-uri is set. PNG and PDF output require rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runExport(cmd, args[0], formats, opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory (default .)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "store in GridFS at this MongoDB URI")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-database", "", "GridFS database (default prospect)")
	cmd.Flags().StringVar(&opts.cache, "cache", "file", "render cache: none, file or a redis:// URL")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG scale factor (default 2)")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, trialID string, formats []export.Format, opts exportOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := c.newSource(cmd, opts.source)
	if err != nil {
		return err
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

	var exOpts []export.Option
	if opts.pngScale > 0 {
		exOpts = append(exOpts, export.WithPNGScale(opts.pngScale))
	}
	return exportTrial(ctx, trialID, src, renderer, export.New(renderer, saver, exOpts...), formats, prog)
}

// exportTrial loads the trial through a panel without a display, then runs
// one export job per format concurrently. Every format is attempted; the
// first failure is returned.
func exportTrial(ctx context.Context, trialID string, src source.Source, r render.Renderer, ex *export.Exporter, formats []export.Format, prog *progress) error {
	p, err := panel.New(trialID, src, r, nullArea{}, panel.WithLogger(prog.logger), panel.WithExporter(ex))
	if err != nil {
		return err
	}

	spin := startSpinner(ctx, os.Stderr, fmt.Sprintf("Loading %s...", trialID))
	err = p.LoadSync(ctx)
	spin.Stop()
	if err != nil {
		printError("Could not load %s", trialID)
		return err
	}

	results := make([]panel.ExportDoneMsg, len(formats))
	var g errgroup.Group
	for i, f := range formats {
		job := p.Export(f)
		g.Go(func() error {
			results[i] = job(ctx).(panel.ExportDoneMsg)
			return nil
		})
	}
	g.Wait()

	var first error
	saved := 0
	for _, res := range results {
		if res.Err != nil {
			printError("%s: %s", res.Format, errors.UserMessage(res.Err))
			if first == nil {
				first = res.Err
			}
			continue
		}
		saved++
		printFile(res.Filename)
	}
	if saved > 0 {
		prog.done(fmt.Sprintf("Exported %d of %d files", saved, len(formats)))
	}
	if saved > 0 && first != nil {
		printWarning("%d of %d exports failed", len(formats)-saved, len(formats))
	}
	return first
}

// nullArea is the content area of a panel that is never displayed.
type nullArea struct{}

func (nullArea) Clear()                        {}
func (nullArea) ShowProgress(string)           {}
func (nullArea) ShowError(string)              {}
func (nullArea) Attach(*render.Document)       {}
func (nullArea) Size() (width, height float64) { return 0, 0 }

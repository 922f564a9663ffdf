package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prospect/internal/metrics"
	"github.com/matzehuels/prospect/internal/server"
	"github.com/matzehuels/prospect/pkg/errors"
)

type serveOpts struct {
	dir   string
	addr  string
	cache string
	rate  float64
	burst int
}

// serveCommand creates the serve command, which publishes a directory of
// trials over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, rate: 20}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish trials over HTTP",
		Long: `Publish trials over HTTP.

Serves <dir>/trials/<id>/prospective.dot at /trials/<id>/prospective.dot, the
Graphviz rendering at /trials/<id>/prospective.svg, and Prometheus metrics at
/metrics. Trials without a DOT file but with a components.toml get a generated
graph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory holding trials/<id>/")
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cache, "cache", "file", "render cache: none, file or a redis:// URL")
	cmd.Flags().Float64Var(&opts.rate, "rate", opts.rate, "requests per second per client (0 disables limiting)")
	cmd.Flags().IntVar(&opts.burst, "burst", 0, "burst size per client (default rate+1)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	dir := override(cmd, "dir", opts.dir, c.config.Dir)
	if dir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "serve needs --dir")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	m.Install()

	renderer, closeRenderer, err := c.newRenderer(ctx, override(cmd, "cache", opts.cache, c.config.Cache))
	if err != nil {
		return err
	}
	defer closeRenderer()

	srv := server.New(server.Config{
		Dir:      dir,
		Renderer: renderer,
		Logger:   logger,
		Registry: reg,
		Metrics:  m,
		RPS:      opts.rate,
		Burst:    opts.burst,
	})
	printInfo("Serving %s on %s", StyleValue.Render(dir), StyleHighlight.Render(opts.addr))
	return srv.Run(ctx, opts.addr)
}

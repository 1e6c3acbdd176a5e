package cmd

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/dappkitty"
	"github.com/trickstertwo/dappkitty/adapter/panel"
	"github.com/trickstertwo/dappkitty/adapter/writer"
	"github.com/trickstertwo/dappkitty/adapter/wspanel"
	"github.com/trickstertwo/dappkitty/metrics"
)

func (c *command) initRunCmd() {
	cmd := &cobra.Command{
		Use:   "run [url...]",
		Short: "Start a session and fetch each url through the intercepted transport",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := c.config.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			o, err := c.overrides()
			if err != nil {
				return err
			}

			sink, err := newSink(c.config.GetString(optionNameSink), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if cl, ok := sink.(io.Closer); ok {
				defer cl.Close()
			}
			mtr := metrics.New()
			if ws, ok := sink.(*writer.Sink); ok {
				ws.SetMetricsCollector(mtr)
			}

			var (
				pnl   *panel.Panel
				hub   *wspanel.Hub
				serve = c.config.GetString(optionNameServe)
			)
			if serve != "" {
				pnl = panel.New(panel.Options{MaxLines: c.config.GetInt(optionNameBacklog)})
				hub = wspanel.New(wspanel.Options{Backlog: c.config.GetInt(optionNameBacklog)})
				defer hub.Close()
				sink = dappkitty.Tee(sink, pnl, hub)
			}

			host := c.newHost(cmd, sink)
			s, err := dappkitty.NewBuilder(host).
				WithOverrides(o).
				AddObserver(mtr).
				Build()
			if errors.Is(err, dappkitty.ErrInactive) {
				cmd.PrintErrf("dappkitty inactive for %s\n", c.config.GetString(optionNameURL))
				return nil
			}
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			for _, u := range args {
				fetch(ctx, host, u)
			}

			if serve == "" {
				return nil
			}
			return c.serve(ctx, cmd, serve, pnl, hub, mtr)
		},
	}

	c.setSessionFlags(cmd)
	cmd.Flags().String(optionNameSink, "text", "render sink: text, json, zap, zap-console, zerolog, slog or logrus")
	cmd.Flags().String(optionNameServe, "", "serve the live panel and metrics on this address")
	cmd.Flags().Int(optionNameBacklog, 256, "lines kept for late panel subscribers")

	c.root.AddCommand(cmd)
}

// fetch runs one request through the host. Failures are already reported
// by the fetch interceptor.
func fetch(ctx context.Context, host *dappkitty.Host, rawURL string) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := host.Fetch(ctx, rawURL, nil)
	if err != nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *command) serve(ctx context.Context, cmd *cobra.Command, addr string, pnl *panel.Panel, hub *wspanel.Hub, mtr *metrics.Collector) error {
	reg := prometheus.NewRegistry()
	mtr.MustRegister(reg)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, pnl.HTML())
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	cmd.PrintErrf("dappkitty panel on http://%s/\n", ln.Addr())

	errC := make(chan error, 1)
	go func() { errC <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errC:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

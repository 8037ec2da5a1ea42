package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/wellsgz/pingpong/internal/api"
	"github.com/wellsgz/pingpong/internal/collector"
	"github.com/wellsgz/pingpong/internal/config"
	"github.com/wellsgz/pingpong/internal/logging"
	"github.com/wellsgz/pingpong/internal/paths"
	"github.com/wellsgz/pingpong/internal/probe"
	"github.com/wellsgz/pingpong/internal/report"
	"github.com/wellsgz/pingpong/internal/stats"
	"github.com/wellsgz/pingpong/internal/tui"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "pingpong [host] [port]",
		Short: "Measure TCP connect latency, jitter and loss to one host",
		Long: `pingpong opens a TCP connection to host:port, closes it, and repeats
as fast as it can. It reports the connect time, the time between
completions (jitter), and the share of attempts that failed.

Without a host one of a few well-known connectivity check hosts is used.
The port defaults to 80.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}

			if len(args) > 0 {
				v.Set("target.address", args[0])
			}
			if len(args) > 1 {
				port, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid port %q: %w", args[1], err)
				}
				v.Set("target.port", port)
			}

			resolved := &paths.Paths{ConfigFile: paths.ResolveConfigFile(configFile)}
			cfg, err := config.Load(v, resolved.ConfigFile)
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg, resolved)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file (default ~/.pingpong/config.yaml)")
	flags.Duration("timeout", time.Second, "connect timeout per attempt")
	flags.Duration("interval", report.DefaultInterval, "minimum time between report renders")
	flags.Int("capacity", stats.DefaultCapacity, "samples kept per series")
	flags.Bool("tui", false, "show the interactive terminal view")
	flags.String("api", "", "serve the HTTP API on this address, e.g. :8080")
	flags.String("log-format", "text", "log format: text or json")
	flags.BoolP("verbose", "v", false, "log every probe outcome")

	return cmd
}

func run(parent context.Context, cfg *config.Config, resolved *paths.Paths) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, err := logging.ParseFormat(cfg.Log.Format)
	if err != nil {
		return err
	}
	logging.SetFormat(format)
	logging.SetVerbose(cfg.Log.Verbose)
	if cfg.Report.TUI {
		// Anything written to the terminal would corrupt the alt screen
		logging.SetWriter(io.Discard)
	}
	logging.Info("Main", "Starting pingpong", map[string]string{
		"paths":      resolved.String(),
		"log_format": string(logging.GetFormat()),
	})

	p := probe.NewTCPProbe(cfg.Target.Address, cfg.Target.Port, cfg.Probe.Timeout)
	store := stats.NewStore(cfg.Stats.Capacity)
	reporter := report.NewReporter(cfg.Report.Interval)

	var sink *tui.Sink
	if cfg.Report.TUI {
		sink = tui.NewSink()
		reporter.AddRenderer(sink)
	} else {
		reporter.AddRenderer(report.NewConsoleRenderer(os.Stdout))
	}

	var server *api.Server
	if cfg.Server.Address != "" {
		server = api.NewServer(cfg)
		if sink != nil {
			server.OnError(sink.Fail)
		}
		if err := server.StartAsync(cfg.Server.Address); err != nil {
			return err
		}
		reporter.AddRenderer(server.Hub())
		defer func() {
			if err := server.Shutdown(shutdownTimeout); err != nil {
				logging.Error("Main", "API shutdown failed", err)
			}
		}()
	}

	c := collector.NewCollector(p, store, reporter)

	if sink == nil {
		return ignoreCanceled(c.Run(ctx))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx)
	}()

	err = tui.Run(ctx, p.Target(), cfg.Server.Address, sink)
	cancel()
	if runErr := <-done; err == nil {
		err = runErr
	}
	return ignoreCanceled(err)
}

// ignoreCanceled treats a signal or quit key as a clean exit
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/yatl/kit/cli"
	"github.com/influxdata/yatl/logger"
	"github.com/influxdata/yatl/pkg/stopwatch/lapmetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "yatl"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd, err := newApp(os.Stdout, os.Stderr).command(viper.New())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the state shared by the yatl subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock

	logConfig logger.Config

	recorder *lapmetrics.Recorder
	registry *prometheus.Registry
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		stdout:    stdout,
		stderr:    stderr,
		clock:     clock.New(),
		logConfig: logger.NewConfig(),
		recorder:  lapmetrics.NewRecorder(),
		registry:  prometheus.NewRegistry(),
	}
	a.registry.MustRegister(a.recorder.PrometheusCollectors()...)
	return a
}

func (a *app) command(v *viper.Viper) (*cobra.Command, error) {
	root := &cobra.Command{
		Use:           "yatl",
		Short:         "Measure elapsed time with laps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := a.logConfig.New(a.stderr)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.NewContextWithLogger(cmd.Context(), log))
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := cli.BindOptions(v, root.PersistentFlags(), []cli.Opt{
		cli.NewOpt(&a.logConfig.Level, "log-level", a.logConfig.Level, "supported log levels are debug, info, warn and error"),
		cli.NewOpt(&a.logConfig.Format, "log-format", a.logConfig.Format, "log format: auto, logfmt, json or console"),
	}); err != nil {
		return nil, err
	}

	execCmd, err := a.execCommand(v)
	if err != nil {
		return nil, err
	}
	formatCmd, err := a.formatCommand(v)
	if err != nil {
		return nil, err
	}
	root.AddCommand(execCmd, formatCmd)
	return root, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/influxdata/yatl/kit/cli"
	"github.com/influxdata/yatl/kit/platform/errors"
	"github.com/influxdata/yatl/logger"
	"github.com/influxdata/yatl/pkg/stopwatch"
	"github.com/influxdata/yatl/pkg/stopwatch/lapmetrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type execOptions struct {
	repeat    int
	keepGoing bool
	output    string
	metrics   bool
}

// execResult is the JSON form of a finished exec run.
type execResult struct {
	Start  string   `json:"start"`
	LapsNS []int64  `json:"laps_ns"`
	Laps   []string `json:"laps"`
}

func (a *app) execCommand(v *viper.Viper) (*cobra.Command, error) {
	var opts execOptions
	var cmd *cobra.Command
	cmd, err := cli.NewCommand(v, &cli.Program{
		Name:      "exec",
		EnvPrefix: envPrefix,
		Short:     "Run a command and record a lap after each run",
		Args:      cobra.MinimumNArgs(1),
		Run: func(args []string) error {
			return a.runExec(cmd.Context(), opts, args)
		},
		Opts: []cli.Opt{
			cli.NewOpt(&opts.repeat, "repeat", 1, "number of times to run the command"),
			cli.NewOpt(&opts.keepGoing, "keep-going", false, "keep running after a failed run and report all failures"),
			cli.NewOpt(&opts.output, "output", "text", "output format: text or json"),
			cli.NewOpt(&opts.metrics, "metrics", false, "write lap metrics in Prometheus text format after the laps"),
		},
	})
	if err != nil {
		return nil, err
	}
	cmd.Use = "exec [flags] -- COMMAND [ARGS...]"
	return cmd, nil
}

func (a *app) runExec(ctx context.Context, opts execOptions, args []string) error {
	if opts.repeat < 1 {
		return &errors.Error{
			Code: errors.EInvalid,
			Op:   "yatl.exec",
			Msg:  fmt.Sprintf("repeat must be at least 1, got %d", opts.repeat),
		}
	}
	if opts.output != "text" && opts.output != "json" {
		return &errors.Error{
			Code: errors.EInvalid,
			Op:   "yatl.exec",
			Msg:  fmt.Sprintf("unknown output format %q", opts.output),
		}
	}

	name := filepath.Base(args[0])
	log := logger.FromContext(ctx).With(zap.String("command", name))

	sw := stopwatch.New(stopwatch.WithClock(a.clock))
	if err := sw.Start(); err != nil {
		return err
	}
	log.Info("Timer started", zap.Int("repeat", opts.repeat))

	var runErrs error
	for i := 1; i <= opts.repeat; i++ {
		c := exec.CommandContext(ctx, args[0], args[1:]...)
		c.Stdout = a.stderr
		c.Stderr = a.stderr
		runErr := c.Run()

		d, err := sw.Lap()
		if err != nil {
			a.recorder.ObserveError(name, errors.ErrorCode(err))
			log.Error("Failed to record lap", zap.Int("run", i), zap.Error(err))
			return multierr.Append(runErrs, err)
		}
		a.recorder.ObserveLap(name, d)
		log.Debug("Run finished", zap.Int("run", i), zap.Duration("elapsed", d), zap.Error(runErr))

		if runErr != nil {
			runErrs = multierr.Append(runErrs, fmt.Errorf("run %d: %w", i, runErr))
			if !opts.keepGoing {
				break
			}
		}
	}

	if err := a.writeLaps(sw, opts.output); err != nil {
		return err
	}
	if opts.metrics {
		if err := lapmetrics.WriteText(a.stdout, a.registry); err != nil {
			return err
		}
	}

	if runErrs != nil {
		log.Warn("Command failed", zap.Int("failures", len(multierr.Errors(runErrs))))
	} else {
		log.Info("Laps recorded", zap.Int("count", len(sw.Laps())))
	}
	return runErrs
}

func (a *app) writeLaps(sw *stopwatch.Timer, output string) error {
	laps := sw.Laps()
	formatted := sw.LapsFormatted()

	if output == "text" {
		for i, s := range formatted {
			fmt.Fprintf(a.stdout, "lap %d: %s\n", i+1, s)
		}
		return nil
	}

	start, err := sw.StartTime()
	if err != nil {
		return err
	}
	res := execResult{
		Start:  start.UTC().Format(time.RFC3339Nano),
		LapsNS: make([]int64, len(laps)),
		Laps:   formatted,
	}
	for i, d := range laps {
		res.LapsNS[i] = d.Nanoseconds()
	}
	enc := json.NewEncoder(a.stdout)
	return enc.Encode(res)
}

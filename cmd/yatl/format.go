package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/influxdata/yatl/kit/cli"
	"github.com/influxdata/yatl/kit/platform/errors"
	"github.com/influxdata/yatl/pkg/stopwatch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (a *app) formatCommand(v *viper.Viper) (*cobra.Command, error) {
	cmd, err := cli.NewCommand(v, &cli.Program{
		Name:      "format",
		EnvPrefix: envPrefix,
		Short:     "Print durations in human readable form",
		Args:      cobra.MinimumNArgs(1),
		Run:       a.runFormat,
	})
	if err != nil {
		return nil, err
	}
	cmd.Use = "format DURATION..."
	cmd.Long = `Print each duration in the coarsest of ns, us, ms, s or m.

A duration is either a Go duration string such as 1.5s or an integer count of
nanoseconds such as 13674.`
	return cmd, nil
}

func (a *app) runFormat(args []string) error {
	for _, arg := range args {
		d, err := parseDuration(arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, stopwatch.HumanDuration(d))
	}
	return nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		n, nerr := strconv.ParseInt(s, 10, 64)
		if nerr != nil {
			return 0, &errors.Error{
				Code: errors.EInvalid,
				Op:   "yatl.format",
				Msg:  fmt.Sprintf("invalid duration %q", s),
				Err:  err,
			}
		}
		d = time.Duration(n)
	}
	if d < 0 {
		return 0, &errors.Error{
			Code: errors.EInvalid,
			Op:   "yatl.format",
			Msg:  fmt.Sprintf("negative duration %q", s),
		}
	}
	return d, nil
}

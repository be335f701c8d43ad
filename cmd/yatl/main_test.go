package main

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/influxdata/yatl/kit/platform/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func runApp(t *testing.T, a *app, args ...string) error {
	t.Helper()
	cmd, err := a.command(viper.New())
	require.NoError(t, err)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newTestApp() (*app, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return newApp(&stdout, &stderr), &stdout, &stderr
}

func requireBinary(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
	return path
}

func TestFormat(t *testing.T) {
	a, stdout, _ := newTestApp()
	err := runApp(t, a, "format", "12", "13674", "45674432", "2746859738", "780897563728", "1000", "1m", "1.5s")
	require.NoError(t, err)
	assert.Equal(t, "12ns\n13us\n45ms\n2s\n13m\n1us\n1m\n1s\n", stdout.String())
}

func TestFormat_Invalid(t *testing.T) {
	for _, arg := range []string{"soon", "-5", "-1s"} {
		t.Run(arg, func(t *testing.T) {
			a, stdout, _ := newTestApp()
			err := runApp(t, a, "format", "--", arg)
			require.Error(t, err)
			assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
			assert.Equal(t, "yatl.format", errors.ErrorOp(err))
			assert.Empty(t, stdout.String())
		})
	}
}

func TestFormat_NoArgs(t *testing.T) {
	a, _, _ := newTestApp()
	assert.Error(t, runApp(t, a, "format"))
}

func TestExec_Text(t *testing.T) {
	bin := requireBinary(t, "true")

	a, stdout, stderr := newTestApp()
	err := runApp(t, a, "--log-format", "logfmt", "exec", "--repeat", "3", "--", bin)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	for i, line := range lines {
		assert.True(t, strings.HasPrefix(line, "lap "+string(rune('1'+i))+": "), line)
	}
	assert.Contains(t, stderr.String(), "msg=\"Laps recorded\"")
	assert.Contains(t, stderr.String(), "count=3")
}

func TestExec_JSON_MockClock(t *testing.T) {
	bin := requireBinary(t, "true")

	a, stdout, _ := newTestApp()
	mc := clock.NewMock()
	mc.Set(time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC))
	a.clock = mc

	err := runApp(t, a, "--log-level", "error", "exec", "--repeat", "2", "--output", "json", "--", bin)
	require.NoError(t, err)

	var res execResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	assert.Equal(t, "2021-06-01T00:00:00Z", res.Start)
	assert.Equal(t, []int64{0, 0}, res.LapsNS)
	assert.Equal(t, []string{"0ns", "0ns"}, res.Laps)
}

func TestExec_Failure(t *testing.T) {
	bin := requireBinary(t, "false")

	a, stdout, _ := newTestApp()
	err := runApp(t, a, "--log-level", "error", "exec", "--repeat", "3", "--", bin)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 1)
	assert.Contains(t, err.Error(), "run 1:")

	// the failed run is still timed
	assert.Equal(t, 1, strings.Count(stdout.String(), "lap "))
}

func TestExec_KeepGoing(t *testing.T) {
	bin := requireBinary(t, "false")

	a, stdout, _ := newTestApp()
	err := runApp(t, a, "--log-level", "error", "exec", "--repeat", "3", "--keep-going", "--", bin)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.Equal(t, 3, strings.Count(stdout.String(), "lap "))
}

func TestExec_Metrics(t *testing.T) {
	bin := requireBinary(t, "true")

	a, stdout, _ := newTestApp()
	err := runApp(t, a, "--log-level", "error", "exec", "--repeat", "2", "--metrics", "--", bin)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `yatl_timer_lap_duration_seconds_count{timer="true"} 2`)
}

func TestExec_InvalidOptions(t *testing.T) {
	for _, args := range [][]string{
		{"exec", "--repeat", "0", "--", "true"},
		{"exec", "--output", "yaml", "--", "true"},
	} {
		a, _, _ := newTestApp()
		err := runApp(t, a, args...)
		require.Error(t, err)
		assert.Equal(t, errors.EInvalid, errors.ErrorCode(err))
	}
}

func TestExec_RepeatFromEnv(t *testing.T) {
	bin := requireBinary(t, "true")
	t.Setenv("YATL_REPEAT", "2")
	t.Setenv("YATL_LOG_LEVEL", "error")

	a, stdout, stderr := newTestApp()
	require.NoError(t, runApp(t, a, "exec", "--", bin))
	assert.Equal(t, 2, strings.Count(stdout.String(), "lap "))
	assert.Empty(t, stderr.String())
}

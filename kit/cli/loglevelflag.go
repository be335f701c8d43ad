package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
)

// levelFlag adapts a *zapcore.Level to pflag.Value.
type levelFlag struct {
	p *zapcore.Level
}

func (f levelFlag) String() string {
	if f.p == nil {
		return zapcore.InfoLevel.String()
	}
	return f.p.String()
}

func (f levelFlag) Set(s string) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("unknown log level %q; supported levels are debug, info, warn, error", s)
	}
	*f.p = level
	return nil
}

func (f levelFlag) Type() string { return "Log-Level" }

// LevelVar defines a zapcore.Level flag with specified name, default value, and usage string.
// The argument p points to a zapcore.Level variable in which to store the value of the flag.
func LevelVar(fs *pflag.FlagSet, p *zapcore.Level, name string, value zapcore.Level, usage string) {
	*p = value
	fs.Var(levelFlag{p: p}, name, usage)
}

package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Opt is a single command-line option
type Opt struct {
	DestP   interface{} // pointer to the destination
	Flag    string
	Default interface{}
	Desc    string
}

// NewOpt creates a new command line option.
func NewOpt(destP interface{}, flag string, dflt interface{}, desc string) Opt {
	return Opt{
		DestP:   destP,
		Flag:    flag,
		Default: dflt,
		Desc:    desc,
	}
}

// Program parses CLI options
type Program struct {
	// Run is invoked by cobra on execute with the positional arguments.
	Run func(args []string) error
	// Name is the name of the program in help usage and the env var prefix.
	Name string
	// EnvPrefix overrides Name as the env var prefix, for subcommands that
	// share their parent's environment.
	EnvPrefix string
	// Short is the one-line description shown in help.
	Short string
	// Args validates the positional arguments. Defaults to cobra.NoArgs.
	Args cobra.PositionalArgs
	// Opts are the command line/env var options to the program
	Opts []Opt
}

// NewCommand creates a new cobra command to be executed that respects env vars.
//
// Uses the upper-case version of the program's name, or EnvPrefix when set,
// as a prefix to all environment variables.
//
// This is to simplify the viper/cobra boilerplate.
func NewCommand(v *viper.Viper, p *Program) (*cobra.Command, error) {
	args := p.Args
	if args == nil {
		args = cobra.NoArgs
	}
	cmd := &cobra.Command{
		Use:           p.Name,
		Short:         p.Short,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if p.Run != nil {
		cmd.RunE = func(_ *cobra.Command, args []string) error {
			return p.Run(args)
		}
	}

	prefix := p.EnvPrefix
	if prefix == "" {
		prefix = p.Name
	}
	v.SetEnvPrefix(strings.ToUpper(prefix))
	v.AutomaticEnv()
	// This normalizes "-" to an underscore in env names.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := BindOptions(v, cmd.Flags(), p.Opts); err != nil {
		return nil, err
	}
	return cmd, nil
}

// BindOptions adds opts to the flag set and registers those options with viper.
// Each destination is seeded from viper, so environment variables apply when
// the flag is not given on the command line.
func BindOptions(v *viper.Viper, fs *pflag.FlagSet, opts []Opt) error {
	for _, o := range opts {
		switch destP := o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			fs.StringVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetString(o.Flag)
		case *int:
			var d int
			if o.Default != nil {
				d = o.Default.(int)
			}
			fs.IntVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetInt(o.Flag)
		case *bool:
			var d bool
			if o.Default != nil {
				d = o.Default.(bool)
			}
			fs.BoolVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetBool(o.Flag)
		case *time.Duration:
			var d time.Duration
			if o.Default != nil {
				d = o.Default.(time.Duration)
			}
			fs.DurationVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetDuration(o.Flag)
		case *[]string:
			var d []string
			if o.Default != nil {
				d = o.Default.([]string)
			}
			fs.StringSliceVar(destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
				return err
			}
			*destP = v.GetStringSlice(o.Flag)
		case *zapcore.Level:
			var d zapcore.Level
			if o.Default != nil {
				d = o.Default.(zapcore.Level)
			}
			LevelVar(fs, destP, o.Flag, d, o.Desc)
			if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
				return err
			}
			if s := v.GetString(o.Flag); s != "" {
				if err := (levelFlag{p: destP}).Set(s); err != nil {
					return fmt.Errorf("%s: %w", o.Flag, err)
				}
			}
		default:
			// if you get a panic here, sorry about that!
			// anyway, go ahead and make a PR and add another type.
			panic(fmt.Errorf("unknown destination type %T", o.DestP))
		}
	}
	return nil
}

package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"immigration-ca/internal/app"
	"immigration-ca/pkg/core"
)

// options holds everything the subcommands share.
type options struct {
	cfg        *app.Config
	configPath string
	loadPath   string
	savePath   string
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: app.NewConfig()}
	root := &cobra.Command{
		Use:           "ca-term",
		Short:         "Run 2-D cellular automata in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.applyConfigFile(cmd.Flags())
		},
	}

	f := root.PersistentFlags()
	cfg := opts.cfg
	f.StringVar(&opts.configPath, "config", "", "YAML file with default settings; flags override it")
	f.StringVar(&cfg.Sim, "sim", cfg.Sim, "simulation to run ("+strings.Join(core.SimNames(), "|")+")")
	f.IntVar(&cfg.Width, "width", cfg.Width, "grid width in cells")
	f.IntVar(&cfg.Height, "height", cfg.Height, "grid height in cells")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for the initial generation")
	f.Float64Var(&cfg.Density, "density", cfg.Density, "probability that a cell starts alive")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines per generation (0 = GOMAXPROCS)")
	f.IntVar(&cfg.StepsPerTick, "batch", cfg.StepsPerTick, "generations per tick")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	f.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	f.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address, e.g. :9090")
	f.StringVar(&opts.loadPath, "load", "", "start from a saved snapshot instead of a random seed")
	f.StringVar(&opts.savePath, "save", "", "write the final generation to this snapshot file")

	root.AddCommand(newRunCmd(opts), newPrintCmd(opts))
	return root
}

// applyConfigFile loads --config and then re-applies any flag the user set
// explicitly, so the command line always wins over the file.
func (o *options) applyConfigFile(flags *pflag.FlagSet) error {
	if o.configPath == "" {
		return nil
	}
	explicit := map[string]string{}
	flags.Visit(func(f *pflag.Flag) { explicit[f.Name] = f.Value.String() })

	if err := o.cfg.LoadFile(o.configPath); err != nil {
		return err
	}
	for name, value := range explicit {
		if err := flags.Set(name, value); err != nil {
			return errors.Wrapf(err, "re-applying --%s", name)
		}
	}
	return nil
}

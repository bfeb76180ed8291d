package main

import (
	"github.com/knadh/koanf"
	"github.com/miruken-go/empower"
	"github.com/miruken-go/empower/config"
	koanfp "github.com/miruken-go/empower/config/koanf"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	files     []string
	envPrefix string
	path      string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "empower",
		Short: "Inspect power-assert call patterns",
		Long: `empower inspects the call patterns used to enhance assertions.

Patterns are loaded from configuration files (json or yaml) and
environment variables, falling back to the standard assert patterns.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVarP(&flags.files, "config", "c", nil,
		"configuration files (json or yaml)")
	cmd.PersistentFlags().StringVar(&flags.envPrefix, "env-prefix", "EMPOWER",
		"prefix of environment variables, empty to disable")
	cmd.PersistentFlags().StringVar(&flags.path, "path", "empower",
		"configuration path of the options")
	cmd.AddCommand(newPatternsCmd(flags), newCheckCmd())
	return cmd
}

// options loads the configured options.
func (f *rootFlags) options() (empower.Options, error) {
	k := koanf.New(".")
	if err := koanfp.Load(k, f.envPrefix, f.files...); err != nil {
		return empower.Options{}, err
	}
	return config.Load(koanfp.P(k), f.path)
}

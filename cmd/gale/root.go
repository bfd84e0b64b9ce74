package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	logLevelKey  = "log_level"
	logFormatKey = "log_format"
)

// globalFlags are shared by every subcommand. Unset values fall back to
// gale.yaml, then to the defaults.
type globalFlags struct {
	v       *viper.Viper
	noCheck bool
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{v: viper.New()}
	g.v.SetEnvPrefix("GALE")

	cmd := &cobra.Command{
		Use:           "gale",
		Short:         "The gale language toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error).")
	g.v.BindEnv("LOG_LEVEL")
	g.v.BindPFlag(logLevelKey, cmd.PersistentFlags().Lookup("log-level"))

	cmd.PersistentFlags().String("log-format", "", "Log format (auto, console, logfmt, json).")
	g.v.BindEnv("LOG_FORMAT")
	g.v.BindPFlag(logFormatKey, cmd.PersistentFlags().Lookup("log-format"))

	cmd.PersistentFlags().BoolVar(&g.noCheck, "no-check", false, "Skip the type checker.")

	cmd.AddCommand(
		newRunCommand(g),
		newCheckCommand(g),
		newGraphCommand(g),
		newDumpCommand(g),
		newBuildCommand(g),
	)
	return cmd
}

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set by the release build.
var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pyrsa",
		Short:         "Searchlight representational similarity analysis",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("quiet", false, "suppress progress output")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	viper.SetEnvPrefix("PYRSA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(newSearchlightCmd())
	cmd.AddCommand(newInspectCmd())

	return cmd
}

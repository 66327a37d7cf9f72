package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/josephlewis42/minish/core/config"
)

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the current directory.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		_, err := config.Initialize(afero.NewOsFs(), ".", cmd.ErrOrStderr())
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

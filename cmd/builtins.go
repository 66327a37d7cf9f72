package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/minish/core/shell"
)

// builtinsCmd lists the commands a session understands.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the builtin commands of the shell.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := shell.Builtins()
		sort.Slice(builtins, func(i, j int) bool {
			return builtins[i].Name() < builtins[j].Name()
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, b := range builtins {
			fmt.Fprintf(w, "%s\t%s\n", b.Use, b.Short)
		}
		for _, keyword := range shell.Keywords() {
			fmt.Fprintf(w, "shell:%s\t\n", keyword)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}

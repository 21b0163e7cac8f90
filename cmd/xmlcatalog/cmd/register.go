package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <name> <directory>",
	Short: "Register a catalog in the system catalog",
	Long: `Open the catalog <directory>/<name>.catalog, creating it when missing,
and register it in the system catalog so that it can be opened by name from anywhere.

A former registration under the same name is replaced.`,
	Example: `% xmlcatalog register fleet /data
/data/fleet.catalog`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, err := env.Root.OpenAt(ctx, args[0], args[1], true)
		if err != nil {
			wrapFatalln(args[0]+": could not register", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), cat.Path())
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}

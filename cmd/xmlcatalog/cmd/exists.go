package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var existsCmd = &cobra.Command{
	Use:   "exists <catalog> <key>",
	Short: "Tell if an object exists",
	Long: `Exit with status 0 when an object is stored under key, 1 otherwise.
Nothing is printed.`,
	Example: `% xmlcatalog exists notes hello && echo found`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		if !cat.Exists(ctx, args[1]) {
			osExit(1)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(existsCmd)
}

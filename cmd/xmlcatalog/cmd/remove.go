package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <catalog> <key>",
	Aliases: []string{"rm"},
	Short:   "Remove an object from a catalog",
	Long:    `Remove the object stored under key. Removing a missing object is not an error.`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		if err := cat.Remove(ctx, args[1]); err != nil {
			wrapFatalln(cat.Name(), err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

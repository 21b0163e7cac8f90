package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:     "move <catalog> <key> <destination>",
	Aliases: []string{"mv"},
	Short:   "Move an object to another catalog",
	Long: `Move the object stored under key to the destination catalog, keeping its key.

The move is atomic: when it fails, the object stays in its catalog.
Both catalogs must live on the same file system.`,
	Example: `% xmlcatalog move inbox hello archive`,
	Args:    cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		dest, ok := resolve(ctx, args[2])
		if !ok {
			return
		}
		if err := cat.Move(ctx, args[1], dest); err != nil {
			wrapFatalln(cat.Name(), err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

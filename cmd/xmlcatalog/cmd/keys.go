package cmd

import (
	"context"
	"fmt"

	"github.com/docker/go-units"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var keysFlags struct {
	long bool
}

var keysCmd = &cobra.Command{
	Use:   "keys <catalog>",
	Short: "List the keys of a catalog",
	Long: `List the keys of the objects stored in a catalog, in sorted order.

With --long, also show the size and last modification time of each object.`,
	Example: `% xmlcatalog keys notes --long
KEY  	SIZE	MODIFIED
hello	143B	2010-06-08 23:56:49`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		out := cmd.OutOrStdout()

		if !keysFlags.long {
			keys, err := cat.Keys(ctx)
			if err != nil {
				wrapFatalln(cat.Name()+": loading keys", err)
				return
			}
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
			return
		}

		entries, err := cat.Entries(ctx)
		if err != nil {
			wrapFatalln(cat.Name()+": loading keys", err)
			return
		}
		table := uitable.New()
		table.AddRow("KEY", "SIZE", "MODIFIED")
		for _, e := range entries {
			table.AddRow(e.Key, units.HumanSize(float64(e.Size)), e.Modified.UTC().Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintln(out, table)
	},
}

func init() {
	keysCmd.Flags().BoolVarP(&keysFlags.long, "long", "l", false, "Show object sizes and modification times")
	rootCmd.AddCommand(keysCmd)
}

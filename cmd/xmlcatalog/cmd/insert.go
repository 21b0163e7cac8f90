package cmd

import (
	"context"

	"github.com/oneconcern/domx/pkg/xmlobject"
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert <catalog> <key>",
	Short: "Insert the xml object read from standard input",
	Long: `Insert the xml object read from standard input into a catalog, under the given key.

An object already stored under this key is replaced atomically.`,
	Example: `% echo '<xmlobject><note><text>hi</text></note></xmlobject>' | xmlcatalog insert notes hello`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		object := xmlobject.New()
		if err := object.ReadXML(cmd.InOrStdin()); err != nil {
			wrapFatalln("error loading xml object", err)
			return
		}
		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		if err := cat.Insert(ctx, args[1], object); err != nil {
			wrapFatalln(cat.Name(), err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}

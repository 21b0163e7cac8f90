package cmd

import (
	"context"

	"github.com/oneconcern/domx/pkg/xmlobject"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:     "fetch <catalog> <key>",
	Short:   "Write an xml object to standard output",
	Long:    `Load the object stored under key in a catalog, and write it to standard output.`,
	Example: `% xmlcatalog fetch notes hello`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		object := xmlobject.New()
		if err := cat.Load(ctx, args[1], object); err != nil {
			wrapFatalln("could not load object with key: "+args[1], err)
			return
		}
		if err := object.WriteXML(cmd.OutOrStdout()); err != nil {
			wrapFatalln("writing object", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

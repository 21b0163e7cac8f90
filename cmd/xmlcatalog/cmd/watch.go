package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/spf13/cobra"
)

// used to patch over the lifetime of watch during test
var watchContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

var watchCmd = &cobra.Command{
	Use:   "watch <catalog>",
	Short: "Print changes to a catalog",
	Long: `Print a line for every object inserted into or removed from a catalog,
until interrupted.`,
	Example: `% xmlcatalog watch notes
inserted	hello
removed	hello`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := watchContext()
		defer cancel()

		cat, ok := resolve(ctx, args[0])
		if !ok {
			return
		}
		out := cmd.OutOrStdout()
		err := cat.Watch(ctx, func(ev catalog.Event) {
			op := ev.Op.String()
			if ev.Op == catalog.Inserted {
				op = color.GreenString(op)
			} else {
				op = color.YellowString(op)
			}
			fmt.Fprintf(out, "%s\t%s\n", op, ev.Key)
		})
		if err != nil {
			wrapFatalln(cat.Name(), err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"

	"github.com/oneconcern/domx/internal/cli"
	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xmlcatalog",
	Short: "xmlcatalog lets scripts store and retrieve xml objects in catalogs",
	Long: `xmlcatalog lets scripts and other programs enter xml objects into a catalog,
and fetch or list them back.

A catalog is named either by its registration in the system catalog,
or by a slash separated path below the root directory: "cars/used"
lives in "<root>/cars.catalog/used.catalog".

Objects are read from standard input and written to standard output.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Usage()
		osExit(1)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env = nil
		config, err := cli.NewConfig(v)
		if err != nil {
			wrapFatalln("reading configuration", err)
			return
		}
		env, err = config.Setup("xmlcatalog", appFs)
		if err != nil {
			wrapFatalln("setting up", err)
			return
		}
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env != nil {
			_ = env.Close()
		}
	},
}

var (
	v   = viper.New()
	env *cli.Env

	// used to patch over the file system during test
	appFs afero.Fs
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
//
// Usage errors, unknown actions included, print the usage of the command at fault.
func Execute() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		_ = cmd.Usage()
		osExit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	cli.AddFlags(rootCmd.PersistentFlags(), v)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := cli.InitConfig(v); err != nil {
		wrapFatalln("configuration", err)
	}
}

// resolve opens a catalog by name, or exits.
func resolve(ctx context.Context, name string) (*catalog.Catalog, bool) {
	cat, err := env.Root.Resolve(ctx, name)
	if err != nil {
		wrapFatalln(name+": could not open", err)
		return nil, false
	}
	return cat, true
}

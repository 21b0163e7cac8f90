// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"

	"github.com/oneconcern/domx/internal/cli"
	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/oneconcern/domx/pkg/fileobject"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// maxExitCode caps the exit status, which reports the number of errors.
const maxExitCode = 255

var scanFlags struct {
	md5         bool
	time        bool
	closed      bool
	description string
}

// rootCmd scans files and catalogs them
var rootCmd = &cobra.Command{
	Use:   "xmlfilescan [options] <catalog> <file> [<file> ...]",
	Short: "xmlfilescan records files into a catalog",
	Long: `xmlfilescan scans a list of files, describes each one as a file object
(location, size, stat times and optionally an md5 checksum), then inserts
these objects into a catalog.

Objects are keyed by file name, or with --time by their last modified time
followed by the file name, so that keys sort in time order.

The exit status is the number of files which could not be scanned,
checksummed or inserted.
`,
	Example:       `% xmlfilescan --md5 --time incoming /data/raw/*.nc`,
	Args:          cobra.MinimumNArgs(2),
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env = nil
		config, err := cli.NewConfig(v)
		if err != nil {
			wrapFatalWithCodef(1, "reading configuration: %v", err)
			return
		}
		env, err = config.Setup("xmlfilescan", appFs)
		if err != nil {
			wrapFatalWithCodef(1, "setting up: %v", err)
			return
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cat, err := env.Root.Resolve(ctx, args[0])
		if err != nil {
			env.Logger.Error("could not open catalog", zap.String("catalog", args[0]), zap.Error(err))
			wrapFatalWithCodef(1, "%s: could not open catalog: %v", args[0], err)
			return
		}

		errs := multierr.Errors(scanFiles(ctx, env.Logger, cat, args[1:]))
		for _, err := range errs {
			_, _ = fmt.Fprintln(stderr, err)
		}
		_ = env.Close()

		if n := len(errs); n > 0 {
			if n > maxExitCode {
				n = maxExitCode
			}
			osExit(n)
		}
	},
}

var (
	v   = viper.New()
	env *cli.Env

	// used to patch over the file system during test
	appFs afero.Fs
)

// Execute runs the command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		osExit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()
	flags.BoolVar(&scanFlags.md5, "md5", false, "Compute md5 sums for each file and record in catalog")
	flags.BoolVar(&scanFlags.time, "time", false, "Insert file using its last modified time as the key")
	flags.BoolVar(&scanFlags.closed, "closed", false, "Record files as closed rather than still open")
	flags.StringVar(&scanFlags.description, "description", "", "Description recorded for every file")
	cli.AddFlags(rootCmd.PersistentFlags(), v)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := cli.InitConfig(v); err != nil {
		wrapFatalWithCodef(1, "configuration: %v", err)
	}
}

// scanFiles inserts a file object for every file, returning all failures.
// A file which cannot be scanned is skipped.
func scanFiles(ctx context.Context, logger *zap.Logger, cat *catalog.Catalog, files []string) error {
	var errs error
	for _, path := range files {
		xfo := fileobject.New()
		xfo.SetFs(appFs)
		if err := xfo.Scan(path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if scanFlags.md5 {
			if err := xfo.ComputeMD5(); err != nil {
				logger.Error("checksum failed", zap.String("file", path), zap.Error(err))
				errs = multierr.Append(errs, errors.Wrapf(err, "checksum failed for %s", path))
			}
		}
		if scanFlags.description != "" {
			xfo.Description.Set(scanFlags.description)
		}
		if scanFlags.closed {
			xfo.SetClosed()
		}

		key := xfo.Name.Get()
		if scanFlags.time {
			key = xfo.ModifiedTimeKey()
		}
		if err := cat.Insert(ctx, key, xfo); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Debug("file cataloged", zap.String("file", path), zap.String("key", key))
	}
	return errs
}

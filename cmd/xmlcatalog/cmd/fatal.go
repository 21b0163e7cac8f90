package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// exitFailure is the status of a command which failed at run time, as
// opposed to a usage error.
const exitFailure = 9

var (
	// globals used to patch over calls to os.Exit() during test

	osExit           = os.Exit
	stderr io.Writer = os.Stderr
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		wrapFatalWithCodef(exitFailure, "%s", msg)
		return
	}
	wrapFatalWithCodef(exitFailure, "%v", fmt.Errorf(msg+": %w", err))
}

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(stderr, color.RedString(format, args...))
	// post run hooks are skipped on exit
	if env != nil {
		_ = env.Close()
	}
	osExit(code)
}

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// globals used to patch over calls to os.Exit() during test

	osExit           = os.Exit
	stderr io.Writer = os.Stderr
)

func wrapFatalWithCodef(code int, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(stderr, color.RedString(format, args...))
	if env != nil {
		_ = env.Close()
	}
	osExit(code)
}

package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// printf prints a line to w, adding a newline.
func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

// warningf prints a warning line to w with a bold yellow prefix. Color is dropped when stdout is
// not a terminal.
func warningf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	color.New(color.FgYellow, color.Bold).Fprint(w, "Warning: ")
	printf(w, format, a...)
}

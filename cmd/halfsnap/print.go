package main

import (
	"io"

	"github.com/1broseidon/halfsnap/internal/ipc"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed, color.Bold)
	yellow = color.New(color.FgYellow)
)

// printTileResult writes the one-line summary, green on success and red on
// failure.
func printTileResult(w io.Writer, res ipc.TileResult) {
	if res.OK {
		green.Fprintln(w, res.Summary())
		return
	}
	red.Fprintln(w, res.Summary())
}

func printHint(w io.Writer, format string, a ...any) {
	yellow.Fprintf(w, format+"\n", a...)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		yellow.Fprintln(w, "warning:", msg)
	}
}

func yesNo(b bool) string {
	if b {
		return green.Sprint("yes")
	}
	return red.Sprint("no")
}

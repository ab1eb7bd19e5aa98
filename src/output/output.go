// Package output writes wrapper diagnostics to stderr. The JSON report is
// the only thing automated consumers parse, so nothing here ever touches
// stdout.
package output

import (
	"fmt"
	"io"
	"os"
)

// Diag writes diagnostic lines describing wrapper actions.
// Silent unless verbose is enabled.
type Diag struct {
	Writer  io.Writer
	Verbose bool
}

// NewDiag creates a Diag writing to stderr.
func NewDiag(verbose bool) *Diag {
	return &Diag{
		Writer:  os.Stderr,
		Verbose: verbose,
	}
}

// Printf writes one diagnostic line when verbose is enabled.
func (d *Diag) Printf(format string, args ...any) {
	if d == nil || !d.Verbose {
		return
	}
	fmt.Fprintf(d.Writer, format+"\n", args...)
}

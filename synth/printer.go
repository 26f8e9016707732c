package synth

import (
	"fmt"
	"io"
	"strings"
)

// printer is an indent-tracking line writer, grounded on mygo's
// internal/mlir emitter: every line is written through printf/line so
// nesting depth stays in one place instead of threading indent strings
// through every call site.
type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
	fmt.Fprintf(p.w, format, args...)
	fmt.Fprintln(p.w)
}

func (p *printer) blank() { fmt.Fprintln(p.w) }

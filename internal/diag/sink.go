// Package diag provides the default asm.Sink implementation: a stream of formatted diagnostic
// lines written to an *os.File, coloured when that file is a terminal.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/cssylvain/asm8080/internal/asm"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
)

// Sink writes diagnostics to out, one per line, as "file:line: severity: code: message (context)".
// Colour is used only when out is a terminal.
type Sink struct {
	mu      sync.Mutex
	out     io.Writer
	color   bool
	errors  int
	warning int
}

// New creates a Sink writing to out. If out is an *os.File attached to a terminal, output is
// coloured: red for errors, yellow for warnings.
func New(out io.Writer) *Sink {
	color := false

	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}

	return &Sink{out: out, color: color}
}

// Report implements asm.Sink.
func (s *Sink) Report(d asm.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	severity := "error"
	color := colorRed

	if d.Code.Severity() == asm.SeverityWarning {
		severity = "warning"
		color = colorYellow
		s.warning++
	} else {
		s.errors++
	}

	line := fmt.Sprintf("%s:%d: %s: %s: %s", d.File, d.Line, severity, d.Code, d.Message)
	if d.Context != "" {
		line += fmt.Sprintf(" (%s)", d.Context)
	}

	if s.color {
		fmt.Fprintln(s.out, color+line+colorReset)
		return
	}

	fmt.Fprintln(s.out, line)
}

// Errors returns the number of error-severity diagnostics reported so far.
func (s *Sink) Errors() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.errors
}

// Warnings returns the number of warning-severity diagnostics reported so far.
func (s *Sink) Warnings() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.warning
}

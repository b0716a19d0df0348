package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cssylvain/asm8080/internal/asm"
)

func TestSinkReportsErrorsAndWarnings(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)

	sink.Report(asm.Diagnostic{File: "t.asm", Line: 3, Code: asm.DiagLabelNotFound, Message: "not found", Context: "LOOP"})
	sink.Report(asm.Diagnostic{File: "t.asm", Line: 5, Code: asm.DiagLabelTooLong, Message: "label too long", Context: "REALLYLONGLABEL"})

	if sink.Errors() != 1 {
		t.Errorf("Errors() = %d, want 1", sink.Errors())
	}

	if sink.Warnings() != 1 {
		t.Errorf("Warnings() = %d, want 1", sink.Warnings())
	}

	out := buf.String()
	if !strings.Contains(out, "t.asm:3: error:") {
		t.Errorf("expected an error-severity line for line 3, got:\n%s", out)
	}

	if !strings.Contains(out, "t.asm:5: warning:") {
		t.Errorf("expected a warning-severity line for line 5, got:\n%s", out)
	}

	if !strings.Contains(out, "(LOOP)") {
		t.Errorf("expected the context to be parenthesised, got:\n%s", out)
	}
}

func TestSinkUncoloredForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)

	sink.Report(asm.Diagnostic{File: "t.asm", Line: 1, Code: asm.DiagLabelNotFound, Message: "not found"})

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected no ANSI colour codes when writing to a non-terminal, got: %q", buf.String())
	}
}

func TestSinkOmitsContextWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	sink := New(&buf)

	sink.Report(asm.Diagnostic{File: "t.asm", Line: 1, Code: asm.DiagLabelNotFound, Message: "not found"})

	if strings.Contains(buf.String(), "()") {
		t.Errorf("expected no empty parens when context is blank, got: %q", buf.String())
	}
}

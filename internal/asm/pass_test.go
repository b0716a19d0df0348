package asm

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func sourceOpener(src string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(src)), nil
	}
}

func TestAssembleSimpleProgram(t *testing.T) {
	src := "\tORG 100H\n" +
		"\tMVI A,5\n" +
		"\tHLT\n" +
		"\tEND\n"

	var bin, hex bytes.Buffer
	sink := &CollectingSink{}

	asmr := NewAssembler(Config{
		InputFile: "t.asm",
		OpenInput: sourceOpener(src),
		Sink:      sink,
		Binary:    &bin,
		Hex:       &hex,
	})

	if err := asmr.Assemble(); err != nil {
		t.Fatalf("Assemble: %s", err)
	}

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}

	want := []byte{0x3E, 0x05, 0x76}
	if !bytes.Equal(bin.Bytes(), want) {
		t.Errorf("binary = % X, want % X", bin.Bytes(), want)
	}

	if hex.Len() == 0 {
		t.Error("expected hex output to be non-empty")
	}

	if !strings.HasPrefix(hex.String(), ":") {
		t.Errorf("hex output should start with a record marker, got %q", hex.String())
	}
}

func TestAssembleForwardReferenceResolvedOnPass2(t *testing.T) {
	src := "\tORG 100H\n" +
		"\tJMP DONE\n" +
		"DONE:\tHLT\n" +
		"\tEND\n"

	var bin bytes.Buffer
	sink := &CollectingSink{}

	asmr := NewAssembler(Config{
		InputFile: "t.asm",
		OpenInput: sourceOpener(src),
		Sink:      sink,
		Binary:    &bin,
	})

	if err := asmr.Assemble(); err != nil {
		t.Fatalf("Assemble: %s", err)
	}

	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %+v", sink.Diagnostics)
	}

	want := []byte{0xC3, 0x03, 0x01, 0x76}
	if !bytes.Equal(bin.Bytes(), want) {
		t.Errorf("binary = % X, want % X", bin.Bytes(), want)
	}

	sym, ok := asmr.Symbols().Find("DONE")
	if !ok || sym.Value != 0x103 {
		t.Errorf("DONE = %+v, want value 0x103", sym)
	}
}

func TestAssembleEquAndExpression(t *testing.T) {
	src := "SIZE\tEQU 10\n" +
		"\tORG 100H\n" +
		"\tMVI B,SIZE+1\n" +
		"\tEND\n"

	var bin bytes.Buffer
	sink := &CollectingSink{}

	asmr := NewAssembler(Config{
		InputFile: "t.asm",
		OpenInput: sourceOpener(src),
		Sink:      sink,
		Binary:    &bin,
	})

	if err := asmr.Assemble(); err != nil {
		t.Fatalf("Assemble: %s", err)
	}

	want := []byte{0x06, 11}
	if !bytes.Equal(bin.Bytes(), want) {
		t.Errorf("binary = % X, want % X", bin.Bytes(), want)
	}
}

func TestAssembleUndefinedSymbolReportedOnPass2(t *testing.T) {
	src := "\tORG 100H\n" +
		"\tMVI B,MISSING\n" +
		"\tEND\n"

	sink := &CollectingSink{}

	asmr := NewAssembler(Config{
		InputFile: "t.asm",
		OpenInput: sourceOpener(src),
		Sink:      sink,
	})

	if err := asmr.Assemble(); err != nil {
		t.Fatalf("Assemble: %s", err)
	}

	if !sink.HasErrors() {
		t.Fatal("expected an undefined-symbol error")
	}
}

func TestAssembleListingEmittedOnPass2Only(t *testing.T) {
	src := "\tORG 100H\n" +
		"\tHLT\n" +
		"\tEND\n"

	var listing bytes.Buffer
	sink := &CollectingSink{}

	asmr := NewAssembler(Config{
		InputFile: "t.asm",
		OpenInput: sourceOpener(src),
		Sink:      sink,
		Listing:   &listing,
	})

	if err := asmr.Assemble(); err != nil {
		t.Fatalf("Assemble: %s", err)
	}

	got := listing.String()
	if n := strings.Count(got, "HLT"); n != 1 {
		t.Errorf("expected the HLT source line exactly once (pass 2 only), got %d:\n%s", n, got)
	}

	if !strings.Contains(got, "Symbol table") {
		t.Errorf("expected the listing to contain the symbol table trailer, got:\n%s", got)
	}
}

func TestAssembleCantOpenInputFile(t *testing.T) {
	sink := &CollectingSink{}

	asmr := NewAssembler(Config{
		InputFile: "missing.asm",
		OpenInput: func() (io.ReadCloser, error) { return nil, io.ErrUnexpectedEOF },
		Sink:      sink,
	})

	err := asmr.Assemble()
	if err == nil {
		t.Fatal("expected Assemble to fail when the input file cannot be opened")
	}

	if !sink.HasErrors() {
		t.Fatal("expected a CantOpenInputFile diagnostic")
	}
}

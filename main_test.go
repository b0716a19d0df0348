package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cssylvain/asm8080/internal/cli"
	"github.com/cssylvain/asm8080/internal/cli/cmd"
	"github.com/cssylvain/asm8080/internal/log"
)

// TestMainAssemblesNOP exercises the full CLI entry point against a trivial source file, end to
// end: parse flags, assemble, and check the binary output lands on disk.
func TestMainAssemblesNOP(t *testing.T) {
	log.LogLevel.Set(log.Error)

	dir := t.TempDir()
	src := filepath.Join(dir, "nop.asm")

	if err := os.WriteFile(src, []byte("\tORG 100H\n\tNOP\n\tEND\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stem := filepath.Join(dir, "nop")

	commander := cli.New(context.Background()).
		WithLogger(os.Stderr).
		WithCommands([]cli.Command{cmd.Assembler()}).
		WithHelp(cmd.Help([]cli.Command{cmd.Assembler()}))

	code := commander.Execute([]string{"asm", "-o", stem, src})
	if code != 0 {
		t.Fatalf("asm exited %d, want 0", code)
	}

	got, err := os.ReadFile(stem + ".bin")
	if err != nil {
		t.Fatalf("reading binary output: %s", err)
	}

	want := []byte{0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("binary = % X, want % X", got, want)
	}

	if _, err := os.Stat(stem + ".hex"); err != nil {
		t.Errorf("hex output missing: %s", err)
	}
}

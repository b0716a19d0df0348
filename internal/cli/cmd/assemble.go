package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cssylvain/asm8080/internal/asm"
	"github.com/cssylvain/asm8080/internal/cli"
	"github.com/cssylvain/asm8080/internal/diag"
	"github.com/cssylvain/asm8080/internal/log"
)

// Assembler returns the "asm" sub-command: the two-pass 8080 cross-assembler.
func Assembler() cli.Command {
	return &assembler{}
}

type assembler struct {
	searchPath stringList
	listing    string
	listFlag   bool
	outStem    string
	extensions bool
}

func (*assembler) Description() string {
	return "assemble an 8080 source file"
}

func (*assembler) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `asm [-I dir]... [-l[=path]] [-o stem] [-x] file.asm

Assembles an Intel 8080 source file into a binary image, an Intel HEX file,
and (with -l) a listing.`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.Var(&a.searchPath, "I", "add `dir` to the include search path (repeatable)")
	fs.BoolFunc("l", "enable listing, optionally with a `path` (defaults to <input>.lst)", func(s string) error {
		switch s {
		case "true":
			a.listFlag = true
		case "false":
			a.listFlag, a.listing = false, ""
		default:
			a.listFlag, a.listing = true, s
		}

		return nil
	})
	fs.StringVar(&a.outStem, "o", "", "output file `stem` (.bin and .hex are always appended)")
	fs.BoolVar(&a.extensions, "x", false, "enable C-style extended expression operators")

	return fs
}

// Run assembles args[0] and writes the binary, hex, and (if requested) listing outputs.
func (a *assembler) Run(_ context.Context, args []string, _ io.Writer, logger *log.Logger) int {
	if len(args) != 1 {
		logger.Error("asm: exactly one input file is required")
		return 1
	}

	input := args[0]
	stem := a.outStem

	if stem == "" {
		stem = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(stem); ext != "" {
		logger.Warn("output stem has an extension; stripping it", "stem", stem, "ext", ext)
		stem = strings.TrimSuffix(stem, ext)
	}

	binPath := stem + ".bin"
	hexPath := stem + ".hex"

	binFile, err := os.Create(binPath)
	if err != nil {
		logger.Error("cannot create binary output", "err", err)
		return 1
	}
	defer binFile.Close()

	hexFile, err := os.Create(hexPath)
	if err != nil {
		logger.Error("cannot create hex output", "err", err)
		return 1
	}
	defer hexFile.Close()

	var listWriter io.Writer

	if a.listFlag {
		listPath := a.listing
		if listPath == "" {
			listPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".lst"
		}

		listFile, err := os.Create(listPath)
		if err != nil {
			logger.Error("cannot create listing output", "err", err)
			return 1
		}
		defer listFile.Close()

		listWriter = listFile
	}

	sink := diag.New(os.Stderr)

	cfg := asm.Config{
		InputFile:  input,
		OpenInput:  func() (io.ReadCloser, error) { return os.Open(input) },
		Resolver:   &searchPathResolver{dirs: []string(a.searchPath)},
		Sink:       sink,
		Listing:    listWriter,
		Binary:     binFile,
		Hex:        hexFile,
		Extensions: a.extensions,
	}

	if err := asm.NewAssembler(cfg).Assemble(); err != nil {
		logger.Error("assembly failed", "err", err)
		return 1
	}

	if sink.Errors() > 0 {
		logger.Error("assembly completed with errors", "errors", sink.Errors(), "warnings", sink.Warnings())
		return 1
	}

	logger.Info("assembly completed", "warnings", sink.Warnings())

	return 0
}

// stringList implements flag.Value to accept a repeatable -I flag.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}

	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// searchPathResolver implements asm.FileResolver following main.c's FindFile order: the including
// file's own directory first, then each -I directory in order, then the current directory.
type searchPathResolver struct {
	dirs []string
}

func (r *searchPathResolver) Resolve(name, includingFile string) (string, io.ReadCloser, error) {
	var candidates []string

	if includingFile != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(includingFile), name))
	}

	for _, dir := range r.dirs {
		candidates = append(candidates, filepath.Join(dir, name))
	}

	candidates = append(candidates, name)

	var firstErr error

	for _, path := range candidates {
		f, err := os.Open(path)
		if err == nil {
			return path, f, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return "", nil, firstErr
}

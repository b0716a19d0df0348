// pass.go implements the two-pass Assembler driver that orchestrates every other component: pass
// 1 discovers symbol values, pass 2 re-evaluates with full symbols and writes listing, binary and
// HEX output.

package asm

import (
	"fmt"
	"io"

	"github.com/cssylvain/asm8080/internal/encoding"
)

// Config configures one assembly run. Listing, Binary and Hex may be nil; nothing is written to a
// nil stream, matching the core's contract that these external outputs "may be absent".
type Config struct {
	InputFile  string
	OpenInput  func() (io.ReadCloser, error)
	Resolver   FileResolver
	Sink       Sink
	Listing    io.Writer
	Binary     io.Writer
	Hex        io.Writer
	Extensions bool
}

// Assembler drives the two-pass assembly of one input file. The symbol table and macro store
// persist across both passes; everything else (image, cursors, IF-stack, include stack) is
// rebuilt fresh for each pass.
type Assembler struct {
	cfg     Config
	symbols *SymbolTable
	macros  *MacroStore
}

// NewAssembler creates an Assembler with a fresh symbol table and macro store.
func NewAssembler(cfg Config) *Assembler {
	if cfg.Sink == nil {
		cfg.Sink = DiscardSink{}
	}

	return &Assembler{cfg: cfg, symbols: NewSymbolTable(), macros: NewMacroStore()}
}

// Symbols exposes the symbol table built up across the run, mainly for tests.
func (a *Assembler) Symbols() *SymbolTable {
	return a.symbols
}

// Assemble runs pass 1 then pass 2.
func (a *Assembler) Assemble() error {
	if err := a.runPass(1); err != nil {
		return err
	}

	return a.runPass(2)
}

func (a *Assembler) runPass(pass int) error {
	root, err := a.cfg.OpenInput()
	if err != nil {
		a.cfg.Sink.Report(Diagnostic{
			File: a.cfg.InputFile, Code: DiagCantOpenInputFile,
			Message: "cannot open input file", Context: err.Error(),
		})

		return fmt.Errorf("asm: %w", err)
	}

	defer root.Close()

	img := &Image{}
	img.Reset()

	includes := NewIncludeStack(a.cfg.InputFile, root)
	hexEnc := &encoding.HexEncoding{}

	evalr := &Evaluator{Symbols: a.symbols, Sink: a.cfg.Sink, Pass: pass, Extensions: a.cfg.Extensions}
	enc := &Encoder{Sink: a.cfg.Sink, Eval: evalr.Evaluate}

	dir := &Directives{
		Symbols:    a.symbols,
		Eval:       evalr,
		Encoder:    enc,
		Image:      img,
		Includes:   includes,
		Macros:     a.macros,
		Resolver:   a.cfg.Resolver,
		Hex:        hexEnc,
		Sink:       a.cfg.Sink,
		Pass:       pass,
		Extensions: a.cfg.Extensions,
	}
	dir.Reset()

	var listing *Listing
	if pass == 2 && a.cfg.Listing != nil {
		listing = NewListing(a.cfg.Listing)
	}

	for {
		raw, ok := includes.ReadLine()
		if !ok {
			if includes.AtRoot() {
				break
			}

			includes.Pop()

			continue
		}

		file, lineNo := includes.File(), includes.Line()
		evalr.PC = img.PC

		line := Tokenize(raw, file, lineNo, dir.insideMacro, a.cfg.Sink)
		addr := img.PC

		result := dir.Dispatch(raw, line, file, lineNo)

		if len(result.Bytes) > 0 {
			img.DumpBin(result.Bytes, len(result.Bytes))
		}

		if listing != nil {
			a.list(listing, line, result, addr, raw)
		}

		if result.Ended {
			break
		}
	}

	dir.flushHex()

	if pass == 2 {
		if a.cfg.Hex != nil {
			text, _ := hexEnc.MarshalText()
			a.cfg.Hex.Write(text)
		}

		if a.cfg.Binary != nil {
			a.cfg.Binary.Write(img.Binary())
		}

		if listing != nil {
			listing.WriteSymbolTable(a.symbols)
		}
	}

	return nil
}

func (a *Assembler) list(listing *Listing, line Line, result DispatchResult, addr uint16, raw string) {
	source := raw

	switch {
	case len(result.Bytes) > 0 && line.Keyword == "DW":
		words := make([]uint16, 0, len(result.Bytes)/2)
		for i := 0; i+1 < len(result.Bytes); i += 2 {
			words = append(words, uint16(result.Bytes[i])|uint16(result.Bytes[i+1])<<8)
		}

		listing.WriteWords(addr, words, source)
	case len(result.Bytes) > 0 && line.Keyword == "DB":
		listing.WriteBytes(addr, result.Bytes, source)
	case len(result.Bytes) > 0:
		listing.WriteText(addr, result.Bytes, source)
	default:
		listing.WriteSource(source)
	}
}

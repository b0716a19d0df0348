// listing.go implements the listing emitter: one formatted row per source line plus the symbol
// table trailer.

package asm

import (
	"fmt"
	"io"
)

// Listing writes formatted rows to an underlying writer. It is only used on pass 2.
type Listing struct {
	w io.Writer
}

// NewListing wraps w as a Listing sink.
func NewListing(w io.Writer) *Listing {
	return &Listing{w: w}
}

// WriteText writes a TEXT row: address, up to data_size bytes (1-4) for an opcode encoding, and
// the original source line.
func (l *Listing) WriteText(addr uint16, data []byte, source string) {
	var b0, b1, b2, b3 byte

	switch len(data) {
	case 4:
		b3 = data[3]
		fallthrough
	case 3:
		b2 = data[2]
		fallthrough
	case 2:
		b1 = data[1]
		fallthrough
	case 1:
		b0 = data[0]
	}

	fmt.Fprintf(l.w, "%6d %04X %02X %02X %02X %02X\t%s\n", len(data), addr, b0, b1, b2, b3, source)
}

// WriteBytes writes a DB/DS row: the address, then up to 4 bytes per wrapped line, 3 columns of
// space per byte.
func (l *Listing) WriteBytes(addr uint16, data []byte, source string) {
	if len(data) == 0 {
		fmt.Fprintf(l.w, "%04X\t%s\n", addr, source)
		return
	}

	for i := 0; i < len(data); i += 4 {
		end := i + 4
		if end > len(data) {
			end = len(data)
		}

		if i == 0 {
			fmt.Fprintf(l.w, "%04X", addr)
		} else {
			fmt.Fprint(l.w, "    ")
		}

		for _, b := range data[i:end] {
			fmt.Fprintf(l.w, " %02X ", b)
		}

		if i == 0 {
			fmt.Fprintf(l.w, "\t%s", source)
		}

		fmt.Fprintln(l.w)
	}
}

// WriteWords writes a DW row: the address, then up to 4 words per wrapped line, 5 columns of
// space per word.
func (l *Listing) WriteWords(addr uint16, words []uint16, source string) {
	if len(words) == 0 {
		fmt.Fprintf(l.w, "%04X\t%s\n", addr, source)
		return
	}

	for i := 0; i < len(words); i += 4 {
		end := i + 4
		if end > len(words) {
			end = len(words)
		}

		if i == 0 {
			fmt.Fprintf(l.w, "%04X", addr)
		} else {
			fmt.Fprint(l.w, "    ")
		}

		for _, w := range words[i:end] {
			fmt.Fprintf(l.w, " %04X ", w)
		}

		if i == 0 {
			fmt.Fprintf(l.w, "\t%s", source)
		}

		fmt.Fprintln(l.w)
	}
}

// WriteSource writes a bare source-only row for lines that emitted no bytes (comments, EQU, IF,
// labels alone).
func (l *Listing) WriteSource(source string) {
	fmt.Fprintf(l.w, "%29s\t%s\n", "", source)
}

// WriteSymbolTable writes the trailer: a header banner, then Names, EQUs, SETs and Labels in that
// order, each entry as "<name>\t<kind>\t%05Xh", followed by count statistics.
func (l *Listing) WriteSymbolTable(symbols *SymbolTable) {
	fmt.Fprintln(l.w, "Symbol table")
	fmt.Fprintln(l.w, "------------")

	groups := []struct {
		kind  SymbolKind
		label string
	}{
		{SymName, "Names"},
		{SymEqu, "EQUs"},
		{SymSet, "SETs"},
		{SymLabel, "Labels"},
	}

	counts := make(map[SymbolKind]int)

	for _, name := range symbols.Names() {
		sym, _ := symbols.Find(name)
		counts[sym.Kind]++
	}

	for _, g := range groups {
		fmt.Fprintf(l.w, "%s:\n", g.label)

		for _, name := range symbols.Names() {
			sym, _ := symbols.Find(name)
			if sym.Kind != g.kind {
				continue
			}

			fmt.Fprintf(l.w, "%s\t%s\t%05Xh\n", sym.Name, sym.Kind, sym.Value)
		}
	}

	fmt.Fprintf(l.w, "%d symbols total\n", symbols.Count())
}

// directive.go implements the directive engine: EQU, SET, ORG, DB, DW, DS, IF/ELSE/ENDIF,
// INCLUDE, MACRO/ENDM, END, plus the fallback that tries an unmatched keyword as a macro
// invocation. It is the statement dispatcher the pass driver calls once per tokenised line.

package asm

import (
	"strings"

	"github.com/cssylvain/asm8080/internal/encoding"
)

// ifNestMax bounds conditional-assembly nesting depth. The reference header has no explicit
// constant for this; eight is chosen to match the expression evaluator's own stack depth.
const ifNestMax = 8

// DispatchResult tells the pass driver what a statement produced: bytes to place at the current
// pc, a DS reservation count, or the end-of-assembly signal.
type DispatchResult struct {
	Bytes    []byte
	Reserved uint16
	IsDS     bool
	Ended    bool
}

// Directives holds every collaborator the directive engine needs and the conditional-assembly /
// macro-capture state that persists across statements within one pass.
type Directives struct {
	Symbols  *SymbolTable
	Eval     *Evaluator
	Encoder  *Encoder
	Image    *Image
	Includes *IncludeStack
	Macros   *MacroStore
	Resolver FileResolver
	Hex      *encoding.HexEncoding
	Sink     Sink

	Pass       int
	Extensions bool

	ifStack     []bool
	insideMacro bool
	capture     *Capture

	file string
	line int
}

// Reset clears per-pass conditional/macro state. Symbol table contents persist across passes;
// everything else here is pass-local.
func (d *Directives) Reset() {
	d.ifStack = nil
	d.insideMacro = false
	d.capture = nil
}

// Dispatch processes one tokenised line. raw is the untokenised source text, needed verbatim for
// macro capture.
func (d *Directives) Dispatch(raw string, line Line, file string, lineNo int) DispatchResult {
	d.file, d.line = file, lineNo
	d.Eval.File, d.Eval.Line = file, lineNo
	d.Encoder.File, d.Encoder.Line = file, lineNo

	if d.insideMacro {
		if strings.EqualFold(line.Keyword, "ENDM") {
			if d.Pass == 1 && d.capture != nil {
				d.Macros.EndCapture(d.capture)
			}

			d.insideMacro = false
			d.capture = nil

			return DispatchResult{}
		}

		if d.Pass == 1 && d.capture != nil {
			d.capture.Record(raw)
		}

		return DispatchResult{}
	}

	if line.Comment {
		return DispatchResult{}
	}

	kw := strings.ToUpper(line.Keyword)

	switch kw {
	case "IF":
		d.handleIF(line)
		return DispatchResult{}
	case "ELSE":
		d.handleELSE()
		return DispatchResult{}
	case "ENDIF":
		d.handleENDIF()
		return DispatchResult{}
	}

	if !d.enabled() {
		return DispatchResult{}
	}

	if line.HasLabel && kw != "MACRO" && kw != "EQU" && kw != "SET" {
		d.processLabel(line.Label)
	}

	switch kw {
	case "":
		return DispatchResult{}
	case "EQU":
		d.handleEQU(line)
	case "SET":
		d.handleSET(line)
	case "ORG":
		return d.handleORG(line)
	case "DB":
		return d.handleDB(line)
	case "DW":
		return d.handleDW(line)
	case "DS":
		return d.handleDS(line)
	case "INCLUDE":
		d.handleINCLUDE(line)
	case "MACRO":
		d.handleMACRO(line)
	case "END":
		return d.handleEND()
	default:
		return d.dispatchOpcodeOrMacro(kw, line)
	}

	return DispatchResult{}
}

func (d *Directives) enabled() bool {
	for _, v := range d.ifStack {
		if !v {
			return false
		}
	}

	return true
}

func (d *Directives) handleIF(line Line) {
	if len(d.ifStack) >= ifNestMax {
		d.report(DiagIfNestingOverflow, "if nesting too deep", "")
		return
	}

	v := d.Eval.Evaluate(line.Operand) != 0
	d.ifStack = append(d.ifStack, v)
}

func (d *Directives) handleELSE() {
	if len(d.ifStack) == 0 {
		d.report(DiagIfNestingUnderflow, "else without matching if", "")
		return
	}

	top := len(d.ifStack) - 1
	d.ifStack[top] = !d.ifStack[top]
}

func (d *Directives) handleENDIF() {
	if len(d.ifStack) == 0 {
		d.report(DiagIfNestingUnderflow, "endif without matching if", "")
		return
	}

	d.ifStack = d.ifStack[:len(d.ifStack)-1]
}

// processLabel implements symtab.md's process_label: pass 1 binds a fresh Label at pc; pass 2
// resyncs to pc and reports a phasing error on mismatch.
func (d *Directives) processLabel(name string) {
	if name == "" {
		return
	}

	sym, ok := d.Symbols.Find(name)

	if !ok {
		if d.Pass == 1 {
			_ = d.Symbols.Add(Symbol{Name: name, Value: d.Image.PC, Kind: SymLabel, File: d.file, Line: d.line})
		}

		return
	}

	if d.Pass == 1 {
		d.report(DiagDuplicateLabel, "symbol already defined", name)
		return
	}

	if sym.Value != d.Image.PC {
		d.report(DiagPhasingError, "phasing error", name)
		d.Symbols.Update(name, d.Image.PC, sym.Kind)
	}
}

func (d *Directives) handleEQU(line Line) {
	name := line.Label
	if name == "" {
		d.report(DiagMissingField, "EQU requires a label", "")
		return
	}

	value := d.Eval.Evaluate(line.Operand)

	sym, ok := d.Symbols.Find(name)
	if !ok {
		_ = d.Symbols.Add(Symbol{Name: name, Value: value, Kind: SymEqu, File: d.file, Line: d.line})
		return
	}

	if d.Pass == 1 {
		if sym.Kind == SymSet {
			d.Symbols.Update(name, value, SymEqu)
		}

		return
	}

	switch sym.Kind {
	case SymEqu, SymSet:
		if sym.File == d.file && sym.Line == d.line {
			if sym.Value != value {
				d.report(DiagPhasingError, "phasing error", name)
				d.Symbols.Update(name, value, SymEqu)
			}
		} else {
			d.report(DiagEquAlreadyExists, "equ already exists", name)
		}
	case SymName:
		d.report(DiagAlreadyDefinedAsName, "already defined as name", name)
	case SymLabel:
		d.report(DiagSymbolAlreadyUsedAsLabel, "symbol already used as label", name)
	}
}

func (d *Directives) handleSET(line Line) {
	name := line.Label
	if name == "" {
		d.report(DiagMissingField, "SET requires a label", "")
		return
	}

	value := d.Eval.Evaluate(line.Operand)

	sym, ok := d.Symbols.Find(name)
	if !ok {
		_ = d.Symbols.Add(Symbol{Name: name, Value: value, Kind: SymSet, File: d.file, Line: d.line})
		return
	}

	if sym.Kind == SymEqu {
		d.report(DiagAlreadyDefinedAsEqu, "already defined as equ", name)
		return
	}

	d.Symbols.Update(name, value, SymSet)
}

func (d *Directives) handleORG(line Line) DispatchResult {
	d.flushHex()

	value := d.Eval.Evaluate(line.Operand)
	d.Image.Org(value)

	return DispatchResult{}
}

func (d *Directives) handleDS(line Line) DispatchResult {
	d.flushHex()

	n := d.Eval.Evaluate(line.Operand)

	if d.Pass == 2 && int16(n) < 0 {
		d.report(DiagNegativeValueOnDs, "negative DS count", "")
	}

	d.Image.Reserve(n)

	return DispatchResult{Reserved: n, IsDS: true}
}

func (d *Directives) handleDB(line Line) DispatchResult {
	var out []byte

	for _, item := range splitOperandList(line.Operand) {
		item = strings.TrimSpace(item)

		if s, ok := d.scanStringItem(item); ok {
			out = append(out, s...)
			continue
		}

		v := d.Eval.Evaluate(item)
		out = append(out, byte(v))
	}

	return DispatchResult{Bytes: out}
}

func (d *Directives) handleDW(line Line) DispatchResult {
	var out []byte

	for _, item := range splitOperandList(line.Operand) {
		item = strings.TrimSpace(item)

		if s, ok := d.scanStringItem(item); ok {
			for i := 0; i < len(s); i += 2 {
				if i+1 < len(s) {
					out = append(out, s[i+1], s[i])
				} else {
					out = append(out, s[i], 0)
				}
			}

			continue
		}

		v := d.Eval.Evaluate(item)
		out = append(out, byte(v), byte(v>>8))
	}

	return DispatchResult{Bytes: out}
}

// scanStringItem recognises a quoted string item (single-quoted always; double-quoted only when
// extensions are enabled) and returns its raw character bytes. A missing closing quote is a
// warning but the characters up to end-of-item are still emitted.
func (d *Directives) scanStringItem(item string) ([]byte, bool) {
	if item == "" {
		return nil, false
	}

	quote := item[0]
	if quote != '\'' && (quote != '"' || !d.Extensions) {
		return nil, false
	}

	body := item[1:]

	if len(body) == 0 || body[len(body)-1] != quote {
		d.report(DiagMissingQuote, "missing closing quote", item)
		return []byte(body), true
	}

	return []byte(body[:len(body)-1]), true
}

func (d *Directives) handleINCLUDE(line Line) {
	name := strings.TrimSpace(line.Operand)
	if len(name) >= 2 && (name[0] == '"' || name[0] == '\'') && name[len(name)-1] == name[0] {
		name = name[1 : len(name)-1]
	}

	if name == "" {
		d.report(DiagMissingField, "INCLUDE requires a filename", "")
		return
	}

	if err := d.Includes.Push(name, d.Resolver); err != nil {
		d.reportErr(err)
	}
}

func (d *Directives) handleMACRO(line Line) {
	name := line.Label
	if name == "" {
		d.report(DiagMacroHasNoName, "macro has no name", "")
		return
	}

	if strings.TrimSpace(line.Operand) != "" {
		d.report(DiagMacroParametersNotSupport, "macro parameters not supported", line.Operand)
	}

	if d.Pass == 1 {
		d.capture = d.Macros.BeginCapture(name)
	}

	d.insideMacro = true
}

func (d *Directives) handleEND() DispatchResult {
	if d.Pass == 2 && !d.Includes.AtRoot() {
		d.report(DiagEndInsideIncludeFile, "end inside include file", "")
	}

	d.Includes.PopToRoot()
	d.flushHex()

	return DispatchResult{Ended: true}
}

// dispatchOpcodeOrMacro handles a keyword that isn't a known directive: first as an opcode
// mnemonic, then as a macro invocation (the keyword treated as a filename stem with ".m").
func (d *Directives) dispatchOpcodeOrMacro(kw string, line Line) DispatchResult {
	operands := splitOperandList(line.Operand)

	enc, matched, err := d.Encoder.Encode(kw, operands)
	if matched {
		if err != nil {
			return DispatchResult{}
		}

		return DispatchResult{Bytes: append([]byte(nil), enc.Bytes[:enc.DataSize]...)}
	}

	if r, ok := d.Macros.Open(kw); ok {
		if err := d.Includes.PushReader(kw+".m", r); err != nil {
			d.reportErr(err)
		}

		return DispatchResult{}
	}

	d.report(DiagCantFindKeyword, "unknown keyword", kw)

	return DispatchResult{}
}

// flushHex emits a HEX fragment covering pc_org..addr, called before ORG/DS/END move the
// cursors, and at pass-2 end. It is a no-op on pass 1 and when the fragment is empty.
func (d *Directives) flushHex() {
	if d.Pass != 2 || d.Hex == nil {
		return
	}

	start, end := d.Image.PCOrg, d.Image.PC
	if end <= start {
		return
	}

	d.Hex.AddFragment(start, d.Image.Bytes[start:end])
	d.Image.PCOrg = end
}

func (d *Directives) report(code DiagCode, msg, context string) {
	if d.Sink == nil {
		return
	}

	d.Sink.Report(Diagnostic{File: d.file, Line: d.line, Code: code, Message: msg, Context: context})
}

func (d *Directives) reportErr(err error) {
	if diag, ok := err.(*Diagnostic); ok {
		diag.File, diag.Line = d.file, d.line
		d.report(diag.Code, diag.Message, diag.Context)

		return
	}

	d.report(DiagCantOpenIncludeFile, err.Error(), "")
}

// splitOperandList splits a comma-separated operand field, treating text inside single or double
// quotes as opaque so embedded commas don't split an item.
func splitOperandList(s string) []string {
	var (
		items []string
		cur   strings.Builder
		quote byte
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			cur.WriteByte(c)

			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c

			cur.WriteByte(c)
		case c == ',':
			items = append(items, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	if s != "" {
		items = append(items, strings.TrimSpace(cur.String()))
	}

	return items
}

package asm

import (
	"strings"
	"testing"

	"github.com/cssylvain/asm8080/internal/encoding"
)

// newDirectives builds a minimal Directives with all collaborators wired for a single pass, the
// way pass.go's runPass does per pass.
func newDirectives(t *testing.T, pass int) (*Directives, *CollectingSink) {
	t.Helper()

	sink := &CollectingSink{}
	symbols := NewSymbolTable()
	img := &Image{}
	img.Reset()

	evalr := &Evaluator{Symbols: symbols, Sink: sink, Pass: pass}
	enc := &Encoder{Sink: sink, Eval: evalr.Evaluate}

	dir := &Directives{
		Symbols:  symbols,
		Eval:     evalr,
		Encoder:  enc,
		Image:    img,
		Includes: NewIncludeStack("t.asm", strings.NewReader("")),
		Macros:   NewMacroStore(),
		Hex:      &encoding.HexEncoding{},
		Sink:     sink,
		Pass:     pass,
	}
	dir.Reset()

	return dir, sink
}

func dispatch(t *testing.T, dir *Directives, raw string) DispatchResult {
	t.Helper()

	line := Tokenize(raw, "t.asm", 1, dir.insideMacroForTest(), dir.Sink)

	return dir.Dispatch(raw, line, "t.asm", 1)
}

// insideMacroForTest exposes the private insideMacro flag to the test's tokenizer call, mirroring
// what the pass driver does with dir.insideMacro directly.
func (d *Directives) insideMacroForTest() bool {
	return d.insideMacro
}

func TestDispatchEQUBindsValue(t *testing.T) {
	dir, sink := newDirectives(t, 1)

	dispatch(t, dir, "FOO EQU 42")

	sym, ok := dir.Symbols.Find("FOO")
	if !ok {
		t.Fatal("expected FOO to be bound")
	}

	if sym.Value != 42 || sym.Kind != SymEqu {
		t.Errorf("FOO = {%d, %s}, want {42, Equ}", sym.Value, sym.Kind)
	}

	if len(sink.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
}

func TestDispatchEQURedefinitionElsewhereIsEquAlreadyExists(t *testing.T) {
	dir, sink := newDirectives(t, 2)
	_ = dir.Symbols.Add(Symbol{Name: "FOO", Value: 42, Kind: SymEqu, File: "other.asm", Line: 9})

	dispatch(t, dir, "FOO EQU 43")

	found := false

	for _, d := range sink.Diagnostics {
		if d.Code == DiagEquAlreadyExists {
			found = true
		}
	}

	if !found {
		t.Errorf("expected EquAlreadyExists when EQU conflicts with a prior binding, got: %+v", sink.Diagnostics)
	}
}

func TestDispatchSETAllowsRedefinition(t *testing.T) {
	dir, sink := newDirectives(t, 1)

	dispatch(t, dir, "COUNT SET 1")
	dispatch(t, dir, "COUNT SET 2")

	sym, _ := dir.Symbols.Find("COUNT")
	if sym.Value != 2 {
		t.Errorf("COUNT = %d, want 2 after redefinition", sym.Value)
	}

	if len(sink.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
}

func TestDispatchSETAfterEQUIsRejected(t *testing.T) {
	dir, sink := newDirectives(t, 1)

	dispatch(t, dir, "FOO EQU 1")
	dispatch(t, dir, "FOO SET 2")

	found := false

	for _, d := range sink.Diagnostics {
		if d.Code == DiagAlreadyDefinedAsEqu {
			found = true
		}
	}

	if !found {
		t.Errorf("expected AlreadyDefinedAsEqu, got: %+v", sink.Diagnostics)
	}
}

func TestDispatchLabelBindsCurrentPC(t *testing.T) {
	dir, sink := newDirectives(t, 1)
	dir.Image.Org(0x100)

	dispatch(t, dir, "LOOP: NOP")

	sym, ok := dir.Symbols.Find("LOOP")
	if !ok {
		t.Fatal("expected LOOP to be bound")
	}

	if sym.Value != 0x100 || sym.Kind != SymLabel {
		t.Errorf("LOOP = {%#x, %s}, want {0x100, Label}", sym.Value, sym.Kind)
	}

	if len(sink.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
}

func TestDispatchPhasingErrorOnPass2Mismatch(t *testing.T) {
	dir, sink := newDirectives(t, 2)
	_ = dir.Symbols.Add(Symbol{Name: "LOOP", Value: 0x200, Kind: SymLabel})
	dir.Image.Org(0x100)

	dispatch(t, dir, "LOOP: NOP")

	found := false

	for _, d := range sink.Diagnostics {
		if d.Code == DiagPhasingError {
			found = true
		}
	}

	if !found {
		t.Errorf("expected a phasing error when pc disagrees with the pass-1 binding, got: %+v", sink.Diagnostics)
	}
}

func TestDispatchORGSetsCursor(t *testing.T) {
	dir, _ := newDirectives(t, 1)

	dispatch(t, dir, "\tORG 1000H")

	if dir.Image.PC != 0x1000 {
		t.Errorf("PC = %#x, want 0x1000", dir.Image.PC)
	}
}

func TestDispatchDSReservesWithoutWriting(t *testing.T) {
	dir, _ := newDirectives(t, 1)
	dir.Image.Org(0x100)

	result := dispatch(t, dir, "\tDS 10")

	if !result.IsDS || result.Reserved != 10 {
		t.Errorf("result = %+v, want IsDS with Reserved=10", result)
	}

	if dir.Image.PC != 0x10A {
		t.Errorf("PC = %#x, want 0x10A", dir.Image.PC)
	}

	if dir.Image.Binary() != nil {
		t.Error("DS alone should not mark the image as written")
	}
}

func TestDispatchDSNegativeCountOnlyFlaggedOnPass2(t *testing.T) {
	dir1, sink1 := newDirectives(t, 1)
	dispatch(t, dir1, "\tDS -1")

	for _, d := range sink1.Diagnostics {
		if d.Code == DiagNegativeValueOnDs {
			t.Error("pass 1 should not report NegativeValueOnDs")
		}
	}

	dir2, sink2 := newDirectives(t, 2)
	dispatch(t, dir2, "\tDS -1")

	found := false

	for _, d := range sink2.Diagnostics {
		if d.Code == DiagNegativeValueOnDs {
			found = true
		}
	}

	if !found {
		t.Errorf("expected NegativeValueOnDs on pass 2, got: %+v", sink2.Diagnostics)
	}
}

func TestDispatchDBBytesAndString(t *testing.T) {
	dir, _ := newDirectives(t, 1)

	result := dispatch(t, dir, "\tDB 1,2,'AB'")

	want := []byte{1, 2, 'A', 'B'}
	if len(result.Bytes) != len(want) {
		t.Fatalf("bytes = %v, want %v", result.Bytes, want)
	}

	for i := range want {
		if result.Bytes[i] != want[i] {
			t.Errorf("byte[%d] = %d, want %d", i, result.Bytes[i], want[i])
		}
	}
}

func TestDispatchDWPacksLittleEndian(t *testing.T) {
	dir, _ := newDirectives(t, 1)

	result := dispatch(t, dir, "\tDW 1234H")

	if len(result.Bytes) != 2 || result.Bytes[0] != 0x34 || result.Bytes[1] != 0x12 {
		t.Errorf("bytes = %v, want [0x34,0x12]", result.Bytes)
	}
}

func TestDispatchIfElseEndif(t *testing.T) {
	dir, sink := newDirectives(t, 1)

	dispatch(t, dir, "\tIF 0")
	result := dispatch(t, dir, "\tNOP")

	if len(result.Bytes) != 0 {
		t.Errorf("expected the NOP inside a false IF to be suppressed, got %v", result.Bytes)
	}

	dispatch(t, dir, "\tELSE")
	result = dispatch(t, dir, "\tNOP")

	if len(result.Bytes) != 1 {
		t.Errorf("expected the NOP inside the ELSE branch to be emitted, got %v", result.Bytes)
	}

	dispatch(t, dir, "\tENDIF")
	result = dispatch(t, dir, "\tNOP")

	if len(result.Bytes) != 1 {
		t.Errorf("expected a NOP after ENDIF to be emitted, got %v", result.Bytes)
	}

	if len(sink.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
}

func TestDispatchEndifWithoutIfIsUnderflow(t *testing.T) {
	dir, sink := newDirectives(t, 1)

	dispatch(t, dir, "\tENDIF")

	if len(sink.Diagnostics) != 1 || sink.Diagnostics[0].Code != DiagIfNestingUnderflow {
		t.Errorf("expected one IfNestingUnderflow diagnostic, got: %+v", sink.Diagnostics)
	}
}

func TestDispatchMacroCaptureAndInvoke(t *testing.T) {
	dir, sink := newDirectives(t, 1)

	dispatch(t, dir, "GREET MACRO")
	dispatch(t, dir, "\tMVI A,1")
	dispatch(t, dir, "\tENDM")

	if !dir.Macros.Has("GREET") {
		t.Fatal("expected GREET to be captured")
	}

	result := dispatch(t, dir, "\tGREET")
	if result.Ended {
		t.Error("invoking a macro should not end assembly")
	}

	if dir.Includes.AtRoot() {
		t.Error("expected the macro invocation to push a replay level onto the include stack")
	}

	text, ok := dir.Includes.ReadLine()
	if !ok || !strings.Contains(text, "GREET start") {
		t.Errorf("expected the replayed body to begin with the GREET start sentinel, got %q", text)
	}

	if len(sink.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %+v", sink.Diagnostics)
	}
}

// symtab.go implements the symbol table: insertion, lookup, typed entries and the iteration order
// the listing trailer depends on.

package asm

// SymbolKind distinguishes how a symbol came to be defined.
type SymbolKind uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type SymbolKind -output symbolkind_string.go

const (
	// SymLabel is bound by appearing in the label column of a line and is fixed to that line's pc.
	SymLabel SymbolKind = iota
	// SymName is reserved for predeclared symbols; the assembler itself never creates one.
	SymName
	// SymEqu is bound by EQU and is immutable once defined.
	SymEqu
	// SymSet is bound by SET and may be redefined freely.
	SymSet
)

// Symbol is a named entity in the symbol table.
type Symbol struct {
	Name  string
	Value uint16
	Kind  SymbolKind
	File  string // Defining source file.
	Line  int    // Defining source line.
}

// SymbolTable maps symbol names to their definitions. Lookup is case-sensitive and exact. The
// table also tracks insertion order, since the listing's symbol-table trailer and the include
// search path both iterate in the order things were first seen, not sorted order.
type SymbolTable struct {
	order []string
	table map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{table: make(map[string]*Symbol)}
}

// Find looks up a symbol by exact, case-sensitive name. It never produces a diagnostic; a missing
// symbol is reported by the caller, who has the source position Find does not.
func (t *SymbolTable) Find(name string) (*Symbol, bool) {
	sym, ok := t.table[name]
	return sym, ok
}

// Add inserts a new symbol. It fails with DiagDuplicateLabel if the name is already bound; callers
// that need to update an existing binding (SET re-assignment, pass-2 phasing resync) use Update
// instead.
func (t *SymbolTable) Add(sym Symbol) error {
	if _, ok := t.table[sym.Name]; ok {
		return &Diagnostic{
			File: sym.File, Line: sym.Line, Code: DiagDuplicateLabel,
			Message: "symbol already defined", Context: sym.Name,
		}
	}

	cp := sym
	t.table[sym.Name] = &cp
	t.order = append(t.order, sym.Name)

	return nil
}

// Update overwrites the value (and, if changed, the kind) of an existing symbol in place. It
// panics if the symbol is not already present -- callers must Find or Add first, matching the
// pattern used throughout the directive engine.
func (t *SymbolTable) Update(name string, value uint16, kind SymbolKind) {
	sym, ok := t.table[name]
	if !ok {
		panic("asm: update of undefined symbol: " + name)
	}

	sym.Value = value
	sym.Kind = kind
}

// Names returns every symbol name in insertion order.
func (t *SymbolTable) Names() []string {
	return append([]string(nil), t.order...)
}

// Count returns the number of symbols in the table.
func (t *SymbolTable) Count() int {
	return len(t.order)
}

// diag.go declares the catalogue of diagnostics the assembler can raise and the interface the
// core reports them through. The core never decides how a diagnostic is printed; it only builds
// the record and hands it to a Sink. Formatting and routing -- colour, file destinations, whether
// a terminal is attached -- belong to the external collaborator. See internal/diag for the
// default implementation.

package asm

import "fmt"

// DiagCode numbers a diagnostic the way the reference assembler's err_code.h/war_code.h do. The
// names are ours; the numbering comment cites the original mnemonic for anyone cross-referencing
// the C sources.
type DiagCode int

//go:generate go run golang.org/x/tools/cmd/stringer -type DiagCode -output diagcode_string.go

const (
	DiagLabelNotFound          DiagCode = iota // EC_LNF
	DiagDuplicateLabel                         // EC_DL
	DiagCantFindKeyword                        // EC_CNFK
	DiagBadRegister                            // EC_BDR / EC_BSR
	DiagIfNestingOverflow                      // EC_INO
	DiagIfNestingUnderflow                     // EC_INU
	DiagNotQuotedCharacter                     // EC_NQC
	DiagMissingField                           // EC_MF
	DiagBadDataEncoding                        // EC_BDE
	DiagBadBinaryDigit                         // EC_BBD
	DiagBadOctalDigit                          // EC_BOC
	DiagBadDecimalDigit                        // EC_BDD
	DiagBadHexDigit                            // EC_BHD
	DiagOperandOverRange                       // EC_OOR
	DiagAlreadyDefinedAsName                   // EC_ADAN
	DiagProgramCounterOverRange                // EC_PCOR
	DiagKeywordTooLong                         // EC_KTL
	DiagEquationTooLong                        // EC_ETL
	DiagEquAlreadyExists                       // EC_EAE
	DiagAlreadyDefinedAsEqu                    // EC_ADAE
	DiagStringCannotBeEvaluated                // EC_SNS / EC_SCNBE
	DiagSourceLineTooLong                      // EC_SLTL
	DiagIncludeOverflow                        // EC_IOF
	DiagNoStartingQuote                        // EC_NSQ
	DiagNoEndingQuote                          // EC_NEQ
	DiagCantOpenIncludeFile                    // EC_COIF
	DiagUnmatchedParen                         // EC_EEP / EC_NMEP
	DiagRegisterNotAllowed                     // EC_RNA
	DiagCantOpenInputFile                      // EC_COINF
	DiagStackPushOverflow                      // EC_EPSPOF
	DiagStackRemoveUnderflow                   // EC_EPSRUF
	DiagStackPopUnderflow                      // EC_EPSPUF
	DiagNegativeValueOnDs                      // EC_NVDS
	DiagPhasingError                           // EC_PE
	DiagMacroHasNoName                         // EC_MHNN
	DiagMissingQuote                           // EC_MQ / WC_MQ (warning)
	DiagExpressionValueOverRange               // EC_EVOR

	// Warnings only; no error-side counterpart in err_code.h.
	DiagEndInsideIncludeFile      // WC_EDFIIF
	DiagLabelBadFirstCharacter    // WC_LNBFC
	DiagSpecialCommandNotSupport  // WC_SCNS
	DiagLabelTooLong              // WC_LTL
	DiagInvalidLabelCharacter     // WC_ILNC
	DiagSymbolAlreadyUsedAsLabel  // WC_SAUAL
	DiagMacroParametersNotSupport // WC_MPNS

	// Reserved but never emitted -- see DESIGN.md Open Questions. Kept so callers
	// can name it in a type switch without the identifier being invented out of thin air.
	DiagMRegisterCantBeUsedBothAsDstAndSrc // EC_MRCBUBDS
)

// Severity distinguishes a diagnostic that aborts assembly of the current statement from one that
// is merely informative.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

// warningCodes lists every DiagCode that is a warning. Anything not listed is an error.
var warningCodes = map[DiagCode]bool{
	DiagLabelTooLong:              true,
	DiagMissingQuote:              true,
	DiagSpecialCommandNotSupport:  true,
	DiagEndInsideIncludeFile:      true,
	DiagSymbolAlreadyUsedAsLabel:  true,
	DiagMacroParametersNotSupport: true,
	DiagLabelBadFirstCharacter:    true,
	DiagInvalidLabelCharacter:     true,
}

// Severity reports whether a code is a warning or an error.
func (c DiagCode) Severity() Severity {
	if warningCodes[c] {
		return SeverityWarning
	}

	return SeverityError
}

// Diagnostic is a single error or warning record, addressed to a source location.
type Diagnostic struct {
	File    string // Defining source file; empty when the source is not a file.
	Line    int    // One-based source line number.
	Code    DiagCode
	Message string
	Context string // Optional: the offending character, string or integer, pre-formatted.
}

func (d *Diagnostic) Error() string {
	if d.Context == "" {
		return fmt.Sprintf("%s:%d: %s: %s", d.File, d.Line, d.Code, d.Message)
	}

	return fmt.Sprintf("%s:%d: %s: %s (%s)", d.File, d.Line, d.Code, d.Message, d.Context)
}

// Is allows errors.Is(err, SomeDiagnostic) to match on code alone.
func (d *Diagnostic) Is(target error) bool {
	other, ok := target.(*Diagnostic)
	if !ok {
		return false
	}

	return other.Code == d.Code
}

// Sink is the external collaborator that receives diagnostic records as they are produced. A Sink
// implementation decides how (or whether) to print, count or route them; the core only calls
// Report at the point of detection, with no control over presentation.
type Sink interface {
	// Report delivers one diagnostic. Implementations must not block indefinitely; the assembler
	// calls Report synchronously from the pass that detected the condition.
	Report(Diagnostic)
}

// DiscardSink is a Sink that drops every diagnostic. It is useful for tests that only care about
// generated bytes.
type DiscardSink struct{}

func (DiscardSink) Report(Diagnostic) {}

// CollectingSink is a Sink that appends every diagnostic it receives, preserving order. It is used
// by the pass driver's own tests and is a reasonable Sink for callers who want to inspect results
// after a run rather than stream them.
type CollectingSink struct {
	Diagnostics []Diagnostic
}

func (s *CollectingSink) Report(d Diagnostic) {
	s.Diagnostics = append(s.Diagnostics, d)
}

// HasErrors reports whether any collected diagnostic is an error (as opposed to a warning).
func (s *CollectingSink) HasErrors() bool {
	for _, d := range s.Diagnostics {
		if d.Code.Severity() == SeverityError {
			return true
		}
	}

	return false
}

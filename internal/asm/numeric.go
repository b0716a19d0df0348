// numeric.go implements the numeric literal scanner: base-tagged integers with a trailing
// B/Q/D/H suffix, an optional unary sign, and single-quoted character literals.

package asm

import (
	"fmt"
	"strings"
)

// ScanNumber parses a leading signed, base-tagged integer literal from text and returns its
// 16-bit value, the unconsumed remainder and any diagnostic. A unary + or - immediately before
// the literal is consumed; whitespace between the sign and the literal is allowed. Absent a
// trailing B/Q/D/H suffix (case-insensitive), the literal is base 10. Bad digits for the chosen
// base stop accumulation at the fault and are reported with the offending character.
func ScanNumber(text, file string, line int) (value uint16, rest string, err error) {
	s := text
	neg := false

	for {
		trimmed := strings.TrimLeft(s, " \t")
		if len(trimmed) == 0 || (trimmed[0] != '+' && trimmed[0] != '-') {
			s = trimmed
			break
		}

		if trimmed[0] == '-' {
			neg = !neg
		}

		s = trimmed[1:]
	}

	if len(s) == 0 {
		return 0, s, &Diagnostic{File: file, Line: line, Code: DiagMissingField, Message: "expected a literal"}
	}

	i := 0
	for i < len(s) && isAlnum(s[i]) {
		i++
	}

	run := s[:i]
	rest = s[i:]

	if run == "" {
		return 0, rest, &Diagnostic{File: file, Line: line, Code: DiagMissingField, Message: "expected a numeric literal"}
	}

	base, digits := 10, run

	if last := run[len(run)-1]; len(run) > 1 {
		if b, ok := suffixBase(last); ok {
			base, digits = b, run[:len(run)-1]
		}
	}

	value, err = parseDigits(digits, base, file, line)
	if neg {
		value = -value
	}

	return value, rest, err
}

// ScanChar parses a leading single-quoted character literal and returns the byte value of the
// character following the opening quote. A missing closing quote is reported as a warning
// (DiagMissingQuote); the value is still returned since the reference assembler does not abort.
func ScanChar(text, file string, line int) (value uint16, rest string, err error) {
	if len(text) == 0 || text[0] != '\'' {
		return 0, text, &Diagnostic{File: file, Line: line, Code: DiagNoStartingQuote, Message: "expected opening quote"}
	}

	if len(text) < 2 {
		return 0, "", &Diagnostic{File: file, Line: line, Code: DiagNoEndingQuote, Message: "unterminated character literal"}
	}

	value = uint16(text[1])
	rest = text[2:]

	if strings.HasPrefix(rest, "'") {
		rest = rest[1:]
		return value, rest, nil
	}

	return value, rest, &Diagnostic{
		File: file, Line: line, Code: DiagMissingQuote, Message: "missing closing quote",
		Context: fmt.Sprintf("%q", text),
	}
}

func suffixBase(c byte) (int, bool) {
	switch c {
	case 'b', 'B':
		return 2, true
	case 'q', 'Q':
		return 8, true
	case 'd', 'D':
		return 10, true
	case 'h', 'H':
		return 16, true
	default:
		return 0, false
	}
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// parseDigits accumulates digits in the given base, stopping at the first invalid digit. The
// value accumulated up to (but not including) the fault is returned along with a diagnostic
// naming the offending character.
func parseDigits(digits string, base int, file string, line int) (uint16, error) {
	var (
		value uint16
		code  DiagCode
	)

	switch base {
	case 2:
		code = DiagBadBinaryDigit
	case 8:
		code = DiagBadOctalDigit
	case 16:
		code = DiagBadHexDigit
	default:
		code = DiagBadDecimalDigit
	}

	if digits == "" {
		return 0, &Diagnostic{File: file, Line: line, Code: DiagMissingField, Message: "expected digits"}
	}

	for i := 0; i < len(digits); i++ {
		d, ok := digitValue(digits[i])
		if !ok || d >= base {
			return value, &Diagnostic{
				File: file, Line: line, Code: code, Message: "invalid digit",
				Context: string(digits[i]),
			}
		}

		value = value*uint16(base) + uint16(d)
	}

	return value, nil
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

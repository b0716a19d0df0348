// opcode.go implements the table of Intel 8080 mnemonics and the encoder that turns a mnemonic
// plus its operand text into one to three output bytes.

package asm

import "strings"

// instClass names the operand shape a mnemonic requires, matching the instruction classes named
// in the reference assembler's opcode table.
type instClass int

const (
	classImplicit instClass = iota
	classRegReg
	classRegImm8
	classImm16Pair
	classPairOnly
	classArithReg
	classArithImm
	classAddr16
	classJump
	classCall
	classCondRet
	classIO
	classRST
)

// instSpec is one row of the opcode table: the operand class and the base opcode byte. For the
// conditional classes (jump/call/condret) base is the cc==0 (NZ) form and the condition code is
// added as cc<<3.
type instSpec struct {
	class instClass
	base  byte
}

// conditionCodes orders the eight 8080 condition mnemonics the way cc is encoded in bits 5:3.
var conditionCodes = []string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// opcodeTable maps every uppercase 8080 mnemonic (excluding the Jcc/Ccc/Rcc families, built
// separately in init) to its instSpec.
var opcodeTable = map[string]instSpec{
	"NOP":  {classImplicit, 0x00},
	"RLC":  {classImplicit, 0x07},
	"RRC":  {classImplicit, 0x0F},
	"RAL":  {classImplicit, 0x17},
	"RAR":  {classImplicit, 0x1F},
	"DAA":  {classImplicit, 0x27},
	"CMA":  {classImplicit, 0x2F},
	"STC":  {classImplicit, 0x37},
	"CMC":  {classImplicit, 0x3F},
	"HLT":  {classImplicit, 0x76},
	"RET":  {classImplicit, 0xC9},
	"XCHG": {classImplicit, 0xEB},
	"XTHL": {classImplicit, 0xE3},
	"SPHL": {classImplicit, 0xF9},
	"PCHL": {classImplicit, 0xE9},
	"DI":   {classImplicit, 0xF3},
	"EI":   {classImplicit, 0xFB},

	"MOV": {classRegReg, 0x40},

	"MVI": {classRegImm8, 0x06},

	"LXI": {classImm16Pair, 0x01},

	"INX":  {classPairOnly, 0x03},
	"DCX":  {classPairOnly, 0x0B},
	"DAD":  {classPairOnly, 0x09},
	"PUSH": {classPairOnly, 0xC5},
	"POP":  {classPairOnly, 0xC1},
	"LDAX": {classPairOnly, 0x0A},
	"STAX": {classPairOnly, 0x02},

	"ADD": {classArithReg, 0x80},
	"ADC": {classArithReg, 0x88},
	"SUB": {classArithReg, 0x90},
	"SBB": {classArithReg, 0x98},
	"ANA": {classArithReg, 0xA0},
	"XRA": {classArithReg, 0xA8},
	"ORA": {classArithReg, 0xB0},
	"CMP": {classArithReg, 0xB8},

	"ADI": {classArithImm, 0xC6},
	"ACI": {classArithImm, 0xCE},
	"SUI": {classArithImm, 0xD6},
	"SBI": {classArithImm, 0xDE},
	"ANI": {classArithImm, 0xE6},
	"XRI": {classArithImm, 0xEE},
	"ORI": {classArithImm, 0xF6},
	"CPI": {classArithImm, 0xFE},

	"LDA":  {classAddr16, 0x3A},
	"STA":  {classAddr16, 0x32},
	"LHLD": {classAddr16, 0x2A},
	"SHLD": {classAddr16, 0x22},

	"JMP": {classJump, 0xC3},
	"CALL": {classCall, 0xCD},

	"IN":  {classIO, 0xDB},
	"OUT": {classIO, 0xD3},

	"RST": {classRST, 0xC7},
}

func init() {
	for cc, name := range conditionCodes {
		opcodeTable["J"+name] = instSpec{classJump, 0xC2 + byte(cc)<<3}
		opcodeTable["C"+name] = instSpec{classCall, 0xC4 + byte(cc)<<3}
		opcodeTable["R"+name] = instSpec{classCondRet, 0xC0 + byte(cc)<<3}
	}
}

// Encoded is the output of encoding one instruction: up to four bytes and the count actually
// used, matching the reference assembler's b1..b4/data_size pair.
type Encoded struct {
	Bytes    [4]byte
	DataSize int
}

// Encoder turns a mnemonic and its comma-separated operand fields into bytes, using eval to
// resolve expression operands (so forward references behave the same in pass 1 and pass 2).
type Encoder struct {
	Eval func(expr string) uint16
	Sink Sink
	File string
	Line int
}

// Encode looks up mnemonic in the opcode table and dispatches to the matching class handler. A
// mnemonic not present is not this encoder's concern to diagnose -- the directive engine tries a
// macro invocation first and only reports CantFindKeyword if that also fails.
func (enc *Encoder) Encode(mnemonic string, operands []string) (Encoded, bool, error) {
	spec, ok := opcodeTable[strings.ToUpper(mnemonic)]
	if !ok {
		return Encoded{}, false, nil
	}

	var (
		out Encoded
		err error
	)

	switch spec.class {
	case classImplicit, classCondRet:
		out.Bytes[0] = spec.base
		out.DataSize = 1
	case classRegReg:
		out, err = enc.encodeRegReg(spec, operands)
	case classRegImm8:
		out, err = enc.encodeRegImm8(spec, operands)
	case classImm16Pair:
		out, err = enc.encodeImm16Pair(spec, operands)
	case classPairOnly:
		out, err = enc.encodePairOnly(mnemonic, spec, operands)
	case classArithReg:
		out, err = enc.encodeArithReg(spec, operands)
	case classArithImm:
		out, err = enc.encodeArithImm(spec, operands)
	case classAddr16, classJump, classCall:
		out, err = enc.encodeAddr16(spec, operands)
	case classIO:
		out, err = enc.encodeIO(spec, operands)
	case classRST:
		out, err = enc.encodeRST(spec, operands)
	}

	return out, true, err
}

func (enc *Encoder) encodeRegReg(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 2 {
		return Encoded{}, enc.diag(DiagMissingField, "MOV requires two registers", "")
	}

	dst, err := destReg(operands[0])
	if err != nil {
		return Encoded{}, enc.wrap(err)
	}

	src, err := srcReg(operands[1])
	if err != nil {
		return Encoded{}, enc.wrap(err)
	}

	b := spec.base | dst | src

	return Encoded{Bytes: [4]byte{b}, DataSize: 1}, nil
}

func (enc *Encoder) encodeRegImm8(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 2 {
		return Encoded{}, enc.diag(DiagMissingField, "MVI requires a register and an expression", "")
	}

	dst, err := destReg(operands[0])
	if err != nil {
		return Encoded{}, enc.wrap(err)
	}

	imm := enc.eval(operands[1])
	if imm > 0xFF {
		enc.diag(DiagOperandOverRange, "operand does not fit in 8 bits", operands[1])
	}

	return Encoded{Bytes: [4]byte{spec.base | dst, byte(imm)}, DataSize: 2}, nil
}

func (enc *Encoder) encodeImm16Pair(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 2 {
		return Encoded{}, enc.diag(DiagMissingField, "LXI requires a pair and an expression", "")
	}

	pair, err := pair16(operands[0], pairBCDEHLSP)
	if err != nil {
		return Encoded{}, enc.wrap(err)
	}

	imm := enc.eval(operands[1])

	return Encoded{Bytes: [4]byte{spec.base | pair, byte(imm), byte(imm >> 8)}, DataSize: 3}, nil
}

func (enc *Encoder) encodePairOnly(mnemonic string, spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 1 {
		return Encoded{}, enc.diag(DiagMissingField, "expected one register pair", "")
	}

	mask := pairBCDEHLSP

	switch strings.ToUpper(mnemonic) {
	case "PUSH", "POP":
		mask = pairBCDEHLPSW
	case "LDAX", "STAX":
		mask = pairBCDE
	}

	pair, err := pair16(operands[0], mask)
	if err != nil {
		return Encoded{}, enc.wrap(err)
	}

	return Encoded{Bytes: [4]byte{spec.base | pair}, DataSize: 1}, nil
}

func (enc *Encoder) encodeArithReg(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 1 {
		return Encoded{}, enc.diag(DiagMissingField, "expected a source register", "")
	}

	src, err := srcReg(operands[0])
	if err != nil {
		return Encoded{}, enc.wrap(err)
	}

	return Encoded{Bytes: [4]byte{spec.base | src}, DataSize: 1}, nil
}

func (enc *Encoder) encodeArithImm(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 1 {
		return Encoded{}, enc.diag(DiagMissingField, "expected an 8-bit expression", "")
	}

	imm := enc.eval(operands[0])
	if imm > 0xFF {
		enc.diag(DiagOperandOverRange, "operand does not fit in 8 bits", operands[0])
	}

	return Encoded{Bytes: [4]byte{spec.base, byte(imm)}, DataSize: 2}, nil
}

func (enc *Encoder) encodeAddr16(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 1 {
		return Encoded{}, enc.diag(DiagMissingField, "expected a 16-bit expression", "")
	}

	imm := enc.eval(operands[0])

	return Encoded{Bytes: [4]byte{spec.base, byte(imm), byte(imm >> 8)}, DataSize: 3}, nil
}

func (enc *Encoder) encodeIO(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 1 {
		return Encoded{}, enc.diag(DiagMissingField, "expected an 8-bit port expression", "")
	}

	imm := enc.eval(operands[0])
	if imm > 0xFF {
		enc.diag(DiagOperandOverRange, "port does not fit in 8 bits", operands[0])
	}

	return Encoded{Bytes: [4]byte{spec.base, byte(imm)}, DataSize: 2}, nil
}

func (enc *Encoder) encodeRST(spec instSpec, operands []string) (Encoded, error) {
	if len(operands) != 1 {
		return Encoded{}, enc.diag(DiagMissingField, "expected a restart number 0-7", "")
	}

	imm := enc.eval(operands[0])
	if imm > 7 {
		enc.diag(DiagOperandOverRange, "restart number out of range", operands[0])
		imm &= 0x7
	}

	return Encoded{Bytes: [4]byte{spec.base | byte(imm)<<3}, DataSize: 1}, nil
}

func (enc *Encoder) eval(expr string) uint16 {
	if enc.Eval == nil {
		return 0
	}

	return enc.Eval(expr)
}

func (enc *Encoder) diag(code DiagCode, msg, context string) error {
	d := &Diagnostic{File: enc.File, Line: enc.Line, Code: code, Message: msg, Context: context}
	if enc.Sink != nil {
		enc.Sink.Report(*d)
	}

	return d
}

func (enc *Encoder) wrap(err error) error {
	if d, ok := err.(*Diagnostic); ok {
		d.File, d.Line = enc.File, enc.Line

		if enc.Sink != nil {
			enc.Sink.Report(*d)
		}
	}

	return err
}

// destReg maps a register name to its 3-bit code in bits 5:3.
func destReg(s string) (byte, error) {
	r, err := regCode(s)
	return r << 3, err
}

// srcReg maps a register name to its 3-bit code in bits 2:0.
func srcReg(s string) (byte, error) {
	return regCode(s)
}

func regCode(s string) (byte, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B":
		return 0, nil
	case "C":
		return 1, nil
	case "D":
		return 2, nil
	case "E":
		return 3, nil
	case "H":
		return 4, nil
	case "L":
		return 5, nil
	case "M":
		return 6, nil
	case "A":
		return 7, nil
	default:
		return 0, &Diagnostic{Code: DiagBadRegister, Message: "unrecognised register", Context: s}
	}
}

// pairMask is a bitset over the four register-pair offsets (0x00, 0x10, 0x20, 0x30), used to
// reject pairs the instruction does not accept.
type pairMask uint8

const (
	pairBC pairMask = 1 << iota
	pairDE
	pairHL
	pairSP
	pairPSW
)

const (
	pairBCDEHLSP  = pairBC | pairDE | pairHL | pairSP
	pairBCDEHLPSW = pairBC | pairDE | pairHL | pairPSW
	pairBCDE      = pairBC | pairDE
)

// pair16 maps a register-pair operand to its 0x00/0x10/0x20/0x30 offset, rejecting pairs outside
// allowed. SP and PSW share the 0x30 offset but are distinct bits in allowed, since LXI/INX/DCX/DAD
// accept only SP there while PUSH/POP accept only PSW.
func pair16(s string, allowed pairMask) (byte, error) {
	name := strings.ToUpper(strings.TrimSpace(s))

	var (
		offset byte
		mask   pairMask
	)

	switch name {
	case "B", "BC":
		offset, mask = 0x00, pairBC
	case "D", "DE":
		offset, mask = 0x10, pairDE
	case "H", "HL":
		offset, mask = 0x20, pairHL
	case "SP":
		offset, mask = 0x30, pairSP
	case "PSW":
		offset, mask = 0x30, pairPSW
	default:
		return 0, &Diagnostic{Code: DiagBadRegister, Message: "unrecognised register pair", Context: s}
	}

	if allowed&mask == 0 {
		return 0, &Diagnostic{Code: DiagRegisterNotAllowed, Message: "register pair not allowed here", Context: s}
	}

	return offset, nil
}

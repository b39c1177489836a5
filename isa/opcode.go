package isa

import (
	"fmt"
	"strings"
)

const (
	MEMORY_SIZE = 0x10000 // Words of addressable memory.
	REG_COUNT   = 8       // General purpose registers.
)

// CodeOp is a basic opcode, held in the low 4 bits of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_NON_BASIC = CodeOp(0)  // NB
	OP_SET       = CodeOp(1)  // SET
	OP_ADD       = CodeOp(2)  // ADD
	OP_SUB       = CodeOp(3)  // SUB
	OP_MUL       = CodeOp(4)  // MUL
	OP_DIV       = CodeOp(5)  // DIV
	OP_MOD       = CodeOp(6)  // MOD
	OP_SHL       = CodeOp(7)  // SHL
	OP_SHR       = CodeOp(8)  // SHR
	OP_AND       = CodeOp(9)  // AND
	OP_BOR       = CodeOp(10) // BOR
	OP_XOR       = CodeOp(11) // XOR
	OP_IFE       = CodeOp(12) // IFE
	OP_IFN       = CodeOp(13) // IFN
	OP_IFG       = CodeOp(14) // IFG
	OP_IFB       = CodeOp(15) // IFB
)

// CodeExtOp is an extended opcode, held in the A field of a non-basic
// instruction.
type CodeExtOp int

//go:generate go tool stringer -linecomment -type=CodeExtOp
const (
	EXT_OP_JSR = CodeExtOp(1) // JSR
	EXT_OP_SYS = CodeExtOp(2) // SYS
)

// CodeReg is a general purpose register index.
type CodeReg int

//go:generate go tool stringer -linecomment -type=CodeReg
const (
	REG_A = CodeReg(0) // A
	REG_B = CodeReg(1) // B
	REG_C = CodeReg(2) // C
	REG_X = CodeReg(3) // X
	REG_Y = CodeReg(4) // Y
	REG_Z = CodeReg(5) // Z
	REG_I = CodeReg(6) // I
	REG_J = CodeReg(7) // J
)

// regNames is the register letter order of the encoding.
const regNames = "abcxyzij"

// LookupReg returns the register for a single letter name, in either case.
func LookupReg(name string) (reg CodeReg, ok bool) {
	if len(name) != 1 {
		return
	}

	n := strings.IndexByte(regNames, name[0]|0x20)
	if n < 0 {
		return
	}

	reg = CodeReg(n)
	ok = true
	return
}

// CodeValue is a 6-bit operand code.
type CodeValue int

// Operand code partition. These boundaries are shared by the assembler,
// the CPU core and the disassembler.
const (
	VAL_REG_BASE     = CodeValue(0x00) // A..J
	VAL_REG_TOP      = CodeValue(0x07)
	VAL_REF_BASE     = CodeValue(0x08) // [A]..[J]
	VAL_REF_TOP      = CodeValue(0x0f)
	VAL_REF_NW_BASE  = CodeValue(0x10) // [next word + A]..[next word + J]
	VAL_REF_NW_TOP   = CodeValue(0x17)
	VAL_POP          = CodeValue(0x18) // [SP++]
	VAL_PEEK         = CodeValue(0x19) // [SP]
	VAL_PUSH         = CodeValue(0x1a) // [--SP]
	VAL_SP           = CodeValue(0x1b)
	VAL_PC           = CodeValue(0x1c)
	VAL_O            = CodeValue(0x1d)
	VAL_REF_NW       = CodeValue(0x1e) // [next word]
	VAL_NW           = CodeValue(0x1f) // next word
	VAL_LITERAL_BASE = CodeValue(0x20) // literal 0x00..0x1f
	VAL_LITERAL_TOP  = CodeValue(0x3f)

	VAL_MASK    = 0x3f
	LITERAL_MAX = int(VAL_LITERAL_TOP - VAL_LITERAL_BASE)
)

// MakeReg returns the direct register operand.
func MakeReg(reg CodeReg) CodeValue {
	return VAL_REG_BASE + CodeValue(reg)
}

// MakeRef returns the register-indirect operand.
func MakeRef(reg CodeReg) CodeValue {
	return VAL_REF_BASE + CodeValue(reg)
}

// MakeRefNextWord returns the [next word + register] operand.
func MakeRefNextWord(reg CodeReg) CodeValue {
	return VAL_REF_NW_BASE + CodeValue(reg)
}

// MakeLiteral returns the embedded literal operand for 0..31.
func MakeLiteral(value uint16) CodeValue {
	return VAL_LITERAL_BASE + CodeValue(value&0x1f)
}

// HasNextWord is true if the operand consumes a trailing word.
func (v CodeValue) HasNextWord() bool {
	return (v >= VAL_REF_NW_BASE && v <= VAL_REF_NW_TOP) ||
		v == VAL_REF_NW || v == VAL_NW
}

// Reg returns the register of a register, [register] or
// [next word + register] operand.
func (v CodeValue) Reg() (reg CodeReg, ok bool) {
	switch {
	case v >= VAL_REG_BASE && v <= VAL_REG_TOP:
		reg = CodeReg(v - VAL_REG_BASE)
	case v >= VAL_REF_BASE && v <= VAL_REF_TOP:
		reg = CodeReg(v - VAL_REF_BASE)
	case v >= VAL_REF_NW_BASE && v <= VAL_REF_NW_TOP:
		reg = CodeReg(v - VAL_REF_NW_BASE)
	default:
		return
	}
	ok = true
	return
}

// Literal returns the embedded literal value of the operand.
func (v CodeValue) Literal() (value uint16, ok bool) {
	if v < VAL_LITERAL_BASE || v > VAL_LITERAL_TOP {
		return
	}

	return uint16(v - VAL_LITERAL_BASE), true
}

// Format returns the assembly text of the operand, using nextWord
// for the trailing word if the operand has one.
func (v CodeValue) Format(nextWord uint16) string {
	reg, _ := v.Reg()
	switch {
	case v >= VAL_REG_BASE && v <= VAL_REG_TOP:
		return reg.String()
	case v >= VAL_REF_BASE && v <= VAL_REF_TOP:
		return fmt.Sprintf("[%v]", reg)
	case v >= VAL_REF_NW_BASE && v <= VAL_REF_NW_TOP:
		return fmt.Sprintf("[0x%x+%v]", nextWord, reg)
	case v == VAL_POP:
		return "POP"
	case v == VAL_PEEK:
		return "PEEK"
	case v == VAL_PUSH:
		return "PUSH"
	case v == VAL_SP:
		return "SP"
	case v == VAL_PC:
		return "PC"
	case v == VAL_O:
		return "O"
	case v == VAL_REF_NW:
		return fmt.Sprintf("[0x%x]", nextWord)
	case v == VAL_NW:
		return fmt.Sprintf("0x%x", nextWord)
	}

	literal, _ := v.Literal()
	return fmt.Sprintf("0x%x", literal)
}

// String returns the operand text with a placeholder for trailing words.
func (v CodeValue) String() string {
	if v.HasNextWord() {
		return strings.ReplaceAll(v.Format(0), "0x0", "NW")
	}
	return v.Format(0)
}

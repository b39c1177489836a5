package isa

import (
	"fmt"
	"strings"
)

// Code represents a single instruction word with its trailing words.
type Code struct {
	Word      uint16
	NextWords []uint16
}

// MakeCode creates a basic instruction.
func MakeCode(op CodeOp, a, b CodeValue, nws ...uint16) Code {
	return Code{
		Word:      (uint16(op) & 0xf) | ((uint16(a) & VAL_MASK) << 4) | ((uint16(b) & VAL_MASK) << 10),
		NextWords: nws,
	}
}

// MakeCodeExt creates an extended (non-basic) instruction. The extended
// opcode is carried in the A field, the sole operand in the B field.
func MakeCodeExt(op CodeExtOp, b CodeValue, nws ...uint16) Code {
	return MakeCode(OP_NON_BASIC, CodeValue(op), b, nws...)
}

// Op returns the basic opcode of the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp(code.Word & 0xf)
}

// Decode returns the opcode and the two operand codes.
func (code Code) Decode() (op CodeOp, a, b CodeValue) {
	word := code.Word
	op = CodeOp(word & 0xf)
	a = CodeValue((word >> 4) & VAL_MASK)
	b = CodeValue((word >> 10) & VAL_MASK)
	return
}

// ExtDecode returns the extended opcode and the operand of a non-basic
// instruction.
func (code Code) ExtDecode() (op CodeExtOp, b CodeValue) {
	_, a, b := code.Decode()
	op = CodeExtOp(a)
	return
}

// NextWordNeed returns the number of trailing words the instruction needs.
func (code Code) NextWordNeed() (need int) {
	op, a, b := code.Decode()
	if op != OP_NON_BASIC && a.HasNextWord() {
		need++
	}
	if b.HasNextWord() {
		need++
	}
	return
}

// Words returns the instruction as it is laid out in memory.
func (code Code) Words() (words []uint16) {
	words = append(words, code.Word)
	words = append(words, code.NextWords...)
	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	nws := code.NextWords
	next := func(v CodeValue) (nw uint16) {
		if v.HasNextWord() && len(nws) > 0 {
			nw = nws[0]
			nws = nws[1:]
		}
		return
	}

	op, a, b := code.Decode()
	if op == OP_NON_BASIC {
		ext, b := code.ExtDecode()
		return fmt.Sprintf("%v %v", ext, b.Format(next(b)))
	}

	args := []string{a.Format(next(a)), b.Format(next(b))}
	return fmt.Sprintf("%v %v", op, strings.Join(args, ", "))
}

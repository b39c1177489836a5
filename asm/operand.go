package asm

import (
	"strconv"
	"strings"

	"github.com/ezrec/dcpu16/isa"
)

// relativePrefix marks a label reference as a displacement.
const relativePrefix = "rel:"

// Operand is a parsed instruction operand.
type Operand struct {
	Value    isa.CodeValue
	NextWord uint16 // Trailing word, if Value.HasNextWord()
	Label    string // Label to patch into the trailing word.
	Relative bool   // Label is patched as a displacement.
}

// parseLiteral parses a hexadecimal (0x prefix) or decimal number.
// ok is false if the token is not a number at all.
func parseLiteral(token string) (value uint16, ok bool, err error) {
	text := strings.TrimSpace(token)
	base := 10
	if len(text) > 2 && (text[:2] == "0x" || text[:2] == "0X") {
		text = text[2:]
		base = 16
	}

	if len(text) == 0 {
		return
	}
	for _, c := range text {
		if base == 10 && (c < '0' || c > '9') {
			return
		}
		if base == 16 && !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return
		}
	}

	ok = true
	v64, perr := strconv.ParseUint(text, base, 64)
	if perr != nil || v64 > 0xffff {
		err = ErrLiteralRange
		return
	}

	value = uint16(v64)
	return
}

// labelName strips the relative marker from a label reference.
func labelName(token string) (name string, relative bool) {
	name = strings.TrimSpace(token)
	if len(name) >= len(relativePrefix) && strings.EqualFold(name[:len(relativePrefix)], relativePrefix) {
		name = name[len(relativePrefix):]
		relative = true
	}
	return
}

// validLabel checks that a label name could have been defined.
func validLabel(name string) bool {
	return len(name) > 0 && !strings.ContainsAny(name, "[]+\"' \t")
}

// withLabel sets a label reference into the operand.
func (op *Operand) withLabel(token string) (err error) {
	op.Label, op.Relative = labelName(token)
	if !validLabel(op.Label) {
		err = ErrLabelInvalid
	}
	return
}

// ParseOperand classifies an operand token.
func ParseOperand(token string) (op Operand, err error) {
	lower := strings.ToLower(token)
	compact := strings.Join(strings.Fields(lower), "")

	// Stack and special registers.
	switch compact {
	case "pop", "[sp++]":
		op.Value = isa.VAL_POP
		return
	case "peek", "[sp]":
		op.Value = isa.VAL_PEEK
		return
	case "push", "[--sp]":
		op.Value = isa.VAL_PUSH
		return
	case "sp":
		op.Value = isa.VAL_SP
		return
	case "pc":
		op.Value = isa.VAL_PC
		return
	case "o":
		op.Value = isa.VAL_O
		return
	}

	if strings.HasPrefix(token, "[") {
		if !strings.HasSuffix(token, "]") {
			err = ErrOperandInvalid
			return
		}
		inner := token[1 : len(token)-1]

		// [next word + register] or [register + next word]
		if left, right, found := strings.Cut(inner, "+"); found {
			left = strings.TrimSpace(left)
			right = strings.TrimSpace(right)

			reg, ok := isa.LookupReg(right)
			other := left
			if !ok {
				reg, ok = isa.LookupReg(left)
				other = right
			}
			if !ok {
				err = ErrRegisterInvalid
				return
			}

			op.Value = isa.MakeRefNextWord(reg)
			op.NextWord, ok, err = parseLiteral(other)
			if err != nil || ok {
				return
			}
			err = op.withLabel(other)
			return
		}

		inner = strings.TrimSpace(inner)

		// [register]
		if reg, ok := isa.LookupReg(inner); ok {
			op.Value = isa.MakeRef(reg)
			return
		}

		// [next word]
		op.Value = isa.VAL_REF_NW
		var ok bool
		op.NextWord, ok, err = parseLiteral(inner)
		if err != nil || ok {
			return
		}
		err = op.withLabel(inner)
		return
	}

	// Literal, embedded or as the next word.
	value, ok, err := parseLiteral(token)
	if err != nil {
		return
	}
	if ok {
		if int(value) <= isa.LITERAL_MAX {
			op.Value = isa.MakeLiteral(value)
		} else {
			op.Value = isa.VAL_NW
			op.NextWord = value
		}
		return
	}

	// Register
	if reg, ok := isa.LookupReg(token); ok {
		op.Value = isa.MakeReg(reg)
		return
	}

	// Label, as the next word.
	op.Value = isa.VAL_NW
	err = op.withLabel(token)
	return
}

package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/dcpu16/isa"
)

func TestParseOperand(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		token    string
		value    isa.CodeValue
		nextWord uint16
		label    string
		relative bool
	}{
		{"pop", isa.VAL_POP, 0, "", false},
		{"[SP++]", isa.VAL_POP, 0, "", false},
		{"Peek", isa.VAL_PEEK, 0, "", false},
		{"[sp]", isa.VAL_PEEK, 0, "", false},
		{"PUSH", isa.VAL_PUSH, 0, "", false},
		{"[--SP]", isa.VAL_PUSH, 0, "", false},
		{"SP", isa.VAL_SP, 0, "", false},
		{"pc", isa.VAL_PC, 0, "", false},
		{"O", isa.VAL_O, 0, "", false},
		{"[0x1000+I]", isa.MakeRefNextWord(isa.REG_I), 0x1000, "", false},
		{"[I + 0x1000]", isa.MakeRefNextWord(isa.REG_I), 0x1000, "", false},
		{"[12+a]", isa.MakeRefNextWord(isa.REG_A), 12, "", false},
		{"[data+A]", isa.MakeRefNextWord(isa.REG_A), 0, "data", false},
		{"[rel:Data+A]", isa.MakeRefNextWord(isa.REG_A), 0, "Data", true},
		{"[B]", isa.MakeRef(isa.REG_B), 0, "", false},
		{"[ j ]", isa.MakeRef(isa.REG_J), 0, "", false},
		{"[0x20]", isa.VAL_REF_NW, 0x20, "", false},
		{"[Buffer]", isa.VAL_REF_NW, 0, "Buffer", false},
		{"0", isa.MakeLiteral(0), 0, "", false},
		{"31", isa.MakeLiteral(31), 0, "", false},
		{"0x1f", isa.MakeLiteral(31), 0, "", false},
		{"32", isa.VAL_NW, 32, "", false},
		{"0XFFFF", isa.VAL_NW, 0xffff, "", false},
		{"x", isa.MakeReg(isa.REG_X), 0, "", false},
		{"J", isa.MakeReg(isa.REG_J), 0, "", false},
		{"Loop", isa.VAL_NW, 0, "Loop", false},
		{"REL:Loop", isa.VAL_NW, 0, "Loop", true},
		{"0x", isa.VAL_NW, 0, "0x", false},
	}

	for _, entry := range table {
		op, err := ParseOperand(entry.token)
		if !assert.NoError(err, entry.token) {
			continue
		}
		assert.Equal(entry.value, op.Value, entry.token)
		assert.Equal(entry.nextWord, op.NextWord, entry.token)
		assert.Equal(entry.label, op.Label, entry.token)
		assert.Equal(entry.relative, op.Relative, entry.token)
	}
}

func TestParseOperand_Invalid(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		token string
		err   error
	}{
		{"65536", ErrLiteralRange},
		{"0x10000", ErrLiteralRange},
		{"[0x12345+A]", ErrLiteralRange},
		{"[70000]", ErrLiteralRange},
		{"[1+2]", ErrRegisterInvalid},
		{"[A+B+C]", ErrLabelInvalid},
		{"[]", ErrLabelInvalid},
		{"rel:", ErrLabelInvalid},
		{"'a'", ErrLabelInvalid},
		{"[A", ErrOperandInvalid},
	}

	for _, entry := range table {
		_, err := ParseOperand(entry.token)
		assert.ErrorIs(err, entry.err, entry.token)
	}
}

func TestTokenize(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		line   string
		tokens []string
	}{
		{"", nil},
		{"   \t ", nil},
		{"SET A, 1", []string{"SET", "A", "1"}},
		{"  set\t[0x10 + A],,b", []string{"set", "[0x10 + A]", "b"}},
		{`DAT "hello, world" 'a b' 3`, []string{"DAT", `"hello, world"`, "'a b'", "3"}},
		{":label SET PC, POP", []string{":label", "SET", "PC", "POP"}},
	}

	for _, entry := range table {
		tokens, err := tokenize(entry.line)
		assert.NoError(err, entry.line)
		assert.Equal(entry.tokens, tokens, entry.line)
	}

	for _, line := range []string{`DAT "abc`, "SET [A, 1", "DAT 'x"} {
		_, err := tokenize(line)
		assert.ErrorIs(err, ErrQuoteUnterminated, line)
	}
}

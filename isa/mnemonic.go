package isa

import (
	"strings"
)

// Mnemonic is an assembler instruction name resolved to its encoding.
// Extended instructions have Op == OP_NON_BASIC.
type Mnemonic struct {
	Op  CodeOp
	Ext CodeExtOp
}

// Extended is true for non-basic instructions.
func (m Mnemonic) Extended() bool {
	return m.Op == OP_NON_BASIC
}

// Operands returns the number of operands the instruction takes.
func (m Mnemonic) Operands() int {
	if m.Extended() {
		return 1
	}
	return 2
}

func (m Mnemonic) String() string {
	if m.Extended() {
		return m.Ext.String()
	}
	return m.Op.String()
}

var mnemonicMap = func() map[string]Mnemonic {
	mnemonics := map[string]Mnemonic{}
	for op := OP_SET; op <= OP_IFB; op++ {
		mnemonics[op.String()] = Mnemonic{Op: op}
	}
	for _, ext := range []CodeExtOp{EXT_OP_JSR, EXT_OP_SYS} {
		mnemonics[ext.String()] = Mnemonic{Op: OP_NON_BASIC, Ext: ext}
	}
	return mnemonics
}()

// LookupMnemonic finds an instruction by name, ignoring case.
func LookupMnemonic(name string) (m Mnemonic, ok bool) {
	m, ok = mnemonicMap[strings.ToUpper(name)]
	return
}

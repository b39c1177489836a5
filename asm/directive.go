package asm

import (
	"encoding/binary"
	"path"
	"strings"

	dio "github.com/ezrec/dcpu16/io"
	"github.com/ezrec/dcpu16/isa"
)

// directive is an assembler pseudo-instruction.
type directive struct {
	name    string
	minArgs int
	maxArgs int // Negative for no limit.
	handle  func(asm *Assembler, src *source, args []string) error
}

// statement is the resolved meaning of the first token of a line, either
// a directive or an instruction mnemonic.
type statement struct {
	directive *directive
	mnemonic  isa.Mnemonic
}

var directiveMap map[string]*directive

func init() {
	directiveMap = map[string]*directive{}
	for _, dir := range []*directive{
		{".ORG", 1, 1, (*Assembler).dirOrg},
		{".DEFINE", 2, 2, (*Assembler).dirDefine},
		{".RESERVE", 1, 1, (*Assembler).dirReserve},
		{".FILL", 2, 2, (*Assembler).dirFill},
		{".INCBIN", 1, 2, (*Assembler).dirIncbin},
		{".INCLUDE", 1, 1, (*Assembler).dirInclude},
		{"DAT", 1, -1, (*Assembler).dirData},
		{".DW", 1, -1, (*Assembler).dirData},
	} {
		directiveMap[dir.name] = dir
	}
}

// lookupStatement resolves the first token of a line. Directives take
// priority over instruction mnemonics.
func lookupStatement(name string) (stmt statement, ok bool) {
	upper := strings.ToUpper(name)
	if dir, found := directiveMap[upper]; found {
		stmt.directive = dir
		ok = true
		return
	}

	stmt.mnemonic, ok = isa.LookupMnemonic(upper)
	return
}

// literal parses a directive argument that must be a number.
func literal(token string) (value uint16, err error) {
	value, ok, err := parseLiteral(token)
	if err == nil && !ok {
		err = ErrParseNumber(token)
	}
	return
}

// filePath extracts a file path argument, quoted or not.
func filePath(token string) string {
	if text, ok := unquote(token); ok {
		return text
	}
	return token
}

func (asm *Assembler) dirOrg(src *source, args []string) (err error) {
	addr, err := literal(args[0])
	if err != nil {
		return
	}
	asm.cursor = int(addr)
	return
}

func (asm *Assembler) dirDefine(src *source, args []string) (err error) {
	asm.defines[args[0]] = args[1]
	return
}

func (asm *Assembler) dirReserve(src *source, args []string) (err error) {
	count, err := literal(args[0])
	if err != nil {
		return
	}
	asm.cursor += int(count)
	return
}

func (asm *Assembler) dirFill(src *source, args []string) (err error) {
	count, err := literal(args[0])
	if err != nil {
		return
	}
	value, err := literal(args[1])
	if err != nil {
		return
	}

	em := &emission{}
	for range count {
		em.word(value)
	}
	return asm.emit(src, em)
}

func (asm *Assembler) dirData(src *source, args []string) (err error) {
	em := &emission{}
	for _, arg := range args {
		if arg[0] == '"' || arg[0] == '\'' {
			text, ok := unquote(arg)
			if !ok {
				return ErrParseString(arg)
			}
			for n := range len(text) {
				em.word(uint16(text[n]))
			}
			continue
		}

		var value uint16
		value, err = literal(arg)
		if err != nil {
			return
		}
		em.word(value)
	}
	return asm.emit(src, em)
}

func (asm *Assembler) dirIncbin(src *source, args []string) (err error) {
	order := binary.ByteOrder(binary.LittleEndian)
	if len(args) > 1 {
		order, err = dio.ParseByteOrder(args[1])
		if err != nil {
			return
		}
	}

	file, err := asm.fsys.Open(path.Clean(filePath(args[0])))
	if err != nil {
		return
	}
	defer file.Close()

	words := make([]uint16, max(asm.end()-asm.cursor+1, 0))
	n, err := dio.LoadImage(file, words, order)
	if err != nil {
		return
	}

	em := &emission{}
	em.word(words[:n]...)
	return asm.emit(src, em)
}

func (asm *Assembler) dirInclude(src *source, args []string) (err error) {
	return asm.assemble(path.Clean(filePath(args[0])))
}

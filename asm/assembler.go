// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/dcpu16/isa"
	"github.com/ezrec/dcpu16/symbol"
)

// MAX_INCLUDE_DEPTH limits .INCLUDE nesting.
const MAX_INCLUDE_DEPTH = 64

// Assembler is a single pass assembler for the DCPU, with back-patching
// of label references.
type Assembler struct {
	Start   uint16        // Address of the first emitted word.
	End     uint16        // Last writable address. Zero is the top of memory.
	Symbols *symbol.Table // If set, receives the debug symbols.
	Labels  Labels        // Labels of the last assembly.

	Memory [isa.MEMORY_SIZE]uint16 // Assembled memory image.

	predefine map[string]string
	defines   map[string]string
	fsys      fs.FS
	baseDir   string
	cursor    int
	depth     int
}

// source is the position of the assembler within one source file.
type source struct {
	file   string // Path within the assembly file system.
	lineNo int
}

// labelRef is a trailing word of an emission that refers to a label.
type labelRef struct {
	index    int
	name     string
	relative bool
}

// emission is the output of one line of source.
type emission struct {
	words []uint16
	refs  []labelRef
}

// word appends words to the emission.
func (em *emission) word(values ...uint16) {
	em.words = append(em.words, values...)
}

// operand appends the trailing word of an operand, if it has one.
func (em *emission) operand(op Operand) {
	if !op.Value.HasNextWord() {
		return
	}
	if len(op.Label) != 0 {
		em.refs = append(em.refs, labelRef{index: len(em.words), name: op.Label, relative: op.Relative})
	}
	em.word(op.NextWord)
}

// Predefine defines a substitution, before any source is read.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// end returns the last writable address.
func (asm *Assembler) end() int {
	if asm.End == 0 {
		return isa.MEMORY_SIZE - 1
	}
	return int(asm.End)
}

// sourcePath returns the path of a source file, as reported to the user.
func (asm *Assembler) sourcePath(src *source) string {
	name := filepath.FromSlash(src.file)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(asm.baseDir, name)
}

// hostFS opens host files relative to dir. Unlike os.DirFS, names may
// leave dir or be absolute.
type hostFS string

func (dir hostFS) Open(name string) (fs.File, error) {
	name = filepath.FromSlash(name)
	if !filepath.IsAbs(name) {
		name = filepath.Join(string(dir), name)
	}
	return os.Open(name)
}

// AssembleFile assembles a file from the host file system. Included
// files are relative to the directory of filename.
func (asm *Assembler) AssembleFile(filename string) (cursor int, err error) {
	dir := filepath.Dir(filename)
	return asm.assembleFS(hostFS(dir), dir, filepath.Base(filename))
}

// Assemble assembles the file name of fsys. Included files are relative
// to the root of fsys. The address following the last emitted word is
// returned.
func (asm *Assembler) Assemble(fsys fs.FS, name string) (cursor int, err error) {
	return asm.assembleFS(fsys, "", name)
}

func (asm *Assembler) assembleFS(fsys fs.FS, baseDir string, name string) (cursor int, err error) {
	asm.fsys = fsys
	asm.baseDir = baseDir
	asm.cursor = int(asm.Start)
	asm.depth = 0
	asm.defines = maps.Clone(asm.predefine)
	if asm.defines == nil {
		asm.defines = map[string]string{}
	}
	asm.Labels.Reset()
	clear(asm.Memory[:])
	if asm.Symbols != nil {
		asm.Symbols.Symbols = nil
	}

	err = asm.assemble(path.Clean(name))
	if err != nil {
		return
	}

	err = asm.Labels.ResolveAll(asm.Memory[:])
	if err != nil {
		return
	}

	if asm.Symbols != nil {
		for label := range asm.Labels.All() {
			if !asm.Symbols.Name(label.Addr, label.Name) {
				asm.Symbols.Add(symbol.Symbol{
					Addr:  label.Addr,
					Line:  label.LineNo,
					File:  label.File,
					Names: []string{label.Name},
				})
			}
		}
	}

	cursor = asm.cursor
	return
}

// assemble processes one source file, at the current cursor.
func (asm *Assembler) assemble(name string) (err error) {
	if asm.depth >= MAX_INCLUDE_DEPTH {
		err = ErrIncludeDepth
		return
	}

	file, err := asm.fsys.Open(name)
	if err != nil {
		return
	}
	defer file.Close()

	asm.depth++
	defer func() { asm.depth-- }()

	src := &source{file: name}
	var line string

	defer func() {
		var serr *ErrSyntax
		if err != nil && !errors.As(err, &serr) {
			err = &ErrSyntax{File: asm.sourcePath(src), LineNo: src.lineNo, Line: line, Err: err}
		}
	}()

	logrus.WithFields(logrus.Fields{
		"file":   asm.sourcePath(src),
		"cursor": asm.cursor,
	}).Debug("assembling")

	for text, rerr := range sourceLines(file) {
		if rerr != nil {
			err = rerr
			return
		}
		src.lineNo++
		line = text

		logrus.WithFields(logrus.Fields{
			"file": src.file,
			"line": src.lineNo,
		}).Trace(text)

		err = asm.assembleLine(src, text)
		if err != nil {
			return
		}
	}

	return
}

// assembleLine processes one line of source.
func (asm *Assembler) assembleLine(src *source, line string) (err error) {
	line, err = asm.expandExpressions(src, line)
	if err != nil {
		return
	}

	tokens, err := tokenize(line)
	if err != nil || len(tokens) == 0 {
		return
	}

	// The search token of a .DEFINE is never substituted.
	isDefine := strings.EqualFold(tokens[0], ".DEFINE")
	for n, token := range tokens {
		if isDefine && n == 1 {
			continue
		}
		if value, ok := asm.defines[token]; ok {
			tokens[n] = value
		}
	}

	for len(tokens) > 0 && strings.HasPrefix(tokens[0], ":") {
		name, _ := labelName(tokens[0][1:])
		if !validLabel(name) {
			err = ErrLabelInvalid
			return
		}
		if asm.cursor > asm.end() {
			err = ErrOutOfSpace
			return
		}
		err = asm.Labels.Define(name, uint16(asm.cursor), asm.sourcePath(src), src.lineNo)
		if err != nil {
			return
		}
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return
	}

	stmt, ok := lookupStatement(tokens[0])
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := tokens[1:]
	if dir := stmt.directive; dir != nil {
		if len(args) < dir.minArgs || (dir.maxArgs >= 0 && len(args) > dir.maxArgs) {
			err = ErrDirectiveArgs
			return
		}
		err = dir.handle(asm, src, args)
		return
	}

	err = asm.instruction(src, stmt.mnemonic, args)
	return
}

// instruction encodes an instruction and its operands.
func (asm *Assembler) instruction(src *source, m isa.Mnemonic, args []string) (err error) {
	if len(args) != m.Operands() {
		err = ErrOperandCount
		return
	}

	ops := make([]Operand, len(args))
	for n, arg := range args {
		ops[n], err = ParseOperand(arg)
		if err != nil {
			return
		}
	}

	var code isa.Code
	if m.Extended() {
		code = isa.MakeCodeExt(m.Ext, ops[0].Value)
	} else {
		code = isa.MakeCode(m.Op, ops[0].Value, ops[1].Value)
	}

	em := &emission{}
	em.word(code.Word)
	for _, op := range ops {
		em.operand(op)
	}

	err = asm.emit(src, em)
	return
}

// emit writes an emission at the cursor, recording its label references
// and its debug symbol.
func (asm *Assembler) emit(src *source, em *emission) (err error) {
	if len(em.words) == 0 {
		return
	}

	start := asm.cursor
	if start+len(em.words)-1 > asm.end() {
		err = ErrOutOfSpace
		return
	}

	file := asm.sourcePath(src)
	for _, ref := range em.refs {
		asm.Labels.Reference(ref.name, uint16(start+ref.index), uint16(start), file, src.lineNo, ref.relative)
	}

	copy(asm.Memory[start:], em.words)
	asm.cursor += len(em.words)

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		dump := make([]string, len(em.words))
		for n, word := range em.words {
			dump[n] = fmt.Sprintf("%04x", word)
		}
		logrus.WithFields(logrus.Fields{
			"file": src.file,
			"line": src.lineNo,
			"addr": fmt.Sprintf("0x%04x", start),
		}).Debug(strings.Join(dump, " "))
	}

	if asm.Symbols != nil {
		asm.Symbols.Add(symbol.Symbol{
			Addr:   uint16(start),
			Length: len(em.words),
			Line:   src.lineNo,
			File:   file,
		})
	}

	return
}

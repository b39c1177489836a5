package symbol

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Symbol describes the words emitted by one line of source. A symbol of
// zero length only names an address, such as a label on a .RESERVE line.
type Symbol struct {
	Addr   uint16   // First address of the emitted words.
	Length int      // Number of words emitted.
	Line   int      // Source line number, 1-based.
	File   string   // Source file path.
	Names  []string // Labels defined at Addr.
}

// Contains is true if addr is within the symbol's words.
func (sym *Symbol) Contains(addr uint16) bool {
	return int(addr) >= int(sym.Addr) && int(addr) < int(sym.Addr)+sym.Length
}

// String returns the symbol in its debug file record form.
func (sym *Symbol) String() string {
	text := fmt.Sprintf("%04x %04x %d %s", sym.Addr, sym.Length, sym.Line, sym.File)
	if len(sym.Names) > 0 {
		text += " " + strings.Join(sym.Names, " ")
	}
	return text
}

// Table is an ordered list of debug symbols, in emission order.
type Table struct {
	Symbols []Symbol
}

// Add appends a symbol to the table.
func (tbl *Table) Add(sym Symbol) {
	tbl.Symbols = append(tbl.Symbols, sym)
}

// Name associates a label name with the first symbol of code or data
// starting at addr.
func (tbl *Table) Name(addr uint16, name string) (ok bool) {
	for n := range tbl.Symbols {
		sym := &tbl.Symbols[n]
		if sym.Addr == addr && sym.Length > 0 {
			sym.Names = append(sym.Names, name)
			return true
		}
	}
	return false
}

// Lookup returns the first symbol covering addr, or nil.
func (tbl *Table) Lookup(addr uint16) *Symbol {
	for n := range tbl.Symbols {
		if tbl.Symbols[n].Contains(addr) {
			return &tbl.Symbols[n]
		}
	}
	return nil
}

// ByName returns the first symbol carrying name, or nil.
func (tbl *Table) ByName(name string) *Symbol {
	for n := range tbl.Symbols {
		if slices.Contains(tbl.Symbols[n].Names, name) {
			return &tbl.Symbols[n]
		}
	}
	return nil
}

// Files iterates over the distinct source files, in first seen order.
func (tbl *Table) Files() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := map[string]bool{}
		for _, sym := range tbl.Symbols {
			if seen[sym.File] {
				continue
			}
			seen[sym.File] = true
			if !yield(sym.File) {
				return
			}
		}
	}
}

// File resolves a file name as given by a user to a file name in the
// table. An exact match is preferred, then a match on the base name.
func (tbl *Table) File(name string) (file string, ok bool) {
	for file = range tbl.Files() {
		if file == name {
			return file, true
		}
	}

	base := filepath.Base(name)
	for file = range tbl.Files() {
		if filepath.Base(file) == base {
			return file, true
		}
	}

	return "", false
}

// ByLine returns the first symbol of file whose line range covers line.
// The range of a symbol starts after the line of the previous symbol of
// the same file, so a line with no code maps to the next line that has.
func (tbl *Table) ByLine(name string, line int) *Symbol {
	file, ok := tbl.File(name)
	if !ok {
		return nil
	}

	lastLine := 0
	for n := range tbl.Symbols {
		sym := &tbl.Symbols[n]
		if sym.File != file || sym.Length == 0 {
			continue
		}
		if line > lastLine && line <= sym.Line {
			return sym
		}
		lastLine = sym.Line
	}

	return nil
}

// WriteTo writes the table in its text form.
func (tbl *Table) WriteTo(w io.Writer) (n int64, err error) {
	for _, sym := range tbl.Symbols {
		var wrote int
		wrote, err = fmt.Fprintln(w, sym.String())
		n += int64(wrote)
		if err != nil {
			return
		}
	}
	return
}

// ReadFrom appends the records of a text form symbol file to the table.
func (tbl *Table) ReadFrom(r io.Reader) (n int64, err error) {
	scanner := bufio.NewScanner(r)

	var line string
	var lineNo int

	defer func() {
		if err != nil {
			err = &ErrParse{LineNo: lineNo, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		line = scanner.Text()
		lineNo++
		n += int64(len(line) + 1)

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			err = ErrFieldMissing
			return
		}

		var addr, length uint64
		var source int
		addr, err = strconv.ParseUint(fields[0], 16, 16)
		if err != nil {
			err = ErrFieldInvalid
			return
		}
		length, err = strconv.ParseUint(fields[1], 16, 32)
		if err != nil {
			err = ErrFieldInvalid
			return
		}
		source, err = strconv.Atoi(fields[2])
		if err != nil {
			err = ErrFieldInvalid
			return
		}

		sym := Symbol{
			Addr:   uint16(addr),
			Length: int(length),
			Line:   source,
			File:   fields[3],
		}
		if len(fields) > 4 {
			sym.Names = slices.Clone(fields[4:])
		}
		tbl.Add(sym)
	}

	line = ""
	err = scanner.Err()
	return
}

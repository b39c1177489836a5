package symbol

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTable() *Table {
	return &Table{
		Symbols: []Symbol{
			{Addr: 0x0000, Length: 2, Line: 3, File: "src/main.s", Names: []string{"start"}},
			{Addr: 0x0002, Length: 1, Line: 4, File: "src/main.s"},
			{Addr: 0x0003, Length: 2, Line: 2, File: "src/lib.s", Names: []string{"print", "puts"}},
			{Addr: 0x0005, Length: 1, Line: 9, File: "src/main.s", Names: []string{"loop"}},
		},
	}
}

func TestTable_Lookup(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()

	table := [...]struct {
		addr uint16
		line int
	}{
		{0, 3},
		{1, 3},
		{2, 4},
		{4, 2},
		{5, 9},
	}

	for _, entry := range table {
		sym := tbl.Lookup(entry.addr)
		if assert.NotNil(sym, "addr %d", entry.addr) {
			assert.Equal(entry.line, sym.Line)
		}
	}

	assert.Nil(tbl.Lookup(6))
}

func TestTable_ByName(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()

	sym := tbl.ByName("puts")
	assert.NotNil(sym)
	assert.Equal(uint16(3), sym.Addr)

	assert.Nil(tbl.ByName("missing"))

	assert.True(tbl.Name(2, "here"))
	assert.Equal(uint16(2), tbl.ByName("here").Addr)
	assert.False(tbl.Name(0x100, "nowhere"))
}

func TestTable_ByLine(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()

	table := [...]struct {
		file string
		line int
		addr uint16
		ok   bool
	}{
		{"src/main.s", 1, 0, true},
		{"src/main.s", 3, 0, true},
		{"src/main.s", 4, 2, true},
		{"src/main.s", 5, 5, true},
		{"src/main.s", 9, 5, true},
		{"src/main.s", 10, 0, false},
		{"main.s", 4, 2, true},
		{"lib.s", 1, 3, true},
		{"other.s", 1, 0, false},
	}

	for _, entry := range table {
		sym := tbl.ByLine(entry.file, entry.line)
		if !entry.ok {
			assert.Nil(sym, "%v:%v", entry.file, entry.line)
			continue
		}
		if assert.NotNil(sym, "%v:%v", entry.file, entry.line) {
			assert.Equal(entry.addr, sym.Addr, "%v:%v", entry.file, entry.line)
		}
	}
}

func TestTable_WriteRead(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()

	var buff bytes.Buffer
	n, err := tbl.WriteTo(&buff)
	assert.NoError(err)
	assert.Equal(int64(buff.Len()), n)

	lines := strings.Split(strings.TrimSpace(buff.String()), "\n")
	assert.Equal([]string{
		"0000 0002 3 src/main.s start",
		"0002 0001 4 src/main.s",
		"0003 0002 2 src/lib.s print puts",
		"0005 0001 9 src/main.s loop",
	}, lines)

	other := &Table{}
	_, err = other.ReadFrom(&buff)
	assert.NoError(err)
	assert.Equal(tbl.Symbols, other.Symbols)

	var files []string
	for file := range other.Files() {
		files = append(files, file)
	}
	assert.Equal([]string{"src/main.s", "src/lib.s"}, files)
}

func TestTable_ReadFrom_Invalid(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		text string
		err  error
	}{
		{"0000 0001 3\n", ErrFieldMissing},
		{"zzzz 0001 3 main.s\n", ErrFieldInvalid},
		{"0000 0001 x main.s\n", ErrFieldInvalid},
		{"\n10000 0001 1 main.s\n", ErrFieldInvalid},
	}

	for _, entry := range table {
		tbl := &Table{}
		_, err := tbl.ReadFrom(strings.NewReader(entry.text))
		assert.True(errors.Is(err, entry.err), entry.text)
		var perr *ErrParse
		assert.True(errors.As(err, &perr))
	}
}

func TestTable_ZeroLength(t *testing.T) {
	assert := assert.New(t)

	tbl := testTable()
	tbl.Add(Symbol{Addr: 0x0006, Line: 10, File: "src/main.s", Names: []string{"buf"}})
	tbl.Add(Symbol{Addr: 0x0002, Line: 11, File: "src/main.s", Names: []string{"alias"}})

	assert.Nil(tbl.Lookup(6))
	assert.Equal(4, tbl.Lookup(2).Line)

	sym := tbl.ByName("buf")
	if assert.NotNil(sym) {
		assert.Equal(uint16(6), sym.Addr)
		assert.Equal(0, sym.Length)
	}
	assert.Equal(uint16(2), tbl.ByName("alias").Addr)

	assert.Nil(tbl.ByLine("src/main.s", 10))
	assert.False(tbl.Name(6, "other"))
}

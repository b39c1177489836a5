// Package io provides the memory image file format and the console tape
// device of the interpreter.
package io

import (
	"encoding/binary"
	"errors"
	"io"
	"strings"

	"github.com/ezrec/dcpu16/isa"
)

// ParseByteOrder parses a byte order name: l, le, b or be, in any case.
func ParseByteOrder(name string) (order binary.ByteOrder, err error) {
	switch strings.ToLower(name) {
	case "l", "le":
		order = binary.LittleEndian
	case "b", "be":
		order = binary.BigEndian
	default:
		err = ErrByteOrder
	}
	return
}

// LoadImage reads words into mem until end of file, or until mem is full.
// A trailing odd byte is loaded as the low-address byte of a final word.
// The number of words read is returned.
func LoadImage(r io.Reader, mem []uint16, order binary.ByteOrder) (n int, err error) {
	var word [2]byte
	for n < len(mem) {
		var got int
		got, err = io.ReadFull(r, word[:])
		if got == 0 && errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if got == 1 {
			word[1] = 0
			err = nil
		}
		if err != nil {
			return
		}
		mem[n] = order.Uint16(word[:])
		n++
	}
	return
}

// SaveImage writes mem, less any trailing zero words.
func SaveImage(w io.Writer, mem []uint16, order binary.ByteOrder) (err error) {
	length := isa.Used(mem)
	buff := make([]byte, 2*length)
	for n, word := range mem[:length] {
		order.PutUint16(buff[2*n:], word)
	}
	_, err = w.Write(buff)
	return
}

package isa

import (
	"iter"
)

// wordAt reads memory, treating words beyond the slice as zero.
func wordAt(mem []uint16, addr uint16) uint16 {
	if int(addr) >= len(mem) {
		return 0
	}
	return mem[addr]
}

// Fetch decodes the instruction at addr, returning it and the address
// of the following instruction.
func Fetch(mem []uint16, addr uint16) (code Code, next uint16) {
	code.Word = wordAt(mem, addr)
	next = addr + 1
	for range code.NextWordNeed() {
		code.NextWords = append(code.NextWords, wordAt(mem, next))
		next++
	}
	return
}

// Disassemble returns the assembly text of the instruction at addr, and
// the address of the following instruction.
func Disassemble(mem []uint16, addr uint16) (text string, next uint16) {
	code, next := Fetch(mem, addr)
	text = code.String()
	return
}

// Used returns the length of memory up to and including the last
// non-zero word.
func Used(mem []uint16) (length int) {
	for length = len(mem); length > 0; length-- {
		if mem[length-1] != 0 {
			break
		}
	}
	return
}

// Listing iterates over the instructions in mem[start:end].
func Listing(mem []uint16, start, end int) iter.Seq2[uint16, Code] {
	return func(yield func(addr uint16, code Code) bool) {
		for addr := start; addr < end && addr < len(mem); {
			code, _ := Fetch(mem, uint16(addr))
			if !yield(uint16(addr), code) {
				return
			}
			addr += 1 + len(code.NextWords)
		}
	}
}

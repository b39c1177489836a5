package cpu

import (
	"fmt"
	"strings"

	"github.com/ezrec/dcpu16/isa"
)

// LocationKind selects the storage a Location refers to.
type LocationKind int

//go:generate go tool stringer -linecomment -type=LocationKind
const (
	LOC_REGISTER  = LocationKind(iota) // register
	LOC_MEMORY                         // memory
	LOC_PC                             // pc
	LOC_SP                             // sp
	LOC_O                              // o
	LOC_IMMEDIATE                      // immediate
)

// Location is a resolved operand. Index is the register index for
// LOC_REGISTER, the address for LOC_MEMORY, and the value for
// LOC_IMMEDIATE.
type Location struct {
	Kind  LocationKind
	Index uint16
}

// Register returns the location of a general purpose register.
func Register(reg isa.CodeReg) Location {
	return Location{Kind: LOC_REGISTER, Index: uint16(reg)}
}

// Memory returns the location of a memory word.
func Memory(addr uint16) Location {
	return Location{Kind: LOC_MEMORY, Index: addr}
}

// Immediate returns a read-only location holding value.
func Immediate(value uint16) Location {
	return Location{Kind: LOC_IMMEDIATE, Index: value}
}

// LookupLocation returns the location of a named register: one of
// A, B, C, X, Y, Z, I, J, SP, PC or O, in either case.
func LookupLocation(name string) (loc Location, ok bool) {
	if reg, found := isa.LookupReg(name); found {
		return Register(reg), true
	}

	ok = true
	switch strings.ToUpper(name) {
	case "SP":
		loc.Kind = LOC_SP
	case "PC":
		loc.Kind = LOC_PC
	case "O":
		loc.Kind = LOC_O
	default:
		ok = false
	}
	return
}

// Read returns the value at the location.
func (loc Location) Read(cpu *Cpu) (value uint16) {
	switch loc.Kind {
	case LOC_REGISTER:
		value = cpu.Register[loc.Index%isa.REG_COUNT]
	case LOC_MEMORY:
		value = cpu.Memory[loc.Index]
	case LOC_PC:
		value = cpu.Pc
	case LOC_SP:
		value = cpu.Sp
	case LOC_O:
		value = cpu.O
	case LOC_IMMEDIATE:
		value = loc.Index
	}
	return
}

// Write stores value at the location. Writes to an immediate are
// discarded.
func (loc Location) Write(cpu *Cpu, value uint16) {
	switch loc.Kind {
	case LOC_REGISTER:
		cpu.Register[loc.Index%isa.REG_COUNT] = value
	case LOC_MEMORY:
		cpu.Memory[loc.Index] = value
	case LOC_PC:
		cpu.Pc = value
	case LOC_SP:
		cpu.Sp = value
	case LOC_O:
		cpu.O = value
	}
}

// String returns a description of the location.
func (loc Location) String() string {
	switch loc.Kind {
	case LOC_REGISTER:
		return isa.CodeReg(loc.Index % isa.REG_COUNT).String()
	case LOC_MEMORY:
		return fmt.Sprintf("[0x%04x]", loc.Index)
	case LOC_IMMEDIATE:
		return fmt.Sprintf("0x%x", loc.Index)
	}
	return strings.ToUpper(loc.Kind.String())
}

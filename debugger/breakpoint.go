package debugger

import (
	"strconv"
	"strings"

	"github.com/ezrec/dcpu16/cpu"
)

// Breakpoint suspends execution when the PC reaches Addr.
type Breakpoint struct {
	Addr    uint16
	Enabled bool
}

// String returns the address and state of the breakpoint.
func (bp Breakpoint) String() string {
	state := "disabled"
	if bp.Enabled {
		state = "enabled"
	}
	return f("0x%04x %s", bp.Addr, state)
}

// parseNumber parses a 0x prefixed hexadecimal, or decimal, word.
func parseNumber(text string) (value uint16, err error) {
	var v uint64
	if hex, ok := strings.CutPrefix(strings.ToLower(text), "0x"); ok {
		v, err = strconv.ParseUint(hex, 16, 16)
	} else {
		v, err = strconv.ParseUint(text, 10, 16)
	}
	if err != nil {
		err = ErrNumberInvalid
		return
	}
	value = uint16(v)
	return
}

// AddBreakpoint adds an enabled breakpoint. The target is one of:
//
//	*addr      absolute address
//	+offset    current PC plus offset
//	-offset    current PC minus offset
//	file:line  first instruction at or after line of file
//	line       line of the current source file
//	name       label
func (dbg *Debugger) AddBreakpoint(c *cpu.Cpu, target string) (addr uint16, err error) {
	var value uint16

	switch {
	case strings.HasPrefix(target, "*"):
		addr, err = parseNumber(target[1:])
	case strings.HasPrefix(target, "+"):
		value, err = parseNumber(target[1:])
		addr = c.Pc + value
	case strings.HasPrefix(target, "-"):
		value, err = parseNumber(target[1:])
		addr = c.Pc - value
	default:
		if file, line, ok := strings.Cut(target, ":"); ok {
			addr, err = dbg.lineAddr(file, line)
			break
		}
		if _, nerr := strconv.Atoi(target); nerr == nil {
			sym := dbg.Symbols.Lookup(c.Pc)
			if sym == nil {
				err = ErrNoSourceFile
				break
			}
			addr, err = dbg.lineAddr(sym.File, target)
			break
		}
		sym := dbg.Symbols.ByName(target)
		if sym == nil {
			err = ErrNameNotFound
			break
		}
		addr = sym.Addr
	}

	if err != nil {
		return
	}

	dbg.Breakpoints = append(dbg.Breakpoints, Breakpoint{Addr: addr, Enabled: true})
	return
}

// lineAddr resolves a source line to the address of its instruction.
func (dbg *Debugger) lineAddr(file string, line string) (addr uint16, err error) {
	lineNo, err := strconv.Atoi(line)
	if err != nil {
		err = ErrNumberInvalid
		return
	}

	sym := dbg.Symbols.ByLine(file, lineNo)
	if sym == nil {
		err = ErrLineNotFound
		return
	}

	addr = sym.Addr
	return
}

// RemoveBreakpoint removes a breakpoint by index.
func (dbg *Debugger) RemoveBreakpoint(index int) (err error) {
	if index < 0 || index >= len(dbg.Breakpoints) {
		err = ErrBreakpointIndex
		return
	}

	dbg.Breakpoints = append(dbg.Breakpoints[:index], dbg.Breakpoints[index+1:]...)
	return
}

// EnableBreakpoint enables or disables a breakpoint by index.
func (dbg *Debugger) EnableBreakpoint(index int, enabled bool) (err error) {
	if index < 0 || index >= len(dbg.Breakpoints) {
		err = ErrBreakpointIndex
		return
	}

	dbg.Breakpoints[index].Enabled = enabled
	return
}

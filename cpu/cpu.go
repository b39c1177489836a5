package cpu

import (
	"fmt"
	"iter"
	"maps"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/dcpu16/isa"
)

// SYS_EXIT is the system call that terminates the program.
const SYS_EXIT = 0

var _cpu_defines = map[string]string{
	"SYS_EXIT": fmt.Sprintf("%d", SYS_EXIT),
}

// Cpu is the simulation context of a DCPU.
type Cpu struct {
	Register [isa.REG_COUNT]uint16 // General purpose registers, A to J.
	Sp       uint16                // Stack pointer.
	Pc       uint16                // Program counter.
	O        uint16                // Overflow register.

	Memory [isa.MEMORY_SIZE]uint16

	Cycles int // Cycles spent in the current Execute batch.
	Ticks  int // Cycles spent since Reset.

	Inspector Inspector // If set, called before every step.

	skip     bool
	exit     bool
	syscalls map[uint16]syscall
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state. Memory and system calls are retained.
func (cpu *Cpu) Reset() {
	logrus.Debug("cpu: reset")

	clear(cpu.Register[:])
	cpu.Sp = 0
	cpu.Pc = 0
	cpu.O = 0
	cpu.Cycles = 0
	cpu.Ticks = 0
	cpu.skip = false
	cpu.exit = false
}

// SetExit sets or clears the termination request.
func (cpu *Cpu) SetExit(exit bool) {
	cpu.exit = exit
}

// Exited is true once the program has requested termination.
func (cpu *Cpu) Exited() bool {
	return cpu.exit
}

// Skipping is true if the next instruction will be skipped.
func (cpu *Cpu) Skipping() bool {
	return cpu.skip
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: 0x%04x\n", isa.CodeReg(n).String(), val)
	}
	text += fmt.Sprintf("% 5s: 0x%04x\n", "SP", cpu.Sp)
	text += fmt.Sprintf("% 5s: 0x%04x\n", "PC", cpu.Pc)
	text += fmt.Sprintf("% 5s: 0x%04x\n", "O", cpu.O)
	return
}

// spend accounts cycles.
func (cpu *Cpu) spend(cycles int) {
	cpu.Cycles += cycles
	cpu.Ticks += cycles
}

// nextWord fetches the word at PC, and advances PC.
func (cpu *Cpu) nextWord() (word uint16) {
	word = cpu.Memory[cpu.Pc]
	cpu.Pc++
	cpu.spend(1)
	return
}

// decode resolves an operand code to a location, consuming its trailing
// word if it has one.
func (cpu *Cpu) decode(v isa.CodeValue) (loc Location) {
	if reg, ok := v.Reg(); ok {
		switch {
		case v <= isa.VAL_REG_TOP:
			loc = Register(reg)
		case v <= isa.VAL_REF_TOP:
			loc = Memory(cpu.Register[reg])
		default:
			loc = Memory(cpu.nextWord() + cpu.Register[reg])
		}
		return
	}

	if literal, ok := v.Literal(); ok {
		loc = Immediate(literal)
		return
	}

	switch v {
	case isa.VAL_POP:
		loc = Memory(cpu.Sp)
		cpu.Sp++
	case isa.VAL_PEEK:
		loc = Memory(cpu.Sp)
	case isa.VAL_PUSH:
		cpu.Sp--
		loc = Memory(cpu.Sp)
	case isa.VAL_SP:
		loc.Kind = LOC_SP
	case isa.VAL_PC:
		loc.Kind = LOC_PC
	case isa.VAL_O:
		loc.Kind = LOC_O
	case isa.VAL_REF_NW:
		loc = Memory(cpu.nextWord())
	case isa.VAL_NW:
		loc = Immediate(cpu.nextWord())
	}
	return
}

// Step executes a single instruction.
func (cpu *Cpu) Step() (err error) {
	if cpu.Inspector != nil {
		cpu.Inspector.Inspect(cpu)
	}

	if cpu.exit {
		return
	}

	pc := cpu.Pc
	code := isa.Code{Word: cpu.Memory[cpu.Pc]}
	cpu.Pc++

	op, av, bv := code.Decode()

	sp := cpu.Sp
	var a Location
	if op == isa.OP_NON_BASIC {
		a = Immediate(uint16(av))
	} else {
		a = cpu.decode(av)
	}
	b := cpu.decode(bv)

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		text, _ := isa.Disassemble(cpu.Memory[:], pc)
		logrus.WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("0x%04x", pc),
			"skip": cpu.skip,
		}).Trace(text)
	}

	if cpu.skip {
		cpu.skip = false
		cpu.Sp = sp
		return
	}

	err = handlers[op](cpu, a, b)
	return
}

// Execute runs instructions until at least budget cycles have been spent
// in this batch, or the program terminates. running is false once the
// program has terminated.
func (cpu *Cpu) Execute(budget int) (running bool, err error) {
	cpu.Cycles = 0
	for cpu.Cycles < budget && !cpu.exit {
		err = cpu.Step()
		if err != nil {
			break
		}
	}

	running = !cpu.exit
	return
}

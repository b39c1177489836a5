// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs DCPU programs with a console.
package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/internal"
	dio "github.com/ezrec/dcpu16/io"
	"github.com/ezrec/dcpu16/isa"
)

const (
	CYCLES_PER_TICK = 10 // Cycle budget of a single tick.

	SYS_READLINE = 1 // Read a console line to the address on the stack.
	SYS_WRITE    = 2 // Write the string at the address on the stack.
)

var _emulator_defines = map[string]string{
	"SYS_READLINE": fmt.Sprintf("%d", SYS_READLINE),
	"SYS_WRITE":    fmt.Sprintf("%d", SYS_WRITE),
}

// Monitor is consulted when the program terminates.
type Monitor interface {
	// Finished returns true if execution should continue. The monitor
	// may have restarted the CPU.
	Finished(cpu *cpu.Cpu) (again bool)
}

// Emulator state. CPU + console.
type Emulator struct {
	*cpu.Cpu // Reference to the CPU simulation.

	Tape    dio.Tape // Console.
	Monitor Monitor  // If set, consulted on termination.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: &cpu.Cpu{},
	}

	emu.Cpu.SetSyscall(SYS_READLINE, cpu.SyscallFunc(sysReadLine), &emu.Tape)
	emu.Cpu.SetSyscall(SYS_WRITE, cpu.SyscallFunc(sysWrite), &emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load replaces memory with an image, and resets the CPU.
func (emu *Emulator) Load(r io.Reader, order binary.ByteOrder) (n int, err error) {
	clear(emu.Cpu.Memory[:])
	n, err = dio.LoadImage(r, emu.Cpu.Memory[:], order)
	if err != nil {
		return
	}

	emu.Cpu.Reset()

	logrus.WithFields(logrus.Fields{
		"words": n,
	}).Debug("emulator: loaded")

	return
}

// Tick performs a single batch of execution. done is set once the program
// has terminated and the monitor, if any, has not restarted it.
func (emu *Emulator) Tick() (done bool, err error) {
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: emu.Cpu.Pc, Err: err}
		}
	}()

	running, err := emu.Cpu.Execute(CYCLES_PER_TICK)
	if err != nil || running {
		return
	}

	if emu.Monitor != nil && emu.Monitor.Finished(emu.Cpu) {
		return
	}

	done = true
	return
}

// Run the program until it terminates. The result of the program is
// register A.
func (emu *Emulator) Run() (result uint16, err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	result = emu.Cpu.Register[isa.REG_A]

	logrus.WithFields(logrus.Fields{
		"result": result,
		"ticks":  emu.Cpu.Ticks,
	}).Debug("emulator: finished")

	return
}

// sysReadLine reads a line of console input into memory at the address
// popped from the stack. The string is zero terminated. End of input
// reads as an empty line.
func sysReadLine(c *cpu.Cpu, data any) (err error) {
	tape := data.(*dio.Tape)
	addr := c.Pop()

	line, err := tape.ReadLine()
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		return
	}

	for n := range len(line) {
		c.Memory[addr] = uint16(line[n])
		addr++
	}
	c.Memory[addr] = 0

	return
}

// sysWrite writes the zero terminated string at the address popped from
// the stack to the console.
func sysWrite(c *cpu.Cpu, data any) (err error) {
	tape := data.(*dio.Tape)
	addr := c.Pop()

	var text []byte
	for range isa.MEMORY_SIZE {
		word := c.Memory[addr]
		if word == 0 {
			break
		}
		text = append(text, byte(word))
		addr++
	}

	err = tape.WriteString(string(text))
	return
}

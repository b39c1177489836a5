package cpu

import (
	"iter"
)

// Push decrements SP, and writes value at the new top of stack.
func (cpu *Cpu) Push(value uint16) {
	cpu.Sp--
	cpu.Memory[cpu.Sp] = value
}

// Pop reads the top of stack, and increments SP.
func (cpu *Cpu) Pop() (value uint16) {
	value = cpu.Memory[cpu.Sp]
	cpu.Sp++
	return
}

// Peek reads the top of stack.
func (cpu *Cpu) Peek() (value uint16) {
	return cpu.Memory[cpu.Sp]
}

// Stack iterates over the stack from the top, yielding the address and
// value of each entry. The stack is empty when SP is zero.
func (cpu *Cpu) Stack() iter.Seq2[uint16, uint16] {
	return func(yield func(addr uint16, value uint16) bool) {
		if cpu.Sp == 0 {
			return
		}
		for addr := int(cpu.Sp); addr < len(cpu.Memory); addr++ {
			if !yield(uint16(addr), cpu.Memory[addr]) {
				return
			}
		}
	}
}

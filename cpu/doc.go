// Package cpu implements the DCPU processor core.
//
// The CPU has eight 16-bit general purpose registers (A, B, C, X, Y, Z, I,
// J), a stack pointer (SP), a program counter (PC), an overflow register
// (O), and 64K words of memory. Execution is accounted in cycles, and is
// driven in batches by Execute.
//
// The host supplies system calls, invoked by the SYS instruction, and may
// set an Inspector that is called before every instruction.
package cpu

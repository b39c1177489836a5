// Package isa describes the instruction set of the 16-bit DCPU.
//
// An instruction word is a 4-bit opcode followed by two 6-bit operand codes
// (A in bits 4-9, B in bits 10-15). Opcode 0 marks a non-basic instruction,
// whose A field holds the extended opcode and whose B field is the only
// operand. Operands may consume a trailing word from the instruction stream;
// CodeValue.HasNextWord is the single test used by the assembler, the CPU
// and the disassembler.
package isa

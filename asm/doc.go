// Package asm assembles DCPU source text into a memory image.
//
// Source lines hold an optional ':label', then an instruction or a
// directive. Operands are separated by whitespace or commas:
//
//	:loop   SET [0x1000+I], [A]
//	        ADD I, 1
//	        IFN I, 10
//	        SET PC, loop
//
// Directives are .ORG, .DEFINE, .RESERVE, .FILL, .INCBIN, .INCLUDE and
// DAT (or .DW). A label reference prefixed with 'rel:' is patched with a
// displacement instead of an absolute address, so that 'ADD PC, rel:loop'
// jumps to loop. The text $(expr) is replaced by the value of the
// expression, evaluated when the line is assembled.
package asm

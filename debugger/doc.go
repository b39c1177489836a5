// Package debugger implements an interactive debugger for the DCPU.
//
// The debugger is installed as the CPU's inspector, and is consulted
// before every instruction. Breakpoints suspend execution and enter a
// command loop on the console. Commands may be abbreviated to any
// unambiguous prefix.
package debugger

// Package symbol holds the debug symbols that map memory image addresses
// back to assembler source lines.
//
// The text form has one record per line of source that emitted words:
//
//	<addr:hex> <length:hex> <line:decimal> <file> [name ...]
//
// where the trailing names are the labels defined at addr.
package symbol

package asm

import (
	"errors"
	"strings"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	ErrQuoteUnterminated  = errors.New(f("unterminated quotation"))
	ErrInstructionInvalid = errors.New(f("no such instruction"))
	ErrOperandCount       = errors.New(f("wrong number of operands"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrDirectiveArgs      = errors.New(f("wrong number of directive arguments"))
	ErrOutOfSpace         = errors.New(f("out of space in binary"))
	ErrLiteralRange       = errors.New(f("literal must be in range 0 - 65535 (0xFFFF)"))
	ErrIncludeDepth       = errors.New(f("include nesting too deep"))
	ErrLabelInvalid       = errors.New(f("label name invalid"))
)

// ErrParseNumber indicates a token that must be a number, but is not.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseString indicates a malformed quoted string.
type ErrParseString string

func (err ErrParseString) Error() string {
	return f("'%v' is not a quoted string", string(err))
}

// ErrParseExpression indicates a $(...) expression that does not evaluate
// to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrSyntax locates an assembly failure in the source.
type ErrSyntax struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("%v:%d '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrLabelDuplicate is a second definition of a label.
// File and LineNo locate the first definition.
type ErrLabelDuplicate struct {
	Name   string
	File   string
	LineNo int
}

func (err *ErrLabelDuplicate) Error() string {
	return f("duplicate label: %v, first defined at %v:%d", err.Name, err.File, err.LineNo)
}

// ErrLabelMissing is a label that was referenced, but never defined.
type ErrLabelMissing struct {
	Name  string
	Sites []Site
}

func (err *ErrLabelMissing) Error() string {
	refs := make([]string, len(err.Sites))
	for n, site := range err.Sites {
		refs[n] = f("%v:%d", site.File, site.LineNo)
	}
	return f("no such label: %v, referenced from %v", err.Name, strings.Join(refs, ", "))
}

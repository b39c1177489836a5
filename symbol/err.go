package symbol

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	ErrFieldMissing = errors.New(f("missing fields"))
	ErrFieldInvalid = errors.New(f("invalid field"))
)

// ErrParse indicates a malformed debug symbol record.
type ErrParse struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrParse) Error() string {
	return f("symbols line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}

package debugger

import (
	"errors"
	"strings"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	ErrCommandNotFound  = errors.New(f("no such command, type help for more information"))
	ErrCommandAmbiguous = errors.New(f("command is ambiguous"))
	ErrBreakpointIndex  = errors.New(f("invalid breakpoint index"))
	ErrBreakpointAction = errors.New(f("no such breakpoint action, see help break"))
	ErrLineNotFound     = errors.New(f("line not found in debug symbols"))
	ErrNameNotFound     = errors.New(f("function/label not found in debug symbols"))
	ErrNoSourceFile     = errors.New(f("current address (pc) not associated with a source file"))
	ErrNumberInvalid    = errors.New(f("expected literal"))
)

// ErrAmbiguous lists the commands matching an ambiguous prefix.
type ErrAmbiguous struct {
	Names []string
}

func (err *ErrAmbiguous) Error() string {
	return f("ambiguous, what did you mean? %s", strings.Join(err.Names, " "))
}

func (err *ErrAmbiguous) Unwrap() error {
	return ErrCommandAmbiguous
}

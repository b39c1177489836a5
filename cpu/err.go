package cpu

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	ErrSyscallInvalid = errors.New(f("invalid syscall"))
	ErrDivideByZero   = errors.New(f("division by zero"))
)

package io

import (
	"errors"

	"github.com/ezrec/dcpu16/translate"
)

var f = translate.From

var (
	// Image errors
	ErrByteOrder = errors.New(f("byte order must be l(e) or b(e)"))

	// Tape errors
	ErrTapeInput  = errors.New(f("tape has no input"))
	ErrTapeOutput = errors.New(f("tape has no output"))
)

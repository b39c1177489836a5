package io

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Tape is the console device of the interpreter. Lines are read from
// Input, and strings are written to Output.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

// ReadLine returns the next line of input, without its line terminator.
// io.EOF is returned only if no characters were read.
func (tc *Tape) ReadLine() (line string, err error) {
	if tc.Input == nil {
		err = ErrTapeInput
		return
	}

	if tc.reader == nil || tc.source != tc.Input {
		tc.reader = bufio.NewReader(tc.Input)
		tc.source = tc.Input
	}

	line, err = tc.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) > 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}

// WriteString writes text to the output.
func (tc *Tape) WriteString(text string) (err error) {
	if tc.Output == nil {
		err = ErrTapeOutput
		return
	}

	_, err = io.WriteString(tc.Output, text)
	return
}

package asm

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// sourceLines iterates over the lines of r. A carriage return ends the
// line, and a ';' starts a comment running to the end of the line.
func sourceLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := scanner.Text()
			if n := strings.IndexAny(line, "\r;"); n >= 0 {
				line = line[:n]
			}
			if !yield(line, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}

// isSeparator is true for whitespace and commas.
func isSeparator(c byte) bool {
	return c <= ' ' || c == ','
}

// quoteEnd returns the closing character of a quoting region.
func quoteEnd(c byte) (end byte, ok bool) {
	switch c {
	case '"':
		return '"', true
	case '\'':
		return '\'', true
	case '[':
		return ']', true
	}
	return 0, false
}

// tokenize splits a line into whitespace or comma separated tokens.
// Quoted strings and [...] regions may hold separators.
func tokenize(line string) (tokens []string, err error) {
	for at := 0; at < len(line); {
		for at < len(line) && isSeparator(line[at]) {
			at++
		}
		if at == len(line) {
			break
		}

		start := at
		var expecting byte
		for at < len(line) && (expecting != 0 || !isSeparator(line[at])) {
			c := line[at]
			if expecting != 0 {
				if c == expecting {
					expecting = 0
				}
			} else if end, ok := quoteEnd(c); ok {
				expecting = end
			}
			at++
		}

		if expecting != 0 {
			err = ErrQuoteUnterminated
			return
		}

		tokens = append(tokens, line[start:at])
	}

	return
}

// unquote removes the quotes of a "..." or '...' token.
func unquote(token string) (text string, ok bool) {
	if len(token) < 2 {
		return
	}
	first, last := token[0], token[len(token)-1]
	if (first == '"' || first == '\'') && first == last {
		return token[1 : len(token)-1], true
	}
	return
}

package asm

import (
	"fmt"
	"regexp"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var exprRegexp = regexp.MustCompile(`\$\([^\$]*\)`)

// predeclared returns the numeric defines as expression globals.
func (asm *Assembler) predeclared(src *source) starlark.StringDict {
	pred := starlark.StringDict{
		"LINENO": starlark.MakeInt(src.lineNo),
	}
	for key, str := range asm.defines {
		value, ok, err := parseLiteral(str)
		if !ok || err != nil {
			// Non-numeric defines may be registers or operands.
			continue
		}
		pred[key] = starlark.MakeInt(int(value))
	}
	return pred
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(src *source, expr string) (value uint16, err error) {
	thread := starlark.Thread{Name: src.file}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, asm.predeclared(src))
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// expandExpressions replaces every $(...) in the line by its value.
func (asm *Assembler) expandExpressions(src *source, line string) (expanded string, err error) {
	expanded = exprRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(src, str[2:len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%#x", value)
	})
	return
}

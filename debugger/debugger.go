package debugger

import (
	"io/fs"
	"os"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/dcpu16/cpu"
	dio "github.com/ezrec/dcpu16/io"
	"github.com/ezrec/dcpu16/symbol"
)

// RUN_FOREVER runs until a breakpoint, or an interrupt.
const RUN_FOREVER = -1

// Debugger state.
type Debugger struct {
	Console     *dio.Tape    // Command input and output.
	Symbols     symbol.Table // Debug symbols of the program.
	Breakpoints []Breakpoint // Breakpoints, in order of creation.
	Sources     fs.FS        // If set, source files are read from here.

	run         int // Instructions to run before the next prompt.
	showNext    bool
	quit        bool
	interrupted atomic.Bool
	sources     map[string][]string
}

// NewDebugger creates a debugger, and installs it as the inspector of c.
// Execution stops at the first instruction.
func NewDebugger(c *cpu.Cpu, console *dio.Tape) (dbg *Debugger) {
	dbg = &Debugger{
		Console: console,
	}

	c.Inspector = dbg
	return
}

// LoadSymbols reads a debug symbol file.
func (dbg *Debugger) LoadSymbols(filename string) (err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	_, err = dbg.Symbols.ReadFrom(file)
	if err != nil {
		return
	}

	logrus.WithFields(logrus.Fields{
		"file":    filename,
		"symbols": len(dbg.Symbols.Symbols),
	}).Debug("debugger: symbols loaded")
	return
}

// Interrupt requests that execution stops at the next instruction. It is
// safe to call from a signal handler goroutine.
func (dbg *Debugger) Interrupt() {
	dbg.interrupted.Store(true)
}

// Quitting is true once the user has quit the debugger.
func (dbg *Debugger) Quitting() bool {
	return dbg.quit
}

// printf writes a translated message to the console.
func (dbg *Debugger) printf(format string, args ...any) {
	err := dbg.Console.WriteString(f(format, args...))
	if err != nil {
		logrus.Warn(err)
	}
}

// Inspect is called before every instruction, and enters the command
// loop on a breakpoint or when the run count is exhausted.
func (dbg *Debugger) Inspect(c *cpu.Cpu) {
	if dbg.quit {
		return
	}

	if dbg.interrupted.Swap(false) {
		dbg.printf("\nbreak\n")
		dbg.run = 0
	}

	for n, bp := range dbg.Breakpoints {
		if bp.Enabled && bp.Addr == c.Pc {
			dbg.printf("hit breakpoint: %d %v\n", n, bp)
			dbg.run = 0
		}
	}

	if dbg.run != 0 {
		if dbg.run > 0 {
			dbg.run--
		}
		return
	}

	dbg.prompt(c)
}

// Finished is called when the program terminates, and runs the command
// loop until the program is restarted or the user quits.
func (dbg *Debugger) Finished(c *cpu.Cpu) (again bool) {
	if dbg.quit {
		return
	}

	dbg.printf("program finished\n")
	dbg.run = 0
	for c.Exited() && !dbg.quit {
		dbg.prompt(c)
	}

	again = !dbg.quit
	return
}

// prompt runs the command loop until a command resumes execution.
func (dbg *Debugger) prompt(c *cpu.Cpu) {
	if dbg.showNext {
		dbg.where(c)
		dbg.showNext = false
	}

	for done := false; !done; {
		dbg.printf("> ")

		line, err := dbg.Console.ReadLine()
		if err != nil {
			dbg.printf("quit\n")
			dbg.cmdQuit(c, nil)
			return
		}

		args := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(args) == 0 {
			continue
		}

		cmd, err := lookupCommand(args[0])
		if err != nil {
			dbg.printf("%s - %v\n", args[0], err)
			continue
		}

		done = cmd.handler(dbg, c, args)
	}
}

// sourceLine returns the text of a line of a source file.
func (dbg *Debugger) sourceLine(file string, line int) string {
	lines, ok := dbg.sources[file]
	if !ok {
		var data []byte
		var err error
		if dbg.Sources != nil {
			data, err = fs.ReadFile(dbg.Sources, file)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"file": file,
			}).Debug(err)
		} else {
			lines = strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		}
		if dbg.sources == nil {
			dbg.sources = map[string][]string{}
		}
		dbg.sources[file] = lines
	}

	if line < 1 || line > len(lines) {
		return "(????)"
	}
	return lines[line-1]
}

// where shows the source line of the PC.
func (dbg *Debugger) where(c *cpu.Cpu) {
	sym := dbg.Symbols.Lookup(c.Pc)
	if sym == nil {
		dbg.printf("0x%04x: unknown\n", c.Pc)
		return
	}

	dbg.printf("%04x (%04x-%04x) %s:%d %s\n",
		c.Pc, sym.Addr, int(sym.Addr)+sym.Length, sym.File, sym.Line,
		dbg.sourceLine(sym.File, sym.Line))
}

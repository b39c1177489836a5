package debugger

import (
	"strconv"
	"strings"

	"github.com/beevik/prefixtree"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/isa"
)

// command is a debugger command. The handler returns true to resume
// execution.
type command struct {
	name        string
	description string
	help        string
	handler     func(dbg *Debugger, c *cpu.Cpu, args []string) (done bool)
}

var commands []*command
var commandTree *prefixtree.Tree

func init() {
	commands = []*command{
		{"help", "this command",
			"  help            lists all commands\n" +
				"  help [command]  shows help about [command]\n",
			(*Debugger).cmdHelp},
		{"break", "adds, enables, disables or removes a breakpoint",
			"  adding breakpoints\n" +
				"    break add *[addr]          adds a breakpoint at address [addr]\n" +
				"    break add +[offset]        adds a breakpoint at current pc + [offset]\n" +
				"    break add -[offset]        adds a breakpoint at current pc - [offset]\n" +
				"    break add [source]:[line]  adds a breakpoint at the given line [line] in the source file [source]\n" +
				"    break add [line]           adds a breakpoint at the given line [line] in the current source file\n" +
				"    break add [function]       adds a breakpoint at the given [function] (label)\n" +
				"\n" +
				"  managing breakpoints\n" +
				"    break list                 lists and enumerates breakpoints\n" +
				"    break remove [index]       removes breakpoint at given index\n" +
				"    break enable [index]       enables breakpoint at given index\n" +
				"    break disable [index]      disables breakpoint at given index\n",
			(*Debugger).cmdBreak},
		{"continue", "continues execution",
			"  continue ([n ins])   continues execution and runs the specified number of instructions, or forever if nothing is specified.\n",
			(*Debugger).cmdContinue},
		{"print", "prints status information",
			"  print [r] ([r], [r]...) where r is a|b|c|x|y|z|i|j|o|sp|pc|regs|stack|[addr]|[label]\n" +
				"                  prints the value of the given register(s), memory or stack\n",
			(*Debugger).cmdPrint},
		{"quit", "quits the debugger",
			"  quit            quits the debugger\n",
			(*Debugger).cmdQuit},
		{"run", "runs the program",
			"  run ([n ins])   runs the program from the start, for the specified number of instructions, or forever if nothing is specified.\n",
			(*Debugger).cmdRun},
		{"step", "steps one instruction in the program",
			"  step            steps one instruction in the program.\n",
			(*Debugger).cmdStep},
		{"where", "shows the current line of code",
			"  where           shows the current line of code from the source file.\n",
			(*Debugger).cmdWhere},
	}

	commandTree = prefixtree.New()
	for _, cmd := range commands {
		commandTree.Add(cmd.name, cmd)
	}
}

// lookupCommand finds a command by an unambiguous prefix of its name.
func lookupCommand(name string) (cmd *command, err error) {
	value, err := commandTree.Find(strings.ToLower(name))
	switch err {
	case nil:
		cmd = value.(*command)
	case prefixtree.ErrPrefixAmbiguous:
		var names []string
		for _, cmd := range commands {
			if strings.HasPrefix(cmd.name, strings.ToLower(name)) {
				names = append(names, cmd.name)
			}
		}
		err = &ErrAmbiguous{Names: names}
	default:
		err = ErrCommandNotFound
	}
	return
}

func (dbg *Debugger) cmdHelp(c *cpu.Cpu, args []string) (done bool) {
	if len(args) == 1 {
		dbg.printf("\navailable commands:\n")
		for _, cmd := range commands {
			dbg.printf("  %-10s %s\n", cmd.name, cmd.description)
		}
		return
	}

	cmd, err := lookupCommand(args[1])
	if err != nil {
		dbg.printf("no help for: %s\n", args[1])
		return
	}

	dbg.printf("\n%s usage:\n%s\n", cmd.name, cmd.help)
	return
}

func (dbg *Debugger) cmdBreak(c *cpu.Cpu, args []string) (done bool) {
	if len(args) < 2 {
		dbg.printf("break expects at least 1 argument, see help break\n")
		return
	}

	action := strings.ToLower(args[1])
	if (action == "list" && len(args) != 2) || (action != "list" && len(args) != 3) {
		dbg.printf("invalid action or number of arguments, see help break\n")
		return
	}

	if action == "list" {
		dbg.breakList()
		return
	}

	if action == "add" {
		addr, err := dbg.AddBreakpoint(c, args[2])
		if err != nil {
			dbg.printf("%s: %v\n", args[2], err)
			return
		}
		dbg.printf("added breakpoint at address 0x%04x\n", addr)
		return
	}

	index, err := strconv.Atoi(args[2])
	if err != nil {
		index = -1
	}

	var message string
	switch action {
	case "remove":
		err = dbg.RemoveBreakpoint(index)
		message = "removed breakpoint: %d\n"
	case "enable":
		err = dbg.EnableBreakpoint(index, true)
		message = "enabled breakpoint: %d\n"
	case "disable":
		err = dbg.EnableBreakpoint(index, false)
		message = "disabled breakpoint: %d\n"
	default:
		err = ErrBreakpointAction
	}

	if err != nil {
		dbg.printf("%s: %v\n", args[1], err)
		return
	}

	dbg.printf(message, index)
	return
}

// breakList shows the breakpoints, and their source locations.
func (dbg *Debugger) breakList() {
	tw := table.NewWriter()
	tw.SetTitle(f("current breakpoints"))
	tw.AppendHeader(table.Row{"#", f("Address"), f("State"), f("Source")})
	for n, bp := range dbg.Breakpoints {
		state := "disabled"
		if bp.Enabled {
			state = "enabled"
		}
		source := ""
		if sym := dbg.Symbols.Lookup(bp.Addr); sym != nil {
			source = f("%s:%d", sym.File, sym.Line)
		}
		tw.AppendRow(table.Row{n, f("0x%04x", bp.Addr), f(state), source})
	}
	dbg.printf("%s\n", tw.Render())
}

// runCount parses the optional instruction count of continue and run.
func (dbg *Debugger) runCount(args []string) (ok bool) {
	if len(args) == 1 {
		dbg.run = RUN_FOREVER
		return true
	}

	count, err := strconv.ParseUint(args[1], 10, 31)
	if err != nil {
		dbg.printf("%v\n", ErrNumberInvalid)
		return false
	}

	// The current instruction is the first of the count.
	dbg.run = max(int(count)-1, 0)
	return true
}

func (dbg *Debugger) cmdContinue(c *cpu.Cpu, args []string) (done bool) {
	return dbg.runCount(args)
}

func (dbg *Debugger) cmdRun(c *cpu.Cpu, args []string) (done bool) {
	if c.Pc != 0 && !c.Exited() {
		dbg.printf("program already running, restart? (y/n) ")
		answer, err := dbg.Console.ReadLine()
		if err != nil || !strings.HasPrefix(strings.TrimSpace(answer), "y") {
			return
		}
	}

	if !dbg.runCount(args) {
		return
	}

	c.SetExit(false)
	c.Pc = 0
	return true
}

func (dbg *Debugger) cmdStep(c *cpu.Cpu, args []string) (done bool) {
	dbg.run = 0
	dbg.showNext = true
	return true
}

func (dbg *Debugger) cmdWhere(c *cpu.Cpu, args []string) (done bool) {
	dbg.where(c)
	return
}

func (dbg *Debugger) cmdQuit(c *cpu.Cpu, args []string) (done bool) {
	dbg.quit = true
	dbg.run = RUN_FOREVER
	c.SetExit(true)
	return true
}

func (dbg *Debugger) cmdPrint(c *cpu.Cpu, args []string) (done bool) {
	if len(args) < 2 {
		dbg.printf("print requires at least 1 arguments\n")
		return
	}

	for _, what := range args[1:] {
		if loc, ok := cpu.LookupLocation(what); ok {
			dbg.printf("%s: 0x%04x\n", what, loc.Read(c))
			continue
		}

		switch strings.ToLower(what) {
		case "regs":
			dbg.printRegs(c)
			continue
		case "stack":
			dbg.printStack(c)
			continue
		}

		if addr, err := parseNumber(what); err == nil {
			dbg.printf("[0x%04x]: 0x%04x\n", addr, c.Memory[addr])
			continue
		}

		if sym := dbg.Symbols.ByName(what); sym != nil {
			dbg.printf("[%s (0x%04x)]: 0x%04x\n", what, sym.Addr, c.Memory[sym.Addr])
			continue
		}

		dbg.printf("I don't know what a '%s' is\n", what)
	}

	return
}

// printRegs shows all registers as a table.
func (dbg *Debugger) printRegs(c *cpu.Cpu) {
	header := table.Row{}
	row := table.Row{}
	for n, val := range c.Register {
		header = append(header, isa.CodeReg(n).String())
		row = append(row, f("0x%04x", val))
	}
	header = append(header, "SP", "PC", "O")
	row = append(row, f("0x%04x", c.Sp), f("0x%04x", c.Pc), f("0x%04x", c.O))

	tw := table.NewWriter()
	tw.AppendHeader(header)
	tw.AppendRow(row)
	dbg.printf("%s\n", tw.Render())
}

// printStack shows the stack, from the top.
func (dbg *Debugger) printStack(c *cpu.Cpu) {
	empty := true
	for addr, value := range c.Stack() {
		dbg.printf("  0x%04x: 0x%04x\n", addr, value)
		empty = false
	}
	if empty {
		dbg.printf("  (empty)\n")
	}
}

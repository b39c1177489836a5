package debugger_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing/fstest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/ezrec/dcpu16/asm"
	"github.com/ezrec/dcpu16/cpu"
	"github.com/ezrec/dcpu16/debugger"
	"github.com/ezrec/dcpu16/emulator"
	"github.com/ezrec/dcpu16/isa"
	"github.com/ezrec/dcpu16/symbol"
)

var source = []string{
	"; test program",
	":start  SET A, 1",
	"        SET B, 2",
	"",
	"        JSR sub",
	"        SYS SYS_EXIT",
	":sub    ADD A, B",
	"        SET PC, POP",
}

func say(text string) OmegaMatcher {
	return gbytes.Say(regexp.QuoteMeta(text))
}

var _ = Describe("Debugger", func() {
	var (
		fsys   fstest.MapFS
		emu    *emulator.Emulator
		dbg    *debugger.Debugger
		output *gbytes.Buffer
	)

	commands := func(lines ...string) {
		emu.Tape.Input = strings.NewReader(strings.Join(lines, "\n") + "\n")
	}

	BeforeEach(func() {
		fsys = fstest.MapFS{
			"main.s": &fstest.MapFile{Data: []byte(strings.Join(source, "\n"))},
		}

		emu = emulator.NewEmulator()

		as := &asm.Assembler{Symbols: &symbol.Table{}}
		for name, value := range emu.Defines() {
			as.Predefine(name, value)
		}
		_, err := as.Assemble(fsys, "main.s")
		Expect(err).NotTo(HaveOccurred())
		emu.Cpu.Memory = as.Memory

		output = gbytes.NewBuffer()
		emu.Tape.Output = output

		dbg = debugger.NewDebugger(emu.Cpu, &emu.Tape)
		dbg.Symbols = *as.Symbols
		dbg.Sources = fsys
		emu.Monitor = dbg
	})

	It("should stop at a file:line breakpoint", func() {
		commands(
			"break add main.s:4",
			"continue",
			"print pc",
			"continue",
		)

		result, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(uint16(3)))

		sym := dbg.Symbols.ByLine("main.s", 4)
		Expect(sym).NotTo(BeNil())
		Expect(sym.Line).To(Equal(5))

		Expect(output).To(say("added breakpoint at address 0x0002"))
		Expect(output).To(say("hit breakpoint: 0 0x0002 enabled"))
		Expect(output).To(say("pc: 0x0002"))
		Expect(output).To(say("program finished"))
		Expect(output).To(say("quit"))
		Expect(dbg.Quitting()).To(BeTrue())
	})

	It("should step and show the source line", func() {
		commands("step", "step", "where", "quit")

		result, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(uint16(1)))
		Expect(emu.Cpu.Pc).To(Equal(uint16(2)))

		Expect(output).To(say("0001 (0001-0002) main.s:3         SET B, 2"))
		Expect(output).To(say("0002 (0002-0004) main.s:5         JSR sub"))
		Expect(output).To(say("0002 (0002-0004) main.s:5         JSR sub"))
		Expect(output).NotTo(say("program finished"))
	})

	It("should print registers, memory and symbols", func() {
		emu.Cpu.Register[isa.REG_B] = 0xbeef
		commands("print a B regs stack 0x0005 sub nothing", "quit")

		_, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())

		add := isa.MakeCode(isa.OP_ADD, isa.MakeReg(isa.REG_A), isa.MakeReg(isa.REG_B)).Word
		Expect(add).To(Equal(uint16(0x0402)))

		Expect(output).To(say("a: 0x0000"))
		Expect(output).To(say("B: 0xbeef"))
		Expect(output).To(say("SP"))
		Expect(output).To(say("0xbeef"))
		Expect(output).To(say("(empty)"))
		Expect(output).To(say("[0x0005]: 0x0402"))
		Expect(output).To(say("[sub (0x0005)]: 0x0402"))
		Expect(output).To(say("I don't know what a 'nothing' is"))
	})

	It("should print the stack from the top", func() {
		commands("break add sub", "continue", "print stack", "quit")

		_, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(output).To(say("hit breakpoint: 0 0x0005 enabled"))
		Expect(output).To(say("  0xffff: 0x0004"))
	})

	It("should manage breakpoints", func() {
		commands(
			"break add *5",
			"break add start",
			"break add +1",
			"break add 7",
			"break add 99",
			"break add nope",
			"break disable 0",
			"break remove 1",
			"break remove 7",
			"break frob 1",
			"break",
			"break list",
			"quit",
		)

		_, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(dbg.Breakpoints).To(Equal([]debugger.Breakpoint{
			{Addr: 5, Enabled: false},
			{Addr: 1, Enabled: true},
			{Addr: 5, Enabled: true},
		}))

		Expect(output).To(say("added breakpoint at address 0x0005"))
		Expect(output).To(say("added breakpoint at address 0x0000"))
		Expect(output).To(say("added breakpoint at address 0x0001"))
		Expect(output).To(say("added breakpoint at address 0x0005"))
		Expect(output).To(say("99: " + debugger.ErrLineNotFound.Error()))
		Expect(output).To(say("nope: " + debugger.ErrNameNotFound.Error()))
		Expect(output).To(say("disabled breakpoint: 0"))
		Expect(output).To(say("removed breakpoint: 1"))
		Expect(output).To(say("remove: " + debugger.ErrBreakpointIndex.Error()))
		Expect(output).To(say("frob: " + debugger.ErrBreakpointAction.Error()))
		Expect(output).To(say("break expects at least 1 argument"))
		Expect(output).To(say("0x0005"))
		Expect(output).To(say("disabled"))
		Expect(output).To(say("main.s:7"))
	})

	It("should match command prefixes", func() {
		commands("xyzzy", "h", "help br", "w", "q")

		_, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(output).To(say("xyzzy - " + debugger.ErrCommandNotFound.Error()))
		Expect(output).To(say("available commands:"))
		Expect(output).To(say("continue"))
		Expect(output).To(say("break usage:"))
		Expect(output).To(say("0000 (0000-0001) main.s:2 :start  SET A, 1"))
		Expect(dbg.Quitting()).To(BeTrue())
	})

	It("should restart a finished program", func() {
		commands("continue", "run", "quit")

		result, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(uint16(3)))

		Expect(output).To(say("program finished"))
		Expect(output).To(say("program finished"))
		Expect(emu.Cpu.Ticks).To(BeNumerically(">", 0))
	})

	It("should ask before restarting a running program", func() {
		commands("break add sub", "continue", "run", "n", "run", "y", "print a", "quit")

		_, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(output).To(say("hit breakpoint"))
		Expect(output).To(say("restart? (y/n)"))
		Expect(output).To(say("restart? (y/n)"))
		Expect(output).To(say("hit breakpoint"))
		Expect(output).To(say("a: 0x0001"))
	})

	It("should quit at end of input", func() {
		commands("continue 2")

		result, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(uint16(1)))
		Expect(emu.Cpu.Pc).To(Equal(uint16(2)))
		Expect(dbg.Quitting()).To(BeTrue())
	})

	It("should stop on interrupt", func() {
		c := &cpu.Cpu{}
		dbg := debugger.NewDebugger(c, &emu.Tape)
		commands("continue", "quit")

		dbg.Inspect(c)
		Expect(dbg.Quitting()).To(BeFalse())
		dbg.Inspect(c)

		dbg.Interrupt()
		dbg.Inspect(c)
		Expect(output).To(say("break"))
		Expect(dbg.Quitting()).To(BeTrue())
		Expect(c.Exited()).To(BeTrue())
	})

	It("should load symbols from a file", func() {
		dir := GinkgoT().TempDir()
		filename := filepath.Join(dir, "main.bin.dbg")

		file, err := os.Create(filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = dbg.Symbols.WriteTo(file)
		Expect(err).NotTo(HaveOccurred())
		Expect(file.Close()).To(Succeed())

		other := debugger.NewDebugger(&cpu.Cpu{}, &emu.Tape)
		Expect(other.LoadSymbols(filename)).To(Succeed())
		Expect(other.Symbols).To(Equal(dbg.Symbols))

		Expect(other.LoadSymbols(filepath.Join(dir, "missing.dbg"))).NotTo(Succeed())
	})

	It("should find labels of reserved space", func() {
		fsys["buf.s"] = &fstest.MapFile{Data: []byte(strings.Join([]string{
			":start  SET [buf], 7",
			"        SYS SYS_EXIT",
			":buf    .RESERVE 2",
		}, "\n"))}

		as := &asm.Assembler{Symbols: &symbol.Table{}}
		for name, value := range emu.Defines() {
			as.Predefine(name, value)
		}
		_, err := as.Assemble(fsys, "buf.s")
		Expect(err).NotTo(HaveOccurred())
		emu.Cpu.Memory = as.Memory
		dbg.Symbols = *as.Symbols

		commands("break add buf", "print buf", "continue", "print buf", "quit")

		result, err := emu.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(uint16(0)))

		Expect(output).To(say("added breakpoint at address 0x0003"))
		Expect(output).To(say("[buf (0x0003)]: 0x0000"))
		Expect(output).To(say("program finished"))
		Expect(output).To(say("[buf (0x0003)]: 0x0007"))
	})
})

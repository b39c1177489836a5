// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/dcpu16/debugger"
	"github.com/ezrec/dcpu16/emulator"
	"github.com/ezrec/dcpu16/internal"
	dio "github.com/ezrec/dcpu16/io"
	"github.com/ezrec/dcpu16/isa"
)

var (
	verbosity int
	endian    string
	debug     bool
	exitCode  int
)

var drunCmd = &cobra.Command{
	Use:   "drun [flags] image",
	Short: "DCPU-16 interpreter",
	Long: `Drun runs a DCPU-16 memory image.

The exit code is the value of register A when the program terminates.
With -d, the program runs under the debugger, using the debug symbols
of the image path plus ".dbg" if present.
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		logrus.SetLevel(internal.LogLevel(verbosity))
		exitCode, err = run(args[0])
		return
	},
}

func init() {
	drunCmd.Flags().IntVarP(&verbosity, "verbose", "v", internal.DEFAULT_VERBOSITY, "log level, 0 (trace) to 5 (fatal)")
	drunCmd.Flags().StringVarP(&endian, "endian", "e", "l", "image byte order, l(ittle) or b(ig)")
	drunCmd.Flags().BoolVarP(&debug, "debug", "d", false, "start with debugger")
}

func run(image string) (code int, err error) {
	order, err := dio.ParseByteOrder(endian)
	if err != nil {
		return
	}

	emu := emulator.NewEmulator()
	emu.Tape.Input = os.Stdin
	emu.Tape.Output = os.Stdout

	atexit.Register(func() {
		logrus.WithFields(logrus.Fields{
			"pc":    emu.Cpu.Pc,
			"ticks": emu.Cpu.Ticks,
		}).Debug("drun: exit")
	})

	file, err := os.Open(image)
	if err != nil {
		return
	}
	_, err = emu.Load(file, order)
	file.Close()
	if err != nil {
		return
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		dumpRam(emu, "before execution")
	}

	var dbg *debugger.Debugger
	if debug {
		dbg = debugger.NewDebugger(emu.Cpu, &emu.Tape)
		symbols := image + ".dbg"
		err = dbg.LoadSymbols(symbols)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"file": symbols,
			}).Warn(err)
			err = nil
		}
		emu.Monitor = dbg

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(interrupt)
		go func() {
			for range interrupt {
				dbg.Interrupt()
			}
		}()
	}

	result, err := emu.Run()
	if err != nil {
		return
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		dumpRam(emu, "after execution")
	}

	if dbg != nil && dbg.Quitting() {
		return
	}

	code = int(result)
	return
}

// dumpRam logs the used memory.
func dumpRam(emu *emulator.Emulator, when string) {
	used := isa.Used(emu.Cpu.Memory[:])
	for addr := 0; addr < used; addr += 8 {
		logrus.WithFields(logrus.Fields{
			"addr": addr,
		}).Debugf("%s: %04x", when, emu.Cpu.Memory[addr:min(addr+8, used)])
	}
}

func main() {
	err := drunCmd.Execute()
	if err != nil {
		logrus.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(exitCode)
}

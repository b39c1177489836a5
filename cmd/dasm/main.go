// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/dcpu16/asm"
	"github.com/ezrec/dcpu16/emulator"
	"github.com/ezrec/dcpu16/internal"
	dio "github.com/ezrec/dcpu16/io"
	"github.com/ezrec/dcpu16/isa"
	"github.com/ezrec/dcpu16/symbol"
)

var (
	verbosity int
	start     string
	endian    string
	debug     bool
)

var dasmCmd = &cobra.Command{
	Use:   "dasm [flags] input output",
	Short: "DCPU-16 assembler",
	Long: `Dasm assembles a DCPU-16 source file into a memory image.

The image is a sequence of 16-bit words, trailing zero words trimmed.
Included and binary files are relative to the directory of the input.
With -d, debug symbols are written to the output path plus ".dbg".
`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetLevel(internal.LogLevel(verbosity))
		return assemble(args[0], args[1])
	},
}

func init() {
	dasmCmd.Flags().IntVarP(&verbosity, "verbose", "v", internal.DEFAULT_VERBOSITY, "log level, 0 (trace) to 5 (fatal)")
	dasmCmd.Flags().StringVarP(&start, "start", "s", "0", "start address, in hex")
	dasmCmd.Flags().StringVarP(&endian, "endian", "e", "l", "image byte order, l(ittle) or b(ig)")
	dasmCmd.Flags().BoolVarP(&debug, "debug", "d", false, "write debug symbols")
}

func assemble(input string, output string) (err error) {
	order, err := dio.ParseByteOrder(endian)
	if err != nil {
		return
	}

	origin, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(start), "0x"), 16, 16)
	if err != nil {
		return
	}

	as := &asm.Assembler{Start: uint16(origin)}
	if debug {
		as.Symbols = &symbol.Table{}
	}

	emu := emulator.NewEmulator()
	for name, value := range emu.Defines() {
		as.Predefine(name, value)
	}

	cursor, err := as.AssembleFile(input)
	if err != nil {
		return
	}

	logrus.WithFields(logrus.Fields{
		"input": input,
		"words": cursor - int(as.Start),
		"used":  isa.Used(as.Memory[:]),
	}).Info("assembled")

	err = writeFile(output, func(file *os.File) error {
		return dio.SaveImage(file, as.Memory[:], order)
	})
	if err != nil {
		return
	}

	if as.Symbols != nil {
		err = writeFile(output+".dbg", func(file *os.File) (err error) {
			_, err = as.Symbols.WriteTo(file)
			return
		})
	}

	return
}

// writeFile creates a file, and fills it with write.
func writeFile(filename string, write func(file *os.File) error) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		cerr := file.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = write(file)
	return
}

func main() {
	err := dasmCmd.Execute()
	if err != nil {
		logrus.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

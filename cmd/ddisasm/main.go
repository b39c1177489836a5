// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/dcpu16/internal"
	dio "github.com/ezrec/dcpu16/io"
	"github.com/ezrec/dcpu16/isa"
	"github.com/ezrec/dcpu16/symbol"
)

var (
	verbosity int
	endian    string
	debug     bool
)

var ddisasmCmd = &cobra.Command{
	Use:   "ddisasm [flags] image",
	Short: "DCPU-16 disassembler",
	Long: `Ddisasm lists the instructions of a DCPU-16 memory image.

With -d, the source line and labels of each instruction are listed from
the debug symbols of the image path plus ".dbg".
`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetLevel(internal.LogLevel(verbosity))
		return disassemble(args[0])
	},
}

func init() {
	ddisasmCmd.Flags().IntVarP(&verbosity, "verbose", "v", internal.DEFAULT_VERBOSITY, "log level, 0 (trace) to 5 (fatal)")
	ddisasmCmd.Flags().StringVarP(&endian, "endian", "e", "l", "image byte order, l(ittle) or b(ig)")
	ddisasmCmd.Flags().BoolVarP(&debug, "debug", "d", false, "show debug symbols")
}

func disassemble(image string) (err error) {
	order, err := dio.ParseByteOrder(endian)
	if err != nil {
		return
	}

	file, err := os.Open(image)
	if err != nil {
		return
	}
	defer file.Close()

	mem := make([]uint16, isa.MEMORY_SIZE)
	_, err = dio.LoadImage(file, mem, order)
	if err != nil {
		return
	}

	var symbols symbol.Table
	if debug {
		err = readSymbols(&symbols, image+".dbg")
		if err != nil {
			return
		}
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	header := table.Row{"Address", "Words", "Instruction"}
	if debug {
		header = append(header, "Source", "Labels")
	}
	tw.AppendHeader(header)

	for addr, code := range isa.Listing(mem, 0, isa.Used(mem)) {
		words := make([]string, 0, 3)
		for _, word := range code.Words() {
			words = append(words, fmt.Sprintf("%04x", word))
		}
		row := table.Row{fmt.Sprintf("0x%04x", addr), strings.Join(words, " "), code.String()}
		if debug {
			var source, labels string
			if sym := symbols.Lookup(addr); sym != nil {
				source = fmt.Sprintf("%s:%d", sym.File, sym.Line)
				if sym.Addr == addr {
					labels = strings.Join(sym.Names, " ")
				}
			}
			row = append(row, source, labels)
		}
		tw.AppendRow(row)
	}
	tw.Render()

	return
}

// readSymbols reads a debug symbol file.
func readSymbols(symbols *symbol.Table, filename string) (err error) {
	file, err := os.Open(filename)
	if err != nil {
		return
	}
	defer file.Close()

	_, err = symbols.ReadFrom(file)
	return
}

func main() {
	err := ddisasmCmd.Execute()
	if err != nil {
		logrus.Error(err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

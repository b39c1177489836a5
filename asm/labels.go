package asm

import (
	"errors"
	"iter"

	"github.com/sirupsen/logrus"
)

// Site is a memory location that refers to a label.
type Site struct {
	Addr     uint16 // Word to patch.
	InsAddr  uint16 // Address of the instruction holding the word.
	File     string // Source file of the reference.
	LineNo   int    // Source line of the reference.
	Relative bool   // Patch with a displacement instead of an address.
}

// Label is a named address, and all the sites that refer to it.
type Label struct {
	Name   string
	Id     int    // Insertion order.
	Addr   uint16 // Defined address.
	Found  bool   // Set once the label is defined.
	File   string // Source file of the definition.
	LineNo int    // Source line of the definition.
	Sites  []Site
}

// Value returns the word to patch into site.
func (label *Label) Value(site Site) uint16 {
	if site.Relative {
		return uint16(-(int(site.Addr) - int(label.Addr)) - 1)
	}
	return label.Addr
}

// Labels is the label table of an assembly.
type Labels struct {
	labels []*Label
	byName map[string]*Label
}

// Reset empties the table.
func (lt *Labels) Reset() {
	lt.labels = nil
	clear(lt.byName)
}

// Lookup finds a label by exact name.
func (lt *Labels) Lookup(name string) *Label {
	return lt.byName[name]
}

// All iterates over the labels in insertion order.
func (lt *Labels) All() iter.Seq[*Label] {
	return func(yield func(*Label) bool) {
		for _, label := range lt.labels {
			if !yield(label) {
				return
			}
		}
	}
}

// add creates a new, undefined, label.
func (lt *Labels) add(name string) (label *Label) {
	if lt.byName == nil {
		lt.byName = make(map[string]*Label, 16)
	}

	label = &Label{Name: name, Id: len(lt.labels)}
	lt.labels = append(lt.labels, label)
	lt.byName[name] = label

	return
}

// Define sets the address of a label.
func (lt *Labels) Define(name string, addr uint16, file string, lineNo int) (err error) {
	label := lt.Lookup(name)
	if label == nil {
		label = lt.add(name)
	} else if label.Found {
		err = &ErrLabelDuplicate{Name: name, File: label.File, LineNo: label.LineNo}
		return
	}

	label.Addr = addr
	label.Found = true
	label.File = file
	label.LineNo = lineNo

	return
}

// Reference records a site that refers to a label, creating the label
// if needed. The label id is returned.
func (lt *Labels) Reference(name string, site uint16, insAddr uint16, file string, lineNo int, relative bool) int {
	label := lt.Lookup(name)
	if label == nil {
		label = lt.add(name)
	}

	label.Sites = append(label.Sites, Site{
		Addr:     site,
		InsAddr:  insAddr,
		File:     file,
		LineNo:   lineNo,
		Relative: relative,
	})

	return label.Id
}

// ResolveAll patches every reference site in mem. All labels that were
// never defined are reported.
func (lt *Labels) ResolveAll(mem []uint16) (err error) {
	var errs []error

	for _, label := range lt.labels {
		if !label.Found {
			errs = append(errs, &ErrLabelMissing{Name: label.Name, Sites: label.Sites})
			continue
		}

		for _, site := range label.Sites {
			value := label.Value(site)
			mem[site.Addr] = value
			logrus.WithFields(logrus.Fields{
				"label":    label.Name,
				"site":     site.Addr,
				"relative": site.Relative,
			}).Tracef("patched 0x%04x", value)
		}
	}

	err = errors.Join(errs...)
	return
}

package cpu

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/dcpu16/isa"
)

// handler executes a decoded instruction. Operand b is re-read after
// writes to a, so an instruction whose operands alias sees its own
// updates.
type handler func(cpu *Cpu, a, b Location) error

var handlers = [...]handler{
	isa.OP_NON_BASIC: (*Cpu).opExtended,
	isa.OP_SET:       (*Cpu).opSet,
	isa.OP_ADD:       (*Cpu).opAdd,
	isa.OP_SUB:       (*Cpu).opSub,
	isa.OP_MUL:       (*Cpu).opMul,
	isa.OP_DIV:       (*Cpu).opDiv,
	isa.OP_MOD:       (*Cpu).opMod,
	isa.OP_SHL:       (*Cpu).opShl,
	isa.OP_SHR:       (*Cpu).opShr,
	isa.OP_AND:       (*Cpu).opAnd,
	isa.OP_BOR:       (*Cpu).opBor,
	isa.OP_XOR:       (*Cpu).opXor,
	isa.OP_IFE:       (*Cpu).opIfe,
	isa.OP_IFN:       (*Cpu).opIfn,
	isa.OP_IFG:       (*Cpu).opIfg,
	isa.OP_IFB:       (*Cpu).opIfb,
}

func (cpu *Cpu) opSet(a, b Location) error {
	cpu.spend(1)
	a.Write(cpu, b.Read(cpu))
	return nil
}

func (cpu *Cpu) opAdd(a, b Location) error {
	cpu.spend(2)
	old := a.Read(cpu)
	a.Write(cpu, old+b.Read(cpu))
	if a.Read(cpu) < old {
		cpu.O = 1
	} else {
		cpu.O = 0
	}
	return nil
}

func (cpu *Cpu) opSub(a, b Location) error {
	cpu.spend(2)
	old := a.Read(cpu)
	a.Write(cpu, old-b.Read(cpu))
	if a.Read(cpu) > old {
		cpu.O = 1
	} else {
		cpu.O = 0
	}
	return nil
}

func (cpu *Cpu) opMul(a, b Location) error {
	cpu.spend(2)
	cpu.O = uint16((uint32(a.Read(cpu)) * uint32(b.Read(cpu))) >> 16)
	a.Write(cpu, a.Read(cpu)*b.Read(cpu))
	return nil
}

func (cpu *Cpu) divideByZero() {
	logrus.WithFields(logrus.Fields{
		"pc": fmt.Sprintf("0x%04x", cpu.Pc),
	}).Debug(ErrDivideByZero)
}

func (cpu *Cpu) opDiv(a, b Location) error {
	cpu.spend(3)
	if b.Read(cpu) == 0 {
		cpu.divideByZero()
		a.Write(cpu, 0)
		cpu.O = 0
		return nil
	}

	cpu.O = uint16((uint32(a.Read(cpu)) << 16) / uint32(b.Read(cpu)))
	divisor := b.Read(cpu)
	if divisor == 0 {
		a.Write(cpu, 0)
		cpu.O = 0
		return nil
	}
	a.Write(cpu, a.Read(cpu)/divisor)
	return nil
}

func (cpu *Cpu) opMod(a, b Location) error {
	cpu.spend(3)
	divisor := b.Read(cpu)
	if divisor == 0 {
		cpu.divideByZero()
		a.Write(cpu, 0)
		return nil
	}
	a.Write(cpu, a.Read(cpu)%divisor)
	return nil
}

func (cpu *Cpu) opShl(a, b Location) error {
	cpu.spend(2)
	cpu.O = uint16((uint64(a.Read(cpu)) << min(b.Read(cpu), 32)) >> 16)
	a.Write(cpu, a.Read(cpu)<<b.Read(cpu))
	return nil
}

// opShr only computes the shifted out bits. A is left unchanged.
func (cpu *Cpu) opShr(a, b Location) error {
	cpu.spend(2)
	cpu.O = uint16((uint32(a.Read(cpu)) << 16) >> b.Read(cpu))
	return nil
}

func (cpu *Cpu) opAnd(a, b Location) error {
	cpu.spend(1)
	a.Write(cpu, a.Read(cpu)&b.Read(cpu))
	return nil
}

func (cpu *Cpu) opBor(a, b Location) error {
	cpu.spend(1)
	a.Write(cpu, a.Read(cpu)|b.Read(cpu))
	return nil
}

func (cpu *Cpu) opXor(a, b Location) error {
	cpu.spend(1)
	a.Write(cpu, a.Read(cpu)^b.Read(cpu))
	return nil
}

// when executes the next instruction only if cond holds.
func (cpu *Cpu) when(cond bool) error {
	cpu.spend(2)
	cpu.skip = !cond
	if cpu.skip {
		cpu.spend(1)
	}
	return nil
}

func (cpu *Cpu) opIfe(a, b Location) error {
	return cpu.when(a.Read(cpu) == b.Read(cpu))
}

func (cpu *Cpu) opIfn(a, b Location) error {
	return cpu.when(a.Read(cpu) != b.Read(cpu))
}

func (cpu *Cpu) opIfg(a, b Location) error {
	return cpu.when(a.Read(cpu) > b.Read(cpu))
}

func (cpu *Cpu) opIfb(a, b Location) error {
	return cpu.when((a.Read(cpu) & b.Read(cpu)) != 0)
}

// opExtended dispatches a non-basic instruction. The extended opcode is
// the immediate a.
func (cpu *Cpu) opExtended(a, b Location) (err error) {
	switch isa.CodeExtOp(a.Read(cpu)) {
	case isa.EXT_OP_JSR:
		cpu.spend(2)
		cpu.Push(cpu.Pc)
		cpu.Pc = b.Read(cpu)
	case isa.EXT_OP_SYS:
		cpu.spend(1)
		err = cpu.syscall(b.Read(cpu))
	default:
		cpu.spend(1)
		logrus.WithFields(logrus.Fields{
			"pc":  fmt.Sprintf("0x%04x", cpu.Pc),
			"ext": a.Read(cpu),
		}).Debug("cpu: unknown extended opcode")
	}
	return
}

// syscall dispatches a system call.
func (cpu *Cpu) syscall(id uint16) (err error) {
	if id == SYS_EXIT {
		logrus.Debug("cpu: exit")
		cpu.exit = true
		return
	}

	call, ok := cpu.syscalls[id]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"pc": fmt.Sprintf("0x%04x", cpu.Pc),
			"id": id,
		}).Warn(ErrSyscallInvalid)
		return
	}

	err = call.handler.Syscall(cpu, call.data)
	return
}

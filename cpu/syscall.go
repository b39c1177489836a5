package cpu

// SyscallHandler services a SYS instruction. The data is the value given
// to SetSyscall.
type SyscallHandler interface {
	Syscall(cpu *Cpu, data any) error
}

// SyscallFunc adapts a function to a SyscallHandler.
type SyscallFunc func(cpu *Cpu, data any) error

// Syscall calls fn.
func (fn SyscallFunc) Syscall(cpu *Cpu, data any) error {
	return fn(cpu, data)
}

// Inspector is called before every instruction step.
type Inspector interface {
	Inspect(cpu *Cpu)
}

// InspectorFunc adapts a function to an Inspector.
type InspectorFunc func(cpu *Cpu)

// Inspect calls fn.
func (fn InspectorFunc) Inspect(cpu *Cpu) {
	fn(cpu)
}

type syscall struct {
	handler SyscallHandler
	data    any
}

// SetSyscall sets the handler for a system call id. A nil handler removes
// the system call. Id SYS_EXIT is reserved and cannot be replaced.
func (cpu *Cpu) SetSyscall(id uint16, handler SyscallHandler, data any) {
	if id == SYS_EXIT {
		return
	}

	if handler == nil {
		delete(cpu.syscalls, id)
		return
	}

	if cpu.syscalls == nil {
		cpu.syscalls = map[uint16]syscall{}
	}
	cpu.syscalls[id] = syscall{handler: handler, data: data}
}

package cpu

import (
	"io"
)

type Hook interface{}

// Cpu is the minimum surface tooling needs from an emulated processor.
// Registers are addressed by bank index in the current mode.
type Cpu interface {
	// memory IO
	MemRead(addr, size uint64) ([]byte, error)
	MemWrite(addr uint64, p []byte) error

	// register IO
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error

	// execution
	Start(begin, until uint64) error
	Stop() error

	// hooks
	HookAdd(htype int, cb interface{}, begin, end uint64) (Hook, error)
	HookDel(hook Hook) error

	// save/restore registers and writable memory
	Save(w io.Writer) error
	Restore(r io.Reader) error
}

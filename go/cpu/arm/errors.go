package arm

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUninitializedMemory = errors.New("uninitialized memory")
	ErrNoSPSR              = errors.New("no spsr in this mode")
)

// DecodeError is a fetched word that is not a known instruction.
type DecodeError struct {
	Addr uint64
	Word uint32
}

func (d *DecodeError) Error() string {
	return fmt.Sprintf("unrecognized instruction 0x%08x (%032b) at %#x", d.Word, d.Word, d.Addr)
}

// UnsupportedError is a decoded instruction the engine has no handler for.
type UnsupportedError struct {
	Addr uint64
	Ins  Instruction
}

func (u *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported instruction %q at %#x", u.Ins.String(), u.Addr)
}

package mem

import (
	"fmt"

	"github.com/lunixbochs/armor/go/models/cpu"
)

// MemError is a data access that hit an absent or read-only cell.
type MemError struct {
	Addr uint64
	Size int
	Enum int
}

func (m *MemError) Error() string {
	reason := "memory error"
	switch m.Enum {
	case cpu.MEM_WRITE_UNMAPPED:
		reason = "unmapped write"
	case cpu.MEM_READ_UNMAPPED:
		reason = "unmapped read"
	case cpu.MEM_FETCH_UNMAPPED:
		reason = "unmapped fetch"
	case cpu.MEM_WRITE_PROT:
		reason = "protected write"
	}
	return fmt.Sprintf("%s at %#x(%d)", reason, m.Addr, m.Size)
}

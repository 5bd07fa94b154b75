package mem

import (
	"github.com/pkg/errors"
)

// ReadOnlyMemory holds fixed data anchored at its start address. Cells past
// the end of the data are absent.
type ReadOnlyMemory struct {
	Bounds
	data []Cell
}

func NewReadOnlyMemory(start, end Address, data []Cell) (*ReadOnlyMemory, error) {
	b := NewBounds(start, end)
	if CellCount(len(data)) > b.Size() {
		return nil, errors.Errorf("%d bytes do not fit in %d byte rom at %#x", len(data), b.Size(), start)
	}
	rom := &ReadOnlyMemory{Bounds: b, data: make([]Cell, len(data))}
	copy(rom.data, data)
	return rom, nil
}

func (r *ReadOnlyMemory) Get(addr Address) (Cell, bool) {
	if !r.Contains(addr) || addr-r.start >= Address(len(r.data)) {
		return 0, false
	}
	return r.data[addr-r.start], true
}

func (r *ReadOnlyMemory) Put(addr Address, c Cell) bool {
	return false
}

func (r *ReadOnlyMemory) Writable(addr Address) bool {
	return false
}

// Len is the number of initialized cells.
func (r *ReadOnlyMemory) Len() int {
	return len(r.data)
}

package mem

import (
	"sort"
)

// RandomAccessMemory is sparse: cells that were never written read as zero
// and only take up space once stored to.
type RandomAccessMemory struct {
	Bounds
	cells map[Address]Cell
}

func NewRandomAccessMemory(start, end Address) *RandomAccessMemory {
	return &RandomAccessMemory{
		Bounds: NewBounds(start, end),
		cells:  make(map[Address]Cell),
	}
}

func (r *RandomAccessMemory) Get(addr Address) (Cell, bool) {
	if !r.Contains(addr) {
		return 0, false
	}
	return r.cells[addr], true
}

func (r *RandomAccessMemory) Put(addr Address, c Cell) bool {
	if !r.Contains(addr) {
		return false
	}
	r.cells[addr] = c
	return true
}

func (r *RandomAccessMemory) Writable(addr Address) bool {
	return r.Contains(addr)
}

// Materialized returns the number of cells that have been stored to.
func (r *RandomAccessMemory) Materialized() int {
	return len(r.cells)
}

// Runs groups the materialized cells into contiguous runs in address order.
func (r *RandomAccessMemory) Runs() []Run {
	addrs := make([]Address, 0, len(r.cells))
	for addr := range r.cells {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	var runs []Run
	for _, addr := range addrs {
		if n := len(runs); n > 0 && runs[n-1].Addr+Address(len(runs[n-1].Data)) == addr {
			runs[n-1].Data = append(runs[n-1].Data, r.cells[addr])
			continue
		}
		runs = append(runs, Run{Addr: addr, Data: []Cell{r.cells[addr]}})
	}
	return runs
}

// Run is a contiguous block of cells starting at Addr.
type Run struct {
	Addr Address
	Data []Cell
}

// Clear drops every stored cell.
func (r *RandomAccessMemory) Clear() {
	r.cells = make(map[Address]Cell)
}

// Package mem models memory as a tree of address regions. Leaf regions hold
// cells; an AddressSpace owns non-overlapping leased subregions and routes
// accesses to them.
package mem

import (
	"fmt"
)

// Address names one cell.
type Address = uint64

// Cell is the unit of storage.
type Cell = byte

// CellCount is the size of a span of cells.
type CellCount = uint64

// Bounded is anything with an inclusive [Start, End] span.
type Bounded interface {
	Start() Address
	End() Address
}

type Region interface {
	Bounded
	Size() CellCount
	// Get returns the cell at addr, or false if the region holds no cell there.
	Get(addr Address) (Cell, bool)
	// Put stores c at addr, or returns false if the cell can't be written.
	Put(addr Address, c Cell) bool
	// Writable reports whether Put would succeed at addr.
	Writable(addr Address) bool
}

// Bounds is an inclusive address span, embedded by every Region.
type Bounds struct {
	start, end Address
}

func NewBounds(start, end Address) Bounds {
	if start > end {
		panic(fmt.Sprintf("region start %#x is past end %#x", start, end))
	}
	return Bounds{start, end}
}

func (b Bounds) Start() Address { return b.start }
func (b Bounds) End() Address   { return b.end }

func (b Bounds) Size() CellCount {
	return b.end - b.start + 1
}

func (b Bounds) Contains(addr Address) bool {
	return addr >= b.start && addr <= b.end
}

func (b Bounds) String() string {
	return fmt.Sprintf("%#x-%#x", b.start, b.end)
}

// Contains reports whether addr lies inside r.
func Contains(r Bounded, addr Address) bool {
	return addr >= r.Start() && addr <= r.End()
}

// ContainsRegion reports whether both endpoints of o lie inside r.
func ContainsRegion(r, o Bounded) bool {
	return Contains(r, o.Start()) && Contains(r, o.End())
}

// Overlaps reports whether r and o share at least one address.
func Overlaps(r, o Bounded) bool {
	return r.Start() <= o.End() && o.Start() <= r.End()
}

// EndpointOverlaps is the weaker check that only asks whether an endpoint of
// o falls inside r. It misses an o that strictly contains r.
func EndpointOverlaps(r, o Bounded) bool {
	return Contains(r, o.Start()) || Contains(r, o.End())
}

package mem

import (
	"fmt"
	"sort"
	"strings"
)

// AddressSpace is a Region composed of leased subregions. Subregions never
// overlap, always fit inside the space, and are kept sorted by start address.
type AddressSpace struct {
	Bounds
	leased []Region
}

func NewAddressSpace(start, end Address) *AddressSpace {
	return &AddressSpace{Bounds: NewBounds(start, end)}
}

// AvailableForLease reports whether candidate fits inside the space without
// touching any region already leased.
func (s *AddressSpace) AvailableForLease(candidate Bounded) bool {
	if !ContainsRegion(s, candidate) {
		return false
	}
	for _, r := range s.leased {
		if Overlaps(r, candidate) {
			return false
		}
	}
	return true
}

// Lease takes ownership of candidate. On rejection the space is unchanged and
// the caller keeps the candidate.
func (s *AddressSpace) Lease(candidate Region) (Region, bool) {
	if candidate == nil || !s.AvailableForLease(candidate) {
		return nil, false
	}
	if sub, ok := candidate.(*AddressSpace); ok && (sub == s || sub.encloses(s)) {
		// a space inside its own subtree would delegate to itself forever
		return nil, false
	}
	i := sort.Search(len(s.leased), func(i int) bool {
		return s.leased[i].Start() > candidate.Start()
	})
	s.leased = append(s.leased, nil)
	copy(s.leased[i+1:], s.leased[i:])
	s.leased[i] = candidate
	return candidate, true
}

// encloses reports whether r is leased anywhere below s.
func (s *AddressSpace) encloses(r Region) bool {
	for _, sub := range s.leased {
		if sub == r {
			return true
		}
		if space, ok := sub.(*AddressSpace); ok && space.encloses(r) {
			return true
		}
	}
	return false
}

// LeasedSubregions returns the leased regions in address order.
func (s *AddressSpace) LeasedSubregions() []Region {
	ret := make([]Region, len(s.leased))
	copy(ret, s.leased)
	return ret
}

// LeasedSubregionAt returns the direct subregion containing addr.
func (s *AddressSpace) LeasedSubregionAt(addr Address) (Region, bool) {
	i := sort.Search(len(s.leased), func(i int) bool {
		return s.leased[i].End() >= addr
	})
	if i < len(s.leased) && Contains(s.leased[i], addr) {
		return s.leased[i], true
	}
	return nil, false
}

func (s *AddressSpace) Get(addr Address) (Cell, bool) {
	if r, ok := s.LeasedSubregionAt(addr); ok {
		return r.Get(addr)
	}
	return 0, false
}

func (s *AddressSpace) Put(addr Address, c Cell) bool {
	if r, ok := s.LeasedSubregionAt(addr); ok {
		return r.Put(addr, c)
	}
	return false
}

func (s *AddressSpace) Writable(addr Address) bool {
	if r, ok := s.LeasedSubregionAt(addr); ok {
		return r.Writable(addr)
	}
	return false
}

// ReadCells returns the cells in [low, high], or false if any one is absent.
func (s *AddressSpace) ReadCells(low, high Address) ([]Cell, bool) {
	if low > high {
		return nil, false
	}
	// grow as cells are found so an absent range fails without allocating it
	var out []Cell
	for addr := low; ; addr++ {
		c, ok := s.Get(addr)
		if !ok {
			return nil, false
		}
		out = append(out, c)
		if addr == high {
			break
		}
	}
	return out, true
}

// RangeWritable reports whether every cell in [addr, addr+size) accepts a Put.
func (s *AddressSpace) RangeWritable(addr Address, size CellCount) bool {
	for i := CellCount(0); i < size; i++ {
		if !s.Writable(addr + i) {
			return false
		}
	}
	return size > 0
}

// WriteCells stores data starting at addr. The range must lie inside the
// space, and every cell in it must be writable. Either violation panics.
func (s *AddressSpace) WriteCells(data []Cell, addr Address) {
	if len(data) == 0 {
		return
	}
	last := addr + Address(len(data)) - 1
	if last < addr || !s.Contains(addr) || !s.Contains(last) {
		panic(fmt.Sprintf("write of %d cells at %#x outside %v", len(data), addr, s.Bounds))
	}
	for i, c := range data {
		if !s.Put(addr+Address(i), c) {
			panic(fmt.Sprintf("write to unmapped cell %#x", addr+Address(i)))
		}
	}
}

// Mapping describes one region in the tree below an AddressSpace.
type Mapping struct {
	Depth int
	Kind  string
	Bounds
}

func (m Mapping) String() string {
	return fmt.Sprintf("%s0x%08x-0x%08x %s", strings.Repeat("  ", m.Depth), m.start, m.end, m.Kind)
}

// Mappings walks the region tree depth first in address order.
func (s *AddressSpace) Mappings() []Mapping {
	var out []Mapping
	var walk func(sp *AddressSpace, depth int)
	walk = func(sp *AddressSpace, depth int) {
		for _, r := range sp.leased {
			out = append(out, Mapping{Depth: depth, Kind: Kind(r), Bounds: Bounds{r.Start(), r.End()}})
			if child, ok := r.(*AddressSpace); ok {
				walk(child, depth+1)
			}
		}
	}
	walk(s, 0)
	return out
}

func Kind(r Region) string {
	switch r.(type) {
	case *AddressSpace:
		return "space"
	case *RandomAccessMemory:
		return "ram"
	case *ReadOnlyMemory:
		return "rom"
	}
	return fmt.Sprintf("%T", r)
}

package mem

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/armor/go/models/cpu"
)

// 32-bit system memory map.
const (
	GeneralStart Address = 0x00000000
	GeneralEnd   Address = 0x3fffffff
	BootEnd      Address = 0x0000ffff
	IOStart      Address = 0x40000000
	IOEnd        Address = 0x7fffffff
	DRAMStart    Address = 0x80000000
	DRAMEnd      Address = 0xffffffff
)

// MemMap32 is the fixed top level layout: a general region holding the boot
// rom at 0, an empty I/O space, then dynamic RAM in the upper half.
type MemMap32 struct {
	*AddressSpace

	General *AddressSpace
	IO      *AddressSpace
	Boot    *ReadOnlyMemory
	DRAM    *RandomAccessMemory
}

func NewMemMap32(boot []Cell) (*MemMap32, error) {
	if Address(len(boot)) > BootEnd {
		return nil, errors.Errorf("boot image of %d bytes must be shorter than %#x", len(boot), BootEnd+1)
	}
	rom, err := NewReadOnlyMemory(GeneralStart, BootEnd, boot)
	if err != nil {
		return nil, errors.Wrap(err, "boot image")
	}
	m := &MemMap32{
		AddressSpace: NewAddressSpace(GeneralStart, DRAMEnd),
		General:      NewAddressSpace(GeneralStart, GeneralEnd),
		IO:           NewAddressSpace(IOStart, IOEnd),
		Boot:         rom,
		DRAM:         NewRandomAccessMemory(DRAMStart, DRAMEnd),
	}
	for _, pair := range []struct {
		parent *AddressSpace
		child  Region
	}{
		{m.General, m.Boot},
		{m.AddressSpace, m.General},
		{m.AddressSpace, m.IO},
		{m.AddressSpace, m.DRAM},
	} {
		if _, ok := pair.parent.Lease(pair.child); !ok {
			panic("memory map layout overlaps")
		}
	}
	return m, nil
}

// Read assembles size (1, 2 or 4) cells at addr into a value.
func (m *MemMap32) Read(addr Address, size int, bigEndian bool) (uint32, bool) {
	if addr > DRAMEnd-Address(size)+1 {
		return 0, false
	}
	buf, ok := m.ReadCells(addr, addr+Address(size)-1)
	if !ok {
		return 0, false
	}
	n, err := cpu.UnpackUint(cpu.Order(bigEndian), buf)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Write stores the low size bytes of val at addr. Nothing is written unless
// every target cell is writable.
func (m *MemMap32) Write(addr Address, size int, val uint32, bigEndian bool) bool {
	if addr > DRAMEnd-Address(size)+1 || !m.RangeWritable(addr, CellCount(size)) {
		return false
	}
	buf, err := cpu.PackUint(cpu.Order(bigEndian), size, val)
	if err != nil {
		return false
	}
	m.WriteCells(buf, addr)
	return true
}

func (m *MemMap32) Get32(addr Address, bigEndian bool) (uint32, bool) {
	return m.Read(addr, 4, bigEndian)
}

func (m *MemMap32) Put32(addr Address, val uint32, bigEndian bool) bool {
	return m.Write(addr, 4, val, bigEndian)
}

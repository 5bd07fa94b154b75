package mem

import (
	"testing"
)

func TestMemMap32Boot(t *testing.T) {
	m, err := NewMemMap32([]Cell{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	for addr, want := range []Cell{1, 2, 3} {
		if c, ok := m.Get(Address(addr)); !ok || c != want {
			t.Fatalf("get(%d) = %d, %v", addr, c, ok)
		}
	}
	if _, ok := m.Get(3); ok {
		t.Fatal("uninitialized rom byte present")
	}
	if c, ok := m.Get(DRAMStart); !ok || c != 0 {
		t.Fatalf("dram default = %d, %v", c, ok)
	}
	if _, ok := m.Get(IOStart); ok {
		t.Fatal("empty io space returned a cell")
	}
	if _, ok := m.Get32(0, false); ok {
		t.Fatal("get32 over a missing cell succeeded")
	}
}

func TestMemMap32Layout(t *testing.T) {
	m, err := NewMemMap32(nil)
	if err != nil {
		t.Fatal(err)
	}
	maps := m.Mappings()
	want := []Mapping{
		{0, "space", Bounds{GeneralStart, GeneralEnd}},
		{1, "rom", Bounds{GeneralStart, BootEnd}},
		{0, "space", Bounds{IOStart, IOEnd}},
		{0, "ram", Bounds{DRAMStart, DRAMEnd}},
	}
	if len(maps) != len(want) {
		t.Fatalf("got %d mappings", len(maps))
	}
	for i := range want {
		if maps[i] != want[i] {
			t.Errorf("mapping %d = %v, want %v", i, maps[i], want[i])
		}
	}
}

func TestMemMap32Words(t *testing.T) {
	m, err := NewMemMap32([]Cell{0x11, 0x22, 0x33, 0x44})
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Get32(0, false); !ok || v != 0x44332211 {
		t.Fatalf("little-endian get32 = %#x, %v", v, ok)
	}
	if v, ok := m.Get32(0, true); !ok || v != 0x11223344 {
		t.Fatalf("big-endian get32 = %#x, %v", v, ok)
	}
	if m.Put32(0, 1, false) {
		t.Fatal("put32 into rom succeeded")
	}
	if !m.Put32(DRAMStart+4, 0xdeadbeef, true) {
		t.Fatal("put32 into dram failed")
	}
	if c, _ := m.Get(DRAMStart + 4); c != 0xde {
		t.Fatalf("big-endian first byte = %#x", c)
	}
	if v, _ := m.Read(DRAMStart+6, 2, true); v != 0xbeef {
		t.Fatalf("halfword = %#x", v)
	}
	if _, ok := m.Get32(DRAMEnd-1, false); ok {
		t.Fatal("get32 past the top of memory succeeded")
	}
	if m.Write(IOEnd-1, 4, 0, false) {
		t.Fatal("write straddling io and dram succeeded")
	}
	if c, _ := m.Get(DRAMStart); c != 0 {
		t.Fatal("partial write leaked into dram")
	}
}

func TestMemMap32BootTooLarge(t *testing.T) {
	for _, size := range []int{0x10000, 0x10001} {
		if _, err := NewMemMap32(make([]Cell, size)); err == nil {
			t.Fatalf("boot image of %#x bytes accepted", size)
		}
	}
	if _, err := NewMemMap32(make([]Cell, 0xffff)); err != nil {
		t.Fatal(err)
	}
}

func TestReadCellsHugeRange(t *testing.T) {
	m, err := NewMemMap32([]Cell{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := m.ReadCells(0, 1<<62); ok {
		t.Fatal("read past the boot image succeeded")
	}
	if _, ok := m.ReadCells(0x40000000, ^Address(0)); ok {
		t.Fatal("read across unmapped io succeeded")
	}
	if got, ok := m.ReadCells(0, 2); !ok || len(got) != 3 {
		t.Fatalf("got %v, %v", got, ok)
	}
}

package mem

import (
	"testing"
)

type span struct{ start, end Address }

func (s span) Start() Address { return s.start }
func (s span) End() Address   { return s.end }

func TestOverlaps(t *testing.T) {
	base := span{0x100, 0x1ff}
	tests := []struct {
		other    span
		overlap  bool
		endpoint bool
	}{
		{span{0x0, 0xff}, false, false},
		{span{0x200, 0x2ff}, false, false},
		{span{0x0, 0x100}, true, true},
		{span{0x1ff, 0x300}, true, true},
		{span{0x180, 0x190}, true, true},
		// strictly containing the base region has no endpoint inside it
		{span{0x0, 0x300}, true, false},
	}
	for _, test := range tests {
		if got := Overlaps(base, test.other); got != test.overlap {
			t.Errorf("Overlaps(%#x, %#x) = %v", base, test.other, got)
		}
		if got := Overlaps(test.other, base); got != test.overlap {
			t.Errorf("Overlaps(%#x, %#x) = %v (reversed)", test.other, base, got)
		}
		if got := EndpointOverlaps(base, test.other); got != test.endpoint {
			t.Errorf("EndpointOverlaps(%#x, %#x) = %v", base, test.other, got)
		}
	}
}

func TestContainsRegion(t *testing.T) {
	b := NewBounds(0x1000, 0x1fff)
	if b.Size() != 0x1000 {
		t.Fatalf("bad size: %#x", b.Size())
	}
	if !ContainsRegion(b, span{0x1000, 0x1fff}) || !ContainsRegion(b, span{0x1800, 0x1800}) {
		t.Fatal("inner region not contained")
	}
	if ContainsRegion(b, span{0xfff, 0x1800}) || ContainsRegion(b, span{0x1800, 0x2000}) {
		t.Fatal("straddling region contained")
	}
}

func TestNewBoundsInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("inverted bounds did not panic")
		}
	}()
	NewBounds(2, 1)
}

func TestRandomAccessMemory(t *testing.T) {
	ram := NewRandomAccessMemory(0x10, 0x1f)
	if c, ok := ram.Get(0x15); !ok || c != 0 {
		t.Fatalf("unwritten cell = %d, %v", c, ok)
	}
	if ram.Materialized() != 0 {
		t.Fatal("read materialized a cell")
	}
	if _, ok := ram.Get(0x20); ok {
		t.Fatal("read outside bounds succeeded")
	}
	if ram.Put(0x9, 1) {
		t.Fatal("write outside bounds succeeded")
	}
	for _, addr := range []Address{0x10, 0x11, 0x12, 0x18} {
		if !ram.Put(addr, Cell(addr)) {
			t.Fatalf("write %#x failed", addr)
		}
	}
	if c, _ := ram.Get(0x11); c != 0x11 {
		t.Fatalf("read back %#x", c)
	}
	runs := ram.Runs()
	if len(runs) != 2 || runs[0].Addr != 0x10 || len(runs[0].Data) != 3 || runs[1].Addr != 0x18 {
		t.Fatalf("bad runs: %+v", runs)
	}
}

func TestReadOnlyMemory(t *testing.T) {
	rom, err := NewReadOnlyMemory(0x100, 0x1ff, []Cell{7, 8})
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := rom.Get(0x101); !ok || c != 8 {
		t.Fatalf("rom[1] = %d, %v", c, ok)
	}
	if _, ok := rom.Get(0x102); ok {
		t.Fatal("uninitialized rom cell present")
	}
	if rom.Put(0x100, 1) || rom.Writable(0x100) {
		t.Fatal("rom accepted a write")
	}
	if c, _ := rom.Get(0x100); c != 7 {
		t.Fatal("rom cell changed")
	}
	if _, err := NewReadOnlyMemory(0, 1, []Cell{1, 2, 3}); err == nil {
		t.Fatal("oversized rom data accepted")
	}
}

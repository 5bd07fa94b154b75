package cpu

import (
	"bytes"
	"testing"
)

var packTests = []struct {
	big  bool
	size int
	n    uint32
	raw  []byte
}{
	{true, SizeWord, 0x11223344, []byte{0x11, 0x22, 0x33, 0x44}},
	{false, SizeWord, 0x11223344, []byte{0x44, 0x33, 0x22, 0x11}},
	{true, SizeHalf, 0x3344, []byte{0x33, 0x44}},
	{false, SizeHalf, 0x3344, []byte{0x44, 0x33}},
	{true, SizeByte, 0x44, []byte{0x44}},
	{false, SizeByte, 0x44, []byte{0x44}},
}

func TestPackUint(t *testing.T) {
	for _, test := range packTests {
		// bytes past the access size are dropped
		junk := uint32(0xaa000000)
		if test.size == SizeWord {
			junk = 0
		}
		buf, err := PackUint(Order(test.big), test.size, test.n|junk)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(buf, test.raw) {
			t.Errorf("pack %#x (size %d, big %v): got %x", test.n, test.size, test.big, buf)
		}
		n, err := UnpackUint(Order(test.big), test.raw)
		if err != nil {
			t.Fatal(err)
		}
		if n != test.n {
			t.Errorf("unpack %x (big %v): got %#x", test.raw, test.big, n)
		}
	}
}

func TestPackUintSize(t *testing.T) {
	if _, err := PackUint(Order(false), 3, 0); err == nil {
		t.Fatal("packed unsupported size")
	}
	if _, err := UnpackUint(Order(false), make([]byte, 8)); err == nil {
		t.Fatal("unpacked unsupported size")
	}
}

package arm

import (
	"testing"
)

var shiftTests = []struct {
	kind    ShiftKind
	v, n    uint32
	carryIn bool
	out     uint32
	carry   bool
}{
	{LSL, 0x80000001, 0, true, 0x80000001, true},
	{LSL, 0x80000001, 1, false, 0x00000002, true},
	{LSL, 0x00000003, 31, false, 0x80000000, true},
	{LSL, 0x00000001, 32, false, 0, true},
	{LSL, 0xffffffff, 33, true, 0, false},
	{LSR, 0x00000003, 1, false, 0x00000001, true},
	{LSR, 0x80000000, 32, false, 0, true},
	{LSR, 0x80000000, 40, true, 0, false},
	{ASR, 0x80000000, 4, false, 0xf8000000, false},
	{ASR, 0x80000000, 32, false, 0xffffffff, true},
	{ASR, 0x7fffffff, 100, true, 0, false},
	{ROR, 0x00000001, 1, false, 0x80000000, true},
	{ROR, 0x80000000, 32, false, 0x80000000, true},
	{ROR, 0x00000010, 36, false, 0x00000001, false},
	{RRX, 0x00000001, 0, true, 0x80000000, true},
	{RRX, 0x00000002, 0, false, 0x00000001, false},
}

func TestBarrelShift(t *testing.T) {
	for _, test := range shiftTests {
		out, carry := barrelShift(test.kind, test.v, test.n, test.carryIn)
		if out != test.out || carry != test.carry {
			t.Errorf("%s %#x by %d: got (%#x, %v), want (%#x, %v)", test.kind, test.v, test.n, out, carry, test.out, test.carry)
		}
	}
}

func TestImmediate(t *testing.T) {
	imm := Immediate{Value: 0xff, Rotate: 4}
	if imm.Resolve() != 0xff000000 {
		t.Fatalf("resolve = %#x", imm.Resolve())
	}
	if !immediateCarry(imm, false) {
		t.Fatal("rotated immediate did not set carry from bit 31")
	}
	if !immediateCarry(Immediate{Value: 1}, true) {
		t.Fatal("unrotated immediate changed carry")
	}
	if imm.String() != "#0xff000000" {
		t.Fatalf("string = %s", imm)
	}
}

func TestOperandString(t *testing.T) {
	for _, test := range []struct {
		op   Operand
		want string
	}{
		{ShiftedRegister{Rm: R1}, "r1"},
		{ShiftedRegister{Rm: R1, Kind: RRX}, "r1, rrx"},
		{ShiftedRegister{Rm: R2, Kind: ASR, Amount: 32}, "r2, asr #32"},
		{RegisterShiftedRegister{Rm: R3, Kind: ROR, Rs: R4}, "r3, ror r4"},
	} {
		if got := test.op.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

package arm

import (
	"fmt"
)

type ShiftKind int

const (
	LSL ShiftKind = iota
	LSR
	ASR
	ROR
	RRX
)

var shiftNames = [...]string{"lsl", "lsr", "asr", "ror", "rrx"}

func (k ShiftKind) String() string { return shiftNames[k] }

// Operand is a barrel shifter input: Immediate, ShiftedRegister or
// RegisterShiftedRegister.
type Operand interface {
	String() string
}

// Immediate is Value rotated right by 2*Rotate.
type Immediate struct {
	Value  uint32
	Rotate uint32
}

func (o Immediate) Resolve() uint32 {
	return ror(o.Value, 2*o.Rotate)
}

func (o Immediate) String() string {
	return fmt.Sprintf("#%#x", o.Resolve())
}

// ShiftedRegister shifts Rm by a constant. Decoding normalizes the zero
// amount encodings, so LSR and ASR carry 32 and ROR #0 becomes RRX.
type ShiftedRegister struct {
	Rm     RegisterBank
	Kind   ShiftKind
	Amount uint32
}

func (o ShiftedRegister) String() string {
	switch {
	case o.Kind == RRX:
		return fmt.Sprintf("%s, rrx", o.Rm)
	case o.Kind == LSL && o.Amount == 0:
		return o.Rm.String()
	}
	return fmt.Sprintf("%s, %s #%d", o.Rm, o.Kind, o.Amount)
}

// RegisterShiftedRegister shifts Rm by the low byte of Rs.
type RegisterShiftedRegister struct {
	Rm   RegisterBank
	Kind ShiftKind
	Rs   RegisterBank
}

func (o RegisterShiftedRegister) String() string {
	return fmt.Sprintf("%s, %s %s", o.Rm, o.Kind, o.Rs)
}

func ror(x, n uint32) uint32 {
	n &= 31
	if n == 0 {
		return x
	}
	return x>>n | x<<(32-n)
}

// immediateCarry is the shifter carry for an Immediate operand.
func immediateCarry(o Immediate, carry bool) bool {
	if o.Rotate == 0 {
		return carry
	}
	return o.Resolve()&(1<<31) != 0
}

// barrelShift applies kind to v. A zero amount leaves both v and the carry
// alone; amounts of 32 and up follow the register-specified rules.
func barrelShift(kind ShiftKind, v, amount uint32, carry bool) (uint32, bool) {
	if kind == RRX {
		out := v >> 1
		if carry {
			out |= 1 << 31
		}
		return out, v&1 != 0
	}
	if amount == 0 {
		return v, carry
	}
	switch kind {
	case LSL:
		switch {
		case amount < 32:
			return v << amount, v&(1<<(32-amount)) != 0
		case amount == 32:
			return 0, v&1 != 0
		}
		return 0, false
	case LSR:
		switch {
		case amount < 32:
			return v >> amount, v&(1<<(amount-1)) != 0
		case amount == 32:
			return 0, v&(1<<31) != 0
		}
		return 0, false
	case ASR:
		if amount >= 32 {
			if v&(1<<31) != 0 {
				return 0xffffffff, true
			}
			return 0, false
		}
		return uint32(int32(v) >> amount), v&(1<<(amount-1)) != 0
	case ROR:
		amount &= 31
		if amount == 0 {
			return v, v&(1<<31) != 0
		}
		return ror(v, amount), v&(1<<(amount-1)) != 0
	}
	panic(fmt.Sprintf("unknown shift kind %d", kind))
}

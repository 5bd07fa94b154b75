package arm

import (
	"fmt"
)

type Indexing int

const (
	PreIndex Indexing = iota
	PostIndex
)

// Addressing describes a load/store address: Rn plus or minus Offset,
// applied before the access (PreIndex) or after it (PostIndex). Post-indexed
// forms always write the new address back to Rn. The offset is either an
// Immediate with zero rotate or a register operand.
type Addressing struct {
	Index     Indexing
	Writeback bool
	Positive  bool
	Rn        RegisterBank
	Offset    Operand
}

// AddressingOffset12 is the word and byte transfer form, with a 12-bit
// immediate or a shifted register offset.
type AddressingOffset12 struct {
	Addressing
}

// HalfwordOrSigned is the halfword and signed byte form, with an 8-bit
// immediate or a plain register offset.
type HalfwordOrSigned struct {
	Addressing
}

func (a Addressing) offsetString() string {
	sign := ""
	if !a.Positive {
		sign = "-"
	}
	switch o := a.Offset.(type) {
	case Immediate:
		return fmt.Sprintf("#%s%#x", sign, o.Resolve())
	default:
		return sign + o.String()
	}
}

func (a Addressing) isZero() bool {
	imm, ok := a.Offset.(Immediate)
	return ok && imm.Resolve() == 0
}

func (a Addressing) String() string {
	if a.Index == PostIndex {
		return fmt.Sprintf("[%s], %s", a.Rn, a.offsetString())
	}
	bang := ""
	if a.Writeback {
		bang = "!"
	}
	if a.isZero() {
		return fmt.Sprintf("[%s]%s", a.Rn, bang)
	}
	return fmt.Sprintf("[%s, %s]%s", a.Rn, a.offsetString(), bang)
}

package arm

import (
	"fmt"
)

// PSR interprets a status register for code running in a given privilege
// level. Unprivileged code may read the control byte and the flags and may
// only write the flags. Breaking that rule panics.
type PSR struct {
	reg        *Register32
	privileged bool
}

func (p PSR) readable() uint32 {
	if p.privileged {
		return ^uint32(0)
	}
	return ControlBits | FlagBits
}

func (p PSR) writable() uint32 {
	if p.privileged {
		return ^uint32(0)
	}
	return FlagBits
}

func (p PSR) ReadBit(i int) bool {
	checkBit(i)
	if p.readable()&(1<<uint(i)) == 0 {
		panic(fmt.Sprintf("psr bit %d is not readable without privilege", i))
	}
	return p.reg.ReadBit(i)
}

func (p PSR) WriteBit(i int, v bool) {
	checkBit(i)
	if p.writable()&(1<<uint(i)) == 0 {
		panic(fmt.Sprintf("psr bit %d is not writable without privilege", i))
	}
	p.reg.WriteBit(i, v)
}

// Load returns every bit the caller may read; the rest read as zero.
func (p PSR) Load() uint32 {
	return p.reg.Get() & p.readable()
}

// Store replaces the bits selected by mask with those of val.
func (p PSR) Store(val, mask uint32) {
	if bad := mask &^ p.writable(); bad != 0 {
		panic(fmt.Sprintf("psr bits 0x%08x are not writable without privilege", bad))
	}
	p.reg.Set(p.reg.Get()&^mask | val&mask)
}

func (p PSR) Writable() uint32 {
	return p.writable()
}

func (p PSR) Mode() (ProcessorMode, bool) {
	return ModeFromCode(p.Load() & ModeBits)
}

func (p PSR) SetMode(m ProcessorMode) {
	p.Store(m.Code(), ModeBits)
}

func (p PSR) Flag(bit int) bool {
	return p.ReadBit(bit)
}

func (p PSR) SetFlag(bit int, v bool) {
	p.WriteBit(bit, v)
}

func (p PSR) N() bool { return p.ReadBit(FlagN) }
func (p PSR) Z() bool { return p.ReadBit(FlagZ) }
func (p PSR) C() bool { return p.ReadBit(FlagC) }
func (p PSR) V() bool { return p.ReadBit(FlagV) }

func (p PSR) IRQMasked() bool { return p.ReadBit(MaskIRQ) }
func (p PSR) FIQMasked() bool { return p.ReadBit(MaskFIQ) }

func (p PSR) SetIRQMask(v bool) { p.WriteBit(MaskIRQ, v) }
func (p PSR) SetFIQMask(v bool) { p.WriteBit(MaskFIQ, v) }

func (p PSR) InstructionSet() InstructionSet {
	if p.ReadBit(Thumb) {
		return ThumbSet
	}
	return ARM
}

func (p PSR) SetInstructionSet(set InstructionSet) {
	p.WriteBit(Thumb, set == ThumbSet)
}

func (p PSR) String() string {
	flags := []byte("nzcv")
	for i, bit := range []int{FlagN, FlagZ, FlagC, FlagV} {
		if p.reg.ReadBit(bit) {
			flags[i] -= 'a' - 'A'
		}
	}
	mode := "???"
	if m, ok := ModeFromCode(p.reg.Get()); ok {
		mode = m.String()
	}
	return fmt.Sprintf("%s %s 0x%08x", flags, mode, p.reg.Get())
}

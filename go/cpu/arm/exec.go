package arm

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lunixbochs/armor/go/mem"
	"github.com/lunixbochs/armor/go/models/cpu"
)

func (c *Computer) execute(pc uint32, ins Instruction) error {
	cond, ok := ins.(Conditional)
	if !ok {
		return &UnsupportedError{Addr: uint64(pc), Ins: ins}
	}
	switch b := cond.Body.(type) {
	case DataProcessing:
		return c.dataProcessing(pc, b)
	case B:
		c.branch(pc + uint32(b.Offset))
	case BL:
		c.Cpu.Registers.Write(LR, pc+4)
		c.branch(pc + uint32(b.Offset))
	case BX:
		target := c.reg(pc, b.Rm)
		if target&1 != 0 {
			c.log.WithField("target", fmt.Sprintf("0x%08x", target)).Warn("bx to thumb code, staying in arm state")
		}
		c.branch(target &^ 1)
	case MRS:
		psr, err := c.psr(b.PSR)
		if err != nil {
			return err
		}
		c.setReg(b.Rd, psr.Load())
	case MSR:
		return c.msr(pc, b)
	case LDR:
		return c.singleTransfer(pc, true, b.Byte, b.Rd, b.Addr.Addressing)
	case STR:
		return c.singleTransfer(pc, false, b.Byte, b.Rd, b.Addr.Addressing)
	case HalfwordTransfer:
		return c.halfwordTransfer(pc, b)
	case BlockTransfer:
		return c.blockTransfer(pc, ins, b)
	case MCR, MRC:
		c.log.WithField("ins", ins.String()).Debug("coprocessor instruction skipped")
	default:
		return &UnsupportedError{Addr: uint64(pc), Ins: ins}
	}
	return nil
}

// branch leaves pc one word short of target for the post-increment.
func (c *Computer) branch(target uint32) {
	c.Cpu.Registers.Write(PC, target-4)
}

// reg reads an operand register; pc reads 8 ahead of the instruction.
func (c *Computer) reg(pc uint32, b RegisterBank) uint32 {
	if b == PC {
		return pc + 8
	}
	return c.Cpu.Registers.Read(b)
}

// setReg writes a result register. Writing pc branches in arm state.
func (c *Computer) setReg(b RegisterBank, val uint32) {
	if b == PC {
		c.branch(val &^ 3)
		return
	}
	c.Cpu.Registers.Write(b, val)
}

func (c *Computer) psr(b RegisterBank) (PSR, error) {
	regs := c.Cpu.Registers
	if b == SPSR {
		psr, ok := regs.SPSR()
		if !ok {
			return PSR{}, errors.WithStack(ErrNoSPSR)
		}
		return psr, nil
	}
	return regs.CPSR(), nil
}

func (c *Computer) shifter(pc uint32, op Operand) (uint32, bool) {
	carry := c.Cpu.Registers.CPSR().C()
	switch o := op.(type) {
	case Immediate:
		return o.Resolve(), immediateCarry(o, carry)
	case ShiftedRegister:
		return barrelShift(o.Kind, c.reg(pc, o.Rm), o.Amount, carry)
	case RegisterShiftedRegister:
		v := c.reg(pc, o.Rm)
		if o.Rm == PC {
			// the register shift takes an extra cycle, so pc reads one word further on
			v += 4
		}
		return barrelShift(o.Kind, v, c.reg(pc, o.Rs)&0xff, carry)
	}
	panic(fmt.Sprintf("unknown operand type %T", op))
}

func addWithCarry(a, b uint32, carry bool) (uint32, bool, bool) {
	var cin uint64
	if carry {
		cin = 1
	}
	sum := uint64(a) + uint64(b) + cin
	result := uint32(sum)
	overflow := (a^result)&(b^result)&(1<<31) != 0
	return result, sum>>32 != 0, overflow
}

func (c *Computer) dataProcessing(pc uint32, d DataProcessing) error {
	regs := c.Cpu.Registers
	cpsr := regs.CPSR()
	var a uint32
	if !d.Op.move() {
		a = c.reg(pc, d.Rn)
		if _, ok := d.Operand.(RegisterShiftedRegister); ok && d.Rn == PC {
			a += 4
		}
	}
	b, carry := c.shifter(pc, d.Operand)
	overflow := cpsr.V()
	var result uint32
	switch d.Op {
	case AND, TST:
		result = a & b
	case EOR, TEQ:
		result = a ^ b
	case ORR:
		result = a | b
	case BIC:
		result = a &^ b
	case MOV:
		result = b
	case MVN:
		result = ^b
	case SUB, CMP:
		result, carry, overflow = addWithCarry(a, ^b, true)
	case RSB:
		result, carry, overflow = addWithCarry(b, ^a, true)
	case ADD, CMN:
		result, carry, overflow = addWithCarry(a, b, false)
	case ADC:
		result, carry, overflow = addWithCarry(a, b, cpsr.C())
	case SBC:
		result, carry, overflow = addWithCarry(a, ^b, cpsr.C())
	case RSC:
		result, carry, overflow = addWithCarry(b, ^a, cpsr.C())
	}

	// s with a pc destination returns from an exception
	if d.S && d.Rd == PC && !d.Op.compare() {
		spsr, ok := regs.SPSR()
		if !ok {
			return errors.WithStack(ErrNoSPSR)
		}
		saved := spsr.Load()
		if _, ok := ModeFromCode(saved); !ok {
			return errors.Errorf("exception return to unknown mode %#x", saved&ModeBits)
		}
		c.setReg(PC, result)
		regs.cpsr.Set(saved)
		return nil
	}
	if !d.Op.compare() {
		c.setReg(d.Rd, result)
	}
	if d.S {
		cpsr.SetFlag(FlagN, result&(1<<31) != 0)
		cpsr.SetFlag(FlagZ, result == 0)
		cpsr.SetFlag(FlagC, carry)
		if !d.Op.logical() {
			cpsr.SetFlag(FlagV, overflow)
		}
	}
	return nil
}

func (c *Computer) msr(pc uint32, m MSR) error {
	psr, err := c.psr(m.PSR)
	if err != nil {
		return err
	}
	var val uint32
	switch src := m.Src.(type) {
	case Immediate:
		val = src.Resolve()
	case ShiftedRegister:
		val = c.reg(pc, src.Rm)
	default:
		return errors.Errorf("bad msr source %T", m.Src)
	}
	mask := m.Mask() & psr.Writable()
	if m.PSR == CPSR {
		// the state bit only changes through bx and exception return
		mask &^= 1 << Thumb
	}
	psr.Store(val, mask)
	return nil
}

// address returns the transfer address and the written back base.
func (c *Computer) address(pc uint32, a Addressing) (uint32, uint32) {
	base := c.reg(pc, a.Rn)
	var off uint32
	switch o := a.Offset.(type) {
	case Immediate:
		off = o.Resolve()
	case ShiftedRegister:
		off, _ = barrelShift(o.Kind, c.reg(pc, o.Rm), o.Amount, c.Cpu.Registers.CPSR().C())
	}
	next := base + off
	if !a.Positive {
		next = base - off
	}
	if a.Index == PreIndex {
		return next, next
	}
	return base, next
}

func (c *Computer) writeback(a Addressing, next uint32) {
	if a.Index == PostIndex || a.Writeback {
		c.setReg(a.Rn, next)
	}
}

func (c *Computer) load(addr uint32, size int) (uint32, error) {
	val, ok := c.Mem.Read(uint64(addr), size, c.BigEndian)
	if !ok {
		if c.OnFault(cpu.MEM_READ_UNMAPPED, uint64(addr), size, 0) {
			return 0, nil
		}
		return 0, &mem.MemError{Addr: uint64(addr), Size: size, Enum: cpu.MEM_READ_UNMAPPED}
	}
	c.OnMem(cpu.MEM_READ, uint64(addr), size, int64(val))
	if c.config.TraceMem {
		fmt.Fprintf(c.config.Output, "R 0x%08x [%d] %#x\n", addr, size, val)
	}
	return val, nil
}

// storable reports whether a store would succeed. A failing store is an
// error unless a fault hook handles it, in which case it is skipped.
func (c *Computer) storable(addr uint32, size int, val uint32) (bool, error) {
	if c.Mem.RangeWritable(uint64(addr), uint64(size)) {
		return true, nil
	}
	enum := cpu.MEM_WRITE_UNMAPPED
	if _, mapped := c.Mem.Read(uint64(addr), size, c.BigEndian); mapped {
		enum = cpu.MEM_WRITE_PROT
	}
	if c.OnFault(enum, uint64(addr), size, int64(val)) {
		return false, nil
	}
	return false, &mem.MemError{Addr: uint64(addr), Size: size, Enum: enum}
}

func (c *Computer) store(addr uint32, size int, val uint32) {
	c.OnMem(cpu.MEM_WRITE, uint64(addr), size, int64(val))
	if c.config.TraceMem {
		fmt.Fprintf(c.config.Output, "W 0x%08x [%d] %#x\n", addr, size, val)
	}
	c.Mem.Write(uint64(addr), size, val, c.BigEndian)
}

func (c *Computer) singleTransfer(pc uint32, load, byteSize bool, rd RegisterBank, a Addressing) error {
	addr, next := c.address(pc, a)
	size := 4
	if byteSize {
		size = 1
	}
	if load {
		var val uint32
		var err error
		if byteSize {
			val, err = c.load(addr, 1)
		} else {
			// unaligned word loads rotate the aligned word
			val, err = c.load(addr&^3, 4)
			val = ror(val, 8*(addr&3))
		}
		if err != nil {
			return err
		}
		c.writeback(a, next)
		c.setReg(rd, val)
		return nil
	}
	if !byteSize {
		addr &^= 3
	}
	val := c.reg(pc, rd)
	ok, err := c.storable(addr, size, val)
	if err != nil {
		return err
	}
	if ok {
		c.store(addr, size, val)
	}
	c.writeback(a, next)
	return nil
}

func (c *Computer) halfwordTransfer(pc uint32, h HalfwordTransfer) error {
	addr, next := c.address(pc, h.Addr.Addressing)
	size := 1
	if h.Half {
		size = 2
	}
	if h.Load {
		val, err := c.load(addr, size)
		if err != nil {
			return err
		}
		if h.Signed {
			if h.Half {
				val = uint32(int32(int16(val)))
			} else {
				val = uint32(int32(int8(val)))
			}
		}
		c.writeback(h.Addr.Addressing, next)
		c.setReg(h.Rd, val)
		return nil
	}
	val := c.reg(pc, h.Rd) & 0xffff
	ok, err := c.storable(addr, size, val)
	if err != nil {
		return err
	}
	if ok {
		c.store(addr, size, val)
	}
	c.writeback(h.Addr.Addressing, next)
	return nil
}

func (c *Computer) blockTransfer(pc uint32, ins Instruction, b BlockTransfer) error {
	list := b.Registers()
	if b.UserBank || len(list) == 0 {
		return &UnsupportedError{Addr: uint64(pc), Ins: ins}
	}
	base := c.reg(pc, b.Rn)
	span := uint32(4 * len(list))
	var start, next uint32
	if b.Up {
		start, next = base, base+span
		if b.Before {
			start += 4
		}
	} else {
		start, next = base-span, base-span
		if !b.Before {
			start += 4
		}
	}
	start &^= 3

	if b.Load {
		vals := make([]uint32, len(list))
		for i := range list {
			val, err := c.load(start+uint32(4*i), 4)
			if err != nil {
				return err
			}
			vals[i] = val
		}
		if b.Writeback {
			c.setReg(b.Rn, next)
		}
		for i, r := range list {
			c.setReg(r, vals[i])
		}
		return nil
	}
	vals := make([]uint32, len(list))
	skip := make([]bool, len(list))
	for i, r := range list {
		vals[i] = c.reg(pc, r)
		ok, err := c.storable(start+uint32(4*i), 4, vals[i])
		if err != nil {
			return err
		}
		skip[i] = !ok
	}
	for i := range list {
		if !skip[i] {
			c.store(start+uint32(4*i), 4, vals[i])
		}
	}
	if b.Writeback {
		c.setReg(b.Rn, next)
	}
	return nil
}

package arm

import (
	"fmt"
	"strings"
)

// Instruction is either Conditional or Unconditional.
type Instruction interface {
	Mnemonic() string
	OpStr() string
	String() string
}

// Body is the operation an instruction performs. Name is the mnemonic
// root that the condition code attaches to.
type Body interface {
	Name() string
	Operands() string
}

type ConditionalBody interface {
	Body
	conditional()
}

// UnconditionalBody covers the 0b1111 condition space. No such instruction
// decodes yet.
type UnconditionalBody interface {
	Body
	unconditional()
}

type Conditional struct {
	Body ConditionalBody
	Cond Condition
}

func (c Conditional) Mnemonic() string {
	return c.Body.Name() + c.Cond.suffix() + suffixOf(c.Body)
}

// suffixer is a Body whose mnemonic carries a size, mode or flag suffix
// after the condition, as in ldreqb or addnes.
type suffixer interface {
	suffix() string
}

func suffixOf(b Body) string {
	if s, ok := b.(suffixer); ok {
		return s.suffix()
	}
	return ""
}

func (c Conditional) OpStr() string  { return c.Body.Operands() }
func (c Conditional) String() string { return join(c.Mnemonic(), c.OpStr()) }

type Unconditional struct {
	Body UnconditionalBody
}

func (u Unconditional) Mnemonic() string { return u.Body.Name() + suffixOf(u.Body) }
func (u Unconditional) OpStr() string    { return u.Body.Operands() }
func (u Unconditional) String() string   { return join(u.Mnemonic(), u.OpStr()) }

func join(mn, ops string) string {
	if ops == "" {
		return mn
	}
	return mn + " " + ops
}

type Opcode int

const (
	AND Opcode = iota
	EOR
	SUB
	RSB
	ADD
	ADC
	SBC
	RSC
	TST
	TEQ
	CMP
	CMN
	ORR
	MOV
	BIC
	MVN
)

var opNames = [...]string{
	"and", "eor", "sub", "rsb", "add", "adc", "sbc", "rsc",
	"tst", "teq", "cmp", "cmn", "orr", "mov", "bic", "mvn",
}

func (o Opcode) String() string { return opNames[o] }

// compare ops only set flags
func (o Opcode) compare() bool {
	return o >= TST && o <= CMN
}

// move ops ignore Rn
func (o Opcode) move() bool {
	return o == MOV || o == MVN
}

func (o Opcode) logical() bool {
	switch o {
	case AND, EOR, TST, TEQ, ORR, MOV, BIC, MVN:
		return true
	}
	return false
}

// DataProcessing is the ALU group: Rd = Rn Op Operand.
type DataProcessing struct {
	Op      Opcode
	S       bool
	Rd, Rn  RegisterBank
	Operand Operand
}

func (DataProcessing) conditional() {}

func (d DataProcessing) Name() string { return d.Op.String() }

func (d DataProcessing) suffix() string {
	if d.S && !d.Op.compare() {
		return "s"
	}
	return ""
}

func (d DataProcessing) Operands() string {
	switch {
	case d.Op.compare():
		return fmt.Sprintf("%s, %s", d.Rn, d.Operand)
	case d.Op.move():
		return fmt.Sprintf("%s, %s", d.Rd, d.Operand)
	}
	return fmt.Sprintf("%s, %s, %s", d.Rd, d.Rn, d.Operand)
}

// B branches to pc+Offset. Offset already includes the +8 fetch-ahead.
type B struct {
	Offset int32
}

func (B) conditional()       {}
func (B) Name() string       { return "b" }
func (b B) Operands() string { return offsetString(b.Offset) }

// BL is B that also sets lr to the next instruction.
type BL struct {
	Offset int32
}

func (BL) conditional()       {}
func (BL) Name() string       { return "bl" }
func (b BL) Operands() string { return offsetString(b.Offset) }

func offsetString(off int32) string {
	if off < 0 {
		return fmt.Sprintf("pc-%#x", -int64(off))
	}
	return fmt.Sprintf("pc+%#x", off)
}

type BX struct {
	Rm RegisterBank
}

func (BX) conditional()       {}
func (BX) Name() string       { return "bx" }
func (b BX) Operands() string { return b.Rm.String() }

// MRS copies a status register (CPSR or SPSR) into Rd.
type MRS struct {
	Rd  RegisterBank
	PSR RegisterBank
}

func (MRS) conditional()       {}
func (MRS) Name() string       { return "mrs" }
func (m MRS) Operands() string { return fmt.Sprintf("%s, %s", m.Rd, m.PSR) }

// MSR writes the selected bytes of a status register.
type MSR struct {
	PSR RegisterBank
	// control, extension, status and flags byte selects
	C, X, S, F bool
	Src        Operand
}

func (MSR) conditional() {}
func (MSR) Name() string { return "msr" }

// Mask is the set of status register bits the instruction selects.
func (m MSR) Mask() uint32 {
	var mask uint32
	for i, on := range []bool{m.C, m.X, m.S, m.F} {
		if on {
			mask |= 0xff << (8 * uint(i))
		}
	}
	return mask
}

func (m MSR) Operands() string {
	fields := ""
	for i, on := range []bool{m.F, m.S, m.X, m.C} {
		if on {
			fields += string("fsxc"[i])
		}
	}
	return fmt.Sprintf("%s_%s, %s", m.PSR, fields, m.Src)
}

// LDR loads a word, or a zero-extended byte, into Rd.
type LDR struct {
	Rd   RegisterBank
	Byte bool
	Addr AddressingOffset12
}

func (LDR) conditional()       {}
func (LDR) Name() string       { return "ldr" }
func (l LDR) suffix() string   { return byteSuffix(l.Byte) }
func (l LDR) Operands() string { return fmt.Sprintf("%s, %s", l.Rd, l.Addr) }

// STR stores Rd, or its low byte.
type STR struct {
	Rd   RegisterBank
	Byte bool
	Addr AddressingOffset12
}

func (STR) conditional()       {}
func (STR) Name() string       { return "str" }
func (s STR) suffix() string   { return byteSuffix(s.Byte) }
func (s STR) Operands() string { return fmt.Sprintf("%s, %s", s.Rd, s.Addr) }

func byteSuffix(b bool) string {
	if b {
		return "b"
	}
	return ""
}

// HalfwordTransfer is ldrh, strh, ldrsb or ldrsh.
type HalfwordTransfer struct {
	Load   bool
	Signed bool
	Half   bool
	Rd     RegisterBank
	Addr   HalfwordOrSigned
}

func (HalfwordTransfer) conditional() {}

func (h HalfwordTransfer) Name() string {
	if h.Load {
		return "ldr"
	}
	return "str"
}

func (h HalfwordTransfer) suffix() string {
	s := ""
	if h.Signed {
		s = "s"
	}
	if h.Half {
		return s + "h"
	}
	return s + "b"
}

func (h HalfwordTransfer) Operands() string { return fmt.Sprintf("%s, %s", h.Rd, h.Addr) }

// BlockTransfer is ldm/stm. Before and Up pick the ia/ib/da/db form.
type BlockTransfer struct {
	Load      bool
	Before    bool
	Up        bool
	UserBank  bool
	Writeback bool
	Rn        RegisterBank
	List      uint16
}

func (BlockTransfer) conditional() {}

func (b BlockTransfer) Name() string {
	if b.Load {
		return "ldm"
	}
	return "stm"
}

func (b BlockTransfer) suffix() string {
	switch {
	case b.Up && !b.Before:
		return "ia"
	case b.Up && b.Before:
		return "ib"
	case !b.Up && !b.Before:
		return "da"
	}
	return "db"
}

// Registers lists the transfer registers in ascending order.
func (b BlockTransfer) Registers() []RegisterBank {
	var regs []RegisterBank
	for i := 0; i < 16; i++ {
		if b.List&(1<<uint(i)) != 0 {
			regs = append(regs, regTable[i])
		}
	}
	return regs
}

func (b BlockTransfer) Operands() string {
	var names []string
	for _, r := range b.Registers() {
		names = append(names, r.String())
	}
	bang, hat := "", ""
	if b.Writeback {
		bang = "!"
	}
	if b.UserBank {
		hat = "^"
	}
	return fmt.Sprintf("%s%s, {%s}%s", b.Rn, bang, strings.Join(names, ", "), hat)
}

// CoprocTransfer holds the register transfer fields shared by mcr and mrc.
type CoprocTransfer struct {
	Coproc uint32
	Op1    uint32
	Rd     RegisterBank
	CRn    uint32
	CRm    uint32
	Op2    uint32
}

func (c CoprocTransfer) Operands() string {
	return fmt.Sprintf("p%d, %d, %s, c%d, c%d, %d", c.Coproc, c.Op1, c.Rd, c.CRn, c.CRm, c.Op2)
}

// MCR moves Rd to a coprocessor.
type MCR struct {
	CoprocTransfer
}

func (MCR) conditional() {}
func (MCR) Name() string { return "mcr" }

// MRC moves a coprocessor register to Rd.
type MRC struct {
	CoprocTransfer
}

func (MRC) conditional() {}
func (MRC) Name() string { return "mrc" }

type SWI struct {
	Comment uint32
}

func (SWI) conditional()       {}
func (SWI) Name() string       { return "swi" }
func (s SWI) Operands() string { return fmt.Sprintf("%#x", s.Comment) }

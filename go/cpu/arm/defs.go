package arm

import (
	"fmt"
)

type RegisterBank int

const (
	R0 RegisterBank = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	CPSR
	SPSR
)

const (
	SP = R13
	LR = R14
	PC = R15
)

var bankNames = [...]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc",
	"cpsr", "spsr",
}

func (b RegisterBank) String() string {
	if b < 0 || int(b) >= len(bankNames) {
		return fmt.Sprintf("bank(%d)", int(b))
	}
	return bankNames[b]
}

// BankByName resolves a register name, accepting r13-r15 as aliases.
func BankByName(name string) (RegisterBank, bool) {
	switch name {
	case "r13":
		return SP, true
	case "r14":
		return LR, true
	case "r15":
		return PC, true
	}
	for i, n := range bankNames {
		if n == name {
			return RegisterBank(i), true
		}
	}
	return 0, false
}

// every 4-bit register field names a general register
var regTable = [16]RegisterBank{
	R0, R1, R2, R3, R4, R5, R6, R7,
	R8, R9, R10, R11, R12, R13, R14, R15,
}

func regField(word uint32, shift uint) RegisterBank {
	return regTable[(word>>shift)&0xf]
}

type ProcessorMode int

const (
	User ProcessorMode = iota
	FastInterruptRequest
	InterruptRequest
	Supervisor
	Abort
	Undefined
	System
)

var modeCodes = [...]uint32{
	User:                 0x10,
	FastInterruptRequest: 0x11,
	InterruptRequest:     0x12,
	Supervisor:           0x13,
	Abort:                0x17,
	Undefined:            0x1b,
	System:               0x1f,
}

var modeNames = [...]string{
	User:                 "usr",
	FastInterruptRequest: "fiq",
	InterruptRequest:     "irq",
	Supervisor:           "svc",
	Abort:                "abt",
	Undefined:            "und",
	System:               "sys",
}

// Code is the 5-bit CPSR encoding of the mode.
func (m ProcessorMode) Code() uint32 {
	return modeCodes[m]
}

func (m ProcessorMode) Privileged() bool {
	return m != User
}

func (m ProcessorMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ModeFromCode decodes CPSR bits [4:0].
func ModeFromCode(code uint32) (ProcessorMode, bool) {
	for m, c := range modeCodes {
		if c == code&0x1f {
			return ProcessorMode(m), true
		}
	}
	return 0, false
}

type Condition int

const (
	EQ Condition = iota
	NE
	CS
	CC
	MI
	PL
	VS
	VC
	HI
	LS
	GE
	LT
	GT
	LE
	AL
)

var condTable = [15]Condition{EQ, NE, CS, CC, MI, PL, VS, VC, HI, LS, GE, LT, GT, LE, AL}

var condNames = [...]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "al",
}

func (c Condition) String() string {
	if c < 0 || int(c) >= len(condNames) {
		return fmt.Sprintf("cond(%d)", int(c))
	}
	return condNames[c]
}

// suffix is the mnemonic suffix, empty for AL.
func (c Condition) suffix() string {
	if c == AL {
		return ""
	}
	return c.String()
}

// decodeCondition maps bits [31:28]. 0b1111 is not a condition.
func decodeCondition(word uint32) (Condition, bool) {
	field := word >> 28
	if int(field) >= len(condTable) {
		return 0, false
	}
	return condTable[field], true
}

// program status register layout
const (
	FlagN = 31
	FlagZ = 30
	FlagC = 29
	FlagV = 28

	MaskIRQ = 7
	MaskFIQ = 6
	Thumb   = 5

	ModeBits    uint32 = 0x1f
	ControlBits uint32 = 0x000000ff
	FlagBits    uint32 = 0xf0000000
)

type InstructionSet int

const (
	ARM InstructionSet = iota
	ThumbSet
)

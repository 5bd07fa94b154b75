package models

// Ins is one disassembled instruction.
type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
	// String is the mnemonic and operands as one line.
	String() string
}

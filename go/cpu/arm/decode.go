package arm

func bit(word uint32, n uint) bool {
	return word&(1<<n) != 0
}

func field(word uint32, lo, width uint) uint32 {
	return (word >> lo) & (1<<width - 1)
}

// Decode turns a machine word into an Instruction. Words that match no known
// encoding report false.
func Decode(word uint32) (Instruction, bool) {
	cond, ok := decodeCondition(word)
	if !ok {
		body, ok := decodeUnconditional(word)
		if !ok {
			return nil, false
		}
		return Unconditional{Body: body}, true
	}
	body, ok := decodeConditional(word)
	if !ok {
		return nil, false
	}
	return Conditional{Body: body, Cond: cond}, true
}

// the 0b1111 condition space holds no supported instructions
func decodeUnconditional(word uint32) (UnconditionalBody, bool) {
	return nil, false
}

func decodeConditional(word uint32) (ConditionalBody, bool) {
	switch field(word, 24, 4) {
	case 0x0, 0x1:
		return decodeGroup0(word)
	case 0x2, 0x3:
		return decodeGroup0Immediate(word)
	case 0x4, 0x5:
		return decodeSingleTransfer(word, false)
	case 0x6, 0x7:
		if bit(word, 4) {
			// architecturally undefined
			return nil, false
		}
		return decodeSingleTransfer(word, true)
	case 0x8, 0x9:
		return decodeBlockTransfer(word), true
	case 0xa:
		return B{Offset: branchOffset(word)}, true
	case 0xb:
		return BL{Offset: branchOffset(word)}, true
	case 0xe:
		return decodeCoproc(word)
	case 0xf:
		return SWI{Comment: field(word, 0, 24)}, true
	}
	// 0xc and 0xd are coprocessor loads and stores
	return nil, false
}

// branchOffset sign-extends the 24-bit word offset and adds the 8 byte
// fetch-ahead.
func branchOffset(word uint32) int32 {
	off := field(word, 0, 24)
	if bit(off, 23) {
		off |= 0xff000000
	}
	return int32(off)<<2 + 8
}

// decodeGroup0 handles bits [27:25] == 000: register-operand data
// processing, bx, mrs/msr and the halfword transfers.
func decodeGroup0(word uint32) (ConditionalBody, bool) {
	switch {
	case word&0x0ffffff0 == 0x012fff10:
		return BX{Rm: regField(word, 0)}, true
	case word&0x0fbf0fff == 0x010f0000:
		return MRS{Rd: regField(word, 12), PSR: psrField(word)}, true
	case word&0x0fb0fff0 == 0x0120f000:
		return decodeMSR(word, ShiftedRegister{Rm: regField(word, 0)}), true
	case bit(word, 7) && bit(word, 4):
		if field(word, 5, 2) == 0 {
			// multiply and swap
			return nil, false
		}
		return decodeHalfword(word)
	}
	op := Opcode(field(word, 21, 4))
	s := bit(word, 20)
	if op.compare() && !s {
		// remaining miscellaneous space
		return nil, false
	}
	kind := ShiftKind(field(word, 5, 2))
	rm := regField(word, 0)
	var operand Operand
	if bit(word, 4) {
		operand = RegisterShiftedRegister{Rm: rm, Kind: kind, Rs: regField(word, 8)}
	} else {
		operand = shiftByImmediate(rm, kind, field(word, 7, 5))
	}
	return dataProcessing(word, op, s, operand)
}

// decodeGroup0Immediate handles bits [27:25] == 001: immediate data
// processing and msr.
func decodeGroup0Immediate(word uint32) (ConditionalBody, bool) {
	imm := Immediate{Value: field(word, 0, 8), Rotate: field(word, 8, 4)}
	if word&0x0fb0f000 == 0x0320f000 {
		return decodeMSR(word, imm), true
	}
	op := Opcode(field(word, 21, 4))
	s := bit(word, 20)
	if op.compare() && !s {
		return nil, false
	}
	return dataProcessing(word, op, s, imm)
}

func dataProcessing(word uint32, op Opcode, s bool, operand Operand) (ConditionalBody, bool) {
	d := DataProcessing{Op: op, S: s, Operand: operand}
	if !op.move() {
		d.Rn = regField(word, 16)
	}
	if !op.compare() {
		d.Rd = regField(word, 12)
	}
	return d, true
}

// shiftByImmediate folds the zero amount encodings into their meaning.
func shiftByImmediate(rm RegisterBank, kind ShiftKind, amount uint32) ShiftedRegister {
	if amount == 0 {
		switch kind {
		case LSR, ASR:
			amount = 32
		case ROR:
			kind = RRX
		}
	}
	return ShiftedRegister{Rm: rm, Kind: kind, Amount: amount}
}

func psrField(word uint32) RegisterBank {
	if bit(word, 22) {
		return SPSR
	}
	return CPSR
}

func decodeMSR(word uint32, src Operand) MSR {
	return MSR{
		PSR: psrField(word),
		C:   bit(word, 16),
		X:   bit(word, 17),
		S:   bit(word, 18),
		F:   bit(word, 19),
		Src: src,
	}
}

func addressing(word uint32, offset Operand) Addressing {
	a := Addressing{
		Index:    PostIndex,
		Positive: bit(word, 23),
		Rn:       regField(word, 16),
		Offset:   offset,
	}
	if bit(word, 24) {
		a.Index = PreIndex
		a.Writeback = bit(word, 21)
	}
	return a
}

func decodeSingleTransfer(word uint32, register bool) (ConditionalBody, bool) {
	if !bit(word, 24) && bit(word, 21) {
		// ldrt/strt
		return nil, false
	}
	var offset Operand = Immediate{Value: field(word, 0, 12)}
	if register {
		offset = shiftByImmediate(regField(word, 0), ShiftKind(field(word, 5, 2)), field(word, 7, 5))
	}
	addr := AddressingOffset12{addressing(word, offset)}
	rd := regField(word, 12)
	byteSize := bit(word, 22)
	if bit(word, 20) {
		return LDR{Rd: rd, Byte: byteSize, Addr: addr}, true
	}
	return STR{Rd: rd, Byte: byteSize, Addr: addr}, true
}

func decodeHalfword(word uint32) (ConditionalBody, bool) {
	if !bit(word, 24) && bit(word, 21) {
		return nil, false
	}
	load := bit(word, 20)
	signed, half := bit(word, 6), bit(word, 5)
	if signed && !load {
		// ldrd/strd
		return nil, false
	}
	var offset Operand
	if bit(word, 22) {
		offset = Immediate{Value: field(word, 8, 4)<<4 | field(word, 0, 4)}
	} else {
		if field(word, 8, 4) != 0 {
			return nil, false
		}
		offset = ShiftedRegister{Rm: regField(word, 0), Kind: LSL}
	}
	return HalfwordTransfer{
		Load:   load,
		Signed: signed,
		Half:   half,
		Rd:     regField(word, 12),
		Addr:   HalfwordOrSigned{addressing(word, offset)},
	}, true
}

func decodeBlockTransfer(word uint32) ConditionalBody {
	return BlockTransfer{
		Load:      bit(word, 20),
		Before:    bit(word, 24),
		Up:        bit(word, 23),
		UserBank:  bit(word, 22),
		Writeback: bit(word, 21),
		Rn:        regField(word, 16),
		List:      uint16(field(word, 0, 16)),
	}
}

func decodeCoproc(word uint32) (ConditionalBody, bool) {
	if !bit(word, 4) {
		// cdp
		return nil, false
	}
	t := CoprocTransfer{
		Coproc: field(word, 8, 4),
		Op1:    field(word, 21, 3),
		Rd:     regField(word, 12),
		CRn:    field(word, 16, 4),
		CRm:    field(word, 0, 4),
		Op2:    field(word, 5, 3),
	}
	if bit(word, 20) {
		return MRC{t}, true
	}
	return MCR{t}, true
}

package arm

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/lunixbochs/armor/go/models"
)

// RegisterID names one physical register.
type RegisterID struct {
	Bank RegisterBank
	Mode ProcessorMode
}

func (id RegisterID) String() string {
	return fmt.Sprintf("%s_%s", id.Bank, id.Mode)
}

var bankedModes = []ProcessorMode{FastInterruptRequest, InterruptRequest, Supervisor, Abort, Undefined}

// bankingTable lists every physical register.
func bankingTable() []RegisterID {
	var ids []RegisterID
	for _, b := range []RegisterBank{R0, R1, R2, R3, R4, R5, R6, R7, R15, CPSR} {
		ids = append(ids, RegisterID{b, User})
	}
	for b := R8; b <= R12; b++ {
		ids = append(ids, RegisterID{b, User}, RegisterID{b, FastInterruptRequest})
	}
	for _, b := range []RegisterBank{R13, R14} {
		ids = append(ids, RegisterID{b, User})
		for _, m := range bankedModes {
			ids = append(ids, RegisterID{b, m})
		}
	}
	for _, m := range bankedModes {
		ids = append(ids, RegisterID{SPSR, m})
	}
	return ids
}

// RegisterFile holds the banked registers. The current mode always comes
// from the CPSR mode bits.
type RegisterFile struct {
	regs map[RegisterID]*Register32
	cpsr *Register32
}

func NewRegisterFile() *RegisterFile {
	r := &RegisterFile{regs: make(map[RegisterID]*Register32)}
	for _, id := range bankingTable() {
		r.regs[id] = &Register32{}
	}
	r.cpsr = r.regs[RegisterID{CPSR, User}]
	r.Reset()
	return r
}

// Reset zeroes every register, then enters Supervisor mode in ARM state.
func (r *RegisterFile) Reset() {
	for _, reg := range r.regs {
		reg.Set(0)
	}
	r.SetMode(Supervisor)
	r.cpsr.WriteBit(Thumb, false)
}

// Mode decodes the CPSR mode bits. Unknown codes report false.
func (r *RegisterFile) Mode() (ProcessorMode, bool) {
	return ModeFromCode(r.cpsr.Get())
}

// mode is the current mode, treating an unknown code as User.
func (r *RegisterFile) mode() ProcessorMode {
	if m, ok := r.Mode(); ok {
		return m
	}
	return User
}

// SetMode rewrites the CPSR mode bits directly, as on exception entry.
func (r *RegisterFile) SetMode(m ProcessorMode) {
	r.cpsr.Set(r.cpsr.Get()&^ModeBits | m.Code())
}

// Physical returns the register stored under id, if that pair exists.
func (r *RegisterFile) Physical(id RegisterID) (*Register32, bool) {
	reg, ok := r.regs[id]
	return reg, ok
}

// Lookup resolves bank in the current mode, falling back to the User copy.
// SPSR has no User copy, so it is absent in User and System mode.
func (r *RegisterFile) Lookup(bank RegisterBank) (*Register32, bool) {
	if reg, ok := r.regs[RegisterID{bank, r.mode()}]; ok {
		return reg, true
	}
	if bank == SPSR {
		return nil, false
	}
	reg, ok := r.regs[RegisterID{bank, User}]
	return reg, ok
}

func (r *RegisterFile) mustLookup(bank RegisterBank) *Register32 {
	reg, ok := r.Lookup(bank)
	if !ok {
		panic(fmt.Sprintf("no %s register in %s mode", bank, r.mode()))
	}
	return reg
}

func (r *RegisterFile) Read(bank RegisterBank) uint32 {
	return r.mustLookup(bank).Get()
}

func (r *RegisterFile) Write(bank RegisterBank, val uint32) {
	r.mustLookup(bank).Set(val)
}

func (r *RegisterFile) CPSR() PSR {
	return PSR{reg: r.cpsr, privileged: r.mode().Privileged()}
}

func (r *RegisterFile) SPSR() (PSR, bool) {
	reg, ok := r.Lookup(SPSR)
	if !ok {
		return PSR{}, false
	}
	return PSR{reg: reg, privileged: r.mode().Privileged()}, true
}

// Banks lists the register names visible in the current mode.
func (r *RegisterFile) Banks() []RegisterBank {
	banks := make([]RegisterBank, 0, 18)
	for b := R0; b <= SPSR; b++ {
		if _, ok := r.Lookup(b); ok {
			banks = append(banks, b)
		}
	}
	return banks
}

// RegDump returns the current mode's view of the registers, sorted by name.
func (r *RegisterFile) RegDump() []models.RegVal {
	banks := r.Banks()
	ret := make([]models.RegVal, 0, len(banks))
	for _, b := range banks {
		ret = append(ret, models.RegVal{
			Reg: models.Reg{Enum: int(b), Name: b.String()},
			Val: uint64(r.Read(b)),
		})
	}
	models.SortRegVals(ret)
	return ret
}

// RegisterRecord is one physical register value.
type RegisterRecord struct {
	Bank  RegisterBank
	Mode  ProcessorMode
	Value uint32
}

// ContextSave copies every physical register into a stable order.
func (r *RegisterFile) ContextSave() []RegisterRecord {
	ret := make([]RegisterRecord, 0, len(r.regs))
	for id, reg := range r.regs {
		ret = append(ret, RegisterRecord{id.Bank, id.Mode, reg.Get()})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Bank != ret[j].Bank {
			return ret[i].Bank < ret[j].Bank
		}
		return ret[i].Mode < ret[j].Mode
	})
	return ret
}

// ContextRestore writes saved records back. It fails without changing
// anything if a record names a register that does not exist.
func (r *RegisterFile) ContextRestore(records []RegisterRecord) error {
	for _, rec := range records {
		if _, ok := r.regs[RegisterID{rec.Bank, rec.Mode}]; !ok {
			return errors.Errorf("no physical register %v", RegisterID{rec.Bank, rec.Mode})
		}
	}
	for _, rec := range records {
		r.regs[RegisterID{rec.Bank, rec.Mode}].Set(rec.Value)
	}
	return nil
}

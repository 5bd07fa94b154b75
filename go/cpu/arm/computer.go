package arm

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lunixbochs/armor/go/mem"
	"github.com/lunixbochs/armor/go/models"
	"github.com/lunixbochs/armor/go/models/cpu"
)

var _ cpu.Cpu = &Computer{}

// Processor is the register state of the core.
type Processor struct {
	Registers *RegisterFile
	// instructions completed since construction
	Steps uint64
}

// Computer runs one processor against a MemMap32.
type Computer struct {
	*cpu.Hooks

	Cpu       *Processor
	Mem       *mem.MemMap32
	BigEndian bool

	config *models.Config
	log    *logrus.Logger
	status *models.StatusDiff

	exitRequest bool
}

// New maps boot read-only at address 0 and resets the registers.
func New(boot []mem.Cell, config *models.Config) (*Computer, error) {
	config = config.Init()
	m, err := mem.NewMemMap32(boot)
	if err != nil {
		return nil, err
	}
	c := &Computer{
		Cpu:       &Processor{Registers: NewRegisterFile()},
		Mem:       m,
		BigEndian: config.BigEndian,
		config:    config,
		log:       config.NewLogger(),
	}
	c.Hooks = cpu.NewHooks(c)
	c.status = &models.StatusDiff{Regs: c.Cpu.Registers, Bsz: 8}
	c.status.Changes(false)
	return c, nil
}

func (c *Computer) Config() *models.Config { return c.config }
func (c *Computer) Logger() *logrus.Logger { return c.log }

func (c *Computer) RegDump() []models.RegVal {
	return c.Cpu.Registers.RegDump()
}

func (c *Computer) Mappings() []mem.Mapping {
	return c.Mem.Mappings()
}

func (c *Computer) fetch(addr uint64) (Instruction, uint32, error) {
	word, ok := c.Mem.Get32(addr, c.BigEndian)
	if !ok {
		return nil, 0, errors.Wrapf(ErrUninitializedMemory, "fetch at %#x", addr)
	}
	ins, ok := Decode(word)
	if !ok {
		return nil, word, &DecodeError{Addr: addr, Word: word}
	}
	return ins, word, nil
}

// InstructionAt fetches and decodes without executing.
func (c *Computer) InstructionAt(addr uint64) (Instruction, error) {
	ins, _, err := c.fetch(addr)
	return ins, err
}

// ExecuteNextInstruction runs the instruction at pc, then advances pc by 4.
// Handlers that branch leave pc at target-4 so the advance lands on the
// target. On error the instruction has no effect and pc is not advanced.
// A code hook may call Stop to skip the instruction.
func (c *Computer) ExecuteNextInstruction() error {
	c.exitRequest = false
	regs := c.Cpu.Registers
	pc := regs.Read(PC)
	if pc&3 != 0 {
		panic(fmt.Sprintf("misaligned pc %#x", pc))
	}
	ins, word, err := c.fetch(uint64(pc))
	if err != nil {
		return err
	}
	c.OnCode(uint64(pc), 4)
	if c.exitRequest {
		return nil
	}
	entry := c.log.WithFields(logrus.Fields{
		"pc":   fmt.Sprintf("0x%08x", pc),
		"word": fmt.Sprintf("%08x", word),
		"ins":  ins.String(),
	})
	entry.Debug("step")
	if c.config.TraceExec {
		fmt.Fprintf(c.config.Output, "0x%08x: %08x %s\n", pc, word, ins)
	}
	if c.conditionPassed(ins) {
		if err := c.execute(pc, ins); err != nil {
			return err
		}
	} else {
		entry.Debug("condition failed")
	}
	regs.Write(PC, regs.Read(PC)+4)
	c.Cpu.Steps++
	if c.config.TraceReg {
		if cs := c.status.Changes(true); cs.Count() > 0 {
			fmt.Fprint(c.config.Output, cs.String(c.config.Color))
		}
	}
	return nil
}

func (c *Computer) conditionPassed(ins Instruction) bool {
	if cond, ok := ins.(Conditional); ok {
		return cond.Cond.PassedPSR(c.Cpu.Registers.CPSR())
	}
	return true
}

// Run executes until max instructions have completed (0 means no limit),
// ctx is done, Stop is called or an instruction fails. It returns the
// number of instructions completed.
func (c *Computer) Run(ctx context.Context, max uint64) (uint64, error) {
	start := c.Cpu.Steps
	for max == 0 || c.Cpu.Steps-start < max {
		if err := ctx.Err(); err != nil {
			return c.Cpu.Steps - start, err
		}
		if err := c.ExecuteNextInstruction(); err != nil {
			return c.Cpu.Steps - start, err
		}
		if c.exitRequest {
			break
		}
	}
	return c.Cpu.Steps - start, nil
}

// Start jumps to begin and runs until pc reaches until.
func (c *Computer) Start(begin, until uint64) error {
	regs := c.Cpu.Registers
	regs.Write(PC, uint32(begin))
	for uint64(regs.Read(PC)) != until {
		if err := c.ExecuteNextInstruction(); err != nil {
			return err
		}
		if c.exitRequest {
			break
		}
	}
	return nil
}

func (c *Computer) Stop() error {
	c.exitRequest = true
	return nil
}

func (c *Computer) RegRead(reg int) (uint64, error) {
	bank := RegisterBank(reg)
	if bank < R0 || bank > SPSR {
		return 0, errors.Errorf("invalid register %d", reg)
	}
	r, ok := c.Cpu.Registers.Lookup(bank)
	if !ok {
		return 0, errors.WithStack(ErrNoSPSR)
	}
	return uint64(r.Get()), nil
}

func (c *Computer) RegWrite(reg int, val uint64) error {
	bank := RegisterBank(reg)
	if bank < R0 || bank > SPSR {
		return errors.Errorf("invalid register %d", reg)
	}
	r, ok := c.Cpu.Registers.Lookup(bank)
	if !ok {
		return errors.WithStack(ErrNoSPSR)
	}
	r.Set(uint32(val))
	return nil
}

func (c *Computer) MemRead(addr, size uint64) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	data, ok := c.Mem.ReadCells(addr, addr+size-1)
	if !ok {
		return nil, &mem.MemError{Addr: addr, Size: int(size), Enum: cpu.MEM_READ_UNMAPPED}
	}
	return data, nil
}

func (c *Computer) MemWrite(addr uint64, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if !c.Mem.RangeWritable(addr, uint64(len(p))) {
		return &mem.MemError{Addr: addr, Size: len(p), Enum: cpu.MEM_WRITE_UNMAPPED}
	}
	c.Mem.WriteCells(p, addr)
	return nil
}

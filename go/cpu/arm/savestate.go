package arm

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/lunixbochs/armor/go/mem"
	"github.com/lunixbochs/armor/go/models"
)

// savestate format, all integers big endian:
//
// header (uncompressed)
// [4]byte("ARMS"), uint32(version), uint8(1 if big endian)
//
// body (snappy framed stream)
// uint32(register count)
// 1..count: uint8(bank), uint8(mode), uint32(value)
// uint32(ram run count)
// 1..count: uint64(addr), uint32(len), <len raw bytes>
//
// the boot rom is not saved; restore into a Computer built from the same image

const (
	SaveMagic   = "ARMS"
	SaveVersion = 1
)

type SaveHeader struct {
	Magic     string `struc:"[4]byte"`
	Version   uint32
	BigEndian bool
}

type saveReg struct {
	Bank  uint8
	Mode  uint8
	Value uint32
}

type saveRun struct {
	Addr uint64
	Len  uint32
}

var saveOptions = &struc.Options{Order: binary.BigEndian}

// Save writes the registers and every stored RAM cell to w.
func (c *Computer) Save(w io.Writer) error {
	header := &SaveHeader{Magic: SaveMagic, Version: SaveVersion, BigEndian: c.BigEndian}
	if err := struc.PackWithOptions(w, header, saveOptions); err != nil {
		return errors.Wrap(err, "failed to pack header")
	}
	zw := snappy.NewBufferedWriter(w)
	rw := bufio.NewReadWriter(nil, bufio.NewWriter(zw))
	s := models.StrucStream{Stream: rw, Options: saveOptions}

	regs := c.Cpu.Registers.ContextSave()
	if err := s.Pack(uint32(len(regs))); err != nil {
		return errors.Wrap(err, "failed to pack registers")
	}
	for _, r := range regs {
		if err := s.Pack(&saveReg{uint8(r.Bank), uint8(r.Mode), r.Value}); err != nil {
			return errors.Wrap(err, "failed to pack registers")
		}
	}
	runs := c.Mem.DRAM.Runs()
	if err := s.Pack(uint32(len(runs))); err != nil {
		return errors.Wrap(err, "failed to pack memory")
	}
	for _, run := range runs {
		if err := s.Pack(&saveRun{run.Addr, uint32(len(run.Data))}); err != nil {
			return errors.Wrap(err, "failed to pack memory")
		}
		if _, err := rw.Write(run.Data); err != nil {
			return errors.Wrap(err, "failed to write memory")
		}
	}
	if err := rw.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush savestate")
	}
	return errors.Wrap(zw.Close(), "failed to close savestate")
}

// Restore replaces the registers and RAM with a savestate. Nothing changes
// unless the whole state reads back cleanly.
func (c *Computer) Restore(r io.Reader) error {
	var header SaveHeader
	if err := struc.UnpackWithOptions(r, &header, saveOptions); err != nil {
		return errors.Wrap(err, "failed to read header")
	}
	if header.Magic != SaveMagic {
		return errors.Errorf("not a savestate (magic %q)", header.Magic)
	}
	if header.Version != SaveVersion {
		return errors.Errorf("unsupported savestate version %d", header.Version)
	}
	rw := bufio.NewReadWriter(bufio.NewReader(snappy.NewReader(r)), nil)
	s := models.StrucStream{Stream: rw, Options: saveOptions}

	var count uint32
	if err := s.Unpack(&count); err != nil {
		return errors.Wrap(err, "failed to read registers")
	}
	records := make([]RegisterRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		var reg saveReg
		if err := s.Unpack(&reg); err != nil {
			return errors.Wrap(err, "failed to read registers")
		}
		records = append(records, RegisterRecord{RegisterBank(reg.Bank), ProcessorMode(reg.Mode), reg.Value})
	}
	if err := s.Unpack(&count); err != nil {
		return errors.Wrap(err, "failed to read memory")
	}
	ram := c.Mem.DRAM
	runs := make([]mem.Run, 0, count)
	for i := uint32(0); i < count; i++ {
		var run saveRun
		if err := s.Unpack(&run); err != nil {
			return errors.Wrap(err, "failed to read memory")
		}
		if run.Len == 0 || !mem.Contains(ram, run.Addr) || !mem.Contains(ram, run.Addr+uint64(run.Len)-1) {
			return errors.Errorf("memory run %#x+%d is outside ram", run.Addr, run.Len)
		}
		data := make([]byte, run.Len)
		if _, err := io.ReadFull(rw, data); err != nil {
			return errors.Wrap(err, "failed to read memory")
		}
		runs = append(runs, mem.Run{Addr: run.Addr, Data: data})
	}

	saved := c.Cpu.Registers.ContextSave()
	if err := c.Cpu.Registers.ContextRestore(records); err != nil {
		return err
	}
	if _, ok := c.Cpu.Registers.Mode(); !ok {
		c.Cpu.Registers.ContextRestore(saved)
		return errors.New("savestate cpsr holds an unknown mode")
	}
	ram.Clear()
	for _, run := range runs {
		for i, b := range run.Data {
			ram.Put(run.Addr+uint64(i), b)
		}
	}
	c.BigEndian = header.BigEndian
	c.status.Changes(false)
	return nil
}

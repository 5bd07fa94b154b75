package arm

import (
	"fmt"

	"github.com/lunixbochs/armor/go/models"
	"github.com/lunixbochs/armor/go/models/cpu"
)

type ins struct {
	addr  uint64
	bytes []byte
	name  string
	ops   string
}

func (i *ins) Addr() uint64     { return i.addr }
func (i *ins) Bytes() []byte    { return i.bytes }
func (i *ins) Mnemonic() string { return i.name }
func (i *ins) OpStr() string    { return i.ops }
func (i *ins) String() string   { return join(i.name, i.ops) }

type Dis struct {
	BigEndian bool
}

// Dis decodes every whole word in mem. Words that don't decode are listed
// as .word directives.
func (d *Dis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	order := cpu.Order(d.BigEndian)
	var out []models.Ins
	for i := 0; i+4 <= len(mem); i += 4 {
		raw := mem[i : i+4]
		word := order.Uint32(raw)
		in := &ins{addr: addr + uint64(i), bytes: raw}
		if dec, ok := Decode(word); ok {
			in.name, in.ops = dec.Mnemonic(), dec.OpStr()
		} else {
			in.name, in.ops = ".word", fmt.Sprintf("0x%08x", word)
		}
		out = append(out, in)
	}
	return out, nil
}

// Disassemble lists count instructions starting at addr, stopping early at
// the first absent cell.
func (c *Computer) Disassemble(addr uint64, count int) []models.Ins {
	d := Dis{BigEndian: c.BigEndian}
	var out []models.Ins
	for i := 0; i < count; i++ {
		at := addr + uint64(4*i)
		raw, ok := c.Mem.ReadCells(at, at+3)
		if !ok {
			break
		}
		code, _ := d.Dis(raw, at)
		out = append(out, code...)
	}
	return out
}

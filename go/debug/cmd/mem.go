package cmd

import (
	"github.com/lunixbochs/armor/go/models"
)

var MapsCmd = cmd(&Command{
	Name: "maps",
	Desc: "Display memory mappings.",
	Run: func(c *Context) error {
		for _, m := range c.C.Mappings() {
			c.Printf("  %v\n", m.String())
		}
		return nil
	},
})

var MemCmd = cmd(&Command{
	Name: "mem",
	Desc: "Hex dump memory.",
	Run: func(c *Context, addr, size uint64) error {
		mem, err := c.C.MemRead(addr, size)
		if err != nil {
			return err
		}
		for _, line := range models.HexDump(addr, mem, 32) {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})

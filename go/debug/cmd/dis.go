package cmd

import (
	"context"
	"encoding/hex"
)

var DisCmd = cmd(&Command{
	Name: "dis",
	Desc: "Disassemble count instructions.",
	Run: func(c *Context, addr uint64, count int) error {
		for _, ins := range c.C.Disassemble(addr, count) {
			c.Printf("0x%08x: %s %s\n", ins.Addr(), hex.EncodeToString(ins.Bytes()), ins)
		}
		return nil
	},
})

var StepCmd = cmd(&Command{
	Name: "step",
	Desc: "Execute count instructions.",
	Run: func(c *Context, count uint64) error {
		if count == 0 {
			return nil
		}
		n, err := c.C.Run(context.Background(), count)
		c.Printf("executed %d\n", n)
		return err
	},
})

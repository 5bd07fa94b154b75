package cmd

import (
	"regexp"
	"strconv"

	"github.com/pkg/errors"

	"github.com/lunixbochs/armor/go/cpu/arm"
)

var strEqNumRe = regexp.MustCompile(`^([a-z0-9]+)=((-|0|0x|0b)?[0-9a-fA-F]+)$`)

var RegsCmd = cmd(&Command{
	Name: "regs",
	Desc: "Display the registers of the current mode.",
	Run: func(c *Context) error {
		for _, reg := range c.C.RegDump() {
			c.Printf("%-4s 0x%08x\n", reg.Name, reg.Val)
		}
		return nil
	},
})

var RegCmd = cmd(&Command{
	Name: "reg",
	Desc: "Read a register, or write one with name=value.",
	Run: func(c *Context, arg string) error {
		name := arg
		var value uint64
		match := strEqNumRe.FindStringSubmatch(arg)
		if len(match) > 0 {
			name = match[1]
			var err error
			if match[2][0] == '-' {
				var n int64
				n, err = strconv.ParseInt(match[2], 0, 32)
				value = uint64(uint32(n))
			} else {
				value, err = strconv.ParseUint(match[2], 0, 32)
			}
			if err != nil {
				return errors.Wrapf(err, "bad %s value", name)
			}
		}
		bank, ok := arm.BankByName(name)
		if !ok {
			return errors.Errorf("reg %s not found", name)
		}
		if len(match) > 0 {
			return c.C.RegWrite(int(bank), value)
		}
		val, err := c.C.RegRead(int(bank))
		if err != nil {
			return err
		}
		c.Printf("%s %#x\n", bank, val)
		return nil
	},
})

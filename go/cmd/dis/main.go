package dis

import (
	"context"
	"fmt"

	"github.com/lunixbochs/armor/go/cmd"
)

func Main(args []string) int {
	c := cmd.NewArmorCmd()
	var addr *uint64
	var count *int
	c.SetupFlags = func() error {
		addr = c.Flags.Uint64("addr", 0, "address to start disassembly")
		count = c.Flags.Int("n", 16, "number of words to list")
		return nil
	}
	c.RunArmor = func(ctx context.Context) error {
		for _, ins := range c.Computer.Disassemble(*addr, *count) {
			fmt.Fprintf(c.Stdout, "0x%08x: %x %s\n", ins.Addr(), ins.Bytes(), ins)
		}
		return nil
	}
	return c.Run(args)
}

func init() { cmd.Register("dis", "disassemble a boot image", Main) }

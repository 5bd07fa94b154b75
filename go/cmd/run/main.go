package run

import (
	"github.com/lunixbochs/armor/go/cmd"
)

func Main(args []string) int {
	return cmd.NewArmorCmd().Run(args)
}

func init() { cmd.Register("run", "execute a boot image", Main) }

package cmd

import (
	"fmt"
	"io"

	"github.com/lunixbochs/armor/go/cpu/arm"
)

type Context struct {
	io.Writer
	C *arm.Computer
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}

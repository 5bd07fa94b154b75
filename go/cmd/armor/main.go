package main

import (
	"os"

	"github.com/lunixbochs/armor/go/cmd"

	_ "github.com/lunixbochs/armor/go/cmd/run"

	_ "github.com/lunixbochs/armor/go/cmd/dis"
)

func main() { os.Exit(cmd.Main(os.Args)) }

package cmd

import (
	"fmt"
	"os"
	"strings"
)

type command struct {
	name, desc string
	main       func(args []string) int
}

var commands = make(map[string]*command)
var order []string
var pad int

// Register adds a subcommand to the armor launcher.
func Register(name, desc string, main func(args []string) int) {
	if len(name) > pad {
		pad = len(name)
	}
	commands[name] = &command{name, desc, main}
	order = append(order, name)
}

func usage(args []string) {
	fmt.Fprintln(os.Stderr, "Commands:")
	fstr := fmt.Sprintf("  %%-%ds | %%s\n", pad)
	for _, name := range order {
		cmd := commands[name]
		fmt.Fprintf(os.Stderr, fstr, cmd.name, cmd.desc)
	}
	fmt.Fprintf(os.Stderr, "\nExample: %s run -etrace -steps 100 boot.bin\n\n", args[0])
}

// Main dispatches args[1] to a registered subcommand and returns its exit code.
func Main(args []string) int {
	if len(args) < 2 {
		usage(args)
		return 1
	}
	cmd, ok := commands[args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Command '%s' not found.\n\n", args[1])
		usage(args)
		return 1
	}
	sub := append([]string{strings.Join(args[:2], " ")}, args[2:]...)
	return cmd.main(sub)
}

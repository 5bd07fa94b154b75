package cmd

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/lunixbochs/argjoy"
	"github.com/mattn/go-shellwords"
)

type Command struct {
	Name string
	Desc string
	// Run takes a *Context followed by fixed arguments. string, uint64
	// and int arguments are converted from the command line.
	Run interface{}
}

func (c *Command) arity() int {
	return reflect.TypeOf(c.Run).NumIn() - 1
}

func (c *Command) Usage() string {
	t := reflect.TypeOf(c.Run)
	usage := c.Name
	for i := 1; i < t.NumIn(); i++ {
		usage += fmt.Sprintf(" <%s>", t.In(i))
	}
	return usage
}

var Commands = make(map[string]*Command)

func cmd(c *Command) *Command {
	fn := reflect.ValueOf(c.Run)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("Command.Run must be a func: got (%T) %#v\n", c.Run, c.Run))
	}
	t := fn.Type()
	if t.IsVariadic() || t.NumIn() == 0 || t.In(0) != reflect.TypeOf(&Context{}) {
		panic(fmt.Sprintf("Command.Run must take a *Context and fixed arguments: %s", t))
	}
	Commands[c.Name] = c
	return c
}

// Names lists the registered commands alphabetically.
func Names() []string {
	names := make([]string, 0, len(Commands))
	for name := range Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func argCodec(arg interface{}, vals []interface{}) error {
	if ctx, ok := vals[0].(*Context); ok {
		if v, ok := arg.(**Context); ok {
			*v = ctx
			return nil
		}
		return argjoy.NoMatch
	}
	s, ok := vals[0].(string)
	if !ok {
		return argjoy.NoMatch
	}
	switch v := arg.(type) {
	case *string:
		*v = s
	case *uint64:
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}
		*v = n
	case *int:
		n, err := strconv.ParseInt(s, 0, 0)
		if err != nil {
			return err
		}
		*v = int(n)
	default:
		return argjoy.NoMatch
	}
	return nil
}

var aj = argjoy.NewArgjoy()

func init() {
	aj.Register(argCodec)
}

// Run parses and runs one command line. Command failures are printed to
// the context; the returned error is the command's own error, if any.
func Run(c *Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		c.Printf("parse error: %v\n", err)
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	cmd, ok := Commands[name]
	if !ok {
		c.Printf("command not found: %s\n", name)
		return nil
	}
	if len(args) != cmd.arity() {
		c.Printf("usage: %s\n", cmd.Usage())
		return nil
	}
	vals := make([]interface{}, 0, len(args)+1)
	vals = append(vals, c)
	for _, arg := range args {
		vals = append(vals, arg)
	}
	out, err := aj.Call(cmd.Run, vals...)
	if err != nil {
		c.Printf("error: %v\n", err)
		return nil
	}
	if len(out) > 0 {
		if err, ok := out[0].(error); ok {
			c.Printf("error: %v\n", err)
			return err
		}
	}
	return nil
}

var HelpCmd = cmd(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context) error {
		for _, name := range Names() {
			cmd := Commands[name]
			c.Printf("  %-24s %s\n", cmd.Usage(), cmd.Desc)
		}
		return nil
	},
})

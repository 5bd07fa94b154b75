package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/lunixbochs/vtclean"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"golang.org/x/term"

	"github.com/lunixbochs/armor/go/cpu/arm"
	dcmd "github.com/lunixbochs/armor/go/debug/cmd"
	"github.com/lunixbochs/armor/go/models"
	"github.com/lunixbochs/armor/go/models/cpu"
)

type strslice []string

func (s *strslice) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *strslice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// cleanWriter strips terminal escapes from each line written through it.
type cleanWriter struct {
	io.Writer
}

func (c *cleanWriter) Write(p []byte) (int, error) {
	lines := strings.Split(string(p), "\n")
	for i, line := range lines {
		lines[i] = vtclean.Clean(line, false)
	}
	if _, err := io.WriteString(c.Writer, strings.Join(lines, "\n")); err != nil {
		return 0, err
	}
	return len(p), nil
}

type ArmorCmd struct {
	Config *models.Config

	SetupFlags func() error
	// RunArmor replaces the default run loop when set.
	RunArmor func(ctx context.Context) error

	Computer *arm.Computer
	Flags    *flag.FlagSet
	Stdout   io.Writer
	Stderr   io.Writer
}

func NewArmorCmd() *ArmorCmd {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	return &ArmorCmd{Flags: fs, Stdout: os.Stdout, Stderr: os.Stderr}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (c *ArmorCmd) PrintError(err error) {
	// print an error, and a stacktrace if available
	w := c.Stderr
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w, "Error: %s\n", err)
	tracer, ok := err.(stackTracer)
	if !ok {
		// the innermost wrap carries the original stack
		if cause, ok := errors.Cause(err).(stackTracer); ok {
			tracer = cause
		}
	}
	if tracer == nil {
		return
	}
	var frames [][]string
	for _, f := range tracer.StackTrace() {
		fileline := fmt.Sprintf("%s:%d", f, f)
		method := fmt.Sprintf("%n", f)
		frames = append(frames, []string{fileline, method})
		if method == "main" {
			break
		}
	}
	width := 0
	for _, f := range frames {
		if len(f[0]) > width {
			width = len(f[0])
		}
	}
	for _, f := range frames {
		fmt.Fprintf(w, "%s%s | %s()\n", f[0], strings.Repeat(" ", width-len(f[0])), f[1])
	}
}

// StatePath resolves a savestate name. Bare names live in the per-user
// cache folder.
func StatePath(name string) (string, error) {
	if filepath.Base(name) != name {
		return name, nil
	}
	cache := configdir.New("armor", "states").QueryCacheFolder()
	if err := cache.MkdirAll(); err != nil {
		return "", errors.Wrap(err, "failed to create savestate folder")
	}
	return filepath.Join(cache.Path, name), nil
}

func (c *ArmorCmd) loadState(name string) error {
	path, err := StatePath(name)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return errors.Wrapf(c.Computer.Restore(f), "failed to load %s", path)
}

func (c *ArmorCmd) saveState(name string) error {
	path, err := StatePath(name)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := c.Computer.Save(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to save %s", path)
	}
	return errors.WithStack(f.Close())
}

// Run parses argv, loads the boot image named by the last argument and
// runs it. It returns the process exit code.
func (c *ArmorCmd) Run(argv []string) int {
	fs := c.Flags
	fs.SetOutput(c.Stderr)
	// tracing flags
	trace := fs.Bool("trace", false, "recommended tracing options: -etrace -rtrace -mtrace")
	etrace := fs.Bool("etrace", false, "trace execution")
	rtrace := fs.Bool("rtrace", false, "trace register modification")
	mtrace := fs.Bool("mtrace", false, "trace memory access")
	verbose := fs.Bool("v", false, "verbose output (debug log of every step)")
	tnames := []string{"trace", "etrace", "rtrace", "mtrace", "v"}

	steps := fs.Uint64("steps", 0, "stop after this many instructions (0 runs until an error)")
	until := fs.Int64("until", -1, "stop when pc reaches this address")
	big := fs.Bool("big", false, "big endian memory")
	color := fs.Bool("color", false, "force colored output")
	nocolor := fs.Bool("nocolor", false, "disable colored output")
	outfile := fs.String("o", "", "redirect trace and log output to file (default stderr)")
	load := fs.String("load", "", "restore a savestate before running")
	savepost := fs.String("savepost", "", "save state after emulation ends")
	var exec strslice
	fs.Var(&exec, "x", "run a debugger command after emulation ends (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(c.Stderr, "Usage: %s [options] <boot image>\n\nOptions:\n", argv[0])
		var flags []*flag.Flag
		var tflags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) {
			for _, name := range tnames {
				if name == f.Name {
					tflags = append(tflags, f)
					return
				}
			}
			flags = append(flags, f)
		})
		models.PrintFlags(c.Stderr, flags)
		fmt.Fprintf(c.Stderr, "\nTrace Options:\n")
		models.PrintFlags(c.Stderr, tflags)
		fmt.Fprintf(c.Stderr, "\nExample:\n  %s -etrace -until 0x100 -x regs boot.bin\n", argv[0])
	}
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	if err := fs.Parse(argv[1:]); err != nil {
		return 2
	}
	args := fs.Args()
	if len(args) != 1 {
		fs.Usage()
		return 2
	}

	config := &models.Config{
		BigEndian: *big,
		TraceExec: *etrace || *trace,
		TraceMem:  *mtrace || *trace,
		TraceReg:  *rtrace || *trace,
		Verbose:   *verbose,
		Output:    c.Stderr,
	}
	if *outfile != "" {
		out, err := os.OpenFile(*outfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			c.PrintError(errors.WithStack(err))
			return 1
		}
		defer out.Close()
		config.Output = &cleanWriter{out}
	} else if f, ok := c.Stderr.(*os.File); ok {
		config.Color = term.IsTerminal(int(f.Fd()))
	}
	if *color {
		config.Color = true
	}
	if *nocolor {
		config.Color = false
	}
	c.Config = config

	image, err := ioutil.ReadFile(args[0])
	if err != nil {
		c.PrintError(errors.WithStack(err))
		return 1
	}
	computer, err := arm.New(image, config)
	if err != nil {
		c.PrintError(err)
		return 1
	}
	c.Computer = computer
	if *load != "" {
		if err := c.loadState(*load); err != nil {
			c.PrintError(err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	status := 0
	switch {
	case c.RunArmor != nil:
		err = c.RunArmor(ctx)
	default:
		var hh cpu.Hook
		if *until >= 0 {
			addr := uint64(*until)
			hh, _ = computer.HookAdd(cpu.HOOK_CODE, func(cc cpu.Cpu, _ uint64, _ uint32) {
				cc.Stop()
			}, addr, addr)
		}
		_, err = computer.Run(ctx, *steps)
		if hh != nil {
			computer.HookDel(hh)
		}
	}
	if err != nil {
		c.PrintError(err)
		status = 1
	}

	dctx := &dcmd.Context{Writer: c.Stdout, C: computer}
	for _, line := range exec {
		if err := dcmd.Run(dctx, line); err != nil {
			status = 1
		}
	}
	if *savepost != "" {
		if err := c.saveState(*savepost); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	return status
}

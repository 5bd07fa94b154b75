package cmd

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func writeImage(t *testing.T, words ...uint32) string {
	boot := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(boot[i*4:], w)
	}
	path := filepath.Join(t.TempDir(), "boot.bin")
	if err := ioutil.WriteFile(path, boot, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	c := NewArmorCmd()
	c.Stdout, c.Stderr = &stdout, &stderr
	status := c.Run(append([]string{"armor"}, args...))
	return status, stdout.String(), stderr.String()
}

func TestRunSteps(t *testing.T) {
	image := writeImage(t, 0xe3a00001, 0xe3a01002, 0xe3a02003)
	status, out, _ := runCmd("-steps", "2", "-x", "reg r1", "-x", "reg r2", image)
	if status != 0 {
		t.Fatalf("status %d", status)
	}
	if out != "r1 0x2\nr2 0x0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRunUntil(t *testing.T) {
	image := writeImage(t, 0xe3a00001, 0xe3a01002, 0xe3a02003)
	status, out, _ := runCmd("-until", "8", "-x", "reg pc", image)
	if status != 0 || out != "pc 0x8\n" {
		t.Fatalf("status %d, %q", status, out)
	}
}

func TestRunError(t *testing.T) {
	image := writeImage(t, 0xe3a00001)
	status, out, errout := runCmd("-x", "reg r0", image)
	if status != 1 {
		t.Fatalf("status %d", status)
	}
	if out != "r0 0x1\n" {
		t.Fatalf("commands did not run after the error: %q", out)
	}
	if !strings.Contains(errout, "uninitialized memory") {
		t.Fatalf("stderr %q", errout)
	}
}

func TestTraceToFile(t *testing.T) {
	image := writeImage(t, 0xe3a00001, 0xe3a01002)
	log := filepath.Join(t.TempDir(), "trace.txt")
	status, _, _ := runCmd("-etrace", "-rtrace", "-color", "-steps", "2", "-o", log, image)
	if status != 0 {
		t.Fatalf("status %d", status)
	}
	data, err := ioutil.ReadFile(log)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "mov r1, #0x2") {
		t.Fatalf("trace %q", data)
	}
	if bytes.Contains(data, []byte("\x1b[")) {
		t.Fatal("escape codes in trace file")
	}
}

func TestSaveLoad(t *testing.T) {
	image := writeImage(t, 0xe3a01102, 0xe3a020ff, 0xe5812000)
	state := filepath.Join(t.TempDir(), "state.arms")
	if status, _, errout := runCmd("-steps", "3", "-savepost", state, image); status != 0 {
		t.Fatalf("save: %s", errout)
	}
	if _, err := os.Stat(state); err != nil {
		t.Fatal(err)
	}
	status, out, errout := runCmd("-load", state, "-steps", "0", "-until", "12", "-x", "mem 0x80000000 4", "-x", "reg pc", image)
	if status != 0 {
		t.Fatalf("load: %s", errout)
	}
	if !strings.Contains(out, "ff000000") || !strings.Contains(out, "pc 0xc") {
		t.Fatalf("got %q", out)
	}
}

func TestUsage(t *testing.T) {
	status, _, errout := runCmd()
	if status != 2 || !strings.Contains(errout, "Usage:") || !strings.Contains(errout, "Trace Options:") {
		t.Fatalf("status %d, %q", status, errout)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	c := NewArmorCmd()
	c.Stderr = &buf
	c.PrintError(errors.Wrap(errors.New("inner"), "outer"))
	out := buf.String()
	if !strings.Contains(out, "Error: outer: inner") || !strings.Contains(out, "TestPrintError()") {
		t.Fatalf("got %q", out)
	}
}

func TestStatePath(t *testing.T) {
	if path, err := StatePath("dir/state"); err != nil || path != "dir/state" {
		t.Fatalf("got %q, %v", path, err)
	}
}

func TestLauncher(t *testing.T) {
	var got []string
	Register("echo", "record arguments", func(args []string) int {
		got = args
		return 3
	})
	if status := Main([]string{"armor", "echo", "-x", "y"}); status != 3 {
		t.Fatalf("status %d", status)
	}
	if len(got) != 3 || got[0] != "armor echo" || got[2] != "y" {
		t.Fatalf("got %v", got)
	}
	if status := Main([]string{"armor", "missing"}); status != 1 {
		t.Fatalf("missing command status %d", status)
	}
}

func TestUntilHookRemoved(t *testing.T) {
	image := writeImage(t, 0xe3a00001, 0xe3a01002, 0xe3a02003)
	status, out, errout := runCmd("-until", "4", "-x", "step 1", "-x", "reg pc", image)
	if status != 0 {
		t.Fatalf("status %d: %s", status, errout)
	}
	if out != "executed 1\npc 0x8\n" {
		t.Fatalf("got %q", out)
	}
}

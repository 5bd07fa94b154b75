package models

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
)

var chSame = ansi.ColorCode("default:default")
var chNew = ansi.ColorCode("default+bu:default")

func colorPad(s, color string, pad int) string {
	length := len(s)
	s = color + s + ansi.Reset
	if length < pad {
		s = strings.Repeat(" ", pad-length) + s
	}
	return s
}

// Change is one register's value across two dumps.
type Change struct {
	Old, New uint64
	Enum     int
	Name     string
}

func (c *Change) Changed() bool {
	return c.Old != c.New
}

// digits splits the hex rendering of New into runs that did or did not change.
func (c *Change) digits(bsz int) (runs []string, changed []bool) {
	hexFmt := fmt.Sprintf("%%0%dx", bsz)
	s1, s2 := fmt.Sprintf(hexFmt, c.New), fmt.Sprintf(hexFmt, c.Old)
	pos := 0
	for i := 1; i <= len(s1); i++ {
		if i == len(s1) || (s1[i] == s2[i]) != (s1[pos] == s2[pos]) {
			runs = append(runs, s1[pos:i])
			changed = append(changed, s1[pos] != s2[pos])
			pos = i
		}
	}
	return runs, changed
}

func (c *Change) String(bsz int, color bool) string {
	hexFmt := fmt.Sprintf("%%0%dx", bsz)
	line := fmt.Sprintf(" %4s 0x"+hexFmt, c.Name, c.New)
	if !c.Changed() {
		return line
	}
	if !color {
		return "+" + line
	}
	out := []string{fmt.Sprintf(" %s 0x", colorPad(c.Name, chNew, 4))}
	runs, changed := c.digits(bsz)
	for i, run := range runs {
		col := chSame
		if changed[i] {
			col = chNew
		}
		out = append(out, col+run)
	}
	out = append(out, ansi.Reset)
	return strings.Join(out, "")
}

type Changes struct {
	Bsz     int
	Changes []*Change
}

// String lays the changes out in four columns, filled top to bottom.
func (cs *Changes) String(color bool) string {
	const cols = 4
	changes := cs.Changes
	rows := (len(changes) + cols - 1) / cols
	var out []string
	for i := 0; i < rows; i++ {
		var line []string
		for j := 0; j < cols; j++ {
			if k := j*rows + i; k < len(changes) {
				line = append(line, changes[k].String(cs.Bsz, color))
			}
		}
		out = append(out, strings.Join(line, " ")+"\n")
	}
	return strings.Join(out, "")
}

func (cs *Changes) Count() int {
	n := 0
	for _, c := range cs.Changes {
		if c.Changed() {
			n++
		}
	}
	return n
}

func (cs *Changes) Find(enum int) *Change {
	for _, c := range cs.Changes {
		if c.Enum == enum {
			return c
		}
	}
	return nil
}

// StatusDiff remembers the last register dump so each call can report what moved.
type StatusDiff struct {
	Regs RegDumper
	Bsz  int

	old map[int]uint64
}

func (s *StatusDiff) Changes(onlyChanged bool) *Changes {
	regs := s.Regs.RegDump()
	cs := make([]*Change, 0, len(regs))
	for _, reg := range regs {
		var old uint64
		if s.old != nil {
			old = s.old[reg.Enum]
		}
		change := &Change{Old: old, New: reg.Val, Enum: reg.Enum, Name: reg.Name}
		if !onlyChanged || change.Changed() {
			cs = append(cs, change)
		}
	}
	s.old = make(map[int]uint64, len(regs))
	for _, r := range regs {
		s.old[r.Enum] = r.Val
	}
	bsz := s.Bsz
	if bsz == 0 {
		bsz = 8
	}
	return &Changes{Bsz: bsz, Changes: cs}
}

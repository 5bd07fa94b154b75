package models

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// PrintFlags writes flag help in aligned columns wrapped to 80 characters.
func PrintFlags(w io.Writer, flags []*flag.Flag) {
	wname, wdef := 0, 0
	for _, f := range flags {
		if len(f.Name) > wname {
			wname = len(f.Name)
		}
		if len(f.DefValue) > wdef {
			wdef = len(f.DefValue)
		}
	}
	wdesc := 80 - wname - wdef - 7

	namefmt := fmt.Sprintf("  -%%-%ds ", wname)
	deffmt := fmt.Sprintf("%%-%ds ", wdef+2)
	lpad := strings.Repeat(" ", wname+wdef+7)
	for _, f := range flags {
		fmt.Fprintf(w, namefmt, f.Name)
		def := "  "
		if f.DefValue != "" && f.DefValue != "[]" && f.DefValue != "false" {
			def = "(" + f.DefValue + ")"
		}
		fmt.Fprintf(w, deffmt, def)
		for i, line := range wrap(f.Usage, wdesc) {
			if i > 0 {
				fmt.Fprint(w, lpad)
			}
			fmt.Fprintln(w, line)
		}
		if f.Usage == "" {
			fmt.Fprintln(w)
		}
	}
}

// wrap breaks s into lines of at most width bytes, preferring spaces.
func wrap(s string, width int) []string {
	var out []string
	for len(s) > width {
		cut := strings.LastIndexByte(s[:width], ' ')
		if cut <= 0 {
			cut = width
		}
		out = append(out, s[:cut])
		s = strings.TrimLeft(s[cut:], " ")
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}

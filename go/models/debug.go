package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

func printable(p []byte) string {
	o := make([]byte, len(p))
	for i, c := range p {
		if c >= 0x20 && c <= 0x7e {
			o[i] = c
		} else {
			o[i] = '.'
		}
	}
	return string(o)
}

// HexDump renders mem in word-sized hex blocks with an ascii column,
// one 80 column line per row.
func HexDump(base uint64, mem []byte, bits int) []string {
	bsz := bits / 8
	addrFmt := fmt.Sprintf("0x%%0%dx:", bsz*2)
	addrSize := bsz*2 + 4
	blockCount := ((80 - addrSize) * 3 / 4) / ((bsz + 1) * 2)
	lineSize := blockCount * bsz

	var out []string
	for i := 0; i < len(mem); i += lineSize {
		end := i + lineSize
		if end > len(mem) {
			end = len(mem)
		}
		line := mem[i:end]
		blocks := make([]string, blockCount)
		for j := range blocks {
			lo, hi := j*bsz, (j+1)*bsz
			switch {
			case lo >= len(line):
				blocks[j] = strings.Repeat(" ", bsz*2)
			case hi > len(line):
				blocks[j] = hex.EncodeToString(line[lo:]) + strings.Repeat("  ", hi-len(line))
			default:
				blocks[j] = hex.EncodeToString(line[lo:hi])
			}
		}
		out = append(out, fmt.Sprintf(addrFmt+" %s  %s", base+uint64(i), strings.Join(blocks, " "), printable(line)))
	}
	return out
}

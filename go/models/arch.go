package models

import (
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
)

type Reg struct {
	Enum int
	Name string
}

type RegVal struct {
	Reg
	Val uint64
}

type regVals []RegVal

func (r regVals) Len() int           { return len(r) }
func (r regVals) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regVals) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

// SortRegVals orders registers by name, with numbered names in numeric order.
func SortRegVals(regs []RegVal) {
	sort.Sort(regVals(regs))
}

// RegDumper is anything that can list its registers.
type RegDumper interface {
	RegDump() []RegVal
}

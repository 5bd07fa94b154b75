package arm

import (
	"fmt"
)

// Register32 is one physical 32-bit register.
type Register32 struct {
	bits uint32
}

func (r *Register32) BitWidth() int { return 32 }

func (r *Register32) Get() uint32  { return r.bits }
func (r *Register32) Set(v uint32) { r.bits = v }

func checkBit(i int) {
	if i < 0 || i >= 32 {
		panic(fmt.Sprintf("register bit %d out of range", i))
	}
}

func (r *Register32) ReadBit(i int) bool {
	checkBit(i)
	return r.bits&(1<<uint(i)) != 0
}

func (r *Register32) WriteBit(i int, v bool) {
	checkBit(i)
	if v {
		r.bits |= 1 << uint(i)
	} else {
		r.bits &^= 1 << uint(i)
	}
}

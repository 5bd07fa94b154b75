package cpu

import (
	"github.com/pkg/errors"
)

type CodeCb func(c Cpu, addr uint64, size uint32)
type MemCb func(c Cpu, access int, addr uint64, size int, val int64)
type FaultCb func(c Cpu, access int, addr uint64, size int, val int64) bool

type hookRange struct {
	htype      int
	start, end uint64
}

func (h *hookRange) Type() int { return h.htype }

// start > end means the hook covers every address
func (h *hookRange) Contains(addr uint64) bool {
	return h.start > h.end || addr >= h.start && addr <= h.end
}

type typed interface {
	Type() int
}

type codeHook struct {
	hookRange
	cb CodeCb
}

type memHook struct {
	hookRange
	cb MemCb
}

type faultHook struct {
	hookRange
	cb FaultCb
}

// Hooks is a callback registry a Cpu embeds to dispatch its events.
type Hooks struct {
	cpu Cpu

	code  []*codeHook
	mem   []*memHook
	fault []*faultHook
}

func NewHooks(cpu Cpu) *Hooks {
	return &Hooks{cpu: cpu}
}

func asCode(cb interface{}) (CodeCb, bool) {
	switch f := cb.(type) {
	case CodeCb:
		return f, true
	case func(Cpu, uint64, uint32):
		return f, true
	}
	return nil, false
}

func asMem(cb interface{}) (MemCb, bool) {
	switch f := cb.(type) {
	case MemCb:
		return f, true
	case func(Cpu, int, uint64, int, int64):
		return f, true
	}
	return nil, false
}

func asFault(cb interface{}) (FaultCb, bool) {
	switch f := cb.(type) {
	case FaultCb:
		return f, true
	case func(Cpu, int, uint64, int, int64) bool:
		return f, true
	}
	return nil, false
}

func (h *Hooks) HookAdd(htype int, cb interface{}, start, end uint64) (Hook, error) {
	info := hookRange{htype, start, end}
	switch htype {
	case HOOK_CODE:
		f, ok := asCode(cb)
		if !ok {
			return nil, errors.Errorf("code hook has wrong callback type: %T", cb)
		}
		hh := &codeHook{info, f}
		h.code = append(h.code, hh)
		return hh, nil

	case HOOK_MEM_READ, HOOK_MEM_WRITE, HOOK_MEM_READ | HOOK_MEM_WRITE:
		f, ok := asMem(cb)
		if !ok {
			return nil, errors.Errorf("mem hook has wrong callback type: %T", cb)
		}
		hh := &memHook{info, f}
		h.mem = append(h.mem, hh)
		return hh, nil

	case HOOK_MEM_ERR:
		f, ok := asFault(cb)
		if !ok {
			return nil, errors.Errorf("fault hook has wrong callback type: %T", cb)
		}
		hh := &faultHook{info, f}
		h.fault = append(h.fault, hh)
		return hh, nil
	}
	return nil, errors.Errorf("unknown hook type: %d", htype)
}

func (h *Hooks) HookDel(hh Hook) error {
	t, ok := hh.(typed)
	if !ok {
		return errors.Errorf("not a hook: %T", hh)
	}
	switch t.Type() {
	case HOOK_CODE:
		h.code = without(h.code, hh)
	case HOOK_MEM_READ, HOOK_MEM_WRITE, HOOK_MEM_READ | HOOK_MEM_WRITE:
		h.mem = without(h.mem, hh)
	case HOOK_MEM_ERR:
		h.fault = without(h.fault, hh)
	}
	return nil
}

func without[T comparable](list []T, hh Hook) []T {
	var tmp []T
	for _, v := range list {
		if Hook(v) != hh {
			tmp = append(tmp, v)
		}
	}
	return tmp
}

func (h *Hooks) OnCode(addr uint64, size uint32) {
	for _, v := range h.code {
		if v.Contains(addr) {
			v.cb(h.cpu, addr, size)
		}
	}
}

// OnMem only calls hooks registered for this access kind.
func (h *Hooks) OnMem(access int, addr uint64, size int, val int64) {
	want := HOOK_MEM_READ
	if access == MEM_WRITE {
		want = HOOK_MEM_WRITE
	}
	for _, v := range h.mem {
		if v.htype&want != 0 && v.Contains(addr) {
			v.cb(h.cpu, access, addr, size, val)
		}
	}
}

// OnFault returns true if any hook handled the fault.
func (h *Hooks) OnFault(access int, addr uint64, size int, val int64) bool {
	for _, v := range h.fault {
		if v.Contains(addr) && v.cb(h.cpu, access, addr, size, val) {
			return true
		}
	}
	return false
}

package cpu

// hook types, numbered like Unicorn's so callers can share constants
const (
	// hook each executed instruction
	HOOK_CODE = 4

	// hook (before) each memory read/write
	HOOK_MEM_READ  = 1024
	HOOK_MEM_WRITE = 2048

	// hook data access faults
	HOOK_MEM_ERR = 1008
)

// fault reasons passed to HOOK_MEM_ERR callbacks and carried by memory errors
const (
	MEM_READ_UNMAPPED  = 19
	MEM_WRITE_UNMAPPED = 20
	MEM_FETCH_UNMAPPED = 21
	MEM_WRITE_PROT     = 12
)

// access kinds passed to HOOK_MEM_* callbacks
const (
	MEM_WRITE = 16
	MEM_READ  = 17
	MEM_FETCH = 18
)

package arm

// Passed evaluates the condition against the N, Z, C and V flags.
func (c Condition) Passed(n, z, carry, v bool) bool {
	switch c {
	case EQ:
		return z
	case NE:
		return !z
	case CS:
		return carry
	case CC:
		return !carry
	case MI:
		return n
	case PL:
		return !n
	case VS:
		return v
	case VC:
		return !v
	case HI:
		return carry && !z
	case LS:
		return !carry || z
	case GE:
		return n == v
	case LT:
		return n != v
	case GT:
		return !z && n == v
	case LE:
		return z || n != v
	}
	return true
}

// PassedPSR evaluates the condition against a status register.
func (c Condition) PassedPSR(p PSR) bool {
	return c.Passed(p.N(), p.Z(), p.C(), p.V())
}

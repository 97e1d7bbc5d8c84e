package utils

import "math"

const (
	NODETOL = 1.e-12
)

type EvalOp uint8

const (
	Equal EvalOp = iota
	Less
	Greater
	LessOrEqual
	GreaterOrEqual
)

// FloatCmp compares a and b with a mixed absolute/relative tolerance of NODETOL
func FloatCmp(a, b float64, op EvalOp) bool {
	var (
		eq = math.Abs(a-b) <= NODETOL*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	)
	switch op {
	case Equal:
		return eq
	case Less:
		return !eq && a < b
	case Greater:
		return !eq && a > b
	case LessOrEqual:
		return eq || a < b
	case GreaterOrEqual:
		return eq || a > b
	}
	return false
}

func IsZero(a float64) bool { return FloatCmp(a, 0, Equal) }

// Sign returns -1 for negative values and 1 otherwise, zero included
func Sign(a float64) float64 {
	if a < 0 {
		return -1
	}
	return 1
}

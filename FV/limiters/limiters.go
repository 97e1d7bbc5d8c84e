package limiters

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gofvm/utils"
)

type LimiterType uint8

const (
	NoSlope LimiterType = iota
	Minmod
	MC
	Superbee
)

var (
	LimiterNames = map[string]LimiterType{
		"none":     NoSlope,
		"noslope":  NoSlope,
		"no_slope": NoSlope,
		"minmod":   Minmod,
		"mc":       MC,
		"superbee": Superbee,
	}
	LimiterPrintNames = []string{"No Slope (first order)", "Minmod", "Monotonized Central", "Superbee"}
)

func (lt LimiterType) Print() (txt string) {
	if int(lt) >= len(LimiterPrintNames) {
		return "Unknown"
	}
	return LimiterPrintNames[lt]
}

func NewLimiterType(label string) (lt LimiterType) {
	var (
		ok  bool
		err error
	)
	if len(label) == 0 {
		return NoSlope
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if lt, ok = LimiterNames[label]; !ok {
		err = fmt.Errorf("unable to use limiter named [%s]", label)
		panic(err)
	}
	return
}

// Limit writes the limited slope for each component into dst
func (lt LimiterType) Limit(left, right, center, dst []float64) {
	if len(left) != len(dst) || len(right) != len(dst) || len(center) != len(dst) {
		panic(fmt.Errorf("slope length mismatch: left %d, right %d, center %d, dst %d",
			len(left), len(right), len(center), len(dst)))
	}
	for i := range dst {
		dst[i] = lt.LimitScalar(left[i], right[i], center[i])
	}
}

func (lt LimiterType) LimitScalar(l, r, c float64) float64 {
	switch lt {
	case Minmod:
		return minmod(l, r, c)
	case MC:
		return minmod(minmod(2*l, 2*r, c), c, c)
	case Superbee:
		return maxmod(minmod(l, 2*r, c), minmod(2*l, r, c))
	}
	return 0
}

// minmod is nonzero only when all three slopes share a sign, and then picks
// the one of least magnitude, preferring the center slope on ties
func minmod(l, r, c float64) float64 {
	if !(l*r > 0 && c*r > 0) {
		return 0
	}
	var (
		al, ar, ac = math.Abs(l), math.Abs(r), math.Abs(c)
	)
	if utils.FloatCmp(al, ac, utils.Less) && utils.FloatCmp(al, ar, utils.LessOrEqual) {
		return l
	}
	if utils.FloatCmp(ar, ac, utils.Less) && utils.FloatCmp(ar, al, utils.Less) {
		return r
	}
	return c
}

func maxmod(a, b float64) float64 {
	if a*b <= 0 {
		return 0
	}
	if math.Abs(a) >= math.Abs(b) {
		return a
	}
	return b
}

package operators

import (
	"github.com/notargets/gofvm/FV/physics"
)

// BoundaryValue returns the outside state on a boundary face at x
type BoundaryValue func(uIn, x, normal []float64, t float64) []float64

// Extrapolate copies the inside state, a zero gradient or absorbing boundary
func Extrapolate() BoundaryValue {
	return func(uIn, x, normal []float64, t float64) []float64 {
		return append([]float64(nil), uIn...)
	}
}

func Dirichlet(boundary physics.BoundaryFunc) BoundaryValue {
	return func(uIn, x, normal []float64, t float64) []float64 {
		return boundary(x, t)
	}
}

// ImpermeableWall mirrors the momentum, stored in components
// [momentum, momentum+d), about the wall
func ImpermeableWall(momentum int) BoundaryValue {
	return func(uIn, x, normal []float64, t float64) (uOut []float64) {
		var (
			mn float64
		)
		uOut = append([]float64(nil), uIn...)
		for i, ni := range normal {
			mn += uIn[momentum+i] * ni
		}
		for i, ni := range normal {
			uOut[momentum+i] -= 2 * mn * ni
		}
		return
	}
}

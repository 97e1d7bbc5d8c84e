package reconstruction

import (
	"fmt"

	"gonum.org/v1/gonum/integrate/quad"
)

// Quadrature is a rule on the reference interval [0, 1]
type Quadrature struct {
	Points, Weights []float64
}

// LeftRight holds the two interval end points, used along the axis normal to a face
func LeftRight() Quadrature {
	return Quadrature{Points: []float64{0, 1}, Weights: []float64{0.5, 0.5}}
}

func Midpoint() Quadrature {
	return Quadrature{Points: []float64{0.5}, Weights: []float64{1}}
}

// GaussLegendre returns the n point rule mapped to [0, 1]
func GaussLegendre(n int) Quadrature {
	if n < 1 {
		panic(fmt.Errorf("quadrature needs at least one point, have %d", n))
	}
	q := Quadrature{Points: make([]float64, n), Weights: make([]float64, n)}
	quad.Legendre{}.FixedLocations(q.Points, q.Weights, 0, 1)
	return q
}

func (q Quadrature) Len() int { return len(q.Points) }

package physics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Flux is the analytical flux f = (f_0, ..., f_{d-1}) of a system of m
// conservation laws in d space dimensions
type Flux interface {
	DimDomain() int
	DimRange() int
	// Evaluate writes f_axis(u) into dst
	Evaluate(u []float64, axis int, dst []float64)
	// Jacobian writes df_axis/du into the m x m matrix J
	Jacobian(u []float64, axis int, J *mat.Dense)
}

// BoundaryFunc returns the state prescribed at a boundary point x and time t
type BoundaryFunc func(x []float64, t float64) []float64

// NormalFlux writes sum_i n_i f_i(u) into dst
func NormalFlux(f Flux, u, normal, dst []float64) {
	var (
		m  = f.DimRange()
		fi = make([]float64, m)
	)
	checkSizes(f, u, normal)
	for n := range dst {
		dst[n] = 0
	}
	for axis, ni := range normal {
		if ni == 0 {
			continue
		}
		f.Evaluate(u, axis, fi)
		for n := 0; n < m; n++ {
			dst[n] += ni * fi[n]
		}
	}
}

// NormalJacobian returns sum_i n_i df_i/du
func NormalJacobian(f Flux, u, normal []float64) (J *mat.Dense) {
	var (
		m  = f.DimRange()
		Ji = mat.NewDense(m, m, nil)
	)
	checkSizes(f, u, normal)
	J = mat.NewDense(m, m, nil)
	for axis, ni := range normal {
		if ni == 0 {
			continue
		}
		f.Jacobian(u, axis, Ji)
		J.Apply(func(i, j int, v float64) float64 { return v + ni*Ji.At(i, j) }, J)
	}
	return
}

func checkSizes(f Flux, u, normal []float64) {
	if len(u) != f.DimRange() || len(normal) != f.DimDomain() {
		panic(fmt.Errorf("flux of dimension (d=%d, m=%d) called with len(u) = %d, len(normal) = %d",
			f.DimDomain(), f.DimRange(), len(u), len(normal)))
	}
}

// Unit returns the unit vector along axis in d dimensions
func Unit(d, axis int) (n []float64) {
	n = make([]float64, d)
	n[axis] = 1
	return
}

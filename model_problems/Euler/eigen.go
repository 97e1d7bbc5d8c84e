package Euler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/eigen"
)

// EigenSolver decomposes the Jacobian along a normal in closed form. The
// eigenvalues are ordered v.n - c, v.n (Dim times), v.n + c.
type EigenSolver struct {
	*Euler
}

func (es EigenSolver) Decompose(u, normal []float64) (R *mat.Dense, lambda []float64, err error) {
	var (
		d        = es.Dim
		m        = d + 2
		rho, vel = u[0], make([]float64, d)
		n        = append([]float64(nil), normal...)
	)
	if nn := floats.Norm(n, 2); nn != 1 {
		floats.Scale(1./nn, n)
	}
	for i := range vel {
		vel[i] = u[1+i] / rho
	}
	p := es.Pressure(u)
	if !(rho > 0) || !(p > 0) {
		return nil, nil, fmt.Errorf("density %g, pressure %g: %w", rho, p, eigen.ErrNonFinite)
	}
	var (
		c  = math.Sqrt(es.Gamma * p / rho)
		un = floats.Dot(vel, n)
		H  = es.Enthalpy(u)
		q  = floats.Dot(vel, vel)
	)
	R = mat.NewDense(m, m, nil)
	lambda = make([]float64, m)
	// acoustic waves
	lambda[0], lambda[m-1] = un-c, un+c
	R.Set(0, 0, 1)
	R.Set(0, m-1, 1)
	for i := 0; i < d; i++ {
		R.Set(1+i, 0, vel[i]-c*n[i])
		R.Set(1+i, m-1, vel[i]+c*n[i])
	}
	R.Set(m-1, 0, H-c*un)
	R.Set(m-1, m-1, H+c*un)
	// entropy wave
	lambda[1] = un
	R.Set(0, 1, 1)
	for i := 0; i < d; i++ {
		R.Set(1+i, 1, vel[i])
	}
	R.Set(m-1, 1, 0.5*q)
	// shear waves
	for j, t := range Tangents(n) {
		col := 2 + j
		lambda[col] = un
		for i := 0; i < d; i++ {
			R.Set(1+i, col, t[i])
		}
		R.Set(m-1, col, floats.Dot(vel, t))
	}
	return
}

// Tangents returns len(n)-1 orthonormal vectors perpendicular to the unit vector n
func Tangents(n []float64) (tangents [][]float64) {
	d := len(n)
	for axis := 0; axis < d && len(tangents) < d-1; axis++ {
		t := make([]float64, d)
		t[axis] = 1
		floats.AddScaled(t, -floats.Dot(t, n), n)
		for _, prev := range tangents {
			floats.AddScaled(t, -floats.Dot(t, prev), prev)
		}
		if norm := floats.Norm(t, 2); norm > 1.e-6 {
			floats.Scale(1./norm, t)
			tangents = append(tangents, t)
		}
	}
	return
}

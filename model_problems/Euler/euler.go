package Euler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
Euler is the flux of the compressible Euler equations in Dim space dimensions
for a calorically perfect gas. The conserved state is

	u = (rho, rho v_0, ..., rho v_{Dim-1}, E)
*/
type Euler struct {
	Dim   int
	Gamma float64
}

func NewEuler(dim int, gamma float64) (e *Euler) {
	if dim < 1 || dim > 3 {
		panic(fmt.Errorf("euler equations need 1 to 3 dimensions, have %d", dim))
	}
	if gamma <= 1 {
		panic(fmt.Errorf("ratio of specific heats must exceed one, have %g", gamma))
	}
	return &Euler{Dim: dim, Gamma: gamma}
}

func (e *Euler) DimDomain() int { return e.Dim }
func (e *Euler) DimRange() int  { return e.Dim + 2 }

// ToConservative builds the state from density, velocity and pressure
func (e *Euler) ToConservative(rho float64, vel []float64, p float64) (u []float64) {
	u = make([]float64, e.Dim+2)
	u[0] = rho
	var q float64
	for i, v := range vel {
		u[1+i] = rho * v
		q += v * v
	}
	u[e.Dim+1] = p/(e.Gamma-1.) + 0.5*rho*q
	return
}

// ToPrimitive returns density, velocity and pressure
func (e *Euler) ToPrimitive(u []float64) (rho float64, vel []float64, p float64) {
	rho = u[0]
	vel = make([]float64, e.Dim)
	oorho := 1. / rho
	for i := range vel {
		vel[i] = u[1+i] * oorho
	}
	p = e.Pressure(u)
	return
}

func (e *Euler) Pressure(u []float64) float64 {
	var q float64
	for i := 1; i <= e.Dim; i++ {
		q += u[i] * u[i]
	}
	return (e.Gamma - 1.) * (u[e.Dim+1] - 0.5*q/u[0])
}

func (e *Euler) SoundSpeed(u []float64) float64 {
	return math.Sqrt(math.Abs(e.Gamma * e.Pressure(u) / u[0]))
}

// Enthalpy is the total specific enthalpy (E + p) / rho
func (e *Euler) Enthalpy(u []float64) float64 {
	return (u[e.Dim+1] + e.Pressure(u)) / u[0]
}

// MaxWaveSpeed is |v| + c
func (e *Euler) MaxWaveSpeed(u []float64) float64 {
	return floats.Norm(u[1:e.Dim+1], 2)/u[0] + e.SoundSpeed(u)
}

func (e *Euler) Evaluate(u []float64, axis int, dst []float64) {
	var (
		p  = e.Pressure(u)
		vk = u[1+axis] / u[0]
	)
	dst[0] = u[1+axis]
	for i := 0; i < e.Dim; i++ {
		dst[1+i] = u[1+i] * vk
	}
	dst[1+axis] += p
	dst[e.Dim+1] = vk * (u[e.Dim+1] + p)
}

func (e *Euler) Jacobian(u []float64, axis int, J *mat.Dense) {
	var (
		d     = e.Dim
		gm1   = e.Gamma - 1.
		oorho = 1. / u[0]
		vel   = make([]float64, d)
		q     float64
	)
	for i := range vel {
		vel[i] = u[1+i] * oorho
		q += vel[i] * vel[i]
	}
	var (
		vk = vel[axis]
		H  = e.Enthalpy(u)
	)
	J.Zero()
	J.Set(0, 1+axis, 1)
	for i := 0; i < d; i++ {
		row := 1 + i
		J.Set(row, 0, -vk*vel[i])
		for j := 0; j < d; j++ {
			var val float64
			if i == j {
				val += vk
			}
			if j == axis {
				val += vel[i]
			}
			if i == axis {
				val -= gm1 * vel[j]
			}
			J.Set(row, 1+j, val)
		}
		if i == axis {
			J.Set(row, 0, J.At(row, 0)+0.5*gm1*q)
			J.Set(row, d+1, gm1)
		}
	}
	J.Set(d+1, 0, vk*(0.5*gm1*q-H))
	for j := 0; j < d; j++ {
		val := -gm1 * vk * vel[j]
		if j == axis {
			val += H
		}
		J.Set(d+1, 1+j, val)
	}
	J.Set(d+1, d+1, e.Gamma*vk)
}

// FluxAtImpermeableWall is the flux through a wall with normal n: only the pressure acts
func (e *Euler) FluxAtImpermeableWall(u, normal []float64) (g []float64) {
	var (
		p = e.Pressure(u)
	)
	g = make([]float64, e.Dim+2)
	for i, ni := range normal {
		g[1+i] = p * ni
	}
	return
}

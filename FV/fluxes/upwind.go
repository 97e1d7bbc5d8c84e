package fluxes

import (
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/notargets/gofvm/FV/physics"
)

// Upwind takes the physical flux of the side the characteristic comes from
type Upwind struct {
	Flux physics.Flux
}

func NewUpwind(flux physics.Flux) (*Upwind, error) {
	if err := checkScalar(flux); err != nil {
		return nil, err
	}
	return &Upwind{Flux: flux}, nil
}

func (uw *Upwind) Apply(uL, uR, normal []float64, p Parameters) (g []float64, err error) {
	if err = checkStates(uw.Flux, uL, uR, normal); err != nil {
		return
	}
	var (
		J = physics.NormalJacobian(uw.Flux, average(uL, uR), normal)
	)
	g = make([]float64, 1)
	if J.At(0, 0) >= 0 {
		physics.NormalFlux(uw.Flux, uL, normal, g)
	} else {
		physics.NormalFlux(uw.Flux, uR, normal, g)
	}
	return
}

// EngquistOsher integrates the positive part of the characteristic speed from
// zero to uL and the negative part from zero to uR
type EngquistOsher struct {
	Flux physics.Flux
	// Points of the Gauss-Legendre rule used for both integrals
	Points int
}

func NewEngquistOsher(flux physics.Flux, points int) (*EngquistOsher, error) {
	if err := checkScalar(flux); err != nil {
		return nil, err
	}
	if points < 1 {
		points = 8
	}
	return &EngquistOsher{Flux: flux, Points: points}, nil
}

func (eo *EngquistOsher) Apply(uL, uR, normal []float64, p Parameters) (g []float64, err error) {
	if err = checkStates(eo.Flux, uL, uR, normal); err != nil {
		return
	}
	speed := func(s float64) float64 {
		return physics.NormalJacobian(eo.Flux, []float64{s}, normal).At(0, 0)
	}
	positive := func(s float64) float64 { return max(speed(s), 0) }
	negative := func(s float64) float64 { return min(speed(s), 0) }
	g = make([]float64, 1)
	physics.NormalFlux(eo.Flux, []float64{0}, normal, g)
	g[0] += eo.integrate(positive, uL[0]) + eo.integrate(negative, uR[0])
	return
}

// integrate from 0 to u, u may be negative
func (eo *EngquistOsher) integrate(f func(float64) float64, u float64) float64 {
	if u == 0 {
		return 0
	}
	if u < 0 {
		return -quad.Fixed(f, u, 0, eo.Points, quad.Legendre{}, 0)
	}
	return quad.Fixed(f, 0, u, eo.Points, quad.Legendre{}, 0)
}

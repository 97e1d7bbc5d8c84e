package Scalar

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/fluxes"
)

/*
Scalar conservation laws

	∂u/∂t + ∑_k ∂/∂x_k [ f_k(u) ] = 0

Advection:	f_k(u) = a_k u			linear, the eigen basis never changes
Burgers:	f_k(u) = a_k ½ u²		shocks form from smooth data

Along a face normal n both reduce to one dimensional problems with the
projected coefficient a·n, which is what the Godunov flux below uses.
*/
type Advection struct {
	A []float64
}

func NewAdvection(a ...float64) *Advection {
	if len(a) == 0 {
		panic(fmt.Errorf("advection needs a velocity"))
	}
	return &Advection{A: append([]float64(nil), a...)}
}

func (ad *Advection) DimDomain() int { return len(ad.A) }
func (ad *Advection) DimRange() int  { return 1 }
func (ad *Advection) Linear() bool   { return true }

func (ad *Advection) Evaluate(u []float64, axis int, dst []float64) { dst[0] = ad.A[axis] * u[0] }

func (ad *Advection) Jacobian(u []float64, axis int, J *mat.Dense) { J.Set(0, 0, ad.A[axis]) }

func (ad *Advection) MaxWaveSpeed(u []float64) float64 { return floats.Norm(ad.A, math.Inf(1)) }

type Burgers struct {
	A []float64
}

func NewBurgers(a ...float64) *Burgers {
	if len(a) == 0 {
		panic(fmt.Errorf("burgers needs a direction"))
	}
	return &Burgers{A: append([]float64(nil), a...)}
}

func (b *Burgers) DimDomain() int { return len(b.A) }
func (b *Burgers) DimRange() int  { return 1 }
func (b *Burgers) Linear() bool   { return false }

func (b *Burgers) Evaluate(u []float64, axis int, dst []float64) { dst[0] = 0.5 * b.A[axis] * u[0] * u[0] }

func (b *Burgers) Jacobian(u []float64, axis int, J *mat.Dense) { J.Set(0, 0, b.A[axis]*u[0]) }

func (b *Burgers) MaxWaveSpeed(u []float64) float64 { return floats.Norm(b.A, math.Inf(1)) * math.Abs(u[0]) }

/*
Godunov is the exact Riemann solver flux of Burgers' equation along a normal:

	g = min over [uL, uR] of f(u)·n		when uL <= uR (rarefaction)
	g = max over [uR, uL] of f(u)·n		when uL > uR (shock)

f(u)·n = ½ (a·n) u² has its only extremum at u = 0.
*/
func (b *Burgers) Godunov() fluxes.LambdaFlux {
	return func(uL, uR, normal []float64, p fluxes.Parameters) ([]float64, error) {
		if len(uL) != 1 || len(uR) != 1 || len(normal) != len(b.A) {
			return nil, fmt.Errorf("burgers with len(uL) = %d, len(uR) = %d, len(normal) = %d: %w",
				len(uL), len(uR), len(normal), fluxes.ErrSizeMismatch)
		}
		var (
			an         = floats.Dot(b.A, normal)
			f          = func(u float64) float64 { return 0.5 * an * u * u }
			lo, hi     = math.Min(uL[0], uR[0]), math.Max(uL[0], uR[0])
			candidates = []float64{f(uL[0]), f(uR[0])}
		)
		if lo < 0 && hi > 0 {
			candidates = append(candidates, 0)
		}
		if uL[0] <= uR[0] {
			return []float64{floats.Min(candidates)}, nil
		}
		return []float64{floats.Max(candidates)}, nil
	}
}

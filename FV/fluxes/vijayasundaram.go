package fluxes

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/eigen"
	"github.com/notargets/gofvm/FV/physics"
	"github.com/notargets/gofvm/utils"
)

var ErrEigenMismatch = errors.New("eigen decomposition does not match the jacobian")

const eigenCheckTol = 1.e-8

/*
Vijayasundaram splits the Jacobian along the normal, evaluated at the mean of
both states, into its positive and negative eigen parts:

	g = R (Lambda+ R^-1 uL + Lambda- R^-1 uR)

The Solver may be a closed form decomposition. With CrossCheck set every
decomposition is verified against the Jacobian and the generic eigen solver.
*/
type Vijayasundaram struct {
	Flux       physics.Flux
	Solver     eigen.Solver
	CrossCheck bool
	reference  *eigen.Generic
}

func NewVijayasundaram(flux physics.Flux, solver eigen.Solver) (vs *Vijayasundaram) {
	vs = &Vijayasundaram{
		Flux:       flux,
		Solver:     solver,
		CrossCheck: crossCheckEigen,
		reference:  eigen.NewGeneric(flux),
	}
	if vs.Solver == nil {
		vs.Solver = vs.reference
	}
	return
}

func (vs *Vijayasundaram) Apply(uL, uR, normal []float64, p Parameters) (g []float64, err error) {
	if err = checkStates(vs.Flux, uL, uR, normal); err != nil {
		return
	}
	var (
		m   = vs.Flux.DimRange()
		avg = average(uL, uR)
	)
	R, lambda, err := vs.Solver.Decompose(avg, normal)
	if err != nil {
		return nil, err
	}
	if vs.CrossCheck {
		if err = vs.check(avg, normal, R, lambda); err != nil {
			return nil, err
		}
	}
	var (
		basis  = eigen.NewBasis(R, lambda)
		wL, wR = make([]float64, m), make([]float64, m)
	)
	basis.ToCharacteristic(uL, wL)
	basis.ToCharacteristic(uR, wR)
	for i, l := range lambda {
		wL[i] = max(l, 0)*wL[i] + min(l, 0)*wR[i]
	}
	g = make([]float64, m)
	basis.FromCharacteristic(wL, g)
	return
}

// check verifies J R = R Lambda and compares the eigenvalues with the generic solver
func (vs *Vijayasundaram) check(u, normal []float64, R *mat.Dense, lambda []float64) (err error) {
	var (
		J         = physics.NormalJacobian(vs.Flux, u, normal)
		m         = len(lambda)
		JR, RLam  mat.Dense
		tol       = eigenCheckTol * max(1, mat.Norm(J, 1))
		reference []float64
	)
	if utils.IsNan(lambda) || utils.IsNan(R.RawMatrix().Data) {
		return fmt.Errorf("eigenvalues %v: %w", lambda, eigen.ErrNonFinite)
	}
	JR.Mul(J, R)
	RLam.Mul(R, mat.NewDiagDense(m, lambda))
	if !mat.EqualApprox(&JR, &RLam, tol) {
		return fmt.Errorf("jacobian\n%v\neigenvectors\n%v\neigenvalues %v: %w",
			mat.Formatted(J, mat.Squeeze()), mat.Formatted(R, mat.Squeeze()), lambda, ErrEigenMismatch)
	}
	if err = eigen.CheckInvertible(R); err != nil {
		return
	}
	if _, reference, err = vs.reference.Decompose(u, normal); err != nil {
		return
	}
	sorted := append([]float64(nil), lambda...)
	sort.Float64s(sorted)
	sort.Float64s(reference)
	if !floats.EqualApprox(sorted, reference, tol) {
		return fmt.Errorf("eigenvalues %v, generic solver %v at u = %v: %w", sorted, reference, u, ErrEigenMismatch)
	}
	return
}

package fluxes

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofvm/FV/eigen"
	"github.com/notargets/gofvm/FV/physics"
	"github.com/notargets/gofvm/utils"
)

type LambdaMode uint8

const (
	LambdaDtOverDx LambdaMode = iota
	LambdaFixed
	LambdaLocal
	LambdaGlobal
)

var LambdaModeNames = []string{"dt/dx", "fixed", "local", "global"}

func (lm LambdaMode) String() string { return LambdaModeNames[lm] }

type LaxFriedrichsOptions struct {
	// Alpha scales the penalty, zero selects the number of dimensions
	Alpha float64
	// Lambda is used on every face along axis i when non zero
	Lambda    []float64
	UseLocal  bool
	UseGlobal bool
	// Linear caches the local wave speed per direction for the lifetime of the flux
	Linear bool
	Solver eigen.Solver
}

/*
LaxFriedrichs is the flux

	g = 0.5 (f_k(uL) + f_k(uR)) n_k - (uR - uL) / (2 alpha lambda)

where k is the axis of the normal. Lambda is one of a fixed value per axis,
Dt/Dx from the parameters, the reciprocal of the largest absolute eigenvalue
of the Jacobians of both states (local) or the reciprocal of the largest wave
speed of the whole solution (global, see Prepare).
*/
type LaxFriedrichs struct {
	Flux   physics.Flux
	Alpha  float64
	Lambda []float64
	Mode   LambdaMode
	Linear bool
	Solver eigen.Solver

	mu           sync.Mutex
	localLambda  []float64
	localValid   []bool
	generation   uint64
	globalGen    uint64
	globalLambda float64
	globalValid  bool
}

func NewLaxFriedrichs(flux physics.Flux, opts LaxFriedrichsOptions) (lf *LaxFriedrichs) {
	var (
		d = flux.DimDomain()
	)
	lf = &LaxFriedrichs{
		Flux:        flux,
		Alpha:       opts.Alpha,
		Linear:      opts.Linear,
		Solver:      opts.Solver,
		localLambda: make([]float64, d),
		localValid:  make([]bool, d),
	}
	if lf.Alpha == 0 {
		lf.Alpha = float64(d)
	}
	if lf.Solver == nil {
		lf.Solver = eigen.NewGeneric(flux)
	}
	provided := utils.MaxAbs(opts.Lambda) != 0
	if provided {
		if len(opts.Lambda) != d {
			panic(fmt.Errorf("lambda needs %d entries, have %d", d, len(opts.Lambda)))
		}
		lf.Lambda = append([]float64(nil), opts.Lambda...)
	}
	switch {
	case opts.UseLocal:
		lf.Mode = LambdaLocal
		if provided {
			log.WithField("lambda", opts.Lambda).Warn("lambda is ignored by the local Lax-Friedrichs flux")
		}
	case opts.UseGlobal:
		lf.Mode = LambdaGlobal
	case provided:
		lf.Mode = LambdaFixed
	default:
		lf.Mode = LambdaDtOverDx
	}
	log.WithFields(logrus.Fields{"mode": lf.Mode, "alpha": lf.Alpha, "linear": lf.Linear}).Debug("lax-friedrichs flux")
	return
}

// Reset starts a new time step and invalidates the global wave speed. Local
// wave speeds are only cached for linear fluxes and outlive every step.
func (lf *LaxFriedrichs) Reset() {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	lf.generation++
}

// Prepare computes the global wave speed of the solution, once per generation
func (lf *LaxFriedrichs) Prepare(source [][]float64) (err error) {
	if lf.Mode != LambdaGlobal {
		return
	}
	lf.mu.Lock()
	defer lf.mu.Unlock()
	if lf.globalValid && lf.globalGen == lf.generation {
		return
	}
	var maxSpeed float64
	for _, u := range source {
		for axis := 0; axis < lf.Flux.DimDomain(); axis++ {
			var speed float64
			if speed, err = eigen.MaxAbsEigenvalue(lf.Solver, u, physics.Unit(lf.Flux.DimDomain(), axis)); err != nil {
				return
			}
			maxSpeed = math.Max(maxSpeed, speed)
		}
	}
	lf.globalLambda = 1. / maxSpeed
	lf.globalGen = lf.generation
	lf.globalValid = true
	log.WithFields(logrus.Fields{"max_speed": maxSpeed, "generation": lf.generation}).Debug("global wave speed")
	return
}

func (lf *LaxFriedrichs) lambda(uL, uR []float64, axis int, p Parameters) (lambda float64, err error) {
	switch lf.Mode {
	case LambdaFixed:
		return lf.Lambda[axis], nil
	case LambdaDtOverDx:
		if p.Dx <= 0 {
			return 0, fmt.Errorf("dt/dx lambda needs a positive cell width, have %g", p.Dx)
		}
		return p.Dt / p.Dx, nil
	case LambdaGlobal:
		lf.mu.Lock()
		defer lf.mu.Unlock()
		if !lf.globalValid || lf.globalGen != lf.generation {
			return 0, ErrNotPrepared
		}
		return lf.globalLambda, nil
	}
	if lf.Linear {
		lf.mu.Lock()
		defer lf.mu.Unlock()
		if lf.localValid[axis] {
			return lf.localLambda[axis], nil
		}
	}
	var (
		normal     = physics.Unit(lf.Flux.DimDomain(), axis)
		sLeft, sRt float64
	)
	if sLeft, err = eigen.MaxAbsEigenvalue(lf.Solver, uL, normal); err != nil {
		return
	}
	if sRt, err = eigen.MaxAbsEigenvalue(lf.Solver, uR, normal); err != nil {
		return
	}
	lambda = 1. / math.Max(sLeft, sRt)
	if lf.Linear {
		lf.localLambda[axis] = lambda
		lf.localValid[axis] = true
	}
	return
}

func (lf *LaxFriedrichs) Apply(uL, uR, normal []float64, p Parameters) (g []float64, err error) {
	if err = checkStates(lf.Flux, uL, uR, normal); err != nil {
		return
	}
	var (
		m      = lf.Flux.DimRange()
		axis   = NormalAxis(normal)
		fR     = make([]float64, m)
		lambda float64
	)
	if lambda, err = lf.lambda(uL, uR, axis, p); err != nil {
		return nil, err
	}
	g = make([]float64, m)
	lf.Flux.Evaluate(uL, axis, g)
	lf.Flux.Evaluate(uR, axis, fR)
	floats.Add(g, fR)
	floats.Scale(0.5*normal[axis], g)
	if !math.IsInf(lambda, 1) {
		penalty := 1. / (2 * lf.Alpha * lambda)
		floats.AddScaled(g, -penalty, uR)
		floats.AddScaled(g, penalty, uL)
	}
	return
}

// Dirichlet evaluates the flux with the boundary value as outside state
func (lf *LaxFriedrichs) Dirichlet(boundary physics.BoundaryFunc) BoundaryFlux {
	return func(uIn, x, normal []float64, p Parameters) ([]float64, error) {
		return lf.Apply(uIn, boundary(x, p.Time), normal, p)
	}
}

// Absorbing evaluates the flux with the inside state on both sides
func (lf *LaxFriedrichs) Absorbing() BoundaryFlux {
	return func(uIn, x, normal []float64, p Parameters) ([]float64, error) {
		return lf.Apply(uIn, uIn, normal, p)
	}
}

package EulerFV

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gofvm/FV/eigen"
	"github.com/notargets/gofvm/FV/fluxes"
	"github.com/notargets/gofvm/FV/grid"
	"github.com/notargets/gofvm/FV/limiters"
	"github.com/notargets/gofvm/FV/operators"
	"github.com/notargets/gofvm/FV/physics"
	"github.com/notargets/gofvm/FV/reconstruction"
	"github.com/notargets/gofvm/InputParameters"
	"github.com/notargets/gofvm/model_problems/Euler"
	"github.com/notargets/gofvm/model_problems/Scalar"
)

var (
	log = logrus.WithField("component", "solver")

	ErrNoExactSolution = errors.New("no exact solution for this problem")
	ErrDiverged        = errors.New("solution is no longer finite")
)

// WaveSpeed is implemented by fluxes that bound the speed of their waves
type WaveSpeed interface {
	MaxWaveSpeed(u []float64) float64
}

type TimeIntegration uint8

const (
	TI_ForwardEuler TimeIntegration = iota
	TI_SSPRK2
)

/*
Solver advances cell averages of a conservation law on a Cartesian mesh:

	u^{n+1} = u^n - dt R(u^n)			forward Euler
	u^(1)   = u^n - dt R(u^n)			SSP-RK2 (Heun)
	u^{n+1} = ½ u^n + ½ (u^(1) - dt R(u^(1)))

R is the residual of the local advection operator. The reconstruction and
flux caches are reset before every evaluation of R.
*/
type Solver struct {
	Params        *InputParameters.InputParametersFV
	Mesh          *grid.Cartesian
	Physics       physics.Flux
	Reconstructor *reconstruction.Reconstructor
	Flux          fluxes.NumericalFlux
	Operator      *operators.LocalAdvection
	Integration   TimeIntegration
	Init          InitType
	// Exact is nil when the problem has no closed form solution
	Exact   physics.BoundaryFunc
	Q       [][]float64
	Time    float64
	Steps   int
	hMin    float64
	waves   WaveSpeed
	plotOne sync.Once
	chart   *chart2d.Chart2D
	cmap    *utils2.ColorMap
}

func NewSolver(ip *InputParameters.InputParametersFV) (s *Solver, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	s = &Solver{
		Params: ip,
	}
	d := ip.Dimensions()
	if s.Mesh, err = grid.NewCartesian(ip.Cells, ip.Min, ip.Max, ip.PeriodicAxes()); err != nil {
		return
	}
	s.hMin = s.Mesh.Width(0, 0)
	for axis := 1; axis < d; axis++ {
		s.hMin = min(s.hMin, s.Mesh.Width(0, axis))
	}
	var solver eigen.Solver
	switch strings.ToLower(ip.Model) {
	case "euler":
		e := Euler.NewEuler(d, ip.Gamma)
		s.Physics, solver = e, Euler.EigenSolver{Euler: e}
	case "burgers":
		s.Physics = Scalar.NewBurgers(direction(ip.Velocity, d)...)
	case "advection":
		s.Physics = Scalar.NewAdvection(direction(ip.Velocity, d)...)
	default:
		return nil, fmt.Errorf("unknown model %s", ip.Model)
	}
	s.waves = s.Physics.(WaveSpeed)
	linear := false
	if l, ok := s.Physics.(interface{ Linear() bool }); ok {
		linear = l.Linear()
	}
	switch strings.ToLower(ip.TimeIntegration) {
	case "euler":
		s.Integration = TI_ForwardEuler
	case "rk2", "ssprk2", "":
		s.Integration = TI_SSPRK2
	default:
		return nil, fmt.Errorf("unknown time integration %s", ip.TimeIntegration)
	}
	s.Init = NewInitType(ip.InitType)
	var initial physics.BoundaryFunc
	if initial, s.Exact, err = s.initialConditions(s.Init); err != nil {
		return
	}
	var (
		lim      = limiters.NewLimiterType(ip.Limiter)
		boundary physics.BoundaryFunc
		dirich   = strings.ToLower(ip.BoundaryType) == "dirichlet"
	)
	if dirich {
		if boundary = s.Exact; boundary == nil {
			state := s.boundaryState()
			boundary = func(x []float64, t float64) []float64 { return append([]float64(nil), state...) }
		}
	}
	s.Reconstructor = reconstruction.New(s.Mesh, s.Physics, boundary, reconstruction.Options{
		Order:          ip.Order,
		Limiter:        lim,
		FacePoints:     ip.FacePoints,
		Linear:         linear,
		Solver:         solver,
		ParallelDegree: ip.ParallelDegree,
	})
	if s.Flux, err = s.numericalFlux(linear, solver); err != nil {
		return
	}
	var bv operators.BoundaryValue
	switch strings.ToLower(ip.BoundaryType) {
	case "extrapolate", "":
		bv = operators.Extrapolate()
	case "dirichlet":
		bv = operators.Dirichlet(boundary)
	case "wall":
		if _, ok := s.Physics.(*Euler.Euler); !ok {
			return nil, fmt.Errorf("wall boundaries need the euler equations")
		}
		bv = operators.ImpermeableWall(1)
	case "absorbing":
	default:
		return nil, fmt.Errorf("unknown boundary type %s", ip.BoundaryType)
	}
	s.Operator = operators.NewLocalAdvection(s.Mesh, s.Flux, bv, s.Reconstructor, ip.ParallelDegree)
	if lf, ok := s.Flux.(*fluxes.LaxFriedrichs); ok {
		switch {
		case dirich:
			s.Operator.BoundaryFlux = lf.Dirichlet(boundary)
		case bv == nil:
			s.Operator.BoundaryFlux = lf.Absorbing()
		}
	} else if bv == nil {
		return nil, fmt.Errorf("absorbing boundaries need a lax-friedrichs flux")
	}
	s.Q = make([][]float64, s.Mesh.NumCells())
	for k := range s.Q {
		s.Q[k] = initial(s.Mesh.Center(k), 0)
	}
	log.WithFields(logrus.Fields{
		"model": ip.Model,
		"init":  s.Init.Print(),
		"cells": s.Mesh.NumCells(),
		"flux":  fmt.Sprintf("%T", s.Flux),
	}).Info("solver ready")
	return
}

func (s *Solver) numericalFlux(linear bool, solver eigen.Solver) (nf fluxes.NumericalFlux, err error) {
	var (
		ip    = s.Params
		label = strings.ToLower(strings.TrimSpace(ip.FluxType))
	)
	if b, ok := s.Physics.(*Scalar.Burgers); ok && label == "godunov" {
		return b.Godunov(), nil
	}
	lfOpts := fluxes.LaxFriedrichsOptions{
		Alpha:  ip.Alpha,
		Lambda: ip.Lambda,
		Linear: linear,
		Solver: solver,
	}
	switch ft := fluxes.NewFluxType(label); ft {
	case fluxes.FLUX_Upwind:
		nf, err = fluxes.NewUpwind(s.Physics)
	case fluxes.FLUX_EngquistOsher:
		nf, err = fluxes.NewEngquistOsher(s.Physics, 0)
	case fluxes.FLUX_LaxFriedrichs:
		lfOpts.UseLocal = ip.UseLocal
		nf = fluxes.NewLaxFriedrichs(s.Physics, lfOpts)
	case fluxes.FLUX_LocalLaxFriedrichs:
		lfOpts.UseLocal = true
		nf = fluxes.NewLaxFriedrichs(s.Physics, lfOpts)
	case fluxes.FLUX_GlobalLaxFriedrichs:
		lfOpts.UseGlobal = true
		nf = fluxes.NewLaxFriedrichs(s.Physics, lfOpts)
	case fluxes.FLUX_Vijayasundaram:
		nf = fluxes.NewVijayasundaram(s.Physics, solver)
	}
	return
}

// direction pads the velocity parameter to d entries, defaulting to the first axis
func direction(v []float64, d int) (a []float64) {
	a = make([]float64, d)
	if len(v) == 0 {
		a[0] = 1
		return
	}
	copy(a, v)
	return
}

package EulerFV

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofvm/FV/fluxes"
	"github.com/notargets/gofvm/InputParameters"
	"github.com/notargets/gofvm/model_problems/Euler"
)

func kroner(cells int) *InputParameters.InputParametersFV {
	ip := InputParameters.NewInputParametersFV()
	ip.Title = "Kroner"
	ip.InitType = "kroner"
	ip.Cells = []int{cells}
	ip.Min, ip.Max = []float64{-1}, []float64{1}
	ip.Periodic = []bool{true}
	ip.FinalTime = 0.1
	return ip
}

func TestKroner(t *testing.T) {
	{ // Periodic, mass is conserved to round off
		s, err := NewSolver(kroner(128))
		require.NoError(t, err)
		assert.InDelta(t, 4*0.5+1*1.5, s.TotalMass(), 1.e-12)
		mass0 := s.TotalMass()
		require.NoError(t, s.Run(false, 0))
		assert.InDelta(t, 0.1, s.Time, 1.e-12)
		assert.InDelta(t, mass0, s.TotalMass(), 1.e-12)
		e := s.Physics.(*Euler.Euler)
		for _, u := range s.Q {
			assert.Greater(t, u[0], 0.)
			assert.Greater(t, e.Pressure(u), 0.)
		}
		_, err = s.L1Error(0)
		assert.ErrorIs(t, err, ErrNoExactSolution)
	}
	{ // Walls keep the mass in
		ip := kroner(64)
		ip.Periodic = []bool{false}
		ip.BoundaryType = "wall"
		ip.FluxType = "local_lax"
		ip.FinalTime = 0.5
		s, err := NewSolver(ip)
		require.NoError(t, err)
		mass0 := s.TotalMass()
		require.NoError(t, s.Run(false, 0))
		assert.InDelta(t, mass0, s.TotalMass(), 1.e-12)
	}
	{ // Iteration limit
		ip := kroner(32)
		ip.MaxIterations = 3
		s, err := NewSolver(ip)
		require.NoError(t, err)
		require.NoError(t, s.Run(false, 0))
		assert.Equal(t, 3, s.Steps)
		assert.Less(t, s.Time, ip.FinalTime)
	}
}

func TestSod(t *testing.T) {
	sod := func(order int) *Solver {
		ip := InputParameters.NewInputParametersFV()
		ip.Order = order
		ip.FluxType = "local_lax"
		s, err := NewSolver(ip)
		require.NoError(t, err)
		require.NoError(t, s.Run(false, 0))
		return s
	}
	var (
		s1 = sod(1)
		s0 = sod(0)
	)
	l1, err := s1.L1Error(0)
	require.NoError(t, err)
	l0, err := s0.L1Error(0)
	require.NoError(t, err)
	assert.Less(t, l1, 0.02)
	assert.Less(t, l1, l0)
	assert.Equal(t, "Rho", s1.ComponentName(0))
	assert.Equal(t, "RhoU", s1.ComponentName(1))
	assert.Equal(t, "Ener", s1.ComponentName(2))
	{ // Image of the density profile against the exact solution
		path := filepath.Join(t.TempDir(), "sod.png")
		require.NoError(t, s1.SavePlot(path, 0))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	{ // Profiles
		solution, exact := s1.Profiles()
		require.Len(t, solution, 3)
		require.Len(t, exact, 3)
		assert.Equal(t, 200, solution[0].Len())
		x, y := exact[0].XY(0)
		assert.InDelta(t, 0.0025, x, 1.e-12)
		assert.Equal(t, 1., y)
	}
}

func TestDensityWave(t *testing.T) {
	ip := InputParameters.NewInputParametersFV()
	ip.Title = "Density Wave"
	ip.InitType = "densitywave"
	ip.FluxType = "local_lax"
	ip.Cells = []int{16, 16}
	ip.Min, ip.Max = []float64{0, 0}, []float64{1, 1}
	ip.Periodic = []bool{true, true}
	ip.Velocity = []float64{1, 0.5}
	ip.FacePoints = 2
	ip.CFL = 0.4
	ip.FinalTime = 0.05
	ip.ParallelDegree = 4
	s, err := NewSolver(ip)
	require.NoError(t, err)
	mass0 := s.TotalMass()
	require.NoError(t, s.Run(false, 0))
	assert.InDelta(t, mass0, s.TotalMass(), 1.e-12)
	e := s.Physics.(*Euler.Euler)
	for _, u := range s.Q {
		rho, vel, p := e.ToPrimitive(u)
		// Contact waves carry density only
		assert.InDelta(t, 1., p, 1.e-10)
		assert.InDeltaSlice(t, []float64{1, 0.5}, vel, 1.e-10)
		assert.InDelta(t, 1., rho, 0.2+1.e-6)
	}
	l1, err := s.L1Error(0)
	require.NoError(t, err)
	assert.Less(t, l1, 0.05)
}

func TestScalarProblems(t *testing.T) {
	{ // First order upwind at unit CFL moves the step one cell per step
		ip := InputParameters.NewInputParametersFV()
		ip.Model = "advection"
		ip.InitType = "step"
		ip.FluxType = "upwind"
		ip.TimeIntegration = "euler"
		ip.Order = 0
		ip.CFL = 1
		ip.Cells = []int{20}
		ip.FinalTime = 0.25
		s, err := NewSolver(ip)
		require.NoError(t, err)
		_, ok := s.Flux.(*fluxes.Upwind)
		assert.True(t, ok)
		require.NoError(t, s.Run(false, 0))
		l1, err := s.L1Error(0)
		require.NoError(t, err)
		assert.InDelta(t, 0., l1, 1.e-10)
		assert.Equal(t, "U", s.ComponentName(0))
	}
	{ // Burgers with the exact Riemann flux: inflow adds f(1) = 1/2 per unit time
		ip := InputParameters.NewInputParametersFV()
		ip.Model = "burgers"
		ip.InitType = "step"
		ip.FluxType = "godunov"
		ip.Cells = []int{50}
		ip.FinalTime = 0.4
		s, err := NewSolver(ip)
		require.NoError(t, err)
		mass0 := s.TotalMass()
		require.NoError(t, s.Run(false, 0))
		assert.InDelta(t, mass0+0.5*0.4, s.TotalMass(), 1.e-12)
		l1, err := s.L1Error(0)
		require.NoError(t, err)
		assert.Less(t, l1, 0.1)
		for _, u := range s.Component(0) {
			assert.True(t, u >= -1.e-12 && u <= 1+1.e-12, "overshoot %g", u)
		}
	}
	{ // Engquist-Osher on a periodic sine
		ip := InputParameters.NewInputParametersFV()
		ip.Model = "burgers"
		ip.InitType = "sine"
		ip.FluxType = "engquist_osher"
		ip.Cells = []int{64}
		ip.Periodic = []bool{true}
		ip.FinalTime = 0.1
		s, err := NewSolver(ip)
		require.NoError(t, err)
		mass0 := s.TotalMass()
		require.NoError(t, s.Run(false, 0))
		assert.InDelta(t, mass0, s.TotalMass(), 1.e-12)
		assert.Less(t, s.CalculateDT(), 1./64)
	}
	{ // Vijayasundaram advection equals upwind for a linear flux
		ip := InputParameters.NewInputParametersFV()
		ip.Model = "advection"
		ip.InitType = "sine"
		ip.FluxType = "vijayasundaram"
		ip.Cells = []int{32}
		ip.Periodic = []bool{true}
		ip.FinalTime = 0.5
		s, err := NewSolver(ip)
		require.NoError(t, err)
		require.NoError(t, s.Run(false, 0))
		l1, err := s.L1Error(0)
		require.NoError(t, err)
		assert.Less(t, l1, 0.1)
	}
	{ // Dirichlet boundaries from the exact solution with the absorbing alternative
		ip := InputParameters.NewInputParametersFV()
		ip.Model = "advection"
		ip.InitType = "sine"
		ip.BoundaryType = "dirichlet"
		ip.FluxType = "local_lax"
		ip.Cells = []int{32}
		ip.FinalTime = 0.2
		s, err := NewSolver(ip)
		require.NoError(t, err)
		assert.NotNil(t, s.Operator.BoundaryFlux)
		require.NoError(t, s.Run(false, 0))
		l1, err := s.L1Error(0)
		require.NoError(t, err)
		assert.Less(t, l1, 0.1)
		ip.BoundaryType = "absorbing"
		s, err = NewSolver(ip)
		require.NoError(t, err)
		assert.NotNil(t, s.Operator.BoundaryFlux)
	}
}

func TestSolverErrors(t *testing.T) {
	ip := InputParameters.NewInputParametersFV()
	ip.Model = "maxwell"
	_, err := NewSolver(ip)
	assert.Error(t, err)

	ip = InputParameters.NewInputParametersFV()
	ip.Model = "burgers"
	ip.InitType = "step"
	ip.BoundaryType = "wall"
	_, err = NewSolver(ip)
	assert.Error(t, err)

	ip = InputParameters.NewInputParametersFV()
	ip.BoundaryType = "absorbing"
	ip.FluxType = "vijayasundaram"
	_, err = NewSolver(ip)
	assert.Error(t, err)

	ip = InputParameters.NewInputParametersFV()
	ip.FluxType = "upwind"
	_, err = NewSolver(ip)
	assert.ErrorIs(t, err, fluxes.ErrNotScalar)

	ip = InputParameters.NewInputParametersFV()
	ip.InitType = "sine"
	_, err = NewSolver(ip)
	assert.Error(t, err)

	ip = InputParameters.NewInputParametersFV()
	ip.TimeIntegration = "rk4"
	_, err = NewSolver(ip)
	assert.Error(t, err)

	ip = InputParameters.NewInputParametersFV()
	ip.InitType = "vortex"
	assert.Panics(t, func() { _, _ = NewSolver(ip) })
	assert.Equal(t, INIT_Kroner, NewInitType(" Kroner "))
}

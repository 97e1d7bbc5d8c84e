package fluxes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/eigen"
)

type burgers struct{}

func (burgers) DimDomain() int                                { return 1 }
func (burgers) DimRange() int                                 { return 1 }
func (burgers) Evaluate(u []float64, axis int, dst []float64) { dst[0] = 0.5 * u[0] * u[0] }
func (burgers) Jacobian(u []float64, axis int, J *mat.Dense)  { J.Set(0, 0, u[0]) }

type advection struct{ a float64 }

func (ad advection) DimDomain() int                                { return 1 }
func (ad advection) DimRange() int                                 { return 1 }
func (ad advection) Evaluate(u []float64, axis int, dst []float64) { dst[0] = ad.a * u[0] }
func (ad advection) Jacobian(u []float64, axis int, J *mat.Dense)  { J.Set(0, 0, ad.a) }

// acoustics is linear with A_x = [[0,1,0],[1,0,0],[0,0,0]] and A_y likewise
type acoustics struct{}

func (acoustics) DimDomain() int { return 2 }
func (acoustics) DimRange() int  { return 3 }
func (acoustics) Evaluate(u []float64, axis int, dst []float64) {
	dst[0], dst[1], dst[2] = 0, 0, 0
	dst[0] = u[axis+1]
	dst[axis+1] = u[0]
}
func (acoustics) Jacobian(u []float64, axis int, J *mat.Dense) {
	J.Zero()
	J.Set(0, axis+1, 1)
	J.Set(axis+1, 0, 1)
}

type countingSolver struct {
	eigen.Solver
	calls int
}

func (cs *countingSolver) Decompose(u, normal []float64) (*mat.Dense, []float64, error) {
	cs.calls++
	return cs.Solver.Decompose(u, normal)
}

// wrongSolver doubles every eigenvalue
type wrongSolver struct{ eigen.Solver }

func (ws wrongSolver) Decompose(u, normal []float64) (R *mat.Dense, lambda []float64, err error) {
	R, lambda, err = ws.Solver.Decompose(u, normal)
	for i := range lambda {
		lambda[i] *= 2
	}
	return
}

func TestFluxType(t *testing.T) {
	assert.Equal(t, FLUX_LaxFriedrichs, NewFluxType("Lax"))
	assert.Equal(t, FLUX_Vijayasundaram, NewFluxType(" vijayasundaram "))
	assert.Equal(t, "Engquist Osher", NewFluxType("engquist_osher").Print())
	assert.True(t, FLUX_Upwind.ScalarOnly())
	assert.False(t, FLUX_GlobalLaxFriedrichs.ScalarOnly())
	assert.Panics(t, func() { NewFluxType("roe") })
	assert.Equal(t, 1, NormalAxis([]float64{0, -1}))
	assert.Equal(t, 0, NormalAxis([]float64{-1, 0}))
}

func TestLaxFriedrichs(t *testing.T) {
	right, left := []float64{1}, []float64{-1}
	{ // Fixed lambda
		lf := NewLaxFriedrichs(advection{a: 1}, LaxFriedrichsOptions{Lambda: []float64{0.5}})
		assert.Equal(t, LambdaFixed, lf.Mode)
		g, err := lf.Apply([]float64{1}, []float64{0}, right, Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, 1.5, g[0], 1.e-14)
		// Seen from the other cell the flux changes sign
		g2, err := lf.Apply([]float64{0}, []float64{1}, left, Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, -g[0], g2[0], 1.e-14)
	}
	{ // dt/dx
		lf := NewLaxFriedrichs(advection{a: 1}, LaxFriedrichsOptions{})
		assert.Equal(t, LambdaDtOverDx, lf.Mode)
		g, err := lf.Apply([]float64{1}, []float64{0}, right, Parameters{Dt: 0.1, Dx: 0.2})
		require.NoError(t, err)
		assert.InDelta(t, 1.5, g[0], 1.e-14)
		_, err = lf.Apply([]float64{1}, []float64{0}, right, Parameters{Dt: 0.1})
		assert.Error(t, err)
	}
	{ // Local lambda with alpha one is the upwind flux of linear advection
		cs := &countingSolver{Solver: eigen.NewGeneric(advection{a: 2})}
		lf := NewLaxFriedrichs(advection{a: 2}, LaxFriedrichsOptions{UseLocal: true, Linear: true, Solver: cs,
			Lambda: []float64{3}})
		assert.Equal(t, LambdaLocal, lf.Mode)
		g, err := lf.Apply([]float64{1}, []float64{0}, right, Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, 2., g[0], 1.e-12)
		g, err = lf.Apply([]float64{1}, []float64{0}, left, Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, 0., g[0], 1.e-12)
		// Linear: computed once per direction for the lifetime of the flux
		assert.Equal(t, 2, cs.calls)
		lf.Reset()
		_, err = lf.Apply([]float64{1}, []float64{0}, right, Parameters{})
		require.NoError(t, err)
		assert.Equal(t, 2, cs.calls)
	}
	{ // Local lambda of a non linear flux is evaluated on every call
		cs := &countingSolver{Solver: eigen.NewGeneric(burgers{})}
		lf := NewLaxFriedrichs(burgers{}, LaxFriedrichsOptions{UseLocal: true, Solver: cs})
		g, err := lf.Apply([]float64{2}, []float64{1}, right, Parameters{})
		require.NoError(t, err)
		// 0.5 (2 + 0.5) - (1 - 2) / (2 * 1 * 0.5)
		assert.InDelta(t, 2.25, g[0], 1.e-12)
		_, err = lf.Apply([]float64{2}, []float64{1}, right, Parameters{})
		require.NoError(t, err)
		assert.Equal(t, 4, cs.calls)
	}
	{ // Global lambda is computed once per generation
		lf := NewLaxFriedrichs(burgers{}, LaxFriedrichsOptions{UseGlobal: true})
		_, err := lf.Apply([]float64{2}, []float64{1}, right, Parameters{})
		assert.ErrorIs(t, err, ErrNotPrepared)
		require.NoError(t, lf.Prepare([][]float64{{1}, {-4}, {2}}))
		g, err := lf.Apply([]float64{2}, []float64{1}, right, Parameters{})
		require.NoError(t, err)
		// 0.5 (2 + 0.5) - (1 - 2) 4 / 2
		assert.InDelta(t, 3.25, g[0], 1.e-12)
		lf.Reset()
		_, err = lf.Apply([]float64{2}, []float64{1}, right, Parameters{})
		assert.ErrorIs(t, err, ErrNotPrepared)
	}
	{ // A constant state gives the physical flux
		lf := NewLaxFriedrichs(acoustics{}, LaxFriedrichsOptions{UseLocal: true})
		u := []float64{1, 2, 3}
		g, err := lf.Apply(u, u, []float64{0, -1}, Parameters{})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{-3, 0, -1}, g, 1.e-12)
		assert.Equal(t, 2., lf.Alpha)
	}
	{ // Boundary variants
		lf := NewLaxFriedrichs(advection{a: 1}, LaxFriedrichsOptions{Lambda: []float64{1}})
		dirichlet := lf.Dirichlet(func(x []float64, t float64) []float64 { return []float64{x[0] + t} })
		g, err := dirichlet([]float64{1}, []float64{0}, left, Parameters{Time: 0})
		require.NoError(t, err)
		assert.InDelta(t, 0., g[0], 1.e-14)
		g, err = lf.Absorbing()([]float64{3}, []float64{0}, left, Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, -3., g[0], 1.e-14)
	}
	{ // Size errors
		lf := NewLaxFriedrichs(advection{a: 1}, LaxFriedrichsOptions{Lambda: []float64{1}})
		_, err := lf.Apply([]float64{1, 2}, []float64{0}, right, Parameters{})
		assert.ErrorIs(t, err, ErrSizeMismatch)
		assert.Panics(t, func() { NewLaxFriedrichs(acoustics{}, LaxFriedrichsOptions{Lambda: []float64{1}}) })
	}
}

func TestScalarFluxes(t *testing.T) {
	right, left := []float64{1}, []float64{-1}
	{ // Upwind
		uw, err := NewUpwind(burgers{})
		require.NoError(t, err)
		g, err := uw.Apply([]float64{2}, []float64{1}, right, Parameters{})
		require.NoError(t, err)
		assert.Equal(t, 2., g[0])
		g, err = uw.Apply([]float64{-1}, []float64{-2}, right, Parameters{})
		require.NoError(t, err)
		assert.Equal(t, 2., g[0])
		g, err = uw.Apply([]float64{2}, []float64{1}, left, Parameters{})
		require.NoError(t, err)
		assert.Equal(t, -0.5, g[0])
		_, err = NewUpwind(acoustics{})
		assert.ErrorIs(t, err, ErrNotScalar)
	}
	{ // Engquist-Osher for Burgers
		eo, err := NewEngquistOsher(burgers{}, 0)
		require.NoError(t, err)
		for _, tc := range []struct {
			uL, uR, g float64
		}{
			{2, 1, 2},
			{-1, -2, 2},
			{-1, 1, 0},
			{1, -1, 1},
		} {
			g, err := eo.Apply([]float64{tc.uL}, []float64{tc.uR}, right, Parameters{})
			require.NoError(t, err)
			assert.InDelta(t, tc.g, g[0], 1.e-12, "uL = %v, uR = %v", tc.uL, tc.uR)
		}
		_, err = NewEngquistOsher(acoustics{}, 4)
		assert.ErrorIs(t, err, ErrNotScalar)
	}
	{ // Lambda flux
		var lf NumericalFlux = LambdaFlux(func(uL, uR, normal []float64, p Parameters) ([]float64, error) {
			return []float64{uL[0] * normal[0]}, nil
		})
		g, err := lf.Apply([]float64{3}, []float64{0}, left, Parameters{})
		require.NoError(t, err)
		assert.Equal(t, -3., g[0])
	}
}

func TestVijayasundaram(t *testing.T) {
	{ // Scalar advection reduces to upwinding
		vs := NewVijayasundaram(advection{a: -2}, nil)
		g, err := vs.Apply([]float64{1}, []float64{3}, []float64{1}, Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, -6., g[0], 1.e-12)
	}
	{ // Linear system: 0.5 A (uL + uR) - 0.5 |A| (uR - uL)
		vs := NewVijayasundaram(acoustics{}, nil)
		vs.CrossCheck = true
		g, err := vs.Apply([]float64{1, 0, 0}, []float64{0, 0, 0}, []float64{1, 0}, Parameters{})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.5, 0.5, 0}, g, 1.e-12)
		u := []float64{1, 2, 3}
		g, err = vs.Apply(u, u, []float64{0, 1}, Parameters{})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{3, 0, 1}, g, 1.e-12)
	}
	{ // A faulty decomposition is caught by the cross check
		vs := NewVijayasundaram(acoustics{}, wrongSolver{Solver: eigen.NewGeneric(acoustics{})})
		vs.CrossCheck = true
		_, err := vs.Apply([]float64{1, 0, 0}, []float64{0, 0, 0}, []float64{1, 0}, Parameters{})
		assert.ErrorIs(t, err, ErrEigenMismatch)
	}
}

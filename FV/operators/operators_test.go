package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/fluxes"
	"github.com/notargets/gofvm/FV/grid"
	"github.com/notargets/gofvm/FV/limiters"
	"github.com/notargets/gofvm/FV/reconstruction"
)

type burgers struct{}

func (burgers) DimDomain() int                                { return 1 }
func (burgers) DimRange() int                                 { return 1 }
func (burgers) Evaluate(u []float64, axis int, dst []float64) { dst[0] = 0.5 * u[0] * u[0] }
func (burgers) Jacobian(u []float64, axis int, J *mat.Dense)  { J.Set(0, 0, u[0]) }

type advection struct{ a []float64 }

func (ad advection) DimDomain() int { return len(ad.a) }
func (ad advection) DimRange() int  { return 1 }
func (ad advection) Evaluate(u []float64, axis int, dst []float64) {
	dst[0] = ad.a[axis] * u[0]
}
func (ad advection) Jacobian(u []float64, axis int, J *mat.Dense) { J.Set(0, 0, ad.a[axis]) }

// twoCells is a 1D mesh of cells [0, 1] and [1, 3]
type twoCells struct{}

func (twoCells) Dim() int                  { return 1 }
func (twoCells) NumCells() int             { return 2 }
func (twoCells) Volume(k int) float64      { return float64(k + 1) }
func (twoCells) Center(k int) []float64    { return []float64{[]float64{0.5, 2}[k]} }
func (twoCells) Width(k, axis int) float64 { return float64(k + 1) }
func (twoCells) Faces(k int) []grid.Face {
	if k == 0 {
		return []grid.Face{
			{Index: 0, Inside: 0, Outside: -1, Boundary: true, Normal: []float64{-1}, Measure: 1, Center: []float64{0}},
			{Index: 1, Inside: 0, Outside: 1, Normal: []float64{1}, Measure: 1, Center: []float64{1}},
		}
	}
	return []grid.Face{
		{Index: 0, Inside: 1, Outside: 0, Normal: []float64{-1}, Measure: 1, Center: []float64{1}},
		{Index: 1, Inside: 1, Outside: -1, Boundary: true, Normal: []float64{1}, Measure: 1, Center: []float64{3}},
	}
}

func constantFlux(g float64) fluxes.NumericalFlux {
	return fluxes.LambdaFlux(func(uL, uR, normal []float64, p fluxes.Parameters) ([]float64, error) {
		return []float64{g * normal[0]}, nil
	})
}

func TestApplyCoupling(t *testing.T) {
	var (
		mesh   = twoCells{}
		op     = NewLocalAdvection(mesh, constantFlux(3), nil, nil, 1)
		resIn  = []float64{0}
		resOut = []float64{0}
		face   = mesh.Faces(0)[1]
	)
	{ // Each side is scaled by its own volume
		require.NoError(t, op.ApplyCoupling(face, []float64{1}, []float64{2}, resIn, resOut))
		assert.Equal(t, 3., resIn[0])
		assert.Equal(t, -1.5, resOut[0])
	}
	{ // Size checks
		err := op.ApplyCoupling(face, []float64{1, 2}, []float64{2}, resIn, resOut)
		assert.ErrorIs(t, err, ErrSizeMismatch)
		err = op.ApplyCoupling(face, []float64{1}, []float64{2}, []float64{}, resOut)
		assert.ErrorIs(t, err, ErrSizeMismatch)
		assert.Error(t, op.ApplyCoupling(mesh.Faces(0)[0], []float64{1}, []float64{2}, resIn, resOut))
	}
}

func TestApplyBoundary(t *testing.T) {
	var (
		mesh = twoCells{}
		face = mesh.Faces(1)[1]
	)
	{ // Outside state from a boundary value
		lf := fluxes.NewLaxFriedrichs(burgers{}, fluxes.LaxFriedrichsOptions{Lambda: []float64{1}, Alpha: 1})
		op := NewLocalAdvection(mesh, lf, Dirichlet(func(x []float64, t float64) []float64 {
			return []float64{x[0] - 3}
		}), nil, 1)
		res := []float64{0}
		require.NoError(t, op.ApplyBoundary(face, face.Center, []float64{2}, res))
		// 0.5 (2 + 0) - (0 - 2) / 2, divided by the volume 2
		assert.InDelta(t, 1., res[0], 1.e-14)
		op.Boundary = Extrapolate()
		res[0] = 0
		require.NoError(t, op.ApplyBoundary(face, face.Center, []float64{2}, res))
		assert.InDelta(t, 1., res[0], 1.e-14)
		// A boundary flux takes precedence
		op.BoundaryFlux = lf.Absorbing()
		op.Boundary = nil
		res[0] = 0
		require.NoError(t, op.ApplyBoundary(face, face.Center, []float64{4}, res))
		assert.InDelta(t, 4., res[0], 1.e-14)
	}
	{ // Errors
		op := NewLocalAdvection(mesh, constantFlux(1), nil, nil, 1)
		assert.ErrorIs(t, op.ApplyBoundary(face, face.Center, []float64{1}, []float64{0}), ErrNoBoundary)
		op.Boundary = func(uIn, x, normal []float64, t float64) []float64 { return []float64{1, 2} }
		assert.ErrorIs(t, op.ApplyBoundary(face, face.Center, []float64{1}, []float64{0}), ErrSizeMismatch)
	}
}

func TestImpermeableWall(t *testing.T) {
	wall := ImpermeableWall(1)
	assert.Equal(t, []float64{1, -2, 3, 5}, wall([]float64{1, 2, 3, 5}, nil, []float64{1, 0}, 0))
	assert.Equal(t, []float64{1, 2, -3, 5}, wall([]float64{1, 2, 3, 5}, nil, []float64{0, -1}, 0))
	u := []float64{1, 2, 3, 5}
	assert.Equal(t, u, Extrapolate()(u, nil, []float64{1, 0}, 0))
}

func TestApply(t *testing.T) {
	{ // Constant state on a periodic mesh is steady
		mesh, err := grid.NewUniform1D(10, 0, 1, true)
		require.NoError(t, err)
		source := make([][]float64, 10)
		for k := range source {
			source[k] = []float64{0.7}
		}
		rc := reconstruction.New(mesh, burgers{}, nil, reconstruction.Options{Order: 1, Limiter: limiters.Minmod})
		lf := fluxes.NewLaxFriedrichs(burgers{}, fluxes.LaxFriedrichsOptions{})
		op := NewLocalAdvection(mesh, lf, nil, rc, 3)
		res, err := op.Apply(source, 0, 0.01)
		require.NoError(t, err)
		for k := range res {
			assert.InDelta(t, 0., res[k][0], 1.e-14, "cell %d", k)
		}
	}
	{ // First order upwind: (u_k - u_k-1) / h
		mesh, err := grid.NewUniform1D(4, 0, 1, true)
		require.NoError(t, err)
		uw, err := fluxes.NewUpwind(advection{a: []float64{1}})
		require.NoError(t, err)
		op := NewLocalAdvection(mesh, uw, nil, nil, 2)
		res, err := op.Apply([][]float64{{1}, {2}, {3}, {4}}, 0, 0.1)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{-12, 4, 4, 4}, []float64{res[0][0], res[1][0], res[2][0], res[3][0]}, 1.e-12)
	}
	{ // Periodic Burgers conserves the total
		mesh, err := grid.NewUniform1D(16, -1, 1, true)
		require.NoError(t, err)
		source := make([][]float64, 16)
		for k := range source {
			source[k] = []float64{float64(k%5) - 1.5}
		}
		rc := reconstruction.New(mesh, burgers{}, nil, reconstruction.Options{Order: 1, Limiter: limiters.MC})
		lf := fluxes.NewLaxFriedrichs(burgers{}, fluxes.LaxFriedrichsOptions{UseGlobal: true})
		op := NewLocalAdvection(mesh, lf, nil, rc, 4)
		res, err := op.Apply(source, 0, 0.01)
		require.NoError(t, err)
		var total float64
		for k := range res {
			total += res[k][0] * mesh.Volume(k)
		}
		assert.InDelta(t, 0., total, 1.e-12)
		op.Reset()
		assert.Equal(t, uint64(1), rc.Cache.Generation())
		_, err = op.Apply(source, 0.01, 0.01)
		require.NoError(t, err)
	}
	{ // 2D constant state with face quadrature and Dirichlet boundaries
		mesh, err := grid.NewCartesian([]int{4, 3}, []float64{0, 0}, []float64{1, 1}, []bool{false, false})
		require.NoError(t, err)
		flux := advection{a: []float64{1, -0.5}}
		source := make([][]float64, mesh.NumCells())
		for k := range source {
			source[k] = []float64{2}
		}
		boundary := func(x []float64, t float64) []float64 { return []float64{2} }
		rc := reconstruction.New(mesh, flux, boundary,
			reconstruction.Options{Order: 1, Limiter: limiters.Minmod, FacePoints: 2, Linear: true})
		lf := fluxes.NewLaxFriedrichs(flux, fluxes.LaxFriedrichsOptions{UseLocal: true, Linear: true})
		op := NewLocalAdvection(mesh, lf, Dirichlet(boundary), rc, 2)
		res, err := op.Apply(source, 0, 0.01)
		require.NoError(t, err)
		for k := range res {
			assert.InDelta(t, 0., res[k][0], 1.e-12, "cell %d", k)
		}
	}
	{ // Wrong number of cells
		mesh, err := grid.NewUniform1D(4, 0, 1, true)
		require.NoError(t, err)
		op := NewLocalAdvection(mesh, constantFlux(1), nil, nil, 1)
		_, err = op.Apply([][]float64{{1}}, 0, 0.1)
		assert.ErrorIs(t, err, ErrSizeMismatch)
	}
}

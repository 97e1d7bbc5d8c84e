package Scalar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/fluxes"
)

func TestScalarFluxes(t *testing.T) {
	{ // Advection
		ad := NewAdvection(2, -3)
		dst := make([]float64, 1)
		ad.Evaluate([]float64{1.5}, 1, dst)
		assert.Equal(t, -4.5, dst[0])
		J := mat.NewDense(1, 1, nil)
		ad.Jacobian([]float64{7}, 0, J)
		assert.Equal(t, 2., J.At(0, 0))
		assert.Equal(t, 3., ad.MaxWaveSpeed([]float64{100}))
		assert.True(t, ad.Linear())
		assert.Equal(t, 2, ad.DimDomain())
		assert.Panics(t, func() { NewAdvection() })
	}
	{ // Burgers
		b := NewBurgers(1)
		dst := make([]float64, 1)
		b.Evaluate([]float64{-2}, 0, dst)
		assert.Equal(t, 2., dst[0])
		J := mat.NewDense(1, 1, nil)
		b.Jacobian([]float64{-2}, 0, J)
		assert.Equal(t, -2., J.At(0, 0))
		assert.Equal(t, 2., b.MaxWaveSpeed([]float64{-2}))
		assert.False(t, b.Linear())
	}
}

func TestGodunov(t *testing.T) {
	var (
		b = NewBurgers(1)
		g = b.Godunov()
		n = []float64{1}
	)
	cases := []struct{ uL, uR, expected float64 }{
		{2, 1, 2},     // shock moving right
		{-1, -2, 2},   // shock moving left
		{-1, 1, 0},    // transonic rarefaction
		{1, -1, 0.5},  // stationary shock
		{1, 2, 0.5},   // rarefaction moving right
		{-2, -1, 0.5}, // rarefaction moving left
	}
	for _, c := range cases {
		flux, err := g.Apply([]float64{c.uL}, []float64{c.uR}, n, fluxes.Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, c.expected, flux[0], 1.e-14, "uL = %g, uR = %g", c.uL, c.uR)
	}
	{ // Flipping the normal flips the sign of the flux
		flux, err := g.Apply([]float64{1}, []float64{2}, []float64{-1}, fluxes.Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, -2., flux[0], 1.e-14)
	}
	{ // 2D direction projected onto the normal
		b2 := NewBurgers(1, 1)
		flux, err := b2.Godunov().Apply([]float64{2}, []float64{2}, []float64{0, 1}, fluxes.Parameters{})
		require.NoError(t, err)
		assert.InDelta(t, 2., flux[0], 1.e-14)
	}
	_, err := g.Apply([]float64{1, 2}, []float64{1}, n, fluxes.Parameters{})
	assert.ErrorIs(t, err, fluxes.ErrSizeMismatch)
}

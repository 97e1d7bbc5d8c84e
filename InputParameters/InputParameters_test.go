package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Density Wave
Model: euler
CFL: 0.4
InitType: DensityWave
FluxType: Vijayasundaram
Order: 1
FacePoints: 2
FinalTime: 0.5
Cells: [32, 32]
Min: [0, 0]
Max: [1, 1]
Periodic: [true, true]
Velocity: [1, 0.5]
BoundaryType: Dirichlet
BoundaryState:
  Rho: 1.0
  P: 2.5
`)
	ip := NewInputParametersFV()
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Density Wave", ip.Title)
	assert.Equal(t, 0.4, ip.CFL)
	assert.Equal(t, []int{32, 32}, ip.Cells)
	assert.Equal(t, 2, ip.Dimensions())
	assert.Equal(t, []bool{true, true}, ip.Periodic)
	assert.Equal(t, 2.5, ip.BoundaryState["P"])
	// Defaults survive when absent from the file
	assert.Equal(t, 1.4, ip.Gamma)
	assert.Equal(t, "minmod", ip.Limiter)
	assert.NoError(t, ip.Validate())
	ip.Print()
}

func TestValidate(t *testing.T) {
	ip := NewInputParametersFV()
	assert.NoError(t, ip.Validate())
	assert.Equal(t, []bool{false}, ip.PeriodicAxes())
	ip.Min = []float64{0, 0}
	assert.Error(t, ip.Validate())
	ip = NewInputParametersFV()
	ip.Order = 2
	assert.Error(t, ip.Validate())
	ip = NewInputParametersFV()
	ip.Cells = nil
	assert.Error(t, ip.Validate())
	ip = NewInputParametersFV()
	ip.Periodic = nil
	assert.NoError(t, ip.Validate())
	assert.Equal(t, []bool{false}, ip.PeriodicAxes())
}

package reconstruction

import (
	"errors"
	"fmt"

	"github.com/notargets/gofvm/FV/limiters"
)

var ErrStencilSize = errors.New("slope reconstruction needs exactly three cell values")

// SlopeReconstruct evaluates the limited linear reconstruction through the
// center of values (left, center, right) at the reference points in [0, 1].
// The cell center sits at 0.5.
func SlopeReconstruct(values [][]float64, limiter limiters.LimiterType, points []float64,
	result [][]float64) (err error) {
	if len(values) != 3 {
		return fmt.Errorf("have %d values: %w", len(values), ErrStencilSize)
	}
	if len(result) != len(points) {
		return fmt.Errorf("%d results requested for %d points", len(result), len(points))
	}
	var (
		uLeft, uCenter, uRight = values[0], values[1], values[2]
		m                      = len(uCenter)
		slopeLeft              = make([]float64, m)
		slopeRight             = make([]float64, m)
		slopeCenter            = make([]float64, m)
		slope                  = make([]float64, m)
	)
	for n := 0; n < m; n++ {
		slopeLeft[n] = uCenter[n] - uLeft[n]
		slopeRight[n] = uRight[n] - uCenter[n]
		slopeCenter[n] = 0.5 * (uRight[n] - uLeft[n])
	}
	limiter.Limit(slopeLeft, slopeRight, slopeCenter, slope)
	for i, x := range points {
		if len(result[i]) != m {
			result[i] = make([]float64, m)
		}
		for n := 0; n < m; n++ {
			result[i][n] = uCenter[n] + slope[n]*(x-0.5)
		}
	}
	return
}

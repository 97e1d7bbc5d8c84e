package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 4 || pp < -4 {
		return math.Pow(x, float64(pp))
	}
	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	}
	if flipped {
		y = 1. / y
	}
	return
}

// MaxAbs returns the largest magnitude in v
func MaxAbs(v []float64) (m float64) {
	for _, val := range v {
		if a := math.Abs(val); a > m {
			m = a
		}
	}
	return
}

func CopyStates(src [][]float64) (dst [][]float64) {
	dst = make([][]float64, len(src))
	for i, u := range src {
		dst[i] = append([]float64(nil), u...)
	}
	return
}

package grid

import (
	"fmt"
)

// Cartesian is a uniform axis aligned grid on [Min, Max], numbered with axis 0
// running fastest. Axes flagged Periodic wrap around, all others end in
// boundary faces.
type Cartesian struct {
	N        []int
	Min, Max []float64
	Periodic []bool
	h        []float64
	volume   float64
	faces    [][]Face
}

func NewCartesian(N []int, Min, Max []float64, Periodic []bool) (cg *Cartesian, err error) {
	var (
		d = len(N)
	)
	if d < 1 || d > 3 {
		err = fmt.Errorf("invalid dimension %d, must be 1, 2 or 3", d)
		return
	}
	if len(Min) != d || len(Max) != d || len(Periodic) != d {
		err = fmt.Errorf("invalid dimensions: len(N) = %d, len(Min) = %d, len(Max) = %d, len(Periodic) = %d",
			d, len(Min), len(Max), len(Periodic))
		return
	}
	cg = &Cartesian{
		N:        append([]int(nil), N...),
		Min:      append([]float64(nil), Min...),
		Max:      append([]float64(nil), Max...),
		Periodic: append([]bool(nil), Periodic...),
		h:        make([]float64, d),
		volume:   1,
	}
	for axis := 0; axis < d; axis++ {
		if N[axis] < 1 {
			err = fmt.Errorf("axis %d needs at least one cell, have %d", axis, N[axis])
			return nil, err
		}
		if Max[axis] <= Min[axis] {
			err = fmt.Errorf("axis %d has an empty extent [%g, %g]", axis, Min[axis], Max[axis])
			return nil, err
		}
		cg.h[axis] = (Max[axis] - Min[axis]) / float64(N[axis])
		cg.volume *= cg.h[axis]
	}
	cg.buildFaces()
	return
}

// NewUniform1D is a convenience for the common interval grid
func NewUniform1D(K int, xMin, xMax float64, periodic bool) (cg *Cartesian, err error) {
	return NewCartesian([]int{K}, []float64{xMin}, []float64{xMax}, []bool{periodic})
}

func (cg *Cartesian) Dim() int { return len(cg.N) }

func (cg *Cartesian) NumCells() (K int) {
	K = 1
	for _, n := range cg.N {
		K *= n
	}
	return
}

func (cg *Cartesian) Volume(k int) float64 { return cg.volume }

func (cg *Cartesian) Width(k, axis int) float64 { return cg.h[axis] }

func (cg *Cartesian) Center(k int) (x []float64) {
	var (
		ijk = cg.CellIJK(k)
	)
	x = make([]float64, cg.Dim())
	for axis := range x {
		x[axis] = cg.Min[axis] + (float64(ijk[axis])+0.5)*cg.h[axis]
	}
	return
}

func (cg *Cartesian) Faces(k int) []Face { return cg.faces[k] }

func (cg *Cartesian) CellIndex(ijk []int) (k int) {
	for axis := cg.Dim() - 1; axis >= 0; axis-- {
		k = k*cg.N[axis] + ijk[axis]
	}
	return
}

func (cg *Cartesian) CellIJK(k int) (ijk []int) {
	ijk = make([]int, cg.Dim())
	for axis := 0; axis < cg.Dim(); axis++ {
		ijk[axis] = k % cg.N[axis]
		k /= cg.N[axis]
	}
	return
}

func (cg *Cartesian) buildFaces() {
	var (
		d = cg.Dim()
		K = cg.NumCells()
	)
	cg.faces = make([][]Face, K)
	for k := 0; k < K; k++ {
		var (
			ijk    = cg.CellIJK(k)
			center = cg.Center(k)
		)
		cg.faces[k] = make([]Face, 2*d)
		for axis := 0; axis < d; axis++ {
			for side := 0; side < 2; side++ {
				var (
					step = 2*side - 1
					f    = Face{
						Index:   2*axis + side,
						Inside:  k,
						Outside: -1,
						Normal:  make([]float64, d),
						Measure: cg.volume / cg.h[axis],
						Center:  append([]float64(nil), center...),
					}
					nbr = append([]int(nil), ijk...)
				)
				f.Normal[axis] = float64(step)
				f.Center[axis] += 0.5 * float64(step) * cg.h[axis]
				nbr[axis] += step
				switch {
				case nbr[axis] >= 0 && nbr[axis] < cg.N[axis]:
					f.Outside = cg.CellIndex(nbr)
				case cg.Periodic[axis]:
					nbr[axis] = (nbr[axis] + cg.N[axis]) % cg.N[axis]
					f.Outside = cg.CellIndex(nbr)
				default:
					f.Boundary = true
				}
				cg.faces[k][f.Index] = f
			}
		}
	}
}

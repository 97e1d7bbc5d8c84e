package reconstruction

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gofvm/FV/eigen"
	"github.com/notargets/gofvm/FV/grid"
	"github.com/notargets/gofvm/FV/limiters"
	"github.com/notargets/gofvm/FV/physics"
	"github.com/notargets/gofvm/FV/stencil"
	"github.com/notargets/gofvm/utils"
)

var log = logrus.WithField("component", "reconstruction")

const LocalTol = 1.e-10

// FacePoint is one reconstructed value on a face, keyed by its coordinate in
// the cell reference element [0, 1]^d and by the matching global coordinate
type FacePoint struct {
	Local  []float64
	Global []float64
	Value  []float64
}

// InterfaceValues holds the reconstructed values of one cell, grouped by face index
type InterfaceValues struct {
	Dim   int
	Faces [][]FacePoint
}

func newInterfaceValues(d int) *InterfaceValues {
	return &InterfaceValues{Dim: d, Faces: make([][]FacePoint, 2*d)}
}

// At looks up the value stored at a reference coordinate
func (iv *InterfaceValues) At(local []float64) (value []float64, ok bool) {
	for _, face := range iv.Faces {
		for _, fp := range face {
			if sameLocal(fp.Local, local) {
				return fp.Value, true
			}
		}
	}
	return
}

// Face returns the single value on a face, or the first quadrature point
func (iv *InterfaceValues) Face(index int) []float64 {
	if len(iv.Faces[index]) == 0 {
		return nil
	}
	return iv.Faces[index][0].Value
}

func sameLocal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > LocalTol {
			return false
		}
	}
	return true
}

type Options struct {
	// Order is the stencil radius, zero gives a piecewise constant reconstruction
	Order   int
	Limiter limiters.LimiterType
	// FacePoints is the number of Gauss-Legendre points used along each face tangent
	FacePoints int
	// Linear marks a flux whose Jacobians do not depend on the state
	Linear bool
	// Solver overrides the generic eigen solver
	Solver         eigen.Solver
	ParallelDegree int
}

/*
Reconstructor computes limited, dimension by dimension linear reconstructions
of cell averages on the faces of every cell.

	For the primary axis p the stencil is transformed to the characteristic
	variables of p, reconstructed to the two faces normal to p, transformed to
	the characteristic variables of the next axis and reconstructed to the face
	quadrature points along it, and so on through every axis. The last step
	transforms back to conserved variables.
*/
type Reconstructor struct {
	Mesh       grid.Mesh
	Flux       physics.Flux
	Boundary   physics.BoundaryFunc
	Order      int
	Limiter    limiters.LimiterType
	Quadrature Quadrature
	Cache      *eigen.Cache
	iterator   *stencil.Iterator
	pm         *utils.PartitionMap
	time       float64
}

func New(mesh grid.Mesh, flux physics.Flux, boundary physics.BoundaryFunc, opts Options) (rc *Reconstructor) {
	var (
		d      = mesh.Dim()
		solver = opts.Solver
		quad   = Midpoint()
	)
	if d != flux.DimDomain() {
		panic(fmt.Errorf("mesh dimension %d does not match flux dimension %d", d, flux.DimDomain()))
	}
	if opts.Order < 0 {
		panic(fmt.Errorf("reconstruction order must be non negative, have %d", opts.Order))
	}
	if solver == nil {
		solver = eigen.NewGeneric(flux)
	}
	if d > 1 && opts.FacePoints > 0 {
		quad = GaussLegendre(opts.FacePoints)
	}
	rc = &Reconstructor{
		Mesh:       mesh,
		Flux:       flux,
		Boundary:   boundary,
		Order:      opts.Order,
		Limiter:    opts.Limiter,
		Quadrature: quad,
		Cache:      eigen.NewCache(solver, mesh.NumCells(), d, opts.Linear),
		iterator:   stencil.NewIterator(mesh, opts.Order),
		pm:         utils.NewPartitionMap(opts.ParallelDegree, mesh.NumCells()),
	}
	return
}

// Reset starts a new time step, cached eigen bases of non linear fluxes are recomputed
func (rc *Reconstructor) Reset() { rc.Cache.Reset() }

// SetTime sets the time passed to the boundary function
func (rc *Reconstructor) SetTime(t float64) { rc.time = t }

// boundaryValues binds the current time. Without a boundary function the
// state of the center cell is replicated.
func (rc *Reconstructor) boundaryValues(center []float64) stencil.BoundaryValues {
	if rc.Boundary == nil {
		return func([]float64) []float64 { return center }
	}
	t := rc.time
	return func(x []float64) []float64 { return rc.Boundary(x, t) }
}

// Reconstruct computes the face values of cell k from the cell averages in source
func (rc *Reconstructor) Reconstruct(k int, source [][]float64) (iv *InterfaceValues, err error) {
	var (
		d = rc.Mesh.Dim()
	)
	if len(source) != rc.Mesh.NumCells() {
		return nil, fmt.Errorf("have %d cell states for %d cells", len(source), rc.Mesh.NumCells())
	}
	if len(source[k]) != rc.Flux.DimRange() {
		return nil, fmt.Errorf("cell %d has %d components, flux has %d: %w",
			k, len(source[k]), rc.Flux.DimRange(), stencil.ErrStateSize)
	}
	if rc.Order == 0 {
		iv = rc.constant(source[k])
		rc.locate(k, iv)
		return
	}
	st, err := rc.iterator.Gather(k, source, rc.boundaryValues(source[k]))
	if err != nil {
		return nil, fmt.Errorf("cell %d: %w", k, err)
	}
	if st.Width != 3 {
		return nil, fmt.Errorf("cell %d: stencil width %d: %w", k, st.Width, ErrStencilSize)
	}
	bases, err := rc.Cache.Get(k, st.Center())
	if err != nil {
		return nil, err
	}
	iv = newInterfaceValues(d)
	for p := 0; p < d; p++ {
		if err = rc.reconstructPrimary(p, st, bases, iv); err != nil {
			return nil, fmt.Errorf("cell %d, axis %d: %w", k, p, err)
		}
	}
	rc.locate(k, iv)
	return
}

// locate maps the reference coordinates of every face point into cell k
func (rc *Reconstructor) locate(k int, iv *InterfaceValues) {
	center := rc.Mesh.Center(k)
	for _, face := range iv.Faces {
		for i := range face {
			pt := &face[i]
			pt.Global = make([]float64, len(center))
			for axis := range center {
				pt.Global[axis] = center[axis] + (pt.Local[axis]-0.5)*rc.Mesh.Width(k, axis)
			}
		}
	}
}

func (rc *Reconstructor) constant(u []float64) (iv *InterfaceValues) {
	d := rc.Mesh.Dim()
	iv = newInterfaceValues(d)
	for p := 0; p < d; p++ {
		for side := 0; side < 2; side++ {
			for _, local := range rc.facePoints(p, side) {
				iv.Faces[2*p+side] = append(iv.Faces[2*p+side],
					FacePoint{Local: local, Value: append([]float64(nil), u...)})
			}
		}
	}
	return
}

// facePoints lists the reference coordinates on face 2p+side in storage order
func (rc *Reconstructor) facePoints(p, side int) (points [][]float64) {
	var (
		d     = rc.Mesh.Dim()
		shape = make([]int, d)
	)
	for axis := range shape {
		shape[axis] = rc.Quadrature.Len()
	}
	shape[p] = 1
	t := newTensor(shape, 0)
	for idx := range t.data {
		multi := t.multiIndex(idx)
		local := make([]float64, d)
		for axis := range local {
			if axis == p {
				local[axis] = float64(side)
			} else {
				local[axis] = rc.Quadrature.Points[multi[axis]]
			}
		}
		points = append(points, local)
	}
	return
}

func (rc *Reconstructor) reconstructPrimary(p int, st *stencil.Stencil, bases []*eigen.Basis,
	iv *InterfaceValues) (err error) {
	var (
		d     = st.Dim
		shape = make([]int, d)
		axes  = make([]int, d)
	)
	for axis := range shape {
		shape[axis] = st.Width
		axes[axis] = (p + axis) % d
	}
	t := newTensor(shape, st.M)
	for i, u := range st.Values {
		bases[p].ToCharacteristic(u, t.data[i])
	}
	kernel := func(line [][]float64, points []float64, result [][]float64) error {
		return SlopeReconstruct(line, rc.Limiter, points, result)
	}
	for i, axis := range axes {
		points := rc.Quadrature.Points
		if i == 0 {
			points = LeftRight().Points
		}
		if t, err = t.along(axis, points, kernel); err != nil {
			return
		}
		for _, w := range t.data {
			bases[axis].FromCharacteristic(w, w)
			if i < d-1 {
				bases[axes[i+1]].ToCharacteristic(w, w)
			}
		}
	}
	for idx, u := range t.data {
		var (
			multi = t.multiIndex(idx)
			local = make([]float64, d)
			side  = multi[p]
		)
		for axis := range local {
			if axis == p {
				local[axis] = float64(side)
			} else {
				local[axis] = rc.Quadrature.Points[multi[axis]]
			}
		}
		iv.Faces[2*p+side] = append(iv.Faces[2*p+side], FacePoint{Local: local, Value: u})
	}
	return
}

// ReconstructAll reconstructs every cell, partitioned over goroutines
func (rc *Reconstructor) ReconstructAll(source [][]float64) (ivs []*InterfaceValues, err error) {
	ivs = make([]*InterfaceValues, rc.Mesh.NumCells())
	err = rc.pm.RunPartitioned(func(bn, kMin, kMax int) (err error) {
		for k := kMin; k < kMax; k++ {
			if ivs[k], err = rc.Reconstruct(k, source); err != nil {
				return
			}
		}
		return
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"cells":        len(ivs),
		"generation":   rc.Cache.Generation(),
		"computations": rc.Cache.Computations(),
	}).Trace("reconstructed")
	return
}

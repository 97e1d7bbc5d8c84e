package operators

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofvm/FV/fluxes"
	"github.com/notargets/gofvm/FV/grid"
	"github.com/notargets/gofvm/FV/reconstruction"
	"github.com/notargets/gofvm/utils"
)

var log = logrus.WithField("component", "operators")

var (
	ErrSizeMismatch = errors.New("local state or residual has the wrong length")
	ErrNoBoundary   = errors.New("boundary face without a boundary value or boundary flux")
)

/*
LocalAdvection evaluates the finite volume residual

	R_k = sum over faces f of k: |f| / |k| g(u_k, u_neighbor, n_f)

so that du/dt = -R. Each side of a face is divided by its own cell volume,
which is conservative only when neighboring cells have equal volumes.
*/
type LocalAdvection struct {
	Mesh grid.Mesh
	Flux fluxes.NumericalFlux
	// Boundary gives the outside state on true boundaries
	Boundary BoundaryValue
	// BoundaryFlux replaces Flux and Boundary on true boundaries when set
	BoundaryFlux fluxes.BoundaryFlux
	// Reconstructor is optional, without it the cell averages are used on the faces
	Reconstructor *reconstruction.Reconstructor
	Dt, Time      float64
	pm            *utils.PartitionMap
}

func NewLocalAdvection(mesh grid.Mesh, flux fluxes.NumericalFlux, boundary BoundaryValue,
	rc *reconstruction.Reconstructor, parallelDegree int) (op *LocalAdvection) {
	op = &LocalAdvection{
		Mesh:          mesh,
		Flux:          flux,
		Boundary:      boundary,
		Reconstructor: rc,
		pm:            utils.NewPartitionMap(parallelDegree, mesh.NumCells()),
	}
	return
}

func (op *LocalAdvection) parameters(face grid.Face) fluxes.Parameters {
	return fluxes.Parameters{
		Dt:   op.Dt,
		Dx:   op.Mesh.Width(face.Inside, face.Axis()),
		Time: op.Time,
	}
}

// ApplyCoupling adds the flux through an interior face to both residuals
func (op *LocalAdvection) ApplyCoupling(face grid.Face, uIn, uOut, resIn, resOut []float64) (err error) {
	if face.Outside < 0 {
		return fmt.Errorf("face %d of cell %d has no neighbor", face.Index, face.Inside)
	}
	if len(uIn) != len(uOut) || len(resIn) != len(uIn) || len(resOut) != len(uIn) {
		return fmt.Errorf("uIn %d, uOut %d, resIn %d, resOut %d: %w",
			len(uIn), len(uOut), len(resIn), len(resOut), ErrSizeMismatch)
	}
	g, err := op.Flux.Apply(uIn, uOut, face.Normal, op.parameters(face))
	if err != nil {
		return fmt.Errorf("face %d of cell %d: %w", face.Index, face.Inside, err)
	}
	floats.AddScaled(resIn, face.Measure/op.Mesh.Volume(face.Inside), g)
	floats.AddScaled(resOut, -face.Measure/op.Mesh.Volume(face.Outside), g)
	return
}

// ApplyBoundary adds the flux through a boundary face at x to the inside residual
func (op *LocalAdvection) ApplyBoundary(face grid.Face, x, uIn, resIn []float64) (err error) {
	var (
		g []float64
		p = op.parameters(face)
	)
	if len(resIn) != len(uIn) {
		return fmt.Errorf("uIn %d, resIn %d: %w", len(uIn), len(resIn), ErrSizeMismatch)
	}
	switch {
	case op.BoundaryFlux != nil:
		g, err = op.BoundaryFlux(uIn, x, face.Normal, p)
	case op.Boundary != nil:
		uOut := op.Boundary(uIn, x, face.Normal, op.Time)
		if len(uOut) != len(uIn) {
			return fmt.Errorf("boundary state at %v has %d components, want %d: %w",
				x, len(uOut), len(uIn), ErrSizeMismatch)
		}
		g, err = op.Flux.Apply(uIn, uOut, face.Normal, p)
	default:
		return fmt.Errorf("face %d of cell %d: %w", face.Index, face.Inside, ErrNoBoundary)
	}
	if err != nil {
		return fmt.Errorf("boundary face %d of cell %d: %w", face.Index, face.Inside, err)
	}
	floats.AddScaled(resIn, face.Measure/op.Mesh.Volume(face.Inside), g)
	return
}

// Reset starts a new time step for the reconstruction and the flux caches
func (op *LocalAdvection) Reset() {
	if op.Reconstructor != nil {
		op.Reconstructor.Reset()
	}
	if r, ok := op.Flux.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Apply returns the residual of every cell at time t. Each interior face is
// evaluated once from each side, so partitions only write their own cells.
func (op *LocalAdvection) Apply(source [][]float64, t, dt float64) (residual [][]float64, err error) {
	var (
		K   = op.Mesh.NumCells()
		ivs []*reconstruction.InterfaceValues
	)
	if len(source) != K {
		return nil, fmt.Errorf("have %d cell states for %d cells: %w", len(source), K, ErrSizeMismatch)
	}
	op.Time, op.Dt = t, dt
	if pr, ok := op.Flux.(interface{ Prepare([][]float64) error }); ok {
		if err = pr.Prepare(source); err != nil {
			return
		}
	}
	if op.Reconstructor != nil {
		op.Reconstructor.SetTime(t)
		if ivs, err = op.Reconstructor.ReconstructAll(source); err != nil {
			return
		}
	}
	residual = make([][]float64, K)
	for k := range residual {
		residual[k] = make([]float64, len(source[k]))
	}
	err = op.pm.RunPartitioned(func(bn, kMin, kMax int) (err error) {
		for k := kMin; k < kMax; k++ {
			if err = op.applyCell(k, source, ivs, residual[k]); err != nil {
				return
			}
		}
		return
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"time": t, "dt": dt}).Trace("residual")
	return
}

type facePoint struct {
	x, uIn, uOut []float64
	weight       float64
}

func (op *LocalAdvection) applyCell(k int, source [][]float64, ivs []*reconstruction.InterfaceValues,
	res []float64) (err error) {
	var (
		scratch = make([]float64, len(res))
	)
	for _, face := range op.Mesh.Faces(k) {
		for _, fp := range op.facePoints(k, face, source, ivs) {
			weighted := face
			weighted.Measure *= fp.weight
			if face.Boundary {
				err = op.ApplyBoundary(weighted, fp.x, fp.uIn, res)
			} else {
				err = op.ApplyCoupling(weighted, fp.uIn, fp.uOut, res, scratch)
			}
			if err != nil {
				return
			}
		}
	}
	return
}

// facePoints pairs the inside and outside states at every quadrature point of a face
func (op *LocalAdvection) facePoints(k int, face grid.Face, source [][]float64,
	ivs []*reconstruction.InterfaceValues) (points []facePoint) {
	if ivs == nil {
		fp := facePoint{x: face.Center, uIn: source[k], weight: 1}
		if !face.Boundary {
			fp.uOut = source[face.Outside]
		}
		return []facePoint{fp}
	}
	var (
		quad   = op.Reconstructor.Quadrature
		inside = ivs[k].Faces[face.Index]
	)
	for i, pt := range inside {
		fp := facePoint{x: pt.Global, uIn: pt.Value, weight: 1}
		if len(inside) > 1 {
			fp.weight = tensorWeight(quad, pt.Local, face.Axis())
		}
		if !face.Boundary {
			// The neighbor stores the same points in the same order on its opposite face
			fp.uOut = ivs[face.Outside].Faces[face.Index^1][i].Value
		}
		points = append(points, fp)
	}
	return
}

// tensorWeight is the product of the one dimensional weights along the face tangents
func tensorWeight(q reconstruction.Quadrature, local []float64, normalAxis int) (w float64) {
	w = 1
	for axis, x := range local {
		if axis == normalAxis {
			continue
		}
		for i, xi := range q.Points {
			if utils.FloatCmp(xi, x, utils.Equal) {
				w *= q.Weights[i]
				break
			}
		}
	}
	return
}

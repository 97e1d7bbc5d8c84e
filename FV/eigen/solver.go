package eigen

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/FV/physics"
	"github.com/notargets/gofvm/utils"
)

var (
	ErrNoConvergence        = errors.New("eigen decomposition failed to converge")
	ErrComplexEigenvalues   = errors.New("flux jacobian has complex eigenvalues")
	ErrNonFinite            = errors.New("eigen decomposition has non finite entries")
	ErrSingularEigenvectors = errors.New("eigenvector matrix is singular")
)

// Solver returns the right eigenvectors (as columns) and eigenvalues of the
// flux Jacobian along a unit normal, evaluated at state u
type Solver interface {
	Decompose(u, normal []float64) (vectors *mat.Dense, values []float64, err error)
}

// Generic decomposes sum_i n_i df_i/du numerically
type Generic struct {
	Flux physics.Flux
	// Checks enables the singular eigenvector test
	Checks bool
}

func NewGeneric(flux physics.Flux) *Generic {
	return &Generic{Flux: flux, Checks: true}
}

func (g *Generic) Decompose(u, normal []float64) (vectors *mat.Dense, values []float64, err error) {
	var (
		J   = physics.NormalJacobian(g.Flux, u, normal)
		m   = g.Flux.DimRange()
		eig mat.Eigen
		cv  mat.CDense
	)
	if utils.IsNan(J.RawMatrix().Data) {
		err = fmt.Errorf("jacobian at u = %v:\n%v\n%w", u, mat.Formatted(J, mat.Squeeze()), ErrNonFinite)
		return
	}
	if ok := eig.Factorize(J, mat.EigenRight); !ok {
		err = fmt.Errorf("jacobian at u = %v:\n%v\n%w", u, mat.Formatted(J, mat.Squeeze()), ErrNoConvergence)
		return
	}
	cvals := eig.Values(nil)
	values = make([]float64, m)
	for i, cval := range cvals {
		if !utils.IsZero(imag(cval)) {
			err = fmt.Errorf("eigenvalues %v of jacobian\n%v\n%w", cvals, mat.Formatted(J, mat.Squeeze()),
				ErrComplexEigenvalues)
			return
		}
		values[i] = real(cval)
	}
	eig.VectorsTo(&cv)
	if vectors, err = realVectors(cvals, &cv); err != nil {
		err = fmt.Errorf("jacobian\n%v\n%w", mat.Formatted(J, mat.Squeeze()), err)
		return
	}
	if utils.IsNan(values) || utils.IsNan(vectors.RawMatrix().Data) {
		err = fmt.Errorf("eigenvalues %v, eigenvectors\n%v\n%w", values, mat.Formatted(vectors, mat.Squeeze()),
			ErrNonFinite)
		return
	}
	if g.Checks {
		err = CheckInvertible(vectors)
	}
	return
}

// realVectors converts the complex eigenvectors of a real spectrum to real
// columns. A repeated eigenvalue may come back as a conjugate pair with a
// vanishing imaginary part; Re(v) and Im(v) of the pair's vector then span
// the same real eigenspace and replace the pair, each scaled to unit length.
func realVectors(cvals []complex128, cv *mat.CDense) (vectors *mat.Dense, err error) {
	m := len(cvals)
	vectors = mat.NewDense(m, m, nil)
	for j := 0; j < m; j++ {
		if imag(cvals[j]) != 0 && j+1 < m && cvals[j+1] == cmplx.Conj(cvals[j]) {
			re, im := make([]float64, m), make([]float64, m)
			for i := 0; i < m; i++ {
				re[i], im[i] = real(cv.At(i, j)), imag(cv.At(i, j))
			}
			for col, v := range [][]float64{re, im} {
				if norm := floats.Norm(v, 2); norm != 0 {
					floats.Scale(1/norm, v)
				}
				vectors.SetCol(j+col, v)
			}
			j++
			continue
		}
		for i := 0; i < m; i++ {
			val := cv.At(i, j)
			if !utils.IsZero(imag(val)) {
				return nil, ErrComplexEigenvalues
			}
			vectors.Set(i, j, real(val))
		}
	}
	return
}

// CheckInvertible runs an LU factorization of a copy of R
func CheckInvertible(R *mat.Dense) (err error) {
	var (
		nr, _ = R.Dims()
		lu    = mat.DenseCopyOf(R)
		iPiv  = make([]int, nr)
	)
	if ok := lapack64.Getrf(lu.RawMatrix(), iPiv); !ok {
		err = fmt.Errorf("eigenvectors\n%v\n%w", mat.Formatted(R, mat.Squeeze()), ErrSingularEigenvectors)
	}
	return
}

// MaxAbsEigenvalue is the largest wave speed magnitude along normal at u
func MaxAbsEigenvalue(s Solver, u, normal []float64) (lmax float64, err error) {
	var values []float64
	if _, values, err = s.Decompose(u, normal); err != nil {
		return
	}
	for _, v := range values {
		lmax = math.Max(lmax, math.Abs(v))
	}
	return
}

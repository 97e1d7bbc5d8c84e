package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

// CSC wraps a compressed sparse column matrix. Entries within a column are
// kept in ascending row order when built with NewCSCFromColumns.
type CSC struct {
	M    *sparse.CSC
	name string
}

func NewCSCFromColumns(nr, nc int, rows [][]int, vals [][]float64, name ...string) (R CSC) {
	var (
		indptr = make([]int, nc+1)
		ind    []int
		data   []float64
	)
	if len(rows) != nc || len(vals) != nc {
		panic(fmt.Errorf("column count mismatch building CSC: want %d, have %d rows and %d values",
			nc, len(rows), len(vals)))
	}
	for j := 0; j < nc; j++ {
		if len(rows[j]) != len(vals[j]) {
			panic(fmt.Errorf("column %d has %d row indices and %d values", j, len(rows[j]), len(vals[j])))
		}
		ind = append(ind, rows[j]...)
		data = append(data, vals[j]...)
		indptr[j+1] = len(data)
	}
	R = CSC{
		M:    sparse.NewCSC(nr, nc, indptr, ind, data),
		name: "unnamed",
	}
	if len(name) != 0 {
		R.name = name[0]
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSC) Dims() (r, c int)              { return m.M.Dims() }
func (m CSC) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSC) T() mat.Matrix                 { return m.M.T() }
func (m CSC) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSC) Name() string                  { return m.name }

func (m CSC) NNZ() int {
	raw := m.RawMatrix()
	return raw.Indptr[len(raw.Indptr)-1]
}

// Column returns the stored row indices and values of column j, without copying
func (m CSC) Column(j int) (rows []int, vals []float64) {
	var (
		raw  = m.RawMatrix()
		b, e = raw.Indptr[j], raw.Indptr[j+1]
	)
	return raw.Ind[b:e], raw.Data[b:e]
}

// CSR wraps a compressed sparse row matrix, used for products with small dense
// vectors where most of the matrix is zero.
type CSR struct {
	M    *sparse.CSR
	name string
}

// NewCSRFromDense keeps entries with magnitude above NODETOL
func NewCSRFromDense(A mat.Matrix, name ...string) (R CSR) {
	var (
		nr, nc = A.Dims()
		dok    = sparse.NewDOK(nr, nc)
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if val := A.At(i, j); !IsZero(val) {
				dok.Set(i, j, val)
			}
		}
	}
	R = CSR{
		M:    dok.ToCSR(),
		name: "unnamed",
	}
	if len(name) != 0 {
		R.name = name[0]
	}
	return
}

func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Name() string                  { return m.name }

// MulVecTo computes dst = M x. dst and x must not alias.
func (m CSR) MulVecTo(dst, x []float64) {
	var (
		raw    = m.RawMatrix()
		nr, nc = m.Dims()
	)
	if len(dst) != nr || len(x) != nc {
		panic(fmt.Errorf("dimension mismatch in %s: matrix is %dx%d, len(dst) = %d, len(x) = %d",
			m.name, nr, nc, len(dst), len(x)))
	}
	for i := 0; i < nr; i++ {
		var sum float64
		for k := raw.Indptr[i]; k < raw.Indptr[i+1]; k++ {
			sum += raw.Data[k] * x[raw.Ind[k]]
		}
		dst[i] = sum
	}
}

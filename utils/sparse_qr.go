package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// SOLVETOL is the magnitude below which a right hand side entry is treated as zero
// during back substitution
const SOLVETOL = 1.e-15

/*
SparseQR is a column pivoted QR factorization A P = Q R of a square matrix.

	Each Householder reflector is H_j = I - Tau[j] w_j w_j^T, where w_j has a unit entry
	at row j (not stored), zeros above, and the entries stored in column j of H below.
	Q = H_0 H_1 ... H_{n-1}, and column j of A P is column Perm[j] of A.
*/
type SparseQR struct {
	N    int
	Tau  []float64
	Perm []int
	H    CSC
	R    CSC
}

func NewSparseQR(A mat.Matrix) (qr *SparseQR) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		panic(fmt.Errorf("QR factorization needs a square matrix, have %dx%d", nr, nc))
	}
	var (
		n        = nr
		a        = mat.DenseCopyOf(A)
		colNorms = make([]float64, n)
		w        = make([]float64, n)
		hRows    = make([][]int, n)
		hVals    = make([][]float64, n)
	)
	qr = &SparseQR{
		N:    n,
		Tau:  make([]float64, n),
		Perm: make([]int, n),
	}
	for ii := range qr.Perm {
		qr.Perm[ii] = ii
	}
	for rr := 0; rr < n; rr++ {
		for cc := 0; cc < n; cc++ {
			colNorms[cc] += POW(a.At(rr, cc), 2)
		}
	}
	for jj := 0; jj < n; jj++ {
		// Pivot the remaining column with the greatest norm into position jj
		maxIndex := jj
		for cc := jj + 1; cc < n; cc++ {
			if colNorms[cc] > colNorms[maxIndex] {
				maxIndex = cc
			}
		}
		if maxIndex != jj {
			swapColumns(a, jj, maxIndex)
			colNorms[jj], colNorms[maxIndex] = colNorms[maxIndex], colNorms[jj]
			qr.Perm[jj], qr.Perm[maxIndex] = qr.Perm[maxIndex], qr.Perm[jj]
		}
		var normx float64
		for rr := jj; rr < n; rr++ {
			normx += POW(a.At(rr, jj), 2)
		}
		normx = math.Sqrt(normx)
		if !IsZero(normx) {
			var (
				s  = -Sign(a.At(jj, jj))
				u1 = a.At(jj, jj) - s*normx
			)
			w[jj] = 1
			for rr := jj + 1; rr < n; rr++ {
				w[rr] = a.At(rr, jj) / u1
				a.Set(rr, jj, 0)
				if !IsZero(w[rr]) {
					hRows[jj] = append(hRows[jj], rr)
					hVals[jj] = append(hVals[jj], w[rr])
				}
			}
			a.Set(jj, jj, s*normx)
			qr.Tau[jj] = -s * u1 / normx
			multiplyHouseholderFromLeft(a, qr.Tau[jj], w, jj, n, jj+1, n)
		}
		// Downdate instead of recomputing the remaining column norms
		for cc := jj + 1; cc < n; cc++ {
			colNorms[cc] -= POW(a.At(jj, cc), 2)
		}
	}
	qr.H = NewCSCFromColumns(n, n, hRows, hVals, "Householder vectors")
	qr.R = upperTriangularCSC(a)
	return
}

// A(rb:re, cb:ce) = (I - tau w w^T) A(rb:re, cb:ce)
func multiplyHouseholderFromLeft(A *mat.Dense, tau float64, w []float64, rb, re, cb, ce int) {
	var (
		wTA = make([]float64, ce)
	)
	for cc := cb; cc < ce; cc++ {
		for rr := rb; rr < re; rr++ {
			wTA[cc] += w[rr] * A.At(rr, cc)
		}
	}
	for rr := rb; rr < re; rr++ {
		for cc := cb; cc < ce; cc++ {
			A.Set(rr, cc, A.At(rr, cc)-tau*w[rr]*wTA[cc])
		}
	}
}

func swapColumns(A *mat.Dense, i, j int) {
	nr, _ := A.Dims()
	for rr := 0; rr < nr; rr++ {
		ai, aj := A.At(rr, i), A.At(rr, j)
		A.Set(rr, i, aj)
		A.Set(rr, j, ai)
	}
}

// The diagonal is always stored, as the last entry of each column
func upperTriangularCSC(A *mat.Dense) CSC {
	var (
		n    int
		rows [][]int
		vals [][]float64
	)
	n, _ = A.Dims()
	rows, vals = make([][]int, n), make([][]float64, n)
	for cc := 0; cc < n; cc++ {
		for rr := 0; rr < cc; rr++ {
			if val := A.At(rr, cc); val != 0 {
				rows[cc] = append(rows[cc], rr)
				vals[cc] = append(vals[cc], val)
			}
		}
		rows[cc] = append(rows[cc], cc)
		vals[cc] = append(vals[cc], A.At(cc, cc))
	}
	return NewCSCFromColumns(n, n, rows, vals, "R")
}

// ApplyQT overwrites x with Q^T x
func (qr *SparseQR) ApplyQT(x []float64) {
	qr.checkLength(x)
	for jj := 0; jj < qr.N; jj++ {
		if qr.Tau[jj] == 0 {
			continue
		}
		rows, vals := qr.H.Column(jj)
		wQTx := x[jj]
		for k, rr := range rows {
			wQTx += vals[k] * x[rr]
		}
		factor := qr.Tau[jj] * wQTx
		x[jj] -= factor
		for k, rr := range rows {
			x[rr] -= vals[k] * factor
		}
	}
}

// SolveUpperTriangular overwrites b with R^-1 b. A zero diagonal entry yields
// non finite values, rank deficiency is not detected here.
func (qr *SparseQR) SolveUpperTriangular(b []float64) {
	qr.checkLength(b)
	for ii := qr.N - 1; ii >= 0; ii-- {
		if math.Abs(b[ii]) <= SOLVETOL {
			b[ii] = 0
			continue
		}
		rows, vals := qr.R.Column(ii)
		last := len(rows) - 1
		b[ii] /= vals[last]
		for k := 0; k < last; k++ {
			b[rows[k]] -= vals[k] * b[ii]
		}
	}
}

// ApplyInverse computes dst = A^-1 x = P R^-1 Q^T x. dst and x may alias.
func (qr *SparseQR) ApplyInverse(x, dst []float64) {
	var (
		y = make([]float64, qr.N)
	)
	qr.checkLength(x)
	qr.checkLength(dst)
	copy(y, x)
	qr.ApplyQT(y)
	qr.SolveUpperTriangular(y)
	for ii := 0; ii < qr.N; ii++ {
		dst[qr.Perm[ii]] = y[ii]
	}
}

func (qr *SparseQR) checkLength(x []float64) {
	if len(x) != qr.N {
		panic(fmt.Errorf("vector length %d does not match factorization size %d", len(x), qr.N))
	}
}

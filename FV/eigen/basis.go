package eigen

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofvm/utils"
)

// Basis is the eigen system of the flux Jacobian in one direction. The inverse
// of the eigenvector matrix is applied through its pivoted QR factors.
type Basis struct {
	M       int
	Vectors utils.CSR
	Values  []float64
	QR      *utils.SparseQR
}

func NewBasis(vectors *mat.Dense, values []float64) (b *Basis) {
	var (
		nr, nc = vectors.Dims()
	)
	if nr != nc || len(values) != nr {
		panic(fmt.Errorf("eigen basis needs a square eigenvector matrix and matching eigenvalues, have %dx%d and %d",
			nr, nc, len(values)))
	}
	b = &Basis{
		M:       nr,
		Vectors: utils.NewCSRFromDense(vectors, "eigenvectors"),
		Values:  append([]float64(nil), values...),
		QR:      utils.NewSparseQR(vectors),
	}
	return
}

// ToCharacteristic writes R^-1 u into dst, dst may alias u
func (b *Basis) ToCharacteristic(u, dst []float64) {
	b.QR.ApplyInverse(u, dst)
}

// FromCharacteristic writes R w into dst, dst may alias w
func (b *Basis) FromCharacteristic(w, dst []float64) {
	var (
		tmp = make([]float64, b.M)
	)
	b.Vectors.MulVecTo(tmp, w)
	copy(dst, tmp)
}

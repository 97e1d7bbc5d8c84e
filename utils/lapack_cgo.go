//go:build netlib
// +build netlib

package utils

/*
#cgo LDFLAGS: -lopenblas -lm -lpthread
#include <cblas.h>
*/
import "C"

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Building with -tags netlib routes gonum's BLAS calls (Jacobian products,
// mat.Eigen) through OpenBLAS.
func init() {
	blas64.Use(netblas.Implementation{})
	logrus.WithField("component", "utils").Info("using netlib to accelerate BLAS")
}

package fluxes

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gofvm/FV/physics"
)

var log = logrus.WithField("component", "fluxes")

var (
	ErrNotScalar    = errors.New("flux is only defined for scalar conservation laws")
	ErrSizeMismatch = errors.New("state or normal has the wrong length")
	ErrNotPrepared  = errors.New("global wave speed was not computed for this generation")
)

// Parameters carries the per face data a numerical flux may need
type Parameters struct {
	Dt float64
	// Dx is the width of the inside cell along the face normal
	Dx   float64
	Time float64
}

// NumericalFlux approximates the flux through a face with unit outer normal,
// seen from the cell holding uL. Implementations are safe for concurrent use.
type NumericalFlux interface {
	Apply(uL, uR, normal []float64, p Parameters) (g []float64, err error)
}

// BoundaryFlux approximates the flux through a boundary face at x
type BoundaryFlux func(uIn, x, normal []float64, p Parameters) (g []float64, err error)

// LambdaFlux adapts a closure to NumericalFlux
type LambdaFlux func(uL, uR, normal []float64, p Parameters) ([]float64, error)

func (lf LambdaFlux) Apply(uL, uR, normal []float64, p Parameters) ([]float64, error) {
	return lf(uL, uR, normal, p)
}

type FluxType uint8

const (
	FLUX_Upwind FluxType = iota
	FLUX_LaxFriedrichs
	FLUX_LocalLaxFriedrichs
	FLUX_GlobalLaxFriedrichs
	FLUX_EngquistOsher
	FLUX_Vijayasundaram
)

var (
	FluxNames = map[string]FluxType{
		"upwind":         FLUX_Upwind,
		"lax":            FLUX_LaxFriedrichs,
		"laxfriedrichs":  FLUX_LaxFriedrichs,
		"local_lax":      FLUX_LocalLaxFriedrichs,
		"global_lax":     FLUX_GlobalLaxFriedrichs,
		"engquist_osher": FLUX_EngquistOsher,
		"godunov":        FLUX_EngquistOsher,
		"vijayasundaram": FLUX_Vijayasundaram,
	}
	FluxPrintNames = []string{"Upwind", "Lax Friedrichs", "Local Lax Friedrichs", "Global Lax Friedrichs",
		"Engquist Osher", "Vijayasundaram"}
)

func (ft FluxType) Print() (txt string) {
	if int(ft) >= len(FluxPrintNames) {
		return "Unknown"
	}
	txt = FluxPrintNames[ft]
	return
}

// ScalarOnly reports whether the flux needs a scalar conservation law
func (ft FluxType) ScalarOnly() bool {
	return ft == FLUX_Upwind || ft == FLUX_EngquistOsher
}

func NewFluxType(label string) (ft FluxType) {
	var (
		ok  bool
		err error
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if ft, ok = FluxNames[label]; !ok {
		err = fmt.Errorf("unable to use flux named %s", label)
		panic(err)
	}
	return
}

// NormalAxis is the axis the normal points along, the one of largest magnitude
func NormalAxis(normal []float64) (axis int) {
	var nMax float64
	for i, ni := range normal {
		if math.Abs(ni) > nMax {
			nMax, axis = math.Abs(ni), i
		}
	}
	return
}

func checkStates(f physics.Flux, uL, uR, normal []float64) error {
	if len(uL) != f.DimRange() || len(uR) != f.DimRange() || len(normal) != f.DimDomain() {
		return fmt.Errorf("flux (d=%d, m=%d) with len(uL) = %d, len(uR) = %d, len(normal) = %d: %w",
			f.DimDomain(), f.DimRange(), len(uL), len(uR), len(normal), ErrSizeMismatch)
	}
	return nil
}

func checkScalar(f physics.Flux) error {
	if f.DimRange() != 1 {
		return fmt.Errorf("flux has %d components: %w", f.DimRange(), ErrNotScalar)
	}
	return nil
}

func average(uL, uR []float64) (avg []float64) {
	avg = make([]float64, len(uL))
	for n := range avg {
		avg[n] = 0.5 * (uL[n] + uR[n])
	}
	return
}

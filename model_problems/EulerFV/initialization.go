package EulerFV

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gofvm/FV/physics"
	"github.com/notargets/gofvm/model_problems/Euler"
	"github.com/notargets/gofvm/model_problems/Scalar"
	"github.com/notargets/gofvm/sod_shock_tube"
)

type InitType uint8

const (
	INIT_Sod InitType = iota
	INIT_Kroner
	INIT_DensityWave
	INIT_Sine
	INIT_Step
	INIT_Freestream
)

var (
	InitNames = map[string]InitType{
		"sod":         INIT_Sod,
		"kroner":      INIT_Kroner,
		"densitywave": INIT_DensityWave,
		"sine":        INIT_Sine,
		"step":        INIT_Step,
		"freestream":  INIT_Freestream,
	}
	InitPrintNames = []string{"Sod Shock Tube", "Kroner Density Slab", "Density Wave", "Sine Wave",
		"Step", "Freestream"}
)

func (it InitType) Print() string { return InitPrintNames[it] }

func NewInitType(label string) (it InitType) {
	var ok bool
	if it, ok = InitNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		panic(fmt.Errorf("unable to use initial condition named %s", label))
	}
	return
}

// initialConditions returns the initial state and, when a closed form exists, the exact solution
func (s *Solver) initialConditions(it InitType) (initial, exact physics.BoundaryFunc, err error) {
	var (
		ip     = s.Params
		d      = ip.Dimensions()
		center = 0.5 * (ip.Min[0] + ip.Max[0])
		vel    = make([]float64, d)
	)
	copy(vel, ip.Velocity)
	switch fl := s.Physics.(type) {
	case *Euler.Euler:
		switch it {
		case INIT_Sod:
			var rs *sod_shock_tube.Riemann
			if rs, err = sod_shock_tube.NewRiemann(
				sod_shock_tube.State{Rho: 1, P: 1}, sod_shock_tube.State{Rho: 0.125, P: 0.1}, fl.Gamma, center); err != nil {
				return
			}
			exact = func(x []float64, t float64) []float64 {
				st := rs.Sample(x[0], t)
				v := make([]float64, d)
				v[0] = st.U
				return fl.ToConservative(st.Rho, v, st.P)
			}
			initial = func(x []float64, t float64) []float64 { return exact(x, 0) }
		case INIT_Kroner:
			initial = func(x []float64, t float64) []float64 {
				if x[0] >= -0.5 && x[0] <= 0 {
					return fl.ToConservative(4, make([]float64, d), 1.6)
				}
				return fl.ToConservative(1, make([]float64, d), 0.4)
			}
		case INIT_DensityWave:
			exact = func(x []float64, t float64) []float64 {
				var phase float64
				for i := range x {
					phase += x[i] - vel[i]*t
				}
				return fl.ToConservative(1+0.2*math.Sin(2*math.Pi*phase), vel, 1)
			}
			initial = func(x []float64, t float64) []float64 { return exact(x, 0) }
		case INIT_Freestream:
			state := s.boundaryState()
			exact = func(x []float64, t float64) []float64 { return append([]float64(nil), state...) }
			initial = exact
		default:
			err = fmt.Errorf("initial condition %s is not available for the euler equations", it.Print())
		}
	case *Scalar.Advection:
		translate := func(f func(x []float64) float64) physics.BoundaryFunc {
			return func(x []float64, t float64) []float64 {
				xt := make([]float64, d)
				for i := range x {
					xt[i] = x[i] - fl.A[i]*t
				}
				return []float64{f(xt)}
			}
		}
		switch it {
		case INIT_Sine:
			exact = translate(sine)
		case INIT_Step:
			exact = translate(func(x []float64) float64 { return step(x, center) })
		default:
			err = fmt.Errorf("initial condition %s is not available for advection", it.Print())
		}
		initial = exact
	case *Scalar.Burgers:
		switch it {
		case INIT_Sine:
			initial = func(x []float64, t float64) []float64 { return []float64{1 + 0.5*sine(x)} }
		case INIT_Step:
			// A right moving shock with speed A_0 / 2
			exact = func(x []float64, t float64) []float64 {
				return []float64{step([]float64{x[0] - 0.5*fl.A[0]*t}, center)}
			}
			initial = exact
		default:
			err = fmt.Errorf("initial condition %s is not available for burgers", it.Print())
		}
	default:
		err = fmt.Errorf("no initial conditions for %T", s.Physics)
	}
	return
}

func sine(x []float64) float64 {
	var phase float64
	for _, xi := range x {
		phase += xi
	}
	return math.Sin(2 * math.Pi * phase)
}

func step(x []float64, center float64) float64 {
	if x[0] < center {
		return 1
	}
	return 0
}

// boundaryState builds a constant state from the BoundaryState parameters:
// Rho, U, V, W and P for the euler equations and U for scalar laws
func (s *Solver) boundaryState() (u []float64) {
	var (
		bs = s.Params.BoundaryState
	)
	if e, ok := s.Physics.(*Euler.Euler); ok {
		var (
			vel = make([]float64, e.Dim)
			rho = 1.
			p   = 1.
		)
		if v, ok := bs["Rho"]; ok {
			rho = v
		}
		if v, ok := bs["P"]; ok {
			p = v
		}
		for i, key := range []string{"U", "V", "W"}[:e.Dim] {
			vel[i] = bs[key]
		}
		return e.ToConservative(rho, vel, p)
	}
	return []float64{bs["U"]}
}

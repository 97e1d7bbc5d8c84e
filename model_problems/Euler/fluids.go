package Euler

import (
	"fmt"
	"math"
	"strings"
)

type FlowFunction uint8

func (pm FlowFunction) String() string {
	names := []string{
		"Density",
		"XMomentum",
		"YMomentum",
		"ZMomentum",
		"Energy",
		"Mach",
		"Static Pressure",
		"Dynamic Pressure",
		"Sound Speed",
		"Velocity",
		"XVelocity",
		"YVelocity",
		"ZVelocity",
		"Enthalpy",
		"Entropy",
	}
	return names[int(pm)]
}

const (
	Density FlowFunction = iota
	XMomentum
	YMomentum
	ZMomentum
	Energy
	Mach            // 5
	StaticPressure  // 6
	DynamicPressure // 7
	SoundSpeed      // 8
	Velocity        // 9
	XVelocity       // 10
	YVelocity       // 11
	ZVelocity       // 12
	Enthalpy        // 13
	Entropy         // 14
)

var FlowFunctionNames = map[string]FlowFunction{
	"density":  Density,
	"rho":      Density,
	"energy":   Energy,
	"mach":     Mach,
	"pressure": StaticPressure,
	"velocity": Velocity,
	"u":        XVelocity,
	"enthalpy": Enthalpy,
	"entropy":  Entropy,
}

func NewFlowFunction(label string) (pf FlowFunction) {
	var ok bool
	if pf, ok = FlowFunctionNames[strings.ToLower(label)]; !ok {
		panic(fmt.Errorf("unable to use flow function named %s", label))
	}
	return
}

// GetFlowFunction evaluates a derived quantity of the state u
func (e *Euler) GetFlowFunction(u []float64, pf FlowFunction) (f float64) {
	var (
		rho   = u[0]
		oorho = 1. / rho
		q     float64
	)
	for i := 1; i <= e.Dim; i++ {
		q += u[i] * u[i]
	}
	q *= 0.5 * oorho
	component := func(i int) float64 {
		if i >= e.Dim {
			return 0
		}
		return u[1+i]
	}
	switch pf {
	case Density:
		f = rho
	case XMomentum, YMomentum, ZMomentum:
		f = component(int(pf - XMomentum))
	case Energy:
		f = u[e.Dim+1]
	case StaticPressure:
		f = e.Pressure(u)
	case DynamicPressure:
		f = q
	case SoundSpeed:
		f = e.SoundSpeed(u)
	case Velocity:
		f = math.Sqrt(2 * q * oorho)
	case XVelocity, YVelocity, ZVelocity:
		f = component(int(pf-XVelocity)) * oorho
	case Mach:
		f = math.Sqrt(2*q*oorho) / e.SoundSpeed(u)
	case Enthalpy:
		f = e.Enthalpy(u)
	case Entropy:
		f = math.Log(e.Pressure(u) / math.Pow(rho, e.Gamma))
	default:
		panic(fmt.Errorf("unknown flow function %d", pf))
	}
	return
}

package EulerFV

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofvm/utils"
)

// CalculateDT is CFL * min(h) / max|lambda| over all cells
func (s *Solver) CalculateDT() (dt float64) {
	var (
		sMax float64
	)
	for _, u := range s.Q {
		sMax = max(sMax, s.waves.MaxWaveSpeed(u))
	}
	if sMax == 0 {
		return s.Params.FinalTime - s.Time
	}
	return s.Params.CFL * s.hMin / sMax
}

// Step advances the solution by dt
func (s *Solver) Step(dt float64) (err error) {
	var (
		Q1 [][]float64
	)
	if Q1, err = s.forwardEuler(s.Q, s.Time, dt); err != nil {
		return
	}
	if s.Integration == TI_SSPRK2 {
		var Q2 [][]float64
		if Q2, err = s.forwardEuler(Q1, s.Time+dt, dt); err != nil {
			return
		}
		for k := range Q1 {
			floats.AddScaledTo(Q1[k], Q2[k], 1, s.Q[k])
			floats.Scale(0.5, Q1[k])
		}
	}
	if utils.IsNan(Q1) {
		return fmt.Errorf("step %d, time %g: %w", s.Steps, s.Time, ErrDiverged)
	}
	s.Q = Q1
	s.Time += dt
	s.Steps++
	return
}

func (s *Solver) forwardEuler(Q [][]float64, t, dt float64) (Qn [][]float64, err error) {
	var (
		R [][]float64
	)
	s.Operator.Reset()
	if R, err = s.Operator.Apply(Q, t, dt); err != nil {
		return
	}
	Qn = utils.CopyStates(Q)
	for k := range Qn {
		floats.AddScaled(Qn[k], -dt, R[k])
	}
	return
}

// Run advances to FinalTime or MaxIterations, plotting every plotSteps steps when graph is set
func (s *Solver) Run(graph bool, plotSteps int, graphDelay ...time.Duration) (err error) {
	var (
		ip        = s.Params
		start     = time.Now()
		mass0     = s.TotalMass()
		logEvery  = max(1, ip.MaxIterations/100)
		finalTime = ip.FinalTime
	)
	if plotSteps < 1 {
		plotSteps = 1
	}
	fmt.Printf("%s\n%s on %v cells, flux %T, %s\n", ip.Title, s.Init.Print(), ip.Cells, s.Flux,
		[]string{"forward euler", "SSP-RK2"}[s.Integration])
	for s.Time < finalTime && (ip.MaxIterations == 0 || s.Steps < ip.MaxIterations) {
		dt := min(s.CalculateDT(), finalTime-s.Time)
		if dt <= 0 {
			break
		}
		if err = s.Step(dt); err != nil {
			return
		}
		if s.Steps%logEvery == 0 {
			log.WithFields(logrus.Fields{"step": s.Steps, "time": s.Time, "dt": dt}).Info("progress")
		}
		if graph && s.Steps%plotSteps == 0 {
			s.Plot(graphDelay...)
		}
	}
	if graph {
		s.Plot(graphDelay...)
	}
	fmt.Printf("Steps = %d, Time = %8.5f, Elapsed = %v, Mass change = %8.3e\n",
		s.Steps, s.Time, time.Since(start), s.TotalMass()-mass0)
	if l1, e := s.L1Error(0); e == nil {
		fmt.Printf("L1 error of %s = %8.5e\n", s.ComponentName(0), l1)
	}
	log.WithField("memory", utils.GetMemUsage()).Debug("finished")
	return
}

// TotalMass integrates the first component over the mesh
func (s *Solver) TotalMass() (mass float64) {
	for k, u := range s.Q {
		mass += u[0] * s.Mesh.Volume(k)
	}
	return
}

// L1Error is the volume weighted L1 difference of one component to the exact solution at the current time
func (s *Solver) L1Error(component int) (l1 float64, err error) {
	if s.Exact == nil {
		return 0, ErrNoExactSolution
	}
	for k, u := range s.Q {
		exact := s.Exact(s.Mesh.Center(k), s.Time)
		l1 += math.Abs(u[component]-exact[component]) * s.Mesh.Volume(k)
	}
	return
}

// Component returns one component of every cell state
func (s *Solver) Component(component int) (f []float64) {
	f = make([]float64, len(s.Q))
	for k, u := range s.Q {
		f[k] = u[component]
	}
	return
}

func (s *Solver) ComponentName(component int) string {
	if s.Physics.DimRange() == 1 {
		return "U"
	}
	d := s.Physics.DimDomain()
	switch {
	case component == 0:
		return "Rho"
	case component == d+1:
		return "Ener"
	}
	return []string{"RhoU", "RhoV", "RhoW"}[component-1]
}

package sod_shock_tube

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/notargets/gofvm/utils"
)

var ErrVacuum = errors.New("initial states generate vacuum")

type State struct {
	Rho, U, P float64
}

// Riemann is the exact solution of the 1D Euler Riemann problem with the
// discontinuity at X0 when t = 0
type Riemann struct {
	Left, Right  State
	Gamma, X0    float64
	PStar, UStar float64
}

// NewSOD is the classic Sod shock tube on [0,1]
func NewSOD() (rs *Riemann) {
	var err error
	if rs, err = NewRiemann(State{1, 0, 1}, State{0.125, 0, 0.1}, 1.4, 0.5); err != nil {
		panic(err)
	}
	return
}

func NewRiemann(left, right State, gamma, x0 float64) (rs *Riemann, err error) {
	rs = &Riemann{
		Left:  left,
		Right: right,
		Gamma: gamma,
		X0:    x0,
	}
	var (
		cL, cR = rs.soundSpeed(left), rs.soundSpeed(right)
		du     = right.U - left.U
	)
	if 2*(cL+cR)/(gamma-1) <= du {
		err = fmt.Errorf("left %v, right %v: %w", left, right, ErrVacuum)
		return
	}
	pressureFunc := func(p float64) (f, df float64) {
		fL, dfL := rs.waveFunc(p, left)
		fR, dfR := rs.waveFunc(p, right)
		return fL + fR + du, dfL + dfR
	}
	rs.PStar = fzero(pressureFunc, math.Max(utils.NODETOL, 0.5*(left.P+right.P)))
	fL, _ := rs.waveFunc(rs.PStar, left)
	fR, _ := rs.waveFunc(rs.PStar, right)
	rs.UStar = 0.5*(left.U+right.U) + 0.5*(fR-fL)
	return
}

func (rs *Riemann) soundSpeed(s State) float64 { return math.Sqrt(rs.Gamma * s.P / s.Rho) }

// waveFunc is the velocity jump across the left or right wave as a function of the star pressure
func (rs *Riemann) waveFunc(p float64, s State) (f, df float64) {
	g := rs.Gamma
	if p > s.P {
		var (
			A = 2. / ((g + 1) * s.Rho)
			B = (g - 1) / (g + 1) * s.P
			q = math.Sqrt(A / (p + B))
		)
		f = (p - s.P) * q
		df = q * (1 - 0.5*(p-s.P)/(p+B))
		return
	}
	c := rs.soundSpeed(s)
	f = 2 * c / (g - 1) * (math.Pow(p/s.P, (g-1)/(2*g)) - 1)
	df = math.Pow(p/s.P, -(g+1)/(2*g)) / (s.Rho * c)
	return
}

func fzero(f func(p float64) (y, dy float64), start float64) float64 {
	var (
		tol = 1.e-12
		p   = start
	)
	for iter := 0; iter < 100; iter++ {
		y, dy := f(p)
		pNew := math.Max(utils.NODETOL, p-y/dy)
		change := math.Abs(pNew-p) / (0.5 * (pNew + p))
		p = pNew
		if change < tol {
			break
		}
	}
	return p
}

// Sample returns the state at position x and time t
func (rs *Riemann) Sample(x, t float64) State {
	if t <= 0 {
		if x < rs.X0 {
			return rs.Left
		}
		return rs.Right
	}
	var (
		g   = rs.Gamma
		g6  = (g - 1) / (g + 1)
		S   = (x - rs.X0) / t
		ps  = rs.PStar
		us  = rs.UStar
		exp = (g - 1) / (2 * g)
	)
	if S <= us {
		var (
			L  = rs.Left
			cL = rs.soundSpeed(L)
			pr = ps / L.P
		)
		if ps > L.P {
			if S <= L.U-cL*math.Sqrt((g+1)/(2*g)*pr+exp) {
				return L
			}
			return State{L.Rho * (pr + g6) / (g6*pr + 1), us, ps}
		}
		switch {
		case S <= L.U-cL:
			return L
		case S > us-cL*math.Pow(pr, exp):
			return State{L.Rho * math.Pow(pr, 1./g), us, ps}
		}
		c := 2. / (g + 1) * (cL + 0.5*(g-1)*(L.U-S))
		return State{
			Rho: L.Rho * math.Pow(c/cL, 2./(g-1)),
			U:   2. / (g + 1) * (cL + 0.5*(g-1)*L.U + S),
			P:   L.P * math.Pow(c/cL, 2*g/(g-1)),
		}
	}
	var (
		R  = rs.Right
		cR = rs.soundSpeed(R)
		pr = ps / R.P
	)
	if ps > R.P {
		if S >= R.U+cR*math.Sqrt((g+1)/(2*g)*pr+exp) {
			return R
		}
		return State{R.Rho * (pr + g6) / (g6*pr + 1), us, ps}
	}
	switch {
	case S >= R.U+cR:
		return R
	case S <= us+cR*math.Pow(pr, exp):
		return State{R.Rho * math.Pow(pr, 1./g), us, ps}
	}
	c := 2. / (g + 1) * (cR - 0.5*(g-1)*(R.U-S))
	return State{
		Rho: R.Rho * math.Pow(c/cR, 2./(g-1)),
		U:   2. / (g + 1) * (-cR + 0.5*(g-1)*R.U + S),
		P:   R.P * math.Pow(c/cR, 2*g/(g-1)),
	}
}

// Waves returns the edges of the left wave, the contact and the edges of the right wave at time t.
// A shock has both edges at the same location.
func (rs *Riemann) Waves(t float64) (x []float64) {
	var (
		g   = rs.Gamma
		exp = (g - 1) / (2 * g)
		L   = rs.Left
		R   = rs.Right
		cL  = rs.soundSpeed(L)
		cR  = rs.soundSpeed(R)
		sp  = make([]float64, 5)
	)
	if pr := rs.PStar / L.P; pr > 1 {
		sp[0] = L.U - cL*math.Sqrt((g+1)/(2*g)*pr+exp)
		sp[1] = sp[0]
	} else {
		sp[0], sp[1] = L.U-cL, rs.UStar-cL*math.Pow(pr, exp)
	}
	sp[2] = rs.UStar
	if pr := rs.PStar / R.P; pr > 1 {
		sp[3] = R.U + cR*math.Sqrt((g+1)/(2*g)*pr+exp)
		sp[4] = sp[3]
	} else {
		sp[3], sp[4] = rs.UStar+cR*math.Pow(pr, exp), R.U+cR
	}
	x = make([]float64, len(sp))
	for i, s := range sp {
		x[i] = rs.X0 + s*t
	}
	return
}

// Calc samples the solution on [xMin, xMax] at time t with points on both
// sides of every wave edge and through the rarefaction fans. E is the
// specific internal energy.
func (rs *Riemann) Calc(t, xMin, xMax float64) (X, Rho, P, U, E []float64) {
	var (
		tol   = 0.0001
		w     = rs.Waves(t)
		inner = 9
	)
	X = append(X, xMin)
	add := func(x float64) {
		if x > xMin && x < xMax {
			X = append(X, x)
		}
	}
	for i, x := range w {
		if i > 0 && x == w[i-1] {
			continue
		}
		add(x - tol)
		add(x + tol)
		if (i == 0 || i == 3) && w[i+1] > x {
			for j := 1; j <= inner; j++ {
				add(x + float64(j)*(w[i+1]-x)/float64(inner+1))
			}
		}
	}
	X = append(X, xMax)
	sort.Float64s(X)
	Rho = make([]float64, len(X))
	P = make([]float64, len(X))
	U = make([]float64, len(X))
	E = make([]float64, len(X))
	for i, x := range X {
		s := rs.Sample(x, t)
		Rho[i], P[i], U[i] = s.Rho, s.P, s.U
		E[i] = s.P / ((rs.Gamma - 1.) * s.Rho)
	}
	return
}

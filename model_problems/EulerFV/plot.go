package EulerFV

import (
	"fmt"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Profile implements plotter.XYer for cell centered values along the first axis
type Profile struct {
	X, Y []float64
}

func (p Profile) Len() int { return len(p.X) }

func (p Profile) XY(i int) (float64, float64) { return p.X[i], p.Y[i] }

// Profiles returns the first axis cell centers and each component of the cells
// on the line through the first cell, plus the exact solution when it exists
func (s *Solver) Profiles() (solution, exact []Profile) {
	var (
		N  = s.Mesh.N[0]
		m  = s.Physics.DimRange()
		xc = make([]float64, N)
	)
	cells := make([]int, N)
	for i := range cells {
		ijk := make([]int, s.Mesh.Dim())
		ijk[0] = i
		cells[i] = s.Mesh.CellIndex(ijk)
		xc[i] = s.Mesh.Center(cells[i])[0]
	}
	for c := 0; c < m; c++ {
		p := Profile{X: xc, Y: make([]float64, N)}
		for i, k := range cells {
			p.Y[i] = s.Q[k][c]
		}
		solution = append(solution, p)
	}
	if s.Exact == nil {
		return
	}
	for c := 0; c < m; c++ {
		p := Profile{X: xc, Y: make([]float64, N)}
		for i, k := range cells {
			p.Y[i] = s.Exact(s.Mesh.Center(k), s.Time)[c]
		}
		exact = append(exact, p)
	}
	return
}

// Plot draws the solution profiles in an interactive window
func (s *Solver) Plot(graphDelay ...time.Duration) {
	var (
		fmin, fmax      = float32(-0.1), float32(2.6)
		solution, exact = s.Profiles()
		xMin, xMax      = float32(s.Params.Min[0]), float32(s.Params.Max[0])
		colors          = []float32{-0.7, 0.0, 0.7, 0.35, -0.35}
	)
	s.plotOne.Do(func() {
		s.chart = chart2d.NewChart2D(1920, 1280, xMin, xMax, fmin, fmax)
		s.cmap = utils2.NewColorMap(-1, 1, 1)
		go s.chart.Plot()
	})
	for c, p := range solution {
		if err := s.chart.AddSeries(s.ComponentName(c), p.X, p.Y,
			chart2d.NoGlyph, chart2d.Solid, s.cmap.GetRGB(colors[c])); err != nil {
			panic("unable to add graph series")
		}
	}
	for c, p := range exact {
		if err := s.chart.AddSeries("Exact"+s.ComponentName(c), p.X, p.Y,
			chart2d.XGlyph, chart2d.NoLine, s.cmap.GetRGB(colors[c])); err != nil {
			panic("unable to add exact solution")
		}
	}
	if len(graphDelay) != 0 {
		time.Sleep(graphDelay[0])
	}
}

// SavePlot writes the profile of one component, and the exact solution when it exists, to an image file
func (s *Solver) SavePlot(path string, component int) (err error) {
	var (
		p               = plot.New()
		solution, exact = s.Profiles()
		name            = s.ComponentName(component)
	)
	p.Title.Text = fmt.Sprintf("%s, %s at t = %.4f", s.Params.Title, name, s.Time)
	p.X.Label.Text = "X"
	p.Y.Label.Text = name
	line, err := plotter.NewLine(solution[component])
	if err != nil {
		return
	}
	p.Add(line)
	p.Legend.Add(name, line)
	if exact != nil {
		var sc *plotter.Scatter
		if sc, err = plotter.NewScatter(exact[component]); err != nil {
			return
		}
		sc.GlyphStyle.Shape = draw.CrossGlyph{}
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(sc)
		p.Legend.Add("Exact "+name, sc)
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

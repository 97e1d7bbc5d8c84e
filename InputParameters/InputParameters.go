package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file. ghodss/yaml converts the
// document to JSON before decoding, so the keys come from the json tags.
type InputParametersFV struct {
	Title           string             `json:"Title"`
	Model           string             `json:"Model"` // euler, burgers or advection
	CFL             float64            `json:"CFL"`
	FinalTime       float64            `json:"FinalTime"`
	MaxIterations   int                `json:"MaxIterations"`
	TimeIntegration string             `json:"TimeIntegration"` // euler or rk2
	FluxType        string             `json:"FluxType"`
	Limiter         string             `json:"Limiter"`
	Order           int                `json:"Order"`
	FacePoints      int                `json:"FacePoints"`
	InitType        string             `json:"InitType"`
	Cells           []int              `json:"Cells"`
	Min             []float64          `json:"Min"`
	Max             []float64          `json:"Max"`
	Periodic        []bool             `json:"Periodic"`
	Gamma           float64            `json:"Gamma"`
	Velocity        []float64          `json:"Velocity"` // advection speed, burgers direction or the density wave velocity
	Lambda          []float64          `json:"Lambda"`
	Alpha           float64            `json:"Alpha"`
	UseLocal        bool               `json:"UseLocal"`
	BoundaryType    string             `json:"BoundaryType"` // extrapolate, dirichlet, wall or absorbing
	BoundaryState   map[string]float64 `json:"BoundaryState"`
	ParallelDegree  int                `json:"ParallelDegree"`
}

// NewInputParametersFV returns the defaults, a 1D Sod shock tube
func NewInputParametersFV() *InputParametersFV {
	return &InputParametersFV{
		Title:           "Sod Shock Tube",
		Model:           "euler",
		CFL:             0.5,
		FinalTime:       0.2,
		MaxIterations:   100000,
		TimeIntegration: "rk2",
		FluxType:        "laxfriedrichs",
		Limiter:         "minmod",
		Order:           1,
		InitType:        "sod",
		Cells:           []int{200},
		Min:             []float64{0},
		Max:             []float64{1},
		Periodic:        []bool{false},
		Gamma:           1.4,
		BoundaryType:    "extrapolate",
	}
}

func (ip *InputParametersFV) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParametersFV) Dimensions() int { return len(ip.Cells) }

// Validate checks the consistency of the per axis settings
func (ip *InputParametersFV) Validate() (err error) {
	d := ip.Dimensions()
	switch {
	case d < 1 || d > 3:
		err = fmt.Errorf("need 1 to 3 entries in Cells, have %d", d)
	case len(ip.Min) != d || len(ip.Max) != d:
		err = fmt.Errorf("Min and Max need %d entries, have %d and %d", d, len(ip.Min), len(ip.Max))
	case len(ip.Periodic) != 0 && len(ip.Periodic) != d:
		err = fmt.Errorf("Periodic needs %d entries, have %d", d, len(ip.Periodic))
	case ip.CFL <= 0:
		err = fmt.Errorf("CFL must be positive, have %g", ip.CFL)
	case ip.Order < 0 || ip.Order > 1:
		err = fmt.Errorf("reconstruction order must be 0 or 1, have %d", ip.Order)
	}
	return
}

// PeriodicAxes pads Periodic to the dimension
func (ip *InputParametersFV) PeriodicAxes() (periodic []bool) {
	periodic = make([]bool, ip.Dimensions())
	copy(periodic, ip.Periodic)
	return
}

func (ip *InputParametersFV) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Model\n", ip.Model)
	fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	fmt.Printf("[%s]\t\t\t= Time Integration\n", ip.TimeIntegration)
	fmt.Printf("[%s]\t\t\t= Flux Type\n", ip.FluxType)
	fmt.Printf("[%s]\t\t\t= Limiter\n", ip.Limiter)
	fmt.Printf("[%d]\t\t\t\t= Reconstruction Order\n", ip.Order)
	fmt.Printf("[%s]\t= InitType\n", ip.InitType)
	fmt.Printf("%v\t\t\t= Cells\n", ip.Cells)
	fmt.Printf("%v -> %v\t= Domain\n", ip.Min, ip.Max)
	fmt.Printf("%v\t\t\t= Periodic\n", ip.PeriodicAxes())
	fmt.Printf("[%s]\t\t= Boundary\n", strings.ToLower(ip.BoundaryType))
	keys := make([]string, len(ip.BoundaryState))
	i := 0
	for k := range ip.BoundaryState {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BoundaryState[%s] = %v\n", key, ip.BoundaryState[key])
	}
}

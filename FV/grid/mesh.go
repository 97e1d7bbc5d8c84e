package grid

// Face is one side of a cell. Faces are numbered 2*axis+side, side 0 facing the
// negative axis direction and side 1 the positive direction.
type Face struct {
	Index    int
	Inside   int
	Outside  int // -1 on a true boundary
	Boundary bool
	Normal   []float64 // unit outer normal, seen from Inside
	Measure  float64
	Center   []float64 // global coordinates, on the Inside cell boundary
}

func (f Face) Axis() int { return f.Index / 2 }

func (f Face) Positive() bool { return f.Index%2 == 1 }

// Mesh is what the finite volume kernel needs from a grid
type Mesh interface {
	Dim() int
	NumCells() int
	Volume(k int) float64
	Center(k int) []float64
	// Width is the cell extent along an axis
	Width(k, axis int) float64
	// Faces are returned in index order, 2*Dim() of them
	Faces(k int) []Face
}

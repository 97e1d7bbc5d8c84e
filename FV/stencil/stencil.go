package stencil

import (
	"errors"
	"fmt"
)

var (
	ErrDirectionOrder = errors.New("stencil walk turned into a lower axis")
	ErrRevisit        = errors.New("stencil entry visited twice")
	ErrStateSize      = errors.New("state vector has the wrong length")
)

type EntryState uint8

const (
	Unfilled EntryState = iota
	Interior
	BoundaryReplicated
)

func (es EntryState) String() string {
	return [...]string{"Unfilled", "Interior", "BoundaryReplicated"}[es]
}

// Stencil holds (2*Radius+1)^Dim states around a center cell. Entries are
// stored with axis 0 varying slowest.
type Stencil struct {
	Dim, Radius, Width int
	M                  int
	Values             [][]float64
	States             []EntryState
}

func NewStencil(dim, radius, m int) (s *Stencil) {
	var (
		width = 2*radius + 1
		size  = 1
	)
	for axis := 0; axis < dim; axis++ {
		size *= width
	}
	s = &Stencil{
		Dim:    dim,
		Radius: radius,
		Width:  width,
		M:      m,
		Values: make([][]float64, size),
		States: make([]EntryState, size),
	}
	for i := range s.Values {
		s.Values[i] = make([]float64, m)
	}
	return
}

func (s *Stencil) Len() int { return len(s.Values) }

func (s *Stencil) Index(offsets []int) (idx int) {
	for axis := 0; axis < s.Dim; axis++ {
		idx = idx*s.Width + offsets[axis] + s.Radius
	}
	return
}

func (s *Stencil) Offsets(idx int) (offsets []int) {
	offsets = make([]int, s.Dim)
	for axis := s.Dim - 1; axis >= 0; axis-- {
		offsets[axis] = idx%s.Width - s.Radius
		idx /= s.Width
	}
	return
}

func (s *Stencil) At(offsets ...int) []float64 { return s.Values[s.Index(offsets)] }

func (s *Stencil) StateAt(offsets ...int) EntryState { return s.States[s.Index(offsets)] }

func (s *Stencil) Center() []float64 { return s.Values[len(s.Values)/2] }

func (s *Stencil) set(offsets []int, u []float64, state EntryState) {
	idx := s.Index(offsets)
	copy(s.Values[idx], u)
	s.States[idx] = state
}

// Filled reports whether no entry is left Unfilled
func (s *Stencil) Filled() bool {
	for _, st := range s.States {
		if st == Unfilled {
			return false
		}
	}
	return true
}

func (s *Stencil) String() string {
	return fmt.Sprintf("Stencil{Dim: %d, Radius: %d, Values: %v, States: %v}", s.Dim, s.Radius, s.Values, s.States)
}

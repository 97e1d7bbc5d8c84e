package stencil

import (
	"fmt"

	"github.com/notargets/gofvm/FV/grid"
)

// BoundaryValues returns the outside state at a point on a true boundary face
type BoundaryValues func(x []float64) []float64

/*
Iterator gathers the states around a cell into a Stencil.

	The walk starts at the center cell with direction -1. A walker moving along
	face direction dir (axis dir/2) continues straight, or hands over to walkers
	on strictly higher axes, so every offset combination is reached along exactly
	one path. Boundary faces replicate the boundary value up to the stencil edge.
	Cells touching more than one boundary trigger the corner fallback: entries
	that no walk reached take the value replicated next to the first of those
	boundary faces.
*/
type Iterator struct {
	Mesh   grid.Mesh
	Radius int
}

func NewIterator(mesh grid.Mesh, radius int) *Iterator {
	return &Iterator{Mesh: mesh, Radius: radius}
}

type walker struct {
	cell      int
	offsets   []int
	direction int
	leave     bool
	corner    bool
	cornerDir int
}

func (it *Iterator) Gather(k int, source [][]float64, boundary BoundaryValues) (s *Stencil, err error) {
	var (
		d             = it.Mesh.Dim()
		m             = len(source[k])
		stack         = []*walker{{cell: k, offsets: make([]int, d), direction: -1}}
		cornerOffsets []int
	)
	s = NewStencil(d, it.Radius, m)
	for len(stack) != 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.leave {
			if w.corner && cornerOffsets == nil {
				cornerOffsets = walk(w.cornerDir, w.offsets)
			}
			continue
		}
		if len(source[w.cell]) != m {
			return nil, fmt.Errorf("cell %d has %d components, want %d: %w", w.cell, len(source[w.cell]), m, ErrStateSize)
		}
		if s.States[s.Index(w.offsets)] == Interior {
			return nil, fmt.Errorf("offsets %v from cell %d: %w", w.offsets, k, ErrRevisit)
		}
		s.set(w.offsets, source[w.cell], Interior)
		var (
			boundaryDirs []int
			children     []*walker
		)
		for _, face := range it.Mesh.Faces(w.cell) {
			newDir := face.Index
			if it.endOfStencil(newDir, w.offsets) {
				continue
			}
			if face.Boundary {
				boundaryDirs = append(boundaryDirs, newDir)
				ub := boundary(face.Center)
				if len(ub) != m {
					return nil, fmt.Errorf("boundary value at %v has %d components, want %d: %w",
						face.Center, len(ub), m, ErrStateSize)
				}
				for offsets := walk(newDir, w.offsets); ; offsets = walk(newDir, offsets) {
					s.set(offsets, ub, BoundaryReplicated)
					if it.endOfStencil(newDir, offsets) {
						break
					}
				}
			} else if it.directionAllowed(w.direction, newDir) {
				if w.direction != -1 && newDir/2 < w.direction/2 {
					return nil, fmt.Errorf("direction %d after %d: %w", newDir, w.direction, ErrDirectionOrder)
				}
				children = append(children, &walker{
					cell:      face.Outside,
					offsets:   walk(newDir, w.offsets),
					direction: newDir,
				})
			}
		}
		// Corners are resolved in post order, after the subtree of this cell
		stack = append(stack, &walker{
			offsets:   w.offsets,
			leave:     true,
			corner:    len(boundaryDirs) > 1,
			cornerDir: firstOr(boundaryDirs, -1),
		})
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	if cornerOffsets != nil {
		ub := append([]float64(nil), s.At(cornerOffsets...)...)
		for idx, st := range s.States {
			if st == Unfilled {
				copy(s.Values[idx], ub)
				s.States[idx] = BoundaryReplicated
			}
		}
	}
	return
}

func (it *Iterator) directionAllowed(dir, newDir int) bool {
	return (it.Radius > 0 && dir == -1) || newDir == dir || (dir != -1 && newDir/2 > dir/2)
}

func (it *Iterator) endOfStencil(dir int, offsets []int) bool {
	if it.Radius == 0 {
		return true
	}
	if dir == -1 {
		return false
	}
	off := offsets[dir/2]
	if off < 0 {
		off = -off
	}
	return off >= it.Radius
}

func walk(dir int, offsets []int) (next []int) {
	next = append([]int(nil), offsets...)
	if dir%2 == 1 {
		next[dir/2]++
	} else {
		next[dir/2]--
	}
	return
}

func firstOr(a []int, def int) int {
	if len(a) == 0 {
		return def
	}
	return a[0]
}

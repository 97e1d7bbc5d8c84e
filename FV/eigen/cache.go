package eigen

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gofvm/FV/physics"
)

var log = logrus.WithField("component", "eigen")

/*
Cache keeps the eigen bases of every (cell, direction) pair for one owner.

	A slot is recomputed when it is empty or was computed in an older
	generation. Reset moves to the next generation and must be called once per
	outer time step. When Linear is set the Jacobian must not depend on the
	state, and a slot once filled is kept for the lifetime of the cache.

	Distinct cells may be requested from distinct goroutines concurrently. The
	same cell must not be requested concurrently.
*/
type Cache struct {
	Solver       Solver
	Dim          int
	Linear       bool
	generation   atomic.Uint64
	computations atomic.Int64
	slots        []slot
}

type slot struct {
	valid      bool
	generation uint64
	basis      *Basis
}

func NewCache(solver Solver, numCells, dim int, linear bool) (c *Cache) {
	c = &Cache{
		Solver: solver,
		Dim:    dim,
		Linear: linear,
		slots:  make([]slot, numCells*dim),
	}
	return
}

// Reset invalidates every non linear slot
func (c *Cache) Reset() {
	gen := c.generation.Add(1)
	log.WithField("generation", gen).Debug("eigen cache invalidated")
}

func (c *Cache) Invalidate() { c.Reset() }

func (c *Cache) Generation() uint64 { return c.generation.Load() }

// Computations counts the eigen decompositions performed so far
func (c *Cache) Computations() int64 { return c.computations.Load() }

// Get returns the bases for all directions of cell k, u is the cell state
func (c *Cache) Get(k int, u []float64) (bases []*Basis, err error) {
	bases = make([]*Basis, c.Dim)
	for dir := 0; dir < c.Dim; dir++ {
		if bases[dir], err = c.GetDirection(k, dir, u); err != nil {
			return nil, err
		}
	}
	return
}

func (c *Cache) GetDirection(k, dir int, u []float64) (b *Basis, err error) {
	if k < 0 || k*c.Dim+dir >= len(c.slots) || dir < 0 || dir >= c.Dim {
		err = fmt.Errorf("cache slot (cell %d, direction %d) out of range for %d cells in %d dimensions",
			k, dir, len(c.slots)/c.Dim, c.Dim)
		return
	}
	var (
		s   = &c.slots[k*c.Dim+dir]
		gen = c.generation.Load()
	)
	if s.valid && (c.Linear || s.generation == gen) {
		return s.basis, nil
	}
	vectors, values, err := c.Solver.Decompose(u, physics.Unit(c.Dim, dir))
	if err != nil {
		return nil, fmt.Errorf("cell %d, direction %d: %w", k, dir, err)
	}
	s.basis = NewBasis(vectors, values)
	s.generation = gen
	s.valid = true
	c.computations.Add(1)
	return s.basis, nil
}

package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrInvalidWeights is returned for empty, negative or all-zero spawn tables.
var ErrInvalidWeights = errors.New("engine: invalid spawn weights")

// Weighted pairs a value with its draw probability.
type Weighted[T any] struct {
	Weight float64
	Value  T
}

// WeightedTable is a categorical distribution over a fixed list of values.
// Each value owns the half-open interval [low, high) of [0, 1), so every draw
// lands in exactly one category. Weights are normalised to sum to one.
type WeightedTable[T any] struct {
	values []T
	upper  []float64
}

// NewWeightedTable builds a table from entries in order.
func NewWeightedTable[T any](entries ...Weighted[T]) (*WeightedTable[T], error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidWeights)
	}

	var total float64
	for i, e := range entries {
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: entry %d has weight %v", ErrInvalidWeights, i, e.Weight)
		}
		total += e.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidWeights)
	}

	t := &WeightedTable[T]{
		values: make([]T, len(entries)),
		upper:  make([]float64, len(entries)),
	}
	var acc float64
	for i, e := range entries {
		acc += e.Weight / total
		t.values[i] = e.Value
		t.upper[i] = acc
	}
	t.upper[len(t.upper)-1] = 1
	return t, nil
}

// MustWeightedTable is NewWeightedTable for package-level tables.
func MustWeightedTable[T any](entries ...Weighted[T]) *WeightedTable[T] {
	t, err := NewWeightedTable(entries...)
	if err != nil {
		panic(err)
	}
	return t
}

// Pick maps r in [0, 1) to a value. Out-of-range r is clamped.
func (t *WeightedTable[T]) Pick(r float64) T {
	if r < 0 {
		r = 0
	}
	i := sort.Search(len(t.upper), func(i int) bool { return r < t.upper[i] })
	if i == len(t.upper) {
		i = len(t.upper) - 1
	}
	return t.values[i]
}

// Draw picks with a fresh uniform sample. Draws are independent.
func (t *WeightedTable[T]) Draw(rng *rand.Rand) T {
	return t.Pick(rng.Float64())
}

// Len returns the number of categories.
func (t *WeightedTable[T]) Len() int { return len(t.values) }

// Spawner tracks spawn cadence: it fires when more than the interval has
// passed since the last firing.
type Spawner struct {
	last float64
}

// Reset makes ts the last firing time.
func (s *Spawner) Reset(ts float64) { s.last = ts }

// Last returns the timestamp of the last firing.
func (s *Spawner) Last() float64 { return s.last }

// Due reports whether tsMs-last > intervalMs and, if so, records tsMs.
func (s *Spawner) Due(tsMs, intervalMs float64) bool {
	if tsMs-s.last > intervalMs {
		s.last = tsMs
		return true
	}
	return false
}

// MaybeSpawn produces at most one entity per call using build.
// build may return nil to skip the slot.
func (s *Spawner) MaybeSpawn(tsMs, intervalMs float64, build func() *Entity) *Entity {
	if !s.Due(tsMs, intervalMs) {
		return nil
	}
	return build()
}

// spawnRule is a registered spawner run by the session each frame.
type spawnRule struct {
	spawner  Spawner
	store    *Store
	interval func() float64
	build    func(w *World) *Entity
}

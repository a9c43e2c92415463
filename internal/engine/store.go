package engine

// StepMode selects how Advance interprets velocity.
type StepMode int

const (
	// PerSecond moves entities by Vel*dt.
	PerSecond StepMode = iota
	// PerFrame moves entities by Vel once per Advance, whatever dt is.
	PerFrame
)

// DefaultPruneMargin is how far past the field an entity may travel before
// it is considered out of bounds.
const DefaultPruneMargin = 50

// Store holds one category of entities in insertion order. Insertion order
// is render order (back to front).
type Store struct {
	name     string
	mode     StepMode
	collides bool
	exit     func(*Entity) bool
	items    []*Entity
	nextID   uint64
}

// NewStore creates an empty store.
func NewStore(name string, mode StepMode) *Store {
	return &Store{name: name, mode: mode}
}

// Name returns the store name.
func (s *Store) Name() string { return s.name }

// Collides reports whether the session tests this store against the player.
func (s *Store) Collides() bool { return s.collides }

// SetExit overrides the out-of-bounds predicate used by the session prune.
func (s *Store) SetExit(pred func(*Entity) bool) { s.exit = pred }

// Add appends e, assigns it an ID and returns it.
func (s *Store) Add(e *Entity) *Entity {
	s.nextID++
	e.ID = s.nextID
	s.items = append(s.items, e)
	return e
}

// Len returns the number of entities held.
func (s *Store) Len() int { return len(s.items) }

// All returns the live slice. Callers must not append to it.
func (s *Store) All() []*Entity { return s.items }

// Each calls fn for every entity that has not been consumed.
func (s *Store) Each(fn func(*Entity)) {
	for _, e := range s.items {
		if !e.Gone {
			fn(e)
		}
	}
}

// Advance moves every entity according to the store's step mode.
func (s *Store) Advance(dt float64) {
	for _, e := range s.items {
		switch s.mode {
		case PerFrame:
			e.Pos = e.Pos.Add(e.Vel)
		default:
			e.Pos = e.Pos.Add(e.Vel.Mul(dt))
		}
	}
}

// Prune removes every entity matching pred, keeping the order of the rest.
// onRemove runs once per removed entity, after it has left the store, so a
// callback may safely add new entities.
func (s *Store) Prune(pred func(*Entity) bool, onRemove func(*Entity)) int {
	var removed []*Entity
	kept := s.items[:0]
	for _, e := range s.items {
		if pred(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept

	if onRemove != nil {
		for _, e := range removed {
			onRemove(e)
		}
	}
	return len(removed)
}

// Clear drops everything without callbacks.
func (s *Store) Clear() {
	s.items = nil
}

// Snapshot copies the entities in order.
func (s *Store) Snapshot() []Entity {
	out := make([]Entity, 0, len(s.items))
	for _, e := range s.items {
		if !e.Gone {
			out = append(out, *e)
		}
	}
	return out
}

// OutOfBounds returns a predicate true for entities entirely more than
// margin units outside a w*h field.
func OutOfBounds(w, h, margin float64) func(*Entity) bool {
	return func(e *Entity) bool {
		return e.Pos.Y() > h+margin ||
			e.Pos.Y()+e.Size.Y() < -margin ||
			e.Pos.X() > w+margin ||
			e.Pos.X()+e.Size.X() < -margin
	}
}

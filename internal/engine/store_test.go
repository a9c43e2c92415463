package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestStoreAdvance(t *testing.T) {
	perSec := NewStore("s", PerSecond)
	a := perSec.Add(&Entity{Vel: mgl64.Vec2{100, -50}})
	perSec.Advance(0.5)
	if a.Pos != (mgl64.Vec2{50, -25}) {
		t.Errorf("per-second advance: Pos = %v", a.Pos)
	}

	perFrame := NewStore("f", PerFrame)
	b := perFrame.Add(&Entity{Vel: mgl64.Vec2{0, 2}})
	perFrame.Advance(0.5)
	perFrame.Advance(0.016)
	if b.Pos != (mgl64.Vec2{0, 4}) {
		t.Errorf("per-frame advance: Pos = %v", b.Pos)
	}
}

func TestStorePruneScenario(t *testing.T) {
	s := NewStore("obstacles", PerFrame)
	edge := s.Add(&Entity{Tag: "edge", Pos: mgl64.Vec2{100, 450}, Size: mgl64.Vec2{35, 35}})
	out := s.Add(&Entity{Tag: "out", Pos: mgl64.Vec2{100, 451}, Size: mgl64.Vec2{35, 35}})

	bonus := 0
	exited := map[uint64]int{}
	pred := OutOfBounds(400, 400, 50)
	onRemove := func(e *Entity) {
		exited[e.ID]++
		bonus += 10
	}

	for i := 0; i < 3; i++ {
		s.Prune(pred, onRemove)
	}

	if exited[out.ID] != 1 {
		t.Errorf("entity at y=451 exit callbacks = %d, expected 1", exited[out.ID])
	}
	if exited[edge.ID] != 0 {
		t.Error("entity at y=450 must not be pruned")
	}
	if bonus != 10 {
		t.Errorf("bonus = %d, expected 10", bonus)
	}
	if s.Len() != 1 || s.All()[0] != edge {
		t.Error("store should keep only the entity at the margin")
	}
}

func TestStorePrunePreservesOrder(t *testing.T) {
	s := NewStore("items", PerSecond)
	for i := 0; i < 6; i++ {
		s.Add(&Entity{Lane: i, Gone: i%2 == 1})
	}

	s.Prune(func(e *Entity) bool { return e.Gone }, nil)

	want := []int{0, 2, 4}
	if s.Len() != len(want) {
		t.Fatalf("Len() = %d, expected %d", s.Len(), len(want))
	}
	for i, e := range s.All() {
		if e.Lane != want[i] {
			t.Errorf("position %d holds lane %d, expected %d", i, e.Lane, want[i])
		}
	}
}

func TestStorePruneCallbackMayAdd(t *testing.T) {
	s := NewStore("split", PerSecond)
	s.Add(&Entity{Tag: "parent", Gone: true})

	s.Prune(func(e *Entity) bool { return e.Gone }, func(e *Entity) {
		s.Add(&Entity{Tag: "child"})
	})

	if s.Len() != 1 || s.All()[0].Tag != "child" {
		t.Errorf("callback addition lost: %+v", s.Snapshot())
	}
}

func TestOutOfBoundsAllSides(t *testing.T) {
	pred := OutOfBounds(400, 400, 50)
	size := mgl64.Vec2{20, 20}

	tests := []struct {
		name     string
		pos      mgl64.Vec2
		expected bool
	}{
		{"inside", mgl64.Vec2{100, 100}, false},
		{"below", mgl64.Vec2{100, 451}, true},
		{"above", mgl64.Vec2{100, -71}, true},
		{"above within margin", mgl64.Vec2{100, -70}, false},
		{"left", mgl64.Vec2{-71, 100}, true},
		{"right", mgl64.Vec2{451, 100}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pred(&Entity{Pos: tc.pos, Size: size}); got != tc.expected {
				t.Errorf("OutOfBounds(%v) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}

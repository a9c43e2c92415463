package engine

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEffectQueueLifetime(t *testing.T) {
	var q EffectQueue
	q.Push(Effect{Life: 1})
	q.Push(Effect{Life: 3, Vel: mgl64.Vec2{0, -2}})
	q.Push(Effect{Life: 0})

	if q.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2 (zero-life effect dropped)", q.Len())
	}

	q.Advance()
	if q.Len() != 1 {
		t.Fatalf("after 1 frame Len() = %d, expected 1", q.Len())
	}
	if got := q.Snapshot()[0]; got.Life != 2 || got.Pos.Y() != -2 {
		t.Errorf("effect after 1 frame = %+v", got)
	}

	q.Advance()
	q.Advance()
	if q.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", q.Len())
	}
}

func TestEffectHelpers(t *testing.T) {
	var q EffectQueue
	q.Burst(rand.New(rand.NewSource(1)), 10, 10, 8, 30, 0)
	q.FloatText(10, 10, "+100", 0)
	q.Explosion(10, 10, 20)

	if q.Len() != 10 {
		t.Fatalf("Len() = %d, expected 10", q.Len())
	}
	for i := 0; i < 40; i++ {
		q.Advance()
	}
	if q.Len() != 0 {
		t.Errorf("all effects should expire within 40 frames, %d left", q.Len())
	}
}

package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"apart horizontally", Box{0, 0, 10, 10}, Box{15, 0, 10, 10}, false},
		{"apart vertically", Box{0, 0, 10, 10}, Box{0, 15, 10, 10}, false},
		{"touching edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"contained", Box{0, 0, 20, 20}, Box{5, 5, 5, 5}, true},
		{"fractional overlap", Box{0, 0, 10, 10}, Box{9.5, 9.5, 10, 10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxShrink(t *testing.T) {
	b := Box{X: 10, Y: 20, W: 40, H: 30}.Shrink(5)
	if b.X != 15 || b.Y != 25 || b.W != 30 || b.H != 20 {
		t.Errorf("Shrink(5) = %+v", b)
	}

	cx, cy := b.Center()
	if cx != 30 || cy != 35 {
		t.Errorf("Shrink moved the center to (%v, %v)", cx, cy)
	}

	tiny := Box{X: 0, Y: 0, W: 4, H: 4}.Shrink(10)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("over-shrunk box should collapse, got %+v", tiny)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := Clamp(-0.5, 0.0, 1.0); got != 0 {
		t.Errorf("Clamp float = %v, expected 0", got)
	}
}

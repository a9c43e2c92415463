package core

import "testing"

func TestActionDirection(t *testing.T) {
	tests := []struct {
		action Action
		dir    Direction
		ok     bool
	}{
		{ActionLeft, DirLeft, true},
		{ActionRight, DirRight, true},
		{ActionUp, DirUp, true},
		{ActionDown, DirDown, true},
		{ActionFire, DirNone, false},
		{ActionPause, DirNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			dir, ok := tc.action.Direction()
			if dir != tc.dir || ok != tc.ok {
				t.Errorf("Direction() = (%v, %v), expected (%v, %v)", dir, ok, tc.dir, tc.ok)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range []Direction{DirLeft, DirRight, DirUp, DirDown} {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = (%v, %v)", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("unknown direction should not parse")
	}
}

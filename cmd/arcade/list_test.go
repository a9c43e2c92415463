package main

import (
	"testing"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/registry"
)

func TestEveryGameRegistered(t *testing.T) {
	want := []string{"birdstrike", "defense", "dino", "flyer", "fruitcatch", "mathquiz", "maze", "saber"}
	games := registry.List()
	if len(games) != len(want) {
		t.Fatalf("registered %d games, want %d", len(games), len(want))
	}
	for i, g := range games {
		if g.ID != want[i] {
			t.Errorf("games[%d] = %s, want %s", i, g.ID, want[i])
		}
	}
}

func TestListColumns(t *testing.T) {
	tests := []struct {
		id    string
		input string
		mode  string
	}{
		{"mathquiz", "typed answers", "timed 60s"},
		{"fruitcatch", "keys+mouse", "timed 60s"},
		{"birdstrike", "keys+mouse", "until game over"},
		{"saber", "keys", "until game over"},
	}
	for _, tt := range tests {
		rules, err := registry.Create(tt.id, core.DefaultConfig())
		if err != nil {
			t.Fatal(err)
		}
		if got := inputStyle(rules); got != tt.input {
			t.Errorf("%s input = %q, want %q", tt.id, got, tt.input)
		}
		if got := playMode(rules); got != tt.mode {
			t.Errorf("%s mode = %q, want %q", tt.id, got, tt.mode)
		}
	}
}

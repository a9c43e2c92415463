package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	check := func(t *testing.T, game string, got, want any) {
		t.Helper()
		data, err := Embedded(game)
		if err != nil {
			t.Fatalf("Embedded(%q): %v", game, err)
		}
		if err := yaml.Unmarshal(data, got); err != nil {
			t.Fatalf("unmarshal %s: %v", game, err)
		}
		if !reflect.DeepEqual(reflect.ValueOf(got).Elem().Interface(), want) {
			t.Errorf("%s.yaml drifted from the code defaults:\n got %+v\nwant %+v", game, reflect.ValueOf(got).Elem().Interface(), want)
		}
	}

	check(t, "birdstrike", &BirdStrikeConfig{}, DefaultBirdStrikeConfig())
	check(t, "fruitcatch", &FruitCatchConfig{}, DefaultFruitCatchConfig())
	check(t, "dino", &DinoConfig{}, DefaultDinoConfig())
	check(t, "defense", &DefenseConfig{}, DefaultDefenseConfig())
	check(t, "flyer", &FlyerConfig{}, DefaultFlyerConfig())
	check(t, "saber", &SaberConfig{}, DefaultSaberConfig())
	check(t, "maze", &MazeConfig{}, DefaultMazeConfig())
	check(t, "mathquiz", &MathQuizConfig{}, DefaultMathQuizConfig())
}

func TestDefaultsValidate(t *testing.T) {
	for name, v := range map[string]interface{ Validate() error }{
		"birdstrike": DefaultBirdStrikeConfig(),
		"fruitcatch": DefaultFruitCatchConfig(),
		"dino":       DefaultDinoConfig(),
		"defense":    DefaultDefenseConfig(),
		"flyer":      DefaultFlyerConfig(),
		"saber":      DefaultSaberConfig(),
		"maze":       DefaultMazeConfig(),
		"mathquiz":   DefaultMathQuizConfig(),
	} {
		if err := v.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestLoadCustomPathOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bird.yaml")
	if err := os.WriteFile(path, []byte("hit_penalty: 500\nlanes: [100, 300]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBirdStrike(path)
	if err != nil {
		t.Fatalf("LoadBirdStrike: %v", err)
	}
	if cfg.HitPenalty != 500 {
		t.Errorf("HitPenalty = %v, want 500", cfg.HitPenalty)
	}
	if !reflect.DeepEqual(cfg.Lanes, []float64{100, 300}) {
		t.Errorf("Lanes = %v", cfg.Lanes)
	}
	def := DefaultBirdStrikeConfig()
	if cfg.DodgeBonus != def.DodgeBonus || len(cfg.Spawns) != len(def.Spawns) {
		t.Errorf("untouched fields lost their defaults: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDino(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path: want error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [not, a, box\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDino(bad); err == nil {
		t.Error("unparsable custom path: want error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("tier: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadMathQuiz(invalid)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("tier 7: err = %v, want ErrInvalid", err)
	}
}

func TestLoadWithoutFilesUsesEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadSaber("")
	if err != nil {
		t.Fatalf("LoadSaber: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSaberConfig()) {
		t.Errorf("LoadSaber() = %+v", cfg)
	}
}

func TestLoadPrefersLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "maze.yaml"), []byte("speed: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMaze("")
	if err != nil {
		t.Fatalf("LoadMaze: %v", err)
	}
	if cfg.Speed != 9 {
		t.Errorf("Speed = %v, want 9", cfg.Speed)
	}
}

func TestValidateRejects(t *testing.T) {
	bird := DefaultBirdStrikeConfig()
	bird.Lanes = nil

	fruit := DefaultFruitCatchConfig()
	fruit.Spawns[0].Weight = -1

	dino := DefaultDinoConfig()
	dino.SpawnMaxMs = 10

	flyer := DefaultFlyerConfig()
	flyer.GroundY = flyer.CeilingY

	saber := DefaultSaberConfig()
	saber.Items[1].SpeedMax = 0

	maze := DefaultMazeConfig()
	maze.Items[0].W = 0

	defense := DefaultDefenseConfig()
	defense.BaseHP = 0

	tests := []struct {
		name string
		cfg  interface{ Validate() error }
	}{
		{"no lanes", bird},
		{"negative weight", fruit},
		{"spawn window inverted", dino},
		{"flyer band empty", flyer},
		{"speed range inverted", saber},
		{"sizeless entry", maze},
		{"no base hp", defense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDump(t *testing.T) {
	data, err := Dump(DefaultMathQuizConfig())
	if err != nil {
		t.Fatal(err)
	}
	var back MathQuizConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != DefaultMathQuizConfig() {
		t.Errorf("Dump lost fields: %s", data)
	}
}

func TestLoadGame(t *testing.T) {
	for _, game := range []string{"birdstrike", "fruitcatch", "dino", "defense", "flyer", "saber", "maze", "mathquiz"} {
		cfg, err := LoadGame(game, "")
		if err != nil {
			t.Errorf("%s: %v", game, err)
			continue
		}
		if _, err := Dump(cfg); err != nil {
			t.Errorf("%s: %v", game, err)
		}
	}
	if _, err := LoadGame("pinball", ""); err == nil {
		t.Error("unknown game loaded")
	}
}

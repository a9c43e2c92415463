package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration of game on top of def.
// Search order: customPath -> ~/.arcade/configs/<game>.yaml ->
// ./configs/<game>.yaml -> embedded default -> def.
// Only a broken customPath is an error; the other sources are skipped when
// missing or unparsable. The result is validated when T has a Validate method.
func Load[T any](game, customPath string, def T) (T, error) {
	cfg, err := load(game, customPath, def)
	if err != nil {
		return cfg, err
	}
	if v, ok := any(cfg).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", game, err)
		}
	}
	return cfg, nil
}

func load[T any](game, customPath string, def T) (T, error) {
	filename := game + ".yaml"

	if customPath != "" {
		cfg := def
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := def
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	if data, err := defaultsFS.ReadFile("defaults/" + filename); err == nil {
		cfg := def
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}
	return def, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Dump renders a config as YAML.
func Dump(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// LoadBirdStrike loads the bird strike configuration.
func LoadBirdStrike(customPath string) (BirdStrikeConfig, error) {
	return Load("birdstrike", customPath, DefaultBirdStrikeConfig())
}

// LoadFruitCatch loads the fruit catch configuration.
func LoadFruitCatch(customPath string) (FruitCatchConfig, error) {
	return Load("fruitcatch", customPath, DefaultFruitCatchConfig())
}

// LoadDino loads the dino runner configuration.
func LoadDino(customPath string) (DinoConfig, error) {
	return Load("dino", customPath, DefaultDinoConfig())
}

// LoadDefense loads the turret defense configuration.
func LoadDefense(customPath string) (DefenseConfig, error) {
	return Load("defense", customPath, DefaultDefenseConfig())
}

// LoadFlyer loads the flyer configuration.
func LoadFlyer(customPath string) (FlyerConfig, error) {
	return Load("flyer", customPath, DefaultFlyerConfig())
}

// LoadSaber loads the saber runner configuration.
func LoadSaber(customPath string) (SaberConfig, error) {
	return Load("saber", customPath, DefaultSaberConfig())
}

// LoadMaze loads the maze survival configuration.
func LoadMaze(customPath string) (MazeConfig, error) {
	return Load("maze", customPath, DefaultMazeConfig())
}

// LoadMathQuiz loads the math quiz configuration.
func LoadMathQuiz(customPath string) (MathQuizConfig, error) {
	return Load("mathquiz", customPath, DefaultMathQuizConfig())
}

// LoadGame loads the configuration of any game by registry id.
func LoadGame(game, customPath string) (any, error) {
	switch game {
	case "birdstrike":
		return LoadBirdStrike(customPath)
	case "fruitcatch":
		return LoadFruitCatch(customPath)
	case "dino":
		return LoadDino(customPath)
	case "defense":
		return LoadDefense(customPath)
	case "flyer":
		return LoadFlyer(customPath)
	case "saber":
		return LoadSaber(customPath)
	case "maze":
		return LoadMaze(customPath)
	case "mathquiz":
		return LoadMathQuiz(customPath)
	}
	return nil, fmt.Errorf("config: no configuration for game %q", game)
}

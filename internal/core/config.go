package core

// RuntimeConfig is what a host passes when it launches a game.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in cells
	ScreenH    int    // Screen height in cells
	TickRate   int    // Frames per second driven by the host
	Seed       int64  // RNG seed; 0 means the host picks one from the clock
	TimeLimit  int    // Seconds; 0 keeps the game's default, negative forces endless
	Difficulty string // Preset name: easy, normal, hard, fixed
	ConfigPath string // Optional custom YAML config
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Difficulty: "normal",
	}
}

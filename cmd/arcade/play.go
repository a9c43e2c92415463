package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/platform/term"
	"github.com/vovakirdan/minigames/internal/platform/tui"
	"github.com/vovakirdan/minigames/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagTimeLimit  int
	flagBackend    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right/Up/Down, WASD  - Move
  Space                     - Jump, fire or crouch (per game)
  X                         - Secondary action
  Mouse                     - Aim or move (games that use a pointer)
  P                         - Pause
  R                         - Restart (after game over)
  Q/Ctrl+C                  - Quit

Difficulty options:
  easy   - Slower start and gentler level curve
  normal - The game's configured progression
  hard   - Faster start and steeper level curve
  fixed  - No progression, stays at the first level

Time limit:
  0 keeps the game's default, a positive value plays for that many
  seconds, a negative value plays until game over.

Examples:
  arcade play birdstrike
  arcade play dino --difficulty easy
  arcade play mathquiz --time-limit 120
  arcade play flyer --backend tcell
  arcade play maze --config ./my-maze.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagTimeLimit, "time-limit", 0, "Seconds to play (0 = game default, negative = endless)")
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Terminal backend: tui or tcell")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	cfg.Difficulty = string(preset)
	cfg.TimeLimit = flagTimeLimit
	cfg.ConfigPath = flagConfig

	deps, closeDeps := openDeps()
	defer closeDeps()

	switch flagBackend {
	case "tui":
		return tui.Run(gameID, cfg, deps)
	case "tcell":
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer stop()
		if err := term.Run(ctx, gameID, cfg, deps); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("unknown backend %q (want tui or tcell)", flagBackend)
}

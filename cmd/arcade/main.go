// arcade is a terminal arcade of small real-time games.
//
// Usage:
//
//	arcade list                 - List available games
//	arcade play <game>          - Play a game
//	arcade menu                 - Start menu to pick games interactively
//	arcade serve                - Start SSH server for remote play
//	arcade web                  - Start websocket server for browser clients
//	arcade scores <game>        - Show high scores for a game
//	arcade config dump <game>   - Print a game's effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <dsn>          - SQLite path or postgres:// DSN (default: ~/.arcade/scores.db)
//	--log-level <lvl>   - debug, info, warn, error
//	--sound             - Play synthesized sound effects
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minigames/internal/audio"
	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/platform"
	"github.com/vovakirdan/minigames/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/minigames/internal/games/birdstrike"
	_ "github.com/vovakirdan/minigames/internal/games/defense"
	_ "github.com/vovakirdan/minigames/internal/games/dino"
	_ "github.com/vovakirdan/minigames/internal/games/flyer"
	_ "github.com/vovakirdan/minigames/internal/games/fruitcatch"
	_ "github.com/vovakirdan/minigames/internal/games/mathquiz"
	_ "github.com/vovakirdan/minigames/internal/games/maze"
	_ "github.com/vovakirdan/minigames/internal/games/saber"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagSound    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade - small real-time games in your terminal",
	Long: `Arcade is a collection of small real-time games played in the
terminal, over SSH or from a browser through a websocket.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  web      - Start websocket server
  scores   - View high scores
  config   - Inspect game configuration

Examples:
  arcade list
  arcade play birdstrike
  arcade play mathquiz --time-limit 120
  arcade menu --sound
  arcade serve --ssh :2222
  arcade web --addr :8080 --db postgres://arcade@localhost/arcade
  arcade scores dino`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Scores database: SQLite path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound effects")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// runtimeConfig builds the config shared by every command from the global
// flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openDeps opens the score store and, with --sound, the audio player. A
// store that cannot be opened only costs the scores; the game still runs.
// The returned func releases both.
func openDeps() (platform.Deps, func()) {
	deps := platform.Deps{Logger: log.Default()}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		deps.Logger.Warn("could not open scores database", "err", err)
	} else {
		deps.Store = store
	}

	var player *audio.Player
	if flagSound {
		player, err = audio.New(audio.Options{Logger: deps.Logger})
		if err != nil {
			deps.Logger.Warn("sound disabled", "err", err)
		} else {
			deps.Notifier = player
		}
	}

	return deps, func() {
		if player != nil {
			player.Close()
		}
		if store != nil {
			store.Close()
		}
	}
}

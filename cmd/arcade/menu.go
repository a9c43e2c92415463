package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Pick a game, then choose the play mode (game default, endless or timed)
and the difficulty. After a game ends, press B to return to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Change an option
  Enter           - Select
  Tab             - Scoreboard
  Esc             - Back
  Q               - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --sound
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	deps, closeDeps := openDeps()
	defer closeDeps()

	return tui.RunSession(deps, runtimeConfig())
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/platform"
	"github.com/vovakirdan/minigames/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with its input style and time limit.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	idWidth, titleWidth := len("ID"), len("Title")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
		titleWidth = max(titleWidth, len(g.Title))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %-14s  %s\n", idWidth, "ID", titleWidth, "Title", "Input", "Mode")
	fmt.Printf("  %-*s  %-*s  %-14s  %s\n", idWidth, "--", titleWidth, "-----", "-----", "----")

	for _, g := range games {
		rules, err := registry.Create(g.ID, core.DefaultConfig())
		if err != nil {
			return err
		}
		fmt.Printf("  %-*s  %-*s  %-14s  %s\n", idWidth, g.ID, titleWidth, g.Title, inputStyle(rules), playMode(rules))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}

func inputStyle(r engine.Rules) string {
	if platform.TakesText(r) {
		return "typed answers"
	}
	parts := []string{"keys"}
	if platform.TakesPointer(r) {
		parts = append(parts, "mouse")
	}
	return strings.Join(parts, "+")
}

func playMode(r engine.Rules) string {
	if limit := engine.DefaultOptions(r).TimeLimit; limit > 0 {
		return fmt.Sprintf("timed %ds", limit)
	}
	return "until game over"
}

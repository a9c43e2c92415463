package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/config"
)

var flagDumpConfig string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect game configuration",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump <game>",
	Short: "Print the effective YAML configuration of a game",
	Long: `Print the configuration a game would run with, after applying the
search order: --config, ~/.arcade/configs/<game>.yaml,
./configs/<game>.yaml, then the built-in defaults.

The output is a valid config file:
  arcade config dump maze > ~/.arcade/configs/maze.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigDump,
}

func init() {
	configDumpCmd.Flags().StringVar(&flagDumpConfig, "config", "", "Path to custom game config YAML")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadGame(args[0], flagDumpConfig)
	if err != nil {
		return err
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

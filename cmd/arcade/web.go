package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigames/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server for browser clients",
	Long: `Serve games over a websocket at /ws.

Clients send JSON commands:
  {"type":"start","game":"birdstrike","time_limit":60,"difficulty":"hard"}
  {"type":"input","input":"left"}
  {"type":"input","input":"point","x":120,"y":300}
  {"type":"input","input":"text","text":"42"}
  {"type":"stop"}

The server streams one msgpack frame per tick and JSON score, end and
error events. Connecting to /ws?game=<id> starts that game at once.

Examples:
  arcade web
  arcade web --addr :9000 --fps 30`,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	deps, closeDeps := openDeps()
	defer closeDeps()
	// Browsers play their own sounds.
	deps.Notifier = nil

	cfg := runtimeConfig()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting arcade websocket server on %s\n", flagWebAddr)
	err := web.NewServer(deps, cfg).ListenAndServe(ctx, flagWebAddr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

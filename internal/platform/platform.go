// Package platform holds what every host (bubbletea, tcell, websocket)
// shares: building a game's rules, wiring the session's collaborators and
// saving the result.
package platform

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/minigames/internal/core"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/registry"
	"github.com/vovakirdan/minigames/internal/render"
	"github.com/vovakirdan/minigames/internal/storage"
)

// Deps are the long-lived collaborators a host hands to each session.
// Every field may be nil.
type Deps struct {
	Store    *storage.Store
	Notifier engine.Notifier
	Renderer engine.Renderer
	Logger   *log.Logger
}

// StartOptions resolves the time limit: a positive TimeLimit wins, a
// negative one forces endless play, and zero keeps the game's default.
func StartOptions(r engine.Rules, rc core.RuntimeConfig) engine.Options {
	switch {
	case rc.TimeLimit > 0:
		return engine.Options{TimeLimit: rc.TimeLimit}
	case rc.TimeLimit < 0:
		return engine.Options{}
	}
	return engine.DefaultOptions(r)
}

// Launch builds the rules of gameID and starts a session on host, stopping
// whatever the host was running. The score is added to the history when
// the session ends; the best score is written by the session itself.
func Launch(host *engine.Host, gameID string, rc core.RuntimeConfig, deps Deps) (*engine.Session, engine.Rules, error) {
	rules, err := registry.Create(gameID, rc)
	if err != nil {
		return nil, nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = render.New()
	}
	cfg := engine.Config{
		Rules:    rules,
		Notifier: deps.Notifier,
		Renderer: renderer,
		Logger:   logger,
		Seed:     rc.Seed,
	}
	if deps.Store != nil {
		cfg.Best = deps.Store
	}

	s, err := host.Launch(cfg, StartOptions(rules, rc))
	if err != nil {
		return nil, nil, err
	}

	if store := deps.Store; store != nil {
		s.SetGameEndCallback(func(score, level int) {
			if score <= 0 {
				return
			}
			if _, err := store.SaveScore(gameID, score); err != nil {
				logger.Warn("could not save score", "game", gameID, "err", err)
			}
		})
	}
	return s, rules, nil
}

// TakesText reports whether the rules want typed answers rather than
// movement keys.
func TakesText(r engine.Rules) bool {
	_, ok := r.(engine.TextInput)
	return ok
}

// TakesPointer reports whether the rules react to pointer positions.
func TakesPointer(r engine.Rules) bool {
	_, ok := r.(engine.PositionalInput)
	return ok
}

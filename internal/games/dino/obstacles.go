package dino

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/minigames/internal/config"
	"github.com/vovakirdan/minigames/internal/engine"
	"github.com/vovakirdan/minigames/internal/games/kit"
)

// schedule spaces obstacles at random gaps that shrink as the run speeds up.
type schedule struct {
	cfg   *config.DinoConfig
	table *engine.WeightedTable[config.SpawnEntry]
	next  float64 // ms until the next obstacle, measured from the last one
}

func newSchedule(cfg *config.DinoConfig) (*schedule, error) {
	table, err := config.Table(cfg.Obstacles, 1)
	if err != nil {
		return nil, err
	}
	return &schedule{cfg: cfg, table: table}, nil
}

func (s *schedule) reset() {
	s.next = s.cfg.FirstSpawnMs
}

// interval is the spawner's current gap.
func (s *schedule) interval() float64 { return s.next }

// build places a new obstacle at the right edge and rolls the following gap.
func (s *schedule) build(w *engine.World, speed float64) *engine.Entity {
	row := s.table.Draw(w.Rand)
	e := kit.FromEntry(row, w.Rand)
	e.Pos = mgl64.Vec2{w.Width, e.Pos.Y()}
	e.Vel = mgl64.Vec2{-speed, 0}

	gap := s.cfg.SpawnMinMs + w.Rand.Float64()*(s.cfg.SpawnMaxMs-s.cfg.SpawnMinMs)
	if base := s.cfg.Speed.Base; base > 0 && speed > 0 {
		gap /= speed / base
	}
	s.next = gap
	return e
}

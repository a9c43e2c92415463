package web

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/minigames/internal/engine"
)

// EntityFrame is one entity as sent to clients.
type EntityFrame struct {
	ID     uint64  `msgpack:"id"`
	Kind   string  `msgpack:"kind"`
	Tag    string  `msgpack:"tag"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	W      float64 `msgpack:"w"`
	H      float64 `msgpack:"h"`
	Radius float64 `msgpack:"r,omitempty"`
	HP     int     `msgpack:"hp,omitempty"`
	Color  string  `msgpack:"color"`
}

// EffectFrame is a floating text or particle.
type EffectFrame struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Glyph string  `msgpack:"glyph,omitempty"`
	Text  string  `msgpack:"text,omitempty"`
	Life  float64 `msgpack:"life"` // fraction remaining
	Color string  `msgpack:"color"`
}

// Frame is the binary snapshot streamed every tick.
type Frame struct {
	Game     string        `msgpack:"game"`
	State    string        `msgpack:"state"`
	Frame    uint64        `msgpack:"frame"`
	Score    int           `msgpack:"score"`
	Level    int           `msgpack:"level"`
	Best     int           `msgpack:"best"`
	Timed    bool          `msgpack:"timed"`
	TimeLeft float64       `msgpack:"time_left"`
	Paused   bool          `msgpack:"paused"`
	Width    float64       `msgpack:"width"`
	Height   float64       `msgpack:"height"`
	Player   *EntityFrame  `msgpack:"player,omitempty"`
	Shielded bool          `msgpack:"shielded"`
	Blink    bool          `msgpack:"blink"`
	Entities []EntityFrame `msgpack:"entities"`
	Effects  []EffectFrame `msgpack:"effects"`
	Status   []string      `msgpack:"status"`
}

func entityFrame(e *engine.Entity) EntityFrame {
	return EntityFrame{
		ID:     e.ID,
		Kind:   e.Kind.String(),
		Tag:    e.Tag,
		X:      e.Pos.X(),
		Y:      e.Pos.Y(),
		W:      e.Size.X(),
		H:      e.Size.Y(),
		Radius: e.Radius,
		HP:     e.HP,
		Color:  e.Color.String(),
	}
}

// NewFrame converts a session snapshot.
func NewFrame(snap engine.Snapshot) Frame {
	f := Frame{
		Game:     snap.Game,
		State:    snap.State.String(),
		Frame:    snap.Frame,
		Score:    snap.Score,
		Level:    snap.Level,
		Best:     snap.Best,
		Timed:    snap.Timed,
		TimeLeft: snap.TimeLeft,
		Paused:   snap.Paused,
		Width:    snap.Width,
		Height:   snap.Height,
		Shielded: snap.Shielded,
		Blink:    snap.Invulnerable,
		Entities: make([]EntityFrame, len(snap.Entities)),
		Effects:  make([]EffectFrame, len(snap.Effects)),
		Status:   snap.Status,
	}
	if snap.Player != nil {
		p := entityFrame(snap.Player)
		f.Player = &p
	}
	for i := range snap.Entities {
		f.Entities[i] = entityFrame(&snap.Entities[i])
	}
	for i, fx := range snap.Effects {
		ef := EffectFrame{
			X:     fx.Pos.X(),
			Y:     fx.Pos.Y(),
			Text:  fx.Text,
			Color: fx.Color.String(),
		}
		if fx.Glyph != 0 {
			ef.Glyph = string(fx.Glyph)
		}
		if fx.MaxLife > 0 {
			ef.Life = float64(fx.Life) / float64(fx.MaxLife)
		}
		f.Effects[i] = ef
	}
	return f
}

// EncodeFrame packs a snapshot for the wire.
func EncodeFrame(snap engine.Snapshot) ([]byte, error) {
	f := NewFrame(snap)
	return msgpack.Marshal(&f)
}

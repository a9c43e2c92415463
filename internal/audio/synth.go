package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Tone is one note of a recipe. Sweep moves the pitch linearly from Freq to
// Freq+Sweep over the note.
type Tone struct {
	Freq     float64
	Sweep    float64
	Wave     Wave
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Gain     float64
}

// Recipe is a sequence of tones played back to back.
type Recipe []Tone

// Duration is the total length of the recipe.
func (r Recipe) Duration() time.Duration {
	var d time.Duration
	for _, t := range r {
		d += t.Duration
	}
	return d
}

// oscillator generates one finite tone.
type oscillator struct {
	tone     Tone
	rng      *rand.Rand
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func newOscillator(t Tone, rate beep.SampleRate, rng *rand.Rand) *oscillator {
	return &oscillator{tone: t, rng: rng, rate: rate, total: rate.N(t.Duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.total {
			return i, true
		}

		var val float64
		switch o.tone.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.total)
		freq := o.tone.Freq + o.tone.Sweep*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a finite stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, t Tone, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(t.Attack),
		release:  rate.N(t.Release),
		total:    rate.N(t.Duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if left := e.total - e.position; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// volume wraps s at a linear gain. Zero or less is silent; log2 of zero
// would be -Inf.
func volume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Build turns a recipe into a finite streamer at the given rate, scaled by
// master.
func Build(r Recipe, rate beep.SampleRate, master float64, rng *rand.Rand) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(r))
	for _, t := range r {
		osc := newOscillator(t, rate, rng)
		parts = append(parts, volume(newEnvelope(osc, t, rate), t.Gain))
	}
	return volume(beep.Seq(parts...), master)
}

// Package audio turns engine cues into short synthesized sound effects.
// Cues are queued and played off the frame goroutine; a full queue drops
// the cue.
package audio

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/minigames/internal/engine"
)

const (
	// SampleRate is the output rate of every effect.
	SampleRate = beep.SampleRate(44100)

	queueSize = 32
)

// Recipes is the sound of every engine cue.
var Recipes = map[engine.Cue]Recipe{
	engine.CueCatch: {
		{Freq: 660, Wave: WaveSine, Duration: 60 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 30 * time.Millisecond, Gain: 0.6},
		{Freq: 990, Wave: WaveSine, Duration: 80 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 50 * time.Millisecond, Gain: 0.6},
	},
	engine.CueExplosion: {
		{Wave: WaveNoise, Duration: 300 * time.Millisecond, Attack: 2 * time.Millisecond, Release: 250 * time.Millisecond, Gain: 0.5},
	},
	engine.CueBonus: {
		{Freq: 523, Wave: WaveSquare, Duration: 70 * time.Millisecond, Release: 20 * time.Millisecond, Gain: 0.25},
		{Freq: 659, Wave: WaveSquare, Duration: 70 * time.Millisecond, Release: 20 * time.Millisecond, Gain: 0.25},
		{Freq: 784, Wave: WaveSquare, Duration: 120 * time.Millisecond, Release: 60 * time.Millisecond, Gain: 0.25},
	},
	engine.CueGameOver: {
		{Freq: 392, Wave: WaveSaw, Duration: 200 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.3},
		{Freq: 330, Wave: WaveSaw, Duration: 200 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.3},
		{Freq: 262, Sweep: -80, Wave: WaveSaw, Duration: 500 * time.Millisecond, Release: 300 * time.Millisecond, Gain: 0.3},
	},
	engine.CueInvincible: {
		{Freq: 440, Sweep: 880, Wave: WaveSquare, Duration: 250 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 80 * time.Millisecond, Gain: 0.2},
	},
	engine.CueShoot: {
		{Freq: 900, Sweep: -600, Wave: WaveSquare, Duration: 90 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.2},
	},
	engine.CueEat: {
		{Freq: 300, Sweep: 200, Wave: WaveSine, Duration: 90 * time.Millisecond, Attack: 5 * time.Millisecond, Release: 40 * time.Millisecond, Gain: 0.6},
	},
	engine.CueChicken: {
		{Freq: 700, Sweep: 300, Wave: WaveSaw, Duration: 80 * time.Millisecond, Release: 30 * time.Millisecond, Gain: 0.3},
		{Freq: 1000, Sweep: -400, Wave: WaveSaw, Duration: 120 * time.Millisecond, Release: 60 * time.Millisecond, Gain: 0.3},
	},
	engine.CueLevelUp: {
		{Freq: 523, Wave: WaveSine, Duration: 90 * time.Millisecond, Release: 30 * time.Millisecond, Gain: 0.5},
		{Freq: 784, Wave: WaveSine, Duration: 90 * time.Millisecond, Release: 30 * time.Millisecond, Gain: 0.5},
		{Freq: 1047, Wave: WaveSine, Duration: 200 * time.Millisecond, Release: 120 * time.Millisecond, Gain: 0.5},
	},
	engine.CueUpgrade: {
		{Freq: 330, Sweep: 330, Wave: WaveSquare, Duration: 150 * time.Millisecond, Attack: 10 * time.Millisecond, Release: 60 * time.Millisecond, Gain: 0.2},
	},
	engine.CueLaser: {
		{Freq: 1500, Sweep: -1200, Wave: WaveSaw, Duration: 120 * time.Millisecond, Release: 50 * time.Millisecond, Gain: 0.25},
	},
}

// PlayFunc hands a finished streamer to the output device.
type PlayFunc func(beep.Streamer)

// Player is an engine.Notifier that plays cue recipes.
type Player struct {
	play   PlayFunc
	master float64
	log    *log.Logger

	queue chan engine.Cue
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// Options configures a Player.
type Options struct {
	// Volume is the master gain in [0, 1]. Zero means 0.7.
	Volume float64
	// Play overrides the output device, mainly for tests.
	Play   PlayFunc
	Logger *log.Logger
}

var initSpeaker = sync.OnceValue(func() error {
	return speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond))
})

// New initializes the speaker (once per process) and starts the playback
// goroutine. Callers should Close the player when the session ends.
func New(opts Options) (*Player, error) {
	if opts.Play == nil {
		if err := initSpeaker(); err != nil {
			return nil, err
		}
		opts.Play = func(s beep.Streamer) { speaker.Play(s) }
	}
	if opts.Volume <= 0 {
		opts.Volume = 0.7
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	p := &Player{
		play:   opts.Play,
		master: opts.Volume,
		log:    opts.Logger.WithPrefix("audio"),
		queue:  make(chan engine.Cue, queueSize),
		done:   make(chan struct{}),
	}
	p.wg.Add(1)
	go p.run()
	return p, nil
}

// Notify implements engine.Notifier. It never blocks.
func (p *Player) Notify(c engine.Cue) {
	select {
	case <-p.done:
	case p.queue <- c:
	default:
		p.log.Debug("dropped cue", "cue", c)
	}
}

func (p *Player) run() {
	defer p.wg.Done()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		select {
		case <-p.done:
			return
		case c := <-p.queue:
			r, ok := Recipes[c]
			if !ok {
				continue
			}
			p.play(Build(r, SampleRate, p.master, rng))
		}
	}
}

// Close stops the playback goroutine. Sounds already handed to the speaker
// finish on their own.
func (p *Player) Close() {
	p.once.Do(func() { close(p.done) })
	p.wg.Wait()
}

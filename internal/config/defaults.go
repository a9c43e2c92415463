package config

import (
	"embed"

	"github.com/vovakirdan/minigames/internal/engine"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Embedded returns the embedded default YAML for game.
func Embedded(game string) ([]byte, error) {
	return defaultsFS.ReadFile("defaults/" + game + ".yaml")
}

// DefaultBirdStrikeConfig returns the default bird strike configuration.
func DefaultBirdStrikeConfig() BirdStrikeConfig {
	return BirdStrikeConfig{
		Lanes:          []float64{66, 200, 333},
		Player:         Box{Y: 330, W: 40, H: 40},
		Ease:           0.2,
		DebounceMs:     200,
		LaneThreshold:  35,
		Margin:         8,
		InvulnerableMs: 1500,
		HitPenalty:     200,
		DodgeBonus:     10,
		TimeBonus:      0.05,
		Spawns: []SpawnEntry{
			{Tag: "bird", Weight: 0.55, W: 35, H: 35, SpeedMin: 0.8, SpeedMax: 1.4, Harm: "damaging"},
			{Tag: "bigbird", Weight: 0.10, W: 55, H: 55, SpeedMin: 0.6, SpeedMax: 0.6, Harm: "damaging"},
			{Tag: "star", Weight: 0.15, W: 25, H: 25, SpeedMin: 1, SpeedMax: 1, Value: 100},
			{Tag: "diamond", Weight: 0.10, W: 25, H: 25, SpeedMin: 1.2, SpeedMax: 1.2, Value: 300},
			{Tag: "chicken", Weight: 0.10, W: 30, H: 30, SpeedMin: 0.9, SpeedMax: 0.9, Value: 1000},
		},
		Progression: Progression{
			LevelThreshold: 500,
			Curve: engine.LinearCurve{
				SpeedBase: 2, SpeedRate: 0.4, SpeedMin: 2, SpeedMax: 6,
				IntervalBase: 1200, IntervalStep: 80, IntervalMin: 400, IntervalMax: 1200,
			},
		},
	}
}

// DefaultFruitCatchConfig returns the default fruit catch configuration.
func DefaultFruitCatchConfig() FruitCatchConfig {
	return FruitCatchConfig{
		Lanes:            []float64{66, 200, 333},
		Basket:           Box{Y: 360, W: 80, H: 30},
		DebounceMs:       200,
		CatchAbove:       40,
		CatchHalfWidth:   30,
		GunMs:            15000,
		FireEveryMs:      200,
		Bullet:           Box{W: 10, H: 20},
		BulletSpeed:      10,
		ShieldMs:         30000,
		BombPenalty:      250,
		StackSize:        5,
		StackBonus:       500,
		BulletBombBonus:  50,
		BulletFruitBonus: 300,
		TimeLimit:        60,
		Spawns: []SpawnEntry{
			{Tag: "apple", Weight: 0.175, W: 40, H: 40, SpeedMin: 1, SpeedMax: 1, Value: 100},
			{Tag: "banana", Weight: 0.175, W: 40, H: 40, SpeedMin: 1.2, SpeedMax: 1.2, Value: 200},
			{Tag: "grape", Weight: 0.175, W: 40, H: 40, SpeedMin: 1.6, SpeedMax: 1.6, Value: 300, FromLevel: 2},
			{Tag: "bomb", Weight: 0.175, W: 40, H: 40, SpeedMin: 1, SpeedMax: 1, Harm: "hazard", FromLevel: 2},
			{Tag: "gun", Weight: 0.10, W: 40, H: 40, SpeedMin: 1, SpeedMax: 1},
			{Tag: "chicken", Weight: 0.10, W: 40, H: 40, SpeedMin: 1, SpeedMax: 1, Value: 1000},
			{Tag: "shield", Weight: 0.05, W: 40, H: 40, SpeedMin: 1, SpeedMax: 1},
		},
		Progression: Progression{
			LevelThreshold: 500,
			Curve: engine.LinearCurve{
				SpeedBase: 1, SpeedRate: 0.5, SpeedMin: 1.5, SpeedMax: 12,
				IntervalBase: 1600, IntervalStep: 100, IntervalMin: 200, IntervalMax: 1500,
			},
		},
	}
}

// DefaultDinoConfig returns the default dino runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Player: Box{X: 50, Y: 350, W: 40, H: 40},
		Physics: DinoPhysics{
			Gravity:     0.6,
			JumpImpulse: -12,
			FastFall:    3,
		},
		Speed:          Ramp{Base: 250, Rate: 5},
		PixelsPerPoint: 40,
		FirstSpawnMs:   1500,
		SpawnMinMs:     1000,
		SpawnMaxMs:     3000,
		Padding:        5,
		DeathMs:        1000,
		Obstacles: []SpawnEntry{
			{Tag: "pipe", Weight: 0.8, W: 40, H: 50, Y: 340, SpeedMin: 1, SpeedMax: 1, Harm: "damaging"},
			{Tag: "bullet", Weight: 0.2, W: 65, H: 45, Y: 315, YJitter: 10, SpeedMin: 1, SpeedMax: 1, Harm: "damaging"},
		},
	}
}

// DefaultDefenseConfig returns the default turret defense configuration.
func DefaultDefenseConfig() DefenseConfig {
	return DefenseConfig{
		Turret:          Box{X: 50, Y: 200, W: 40, H: 40},
		BaseHP:          100,
		BaseX:           50,
		ProjectileSpeed: 400,
		ProjectileSize:  10,
		MissileSpeed:    600,
		MissileSize:     20,
		MissileRadius:   80,
		MissileDamage:   10,
		MissileEvery:    400,
		SpeedBoost:      0.15,
		AIBaseMs:        1500,
		AIStepMs:        50,
		Enemies: []SpawnEntry{
			{Tag: "tank", Weight: 0.2, W: 40, H: 40, SpeedMin: 30, SpeedMax: 30, HP: 3, Damage: 20, Value: 50, Harm: "damaging"},
			{Tag: "soldier", Weight: 0.8, W: 20, H: 20, SpeedMin: 80, SpeedMax: 80, HP: 1, Damage: 10, Value: 10, Harm: "damaging"},
		},
		Progression: Progression{
			LevelThreshold: 150,
			Curve: engine.LinearCurve{
				SpeedBase: 1, SpeedMin: 1, SpeedMax: 1,
				IntervalBase: 2000, IntervalStep: 150, IntervalMin: 500, IntervalMax: 1850,
			},
		},
	}
}

// DefaultFlyerConfig returns the default flyer configuration.
func DefaultFlyerConfig() FlyerConfig {
	return FlyerConfig{
		Player:         Box{X: 80, Y: 320, W: 35, H: 35},
		GroundY:        320,
		CeilingY:       20,
		Gravity:        0.35,
		Thrust:         0.8,
		MaxRise:        4,
		MaxFall:        6,
		HoldMs:         150,
		Margin:         6,
		InvulnerableMs: 1500,
		HitPenalty:     200,
		PassBonus:      10,
		TimeBonus:      0.05,
		ItemEveryMs:    3500,
		Obstacles: []SpawnEntry{
			{Tag: "ground", Weight: 0.40, W: 30, H: 40, Y: 315, SpeedMin: 0.8, SpeedMax: 1.2, Harm: "damaging"},
			{Tag: "air", Weight: 0.30, W: 30, H: 30, Y: 180, YJitter: 80, SpeedMin: 0.8, SpeedMax: 1.2, Harm: "damaging"},
			{Tag: "wall", Weight: 0.15, W: 25, H: 120, Y: 235, SpeedMin: 0.8, SpeedMax: 1.2, Harm: "damaging"},
			{Tag: "waddle", Weight: 0.15, W: 35, H: 35, Y: 320, SpeedMin: 0.8, SpeedMax: 1.2, Harm: "damaging"},
		},
		Items: []SpawnEntry{
			{Tag: "star", Weight: 0.5, W: 25, H: 25, Y: 140, YJitter: 150, SpeedMin: 1, SpeedMax: 1, Value: 100},
			{Tag: "diamond", Weight: 0.3, W: 25, H: 25, Y: 140, YJitter: 150, SpeedMin: 1, SpeedMax: 1, Value: 300},
			{Tag: "cake", Weight: 0.2, W: 25, H: 25, Y: 140, YJitter: 150, SpeedMin: 1, SpeedMax: 1, Value: 1000},
		},
		Progression: Progression{
			LevelThreshold: 500,
			Curve: engine.LinearCurve{
				SpeedBase: 3, SpeedRate: 0.3, SpeedMin: 3, SpeedMax: 7,
				IntervalBase: 2000, IntervalStep: 100, IntervalMin: 600, IntervalMax: 2000,
			},
		},
	}
}

// DefaultSaberConfig returns the default saber runner configuration.
func DefaultSaberConfig() SaberConfig {
	return SaberConfig{
		Player:         Box{X: 60, Y: 250, W: 70, H: 90},
		AttackFrames:   15,
		SlashFrames:    12,
		AttackBox:      Box{X: 0, Y: -40, W: 90, H: 80},
		ComboStep:      10,
		ComboMax:       200,
		EscapePenalty:  200,
		ContactPenalty: 150,
		InvulnerableMs: 500,
		ItemReach:      10,
		ItemEveryMs:    4000,
		TimeBonus:      0.05,
		Enemies: []SpawnEntry{
			{Tag: "zaku", Weight: 0.75, W: 45, H: 75, Y: 250, SpeedMin: 0.8, SpeedMax: 1.3, Value: 100, Harm: "damaging"},
			{Tag: "boss", Weight: 0.25, W: 55, H: 90, Y: 235, SpeedMin: 0.5, SpeedMax: 0.8, Value: 500, Harm: "damaging"},
		},
		Items: []SpawnEntry{
			{Tag: "star", Weight: 0.5, W: 25, H: 25, Y: 190, YJitter: 30, SpeedMin: 1, SpeedMax: 1, Value: 100},
			{Tag: "diamond", Weight: 0.3, W: 25, H: 25, Y: 190, YJitter: 30, SpeedMin: 1, SpeedMax: 1, Value: 300},
			{Tag: "chicken", Weight: 0.2, W: 25, H: 25, Y: 190, YJitter: 30, SpeedMin: 1, SpeedMax: 1, Value: 1000},
		},
		Progression: Progression{
			LevelThreshold: 500,
			Curve: engine.LinearCurve{
				SpeedBase: 3, SpeedRate: 0.3, SpeedMin: 3, SpeedMax: 7,
				IntervalBase: 1800, IntervalStep: 100, IntervalMin: 600, IntervalMax: 1800,
			},
		},
	}
}

// DefaultMazeConfig returns the default maze survival configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Player:        Box{X: 185, Y: 185, W: 30, H: 30},
		Speed:         4,
		HoldMs:        150,
		Enemy:         Box{W: 25, H: 25},
		EnemySpeed:    0.8,
		EnemyJitter:   1,
		EnemyPerLevel: 0.15,
		AimJitter:     0.25,
		ItemEveryMs:   5000,
		AmmoPerGun:    10,
		AmmoMax:       30,
		Bullet:        Box{W: 8, H: 4},
		BulletSpeed:   7,
		KillBonus:     50,
		StarRadius:    150,
		SurvivalBonus: 0.1,
		Items: []SpawnEntry{
			{Tag: "gun", Weight: 0.15, W: 20, H: 20},
			{Tag: "star", Weight: 0.20, W: 20, H: 20, Value: 500},
			{Tag: "coin", Weight: 0.65, W: 20, H: 20, Value: 100},
		},
		Progression: Progression{
			LevelThreshold: 1000,
			Curve: engine.LinearCurve{
				SpeedBase: 1, SpeedMin: 1, SpeedMax: 1,
				IntervalBase: 4000, IntervalStep: 300, IntervalMin: 800, IntervalMax: 4000,
			},
		},
	}
}

// DefaultMathQuizConfig returns the default math quiz configuration.
func DefaultMathQuizConfig() MathQuizConfig {
	return MathQuizConfig{
		TimeLimit: 60,
		Tier:      2,
		Correct:   10,
		Wrong:     5,
		Pass:      2,
		PauseMs:   1500,
	}
}

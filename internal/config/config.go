// Package config provides YAML-based game configuration loading and the
// difficulty presets for the arcade games.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/minigames/internal/engine"
)

// Box is a position and size in world units.
type Box struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// SpawnEntry describes one row of a weighted spawn table.
type SpawnEntry struct {
	Tag       string  `yaml:"tag"`
	Weight    float64 `yaml:"weight"`
	W         float64 `yaml:"w"`
	H         float64 `yaml:"h"`
	Y         float64 `yaml:"y,omitempty"`
	YJitter   float64 `yaml:"y_jitter,omitempty"`
	SpeedMin  float64 `yaml:"speed_min"`
	SpeedMax  float64 `yaml:"speed_max"`
	Value     float64 `yaml:"value,omitempty"`
	Damage    float64 `yaml:"damage,omitempty"`
	HP        int     `yaml:"hp,omitempty"`
	Harm      string  `yaml:"harm,omitempty"` // "", "damaging" or "hazard"
	FromLevel int     `yaml:"from_level,omitempty"`
}

// HarmKind converts the Harm string.
func (e SpawnEntry) HarmKind() engine.Harm {
	switch e.Harm {
	case "damaging":
		return engine.HarmDamaging
	case "hazard":
		return engine.HarmHazard
	}
	return engine.HarmNone
}

// Progression is the score-driven level system shared by the games.
type Progression struct {
	LevelThreshold float64            `yaml:"level_threshold"`
	Curve          engine.LinearCurve `yaml:"curve"`
}

// BirdStrikeConfig configures the three-lane bird dodging game.
type BirdStrikeConfig struct {
	Lanes          []float64    `yaml:"lanes"`
	Player         Box          `yaml:"player"`
	Ease           float64      `yaml:"ease"`
	DebounceMs     float64      `yaml:"debounce_ms"`
	LaneThreshold  float64      `yaml:"lane_threshold"`
	Margin         float64      `yaml:"margin"`
	InvulnerableMs float64      `yaml:"invulnerable_ms"`
	HitPenalty     float64      `yaml:"hit_penalty"`
	DodgeBonus     float64      `yaml:"dodge_bonus"`
	TimeBonus      float64      `yaml:"time_bonus"`
	Spawns         []SpawnEntry `yaml:"spawns"`
	Progression    Progression  `yaml:"progression"`
}

// FruitCatchConfig configures the basket catching game.
type FruitCatchConfig struct {
	Lanes            []float64    `yaml:"lanes"`
	Basket           Box          `yaml:"basket"`
	DebounceMs       float64      `yaml:"debounce_ms"`
	CatchAbove       float64      `yaml:"catch_above"`
	CatchHalfWidth   float64      `yaml:"catch_half_width"`
	GunMs            float64      `yaml:"gun_ms"`
	FireEveryMs      float64      `yaml:"fire_every_ms"`
	Bullet           Box          `yaml:"bullet"`
	BulletSpeed      float64      `yaml:"bullet_speed"`
	ShieldMs         float64      `yaml:"shield_ms"`
	BombPenalty      float64      `yaml:"bomb_penalty"`
	StackSize        int          `yaml:"stack_size"`
	StackBonus       float64      `yaml:"stack_bonus"`
	BulletBombBonus  float64      `yaml:"bullet_bomb_bonus"`
	BulletFruitBonus float64      `yaml:"bullet_fruit_bonus"`
	TimeLimit        int          `yaml:"time_limit"`
	Spawns           []SpawnEntry `yaml:"spawns"`
	Progression      Progression  `yaml:"progression"`
}

// DinoConfig configures the endless runner.
type DinoConfig struct {
	Player         Box          `yaml:"player"`
	Physics        DinoPhysics  `yaml:"physics"`
	Speed          Ramp         `yaml:"speed"`
	PixelsPerPoint float64      `yaml:"pixels_per_point"`
	FirstSpawnMs   float64      `yaml:"first_spawn_ms"`
	SpawnMinMs     float64      `yaml:"spawn_min_ms"`
	SpawnMaxMs     float64      `yaml:"spawn_max_ms"`
	Padding        float64      `yaml:"padding"`
	DeathMs        float64      `yaml:"death_ms"`
	Obstacles      []SpawnEntry `yaml:"obstacles"`
}

// DinoPhysics holds the jump parameters, in units per frame.
type DinoPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	FastFall    float64 `yaml:"fast_fall"`
}

// DefenseConfig configures the turret defense game.
type DefenseConfig struct {
	Turret          Box          `yaml:"turret"`
	BaseHP          float64      `yaml:"base_hp"`
	BaseX           float64      `yaml:"base_x"`
	ProjectileSpeed float64      `yaml:"projectile_speed"`
	ProjectileSize  float64      `yaml:"projectile_size"`
	MissileSpeed    float64      `yaml:"missile_speed"`
	MissileSize     float64      `yaml:"missile_size"`
	MissileRadius   float64      `yaml:"missile_radius"`
	MissileDamage   int          `yaml:"missile_damage"`
	MissileEvery    float64      `yaml:"missile_every"`
	SpeedBoost      float64      `yaml:"speed_boost"`
	AIBaseMs        float64      `yaml:"ai_base_ms"`
	AIStepMs        float64      `yaml:"ai_step_ms"`
	Enemies         []SpawnEntry `yaml:"enemies"`
	Progression     Progression  `yaml:"progression"`
}

// FlyerConfig configures the side-scrolling flyer.
type FlyerConfig struct {
	Player         Box          `yaml:"player"`
	GroundY        float64      `yaml:"ground_y"`
	CeilingY       float64      `yaml:"ceiling_y"`
	Gravity        float64      `yaml:"gravity"`
	Thrust         float64      `yaml:"thrust"`
	MaxRise        float64      `yaml:"max_rise"`
	MaxFall        float64      `yaml:"max_fall"`
	HoldMs         float64      `yaml:"hold_ms"`
	Margin         float64      `yaml:"margin"`
	InvulnerableMs float64      `yaml:"invulnerable_ms"`
	HitPenalty     float64      `yaml:"hit_penalty"`
	PassBonus      float64      `yaml:"pass_bonus"`
	TimeBonus      float64      `yaml:"time_bonus"`
	ItemEveryMs    float64      `yaml:"item_every_ms"`
	Obstacles      []SpawnEntry `yaml:"obstacles"`
	Items          []SpawnEntry `yaml:"items"`
	Progression    Progression  `yaml:"progression"`
}

// SaberConfig configures the beam saber runner.
type SaberConfig struct {
	Player         Box          `yaml:"player"`
	AttackFrames   int          `yaml:"attack_frames"`
	SlashFrames    int          `yaml:"slash_frames"`
	AttackBox      Box          `yaml:"attack_box"` // X and Y are offsets from the player's right edge and top
	ComboStep      float64      `yaml:"combo_step"`
	ComboMax       float64      `yaml:"combo_max"`
	EscapePenalty  float64      `yaml:"escape_penalty"`
	ContactPenalty float64      `yaml:"contact_penalty"`
	InvulnerableMs float64      `yaml:"invulnerable_ms"`
	ItemReach      float64      `yaml:"item_reach"`
	ItemEveryMs    float64      `yaml:"item_every_ms"`
	TimeBonus      float64      `yaml:"time_bonus"`
	Enemies        []SpawnEntry `yaml:"enemies"`
	Items          []SpawnEntry `yaml:"items"`
	Progression    Progression  `yaml:"progression"`
}

// MazeConfig configures the arena survival game.
type MazeConfig struct {
	Player        Box          `yaml:"player"`
	Speed         float64      `yaml:"speed"`
	HoldMs        float64      `yaml:"hold_ms"`
	Enemy         Box          `yaml:"enemy"`
	EnemySpeed    float64      `yaml:"enemy_speed"`
	EnemyJitter   float64      `yaml:"enemy_jitter"`
	EnemyPerLevel float64      `yaml:"enemy_per_level"`
	AimJitter     float64      `yaml:"aim_jitter"`
	ItemEveryMs   float64      `yaml:"item_every_ms"`
	AmmoPerGun    int          `yaml:"ammo_per_gun"`
	AmmoMax       int          `yaml:"ammo_max"`
	Bullet        Box          `yaml:"bullet"`
	BulletSpeed   float64      `yaml:"bullet_speed"`
	KillBonus     float64      `yaml:"kill_bonus"`
	StarRadius    float64      `yaml:"star_radius"`
	SurvivalBonus float64      `yaml:"survival_bonus"`
	Items         []SpawnEntry `yaml:"items"`
	Progression   Progression  `yaml:"progression"`
}

// MathQuizConfig configures the timed arithmetic quiz.
type MathQuizConfig struct {
	TimeLimit int     `yaml:"time_limit"`
	Tier      int     `yaml:"tier"`
	Correct   float64 `yaml:"correct"`
	Wrong     float64 `yaml:"wrong"`
	Pass      float64 `yaml:"pass"`
	PauseMs   float64 `yaml:"pause_ms"`
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

func validateTable(name string, entries []SpawnEntry) error {
	ws := make([]engine.Weighted[SpawnEntry], len(entries))
	for i, e := range entries {
		if e.W <= 0 || e.H <= 0 {
			return fmt.Errorf("%w: %s entry %q has no size", ErrInvalid, name, e.Tag)
		}
		if e.SpeedMax < e.SpeedMin {
			return fmt.Errorf("%w: %s entry %q speed range is inverted", ErrInvalid, name, e.Tag)
		}
		ws[i] = engine.Weighted[SpawnEntry]{Weight: e.Weight, Value: e}
	}
	if _, err := engine.NewWeightedTable(ws...); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalid, name, err)
	}
	return nil
}

func validateLanes(lanes []float64) error {
	if len(lanes) == 0 {
		return fmt.Errorf("%w: no lanes", ErrInvalid)
	}
	return nil
}

// Validate checks a bird strike config.
func (c BirdStrikeConfig) Validate() error {
	if err := validateLanes(c.Lanes); err != nil {
		return err
	}
	return validateTable("spawns", c.Spawns)
}

// Validate checks a fruit catch config.
func (c FruitCatchConfig) Validate() error {
	if err := validateLanes(c.Lanes); err != nil {
		return err
	}
	if c.StackSize <= 0 {
		return fmt.Errorf("%w: stack_size must be positive", ErrInvalid)
	}
	return validateTable("spawns", c.Spawns)
}

// Validate checks a dino config.
func (c DinoConfig) Validate() error {
	if c.SpawnMaxMs < c.SpawnMinMs {
		return fmt.Errorf("%w: spawn_max_ms below spawn_min_ms", ErrInvalid)
	}
	if c.PixelsPerPoint <= 0 {
		return fmt.Errorf("%w: pixels_per_point must be positive", ErrInvalid)
	}
	return validateTable("obstacles", c.Obstacles)
}

// Validate checks a defense config.
func (c DefenseConfig) Validate() error {
	if c.BaseHP <= 0 {
		return fmt.Errorf("%w: base_hp must be positive", ErrInvalid)
	}
	return validateTable("enemies", c.Enemies)
}

// Validate checks a flyer config.
func (c FlyerConfig) Validate() error {
	if c.GroundY <= c.CeilingY {
		return fmt.Errorf("%w: ground_y must be below ceiling_y", ErrInvalid)
	}
	if err := validateTable("obstacles", c.Obstacles); err != nil {
		return err
	}
	return validateTable("items", c.Items)
}

// Validate checks a saber config.
func (c SaberConfig) Validate() error {
	if c.AttackFrames <= 0 {
		return fmt.Errorf("%w: attack_frames must be positive", ErrInvalid)
	}
	if err := validateTable("enemies", c.Enemies); err != nil {
		return err
	}
	return validateTable("items", c.Items)
}

// Validate checks a maze config.
func (c MazeConfig) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive", ErrInvalid)
	}
	return validateTable("items", c.Items)
}

// Validate checks a math quiz config.
func (c MathQuizConfig) Validate() error {
	if c.Tier < 1 || c.Tier > 3 {
		return fmt.Errorf("%w: tier %d outside 1..3", ErrInvalid, c.Tier)
	}
	return nil
}

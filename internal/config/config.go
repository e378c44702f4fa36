// Package config provides YAML-based game configuration loading and
// difficulty management for Foxscape.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FoxConfig contains all tunable parameters of the Foxscape runner.
// Every magic number of the game lives here so it can be tuned by feel.
type FoxConfig struct {
	Field          FieldConfig     `yaml:"field"`
	Player         PlayerConfig    `yaml:"player"`
	Physics        PhysicsConfig   `yaml:"physics"`
	Roll           RollConfig      `yaml:"roll"`
	Obstacles      ObstaclesConfig `yaml:"obstacles"`
	Schedule       ScheduleConfig  `yaml:"schedule"`
	Difficulty     RampConfig      `yaml:"difficulty"`
	Layers         []LayerConfig   `yaml:"layers"`
	Effect         EffectConfig    `yaml:"effect"`
	HUD            HUDConfig       `yaml:"hud"`
	Audio          AudioConfig     `yaml:"audio"`
	Variant        Variant         `yaml:"variant"`
	RestartDelayMS int             `yaml:"restart_delay_ms"`
}

// FieldConfig is the fixed logical resolution everything is laid out in.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig describes the fox sprite sheet and hitbox.
type PlayerConfig struct {
	GroundY     float64         `yaml:"ground_y"`
	FrameW      float64         `yaml:"frame_w"`
	FrameH      float64         `yaml:"frame_h"`
	Scale       float64         `yaml:"scale"`
	HitboxX     float64         `yaml:"hitbox_x"`     // left edge of the hitbox
	HitboxInset float64         `yaml:"hitbox_inset"` // trimmed off the drawn width
	PassInset   float64         `yaml:"pass_inset"`   // trailing-edge slack for passive scoring
	Slowness    int             `yaml:"slowness"`     // ticks per animation frame
	Frames      AnimationFrames `yaml:"frames"`
}

// AnimationFrames is the frame count of each sprite sheet row, in sheet order.
type AnimationFrames struct {
	Idle   int `yaml:"idle"`
	Jump   int `yaml:"jump"`
	Fall   int `yaml:"fall"`
	Run    int `yaml:"run"`
	Dizzy  int `yaml:"dizzy"`
	Sit    int `yaml:"sit"`
	Roll   int `yaml:"roll"`
	Bite   int `yaml:"bite"`
	KO     int `yaml:"ko"`
	GetHit int `yaml:"get_hit"`
}

// Counts returns the frame counts in sheet row order.
func (a AnimationFrames) Counts() []int {
	return []int{a.Idle, a.Jump, a.Fall, a.Run, a.Dizzy, a.Sit, a.Roll, a.Bite, a.KO, a.GetHit}
}

// PhysicsConfig defines vertical motion and the speed coupling to the player.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	JumpVelocity       float64 `yaml:"jump_velocity"`
	AirborneMultiplier float64 `yaml:"airborne_multiplier"`
	GroundMultiplier   float64 `yaml:"ground_multiplier"`
}

// RollConfig defines the roll ability and its cooldown.
type RollConfig struct {
	DurationMS     int     `yaml:"duration_ms"`
	FullCooldown   float64 `yaml:"full_cooldown"`
	CancelCooldown float64 `yaml:"cancel_cooldown"`
	Depletion      float64 `yaml:"depletion"` // cooldown drained per tick before multipliers
}

// Duration returns the roll length.
func (r RollConfig) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// SizeConfig is a width and height in field units.
type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstaclesConfig defines obstacle kinds and motion.
type ObstaclesConfig struct {
	Speed        float64    `yaml:"speed"`
	GroundMargin float64    `yaml:"ground_margin"`
	Low          SizeConfig `yaml:"low"`
	Spike        SizeConfig `yaml:"spike"`
	TallBarrier  SizeConfig `yaml:"tall_barrier"`
}

// RangeMS is a half-open [min, max) millisecond interval.
type RangeMS struct {
	MinMS int `yaml:"min_ms"`
	MaxMS int `yaml:"max_ms"`
}

// Bounds returns the range as durations.
func (r RangeMS) Bounds() (time.Duration, time.Duration) {
	return time.Duration(r.MinMS) * time.Millisecond, time.Duration(r.MaxMS) * time.Millisecond
}

// ScheduleConfig defines the spawn windows.
type ScheduleConfig struct {
	FirstSpawn RangeMS `yaml:"first_spawn"`
	Spawn      RangeMS `yaml:"spawn"`
	FirstTall  RangeMS `yaml:"first_tall"`
	Tall       RangeMS `yaml:"tall"`
}

// RampConfig defines the per-tick speed ramp.
type RampConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Start     float64 `yaml:"start"`
	Increment float64 `yaml:"increment"`
	Ceiling   float64 `yaml:"ceiling"`
}

// LayerConfig is one parallax background layer.
type LayerConfig struct {
	Name string  `yaml:"name"`
	// Speed is the scroll speed at difficulty 1.0.
	Speed float64 `yaml:"speed"`
	// FreezeOnGameOver stops this layer while the game-over screen shows.
	FreezeOnGameOver bool `yaml:"freeze_on_game_over"`
}

// EffectConfig defines the roll-through impact animation.
type EffectConfig struct {
	FrameW  float64 `yaml:"frame_w"`
	FrameH  float64 `yaml:"frame_h"`
	Frames  int     `yaml:"frames"`
	FrameMS int     `yaml:"frame_ms"`
}

// HUDConfig defines the cooldown bar and the game-over overlay.
type HUDConfig struct {
	BarWidth     float64 `yaml:"bar_width"`
	BarHeight    float64 `yaml:"bar_height"`
	BarMargin    float64 `yaml:"bar_margin"` // distance from the right edge
	BarY         float64 `yaml:"bar_y"`
	OverlayAlpha float64 `yaml:"overlay_alpha"`
	Title        string  `yaml:"title"`
	Prompt       string  `yaml:"prompt"`
}

// AudioConfig defines the music loop window and the fall cue gate.
type AudioConfig struct {
	LoopStartMS int     `yaml:"loop_start_ms"`
	LoopEndMS   int     `yaml:"loop_end_ms"`
	LoopLeadMS  int     `yaml:"loop_lead_ms"`
	FallCueY    float64 `yaml:"fall_cue_y"`
}

// Variant switches the optional features of a game build.
type Variant struct {
	Audio   bool   `yaml:"audio"`
	Ramp    bool   `yaml:"ramp"`
	Scaling string `yaml:"scaling"` // "stretch" or "fit"
}

// RestartDelay returns the game-over debounce.
func (c FoxConfig) RestartDelay() time.Duration {
	return time.Duration(c.RestartDelayMS) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Empty means "use config".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// StartRateForPreset returns the ramp's starting multiplier for a preset.
func StartRateForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 1.3
	case DifficultyHard:
		return 1.7
	default:
		return 1.0
	}
}

// ApplyFoxPreset modifies the config based on a difficulty preset.
func ApplyFoxPreset(cfg *FoxConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.Start = 1.0
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.Start = StartRateForPreset(preset)
	}
}

// Validate reports every setting that would break the simulation.
func (c FoxConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0, "field size must be positive, got %gx%g", c.Field.Width, c.Field.Height)
	check(c.Player.FrameW > 0 && c.Player.FrameH > 0, "player frame size must be positive")
	check(c.Player.Scale > 0, "player scale must be positive")
	check(c.Player.Slowness > 0, "player slowness must be positive")
	for i, n := range c.Player.Frames.Counts() {
		check(n > 0, "animation row %d must have at least one frame", i)
	}
	check(c.Physics.Gravity > 0, "gravity must be positive")
	check(c.Physics.JumpVelocity < 0, "jump velocity must point up (negative)")
	check(c.Roll.DurationMS > 0, "roll duration must be positive")
	check(c.Roll.FullCooldown >= 0 && c.Roll.FullCooldown <= 1, "full cooldown must be within [0, 1]")
	check(c.Roll.CancelCooldown >= 0 && c.Roll.CancelCooldown <= 1, "cancel cooldown must be within [0, 1]")
	check(c.Roll.Depletion > 0, "cooldown depletion must be positive")
	check(c.Obstacles.Speed > 0, "obstacle speed must be positive")
	for name, s := range map[string]SizeConfig{
		"low":          c.Obstacles.Low,
		"spike":        c.Obstacles.Spike,
		"tall_barrier": c.Obstacles.TallBarrier,
	} {
		check(s.Width > 0 && s.Height > 0, "obstacle %s size must be positive", name)
	}
	for name, r := range map[string]RangeMS{
		"first_spawn": c.Schedule.FirstSpawn,
		"spawn":       c.Schedule.Spawn,
		"first_tall":  c.Schedule.FirstTall,
		"tall":        c.Schedule.Tall,
	} {
		check(r.MinMS >= 0 && r.MinMS < r.MaxMS, "schedule %s range [%d, %d) is empty or inverted", name, r.MinMS, r.MaxMS)
	}
	check(c.Difficulty.Start > 0, "difficulty start must be positive")
	check(c.Difficulty.Ceiling >= c.Difficulty.Start, "difficulty ceiling must not be below start")
	check(c.Difficulty.Increment >= 0, "difficulty increment must not be negative")
	check(len(c.Layers) > 0, "at least one background layer is required")
	check(c.Effect.Frames > 0 && c.Effect.FrameMS > 0, "impact effect needs frames and a frame time")
	check(c.RestartDelayMS >= 0, "restart delay must not be negative")
	check(c.Audio.LoopEndMS > c.Audio.LoopStartMS, "music loop end must be after its start")
	check(c.Variant.Scaling == "" || c.Variant.Scaling == "stretch" || c.Variant.Scaling == "fit",
		"unknown scaling mode %q", c.Variant.Scaling)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid foxscape config: %w", errors.Join(errs...))
}

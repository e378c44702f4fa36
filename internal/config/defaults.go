package config

import (
	_ "embed"
)

//go:embed defaults/foxscape.yaml
var defaultFoxYAML []byte

// DefaultFoxConfig returns the built-in Foxscape configuration. It matches
// the embedded defaults/foxscape.yaml and is used when that fails to parse.
func DefaultFoxConfig() FoxConfig {
	return FoxConfig{
		Field: FieldConfig{Width: 600, Height: 600},
		Player: PlayerConfig{
			GroundY:     392,
			FrameW:      575,
			FrameH:      523,
			Scale:       0.2,
			HitboxX:     2,
			HitboxInset: 17,
			PassInset:   15,
			Slowness:    5,
			Frames: AnimationFrames{
				Idle:   7,
				Jump:   7,
				Fall:   7,
				Run:    9,
				Dizzy:  11,
				Sit:    5,
				Roll:   7,
				Bite:   7,
				KO:     12,
				GetHit: 4,
			},
		},
		Physics: PhysicsConfig{
			Gravity:            0.5,
			JumpVelocity:       -15,
			AirborneMultiplier: 1.9,
			GroundMultiplier:   1.2,
		},
		Roll: RollConfig{
			DurationMS:     3000,
			FullCooldown:   1.0,
			CancelCooldown: 0.5,
			Depletion:      0.0015,
		},
		Obstacles: ObstaclesConfig{
			Speed:        2,
			GroundMargin: 100,
			Low:          SizeConfig{Width: 60, Height: 60},
			Spike:        SizeConfig{Width: 60, Height: 60},
			TallBarrier:  SizeConfig{Width: 60, Height: 240},
		},
		Schedule: ScheduleConfig{
			FirstSpawn: RangeMS{MinMS: 1000, MaxMS: 2000},
			Spawn:      RangeMS{MinMS: 1500, MaxMS: 6000},
			FirstTall:  RangeMS{MinMS: 10000, MaxMS: 15000},
			Tall:       RangeMS{MinMS: 10000, MaxMS: 12000},
		},
		Difficulty: RampConfig{
			Enabled:   true,
			Start:     1.0,
			Increment: 0.0001,
			Ceiling:   3.0,
		},
		Layers: []LayerConfig{
			{Name: "sky", Speed: 0.2},
			{Name: "hills", Speed: 0.4},
			{Name: "trees", Speed: 0.6},
			{Name: "ground", Speed: 1.0, FreezeOnGameOver: true},
		},
		Effect: EffectConfig{FrameW: 200, FrameH: 179, Frames: 4, FrameMS: 100},
		HUD: HUDConfig{
			BarWidth:     150,
			BarHeight:    15,
			BarMargin:    20,
			BarY:         20,
			OverlayAlpha: 0.5,
			Title:        "Game Over",
			Prompt:       "Press space key to Restart",
		},
		Audio: AudioConfig{
			LoopStartMS: 1000,
			LoopEndMS:   19000,
			LoopLeadMS:  100,
			FallCueY:    250,
		},
		Variant:        Variant{Audio: true, Ramp: true, Scaling: "stretch"},
		RestartDelayMS: 1000,
	}
}

// ClassicVariant is the plain build: no audio cues and no speed ramp.
func ClassicVariant() Variant {
	return Variant{Audio: false, Ramp: false, Scaling: "stretch"}
}

package foxscape

import (
	"time"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

// Stance is the physical state of the fox. Exactly one holds at a time, so a
// fox can never roll and jump at once.
type Stance int

const (
	StanceGrounded Stance = iota
	StanceAirborne
	StanceRolling
	StanceDizzy
)

func (s Stance) String() string {
	switch s {
	case StanceGrounded:
		return "grounded"
	case StanceAirborne:
		return "airborne"
	case StanceRolling:
		return "rolling"
	case StanceDizzy:
		return "dizzy"
	default:
		return "unknown"
	}
}

// Mode is the animation being shown. Values follow the sprite sheet rows.
type Mode int

const (
	ModeIdle Mode = iota
	ModeJump
	ModeFall
	ModeRun
	ModeDizzy
	ModeSit
	ModeRoll
	ModeBite
	ModeKO
	ModeGetHit
)

var modeNames = [...]string{"idle", "jump", "fall", "run", "dizzy", "sit", "roll", "bite", "ko", "getHit"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Airborne reports whether the mode speeds up the world (jump and fall).
func (m Mode) Airborne() bool {
	return m == ModeJump || m == ModeFall
}

// Player is the fox: vertical motion, stance and the pending roll expiry.
//
// Mode precedence: dizzy > roll > jump/fall (by velocity sign) > run.
type Player struct {
	Y   float64 // top of the sprite in field units
	Vel float64 // positive is down

	stance   Stance
	mode     Mode
	fallCued bool
	rollEnd  core.Timer

	ground   float64
	gravity  float64
	launch   float64
	fallCueY float64
	rollFor  time.Duration
	hitbox   core.RectF // X, W and H; Y follows the player
}

// NewPlayer creates a fox standing on the ground line in the idle pose.
func NewPlayer(cfg config.FoxConfig) *Player {
	p := &Player{}
	p.Configure(cfg)
	p.Reset()
	p.mode = ModeIdle
	return p
}

// Configure copies the tunables out of cfg. State is left alone.
func (p *Player) Configure(cfg config.FoxConfig) {
	p.ground = cfg.Player.GroundY
	p.gravity = cfg.Physics.Gravity
	p.launch = cfg.Physics.JumpVelocity
	p.fallCueY = cfg.Audio.FallCueY
	p.rollFor = cfg.Roll.Duration()
	p.hitbox = core.NewRectF(
		cfg.Player.HitboxX,
		0,
		cfg.Player.FrameW*cfg.Player.Scale-cfg.Player.HitboxInset,
		cfg.Player.FrameH*cfg.Player.Scale,
	)
}

// Reset puts the fox back on the ground line, running.
func (p *Player) Reset() {
	p.Y = p.ground
	p.Vel = 0
	p.stance = StanceGrounded
	p.mode = ModeRun
	p.fallCued = false
	p.rollEnd.Cancel()
}

// Stance returns the physical state.
func (p *Player) Stance() Stance { return p.stance }

// Mode returns the current animation.
func (p *Player) Mode() Mode { return p.mode }

// Rolling reports whether a roll is in progress.
func (p *Player) Rolling() bool { return p.stance == StanceRolling }

// Airborne reports whether the fox is in the air.
func (p *Player) Airborne() bool { return p.stance == StanceAirborne }

// RollPending reports whether the roll expiry is armed.
func (p *Player) RollPending() bool { return p.rollEnd.Pending() }

// Hitbox returns the collision rectangle at the current height.
func (p *Player) Hitbox() core.RectF {
	r := p.hitbox
	r.Y = p.Y
	return r
}

// Jump launches the fox. It does nothing unless the fox is on the ground
// and not rolling; a rolling fox must CancelRoll first.
func (p *Player) Jump() bool {
	if p.stance != StanceGrounded {
		return false
	}
	p.Vel = p.launch
	p.stance = StanceAirborne
	p.mode = ModeJump
	return true
}

// Roll starts a roll that ends by itself after the configured duration.
// Only a grounded fox can roll; cooldown is the caller's concern.
func (p *Player) Roll(now time.Duration) bool {
	if p.stance != StanceGrounded {
		return false
	}
	p.stance = StanceRolling
	p.mode = ModeRoll
	p.rollEnd.Arm(now, p.rollFor)
	return true
}

// CancelRoll ends a roll early, before its timer fires.
func (p *Player) CancelRoll() bool {
	if p.stance != StanceRolling {
		return false
	}
	p.rollEnd.Cancel()
	p.stance = StanceGrounded
	p.mode = ModeRun
	return true
}

// EndRollOnImpact ends a roll because it went through an obstacle.
func (p *Player) EndRollOnImpact() {
	p.CancelRoll()
}

// ExpireRoll ends the roll if its timer is due. It returns true exactly once
// per roll, and never for a roll that was cancelled.
func (p *Player) ExpireRoll(now time.Duration) bool {
	if !p.rollEnd.Fire(now) {
		return false
	}
	if p.stance != StanceRolling {
		return false
	}
	p.stance = StanceGrounded
	p.mode = ModeRun
	return true
}

// Knockout enters the dizzy pose for the rest of the run.
func (p *Player) Knockout() {
	p.rollEnd.Cancel()
	p.stance = StanceDizzy
	p.mode = ModeDizzy
}

// Integrate applies one tick of gravity. Rolling and dizzy foxes do not
// move. It returns true on the tick the falling cue should play: once per
// airborne excursion, when descending past the cue line.
func (p *Player) Integrate() (fallCue bool) {
	switch p.stance {
	case StanceGrounded:
		p.mode = ModeRun
		return false
	case StanceAirborne:
	default:
		return false
	}

	p.Vel += p.gravity
	p.Y += p.Vel

	if p.Vel < 0 {
		p.mode = ModeJump
	} else if p.Vel > 0 {
		p.mode = ModeFall
	}

	if p.Vel > 0 && p.Y >= p.fallCueY && !p.fallCued {
		p.fallCued = true
		fallCue = true
	}

	if p.Y >= p.ground {
		p.Y = p.ground
		p.Vel = 0
		p.stance = StanceGrounded
		p.mode = ModeRun
		p.fallCued = false
	}
	return fallCue
}

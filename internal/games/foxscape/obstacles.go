package foxscape

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

// Kind is an obstacle type.
type Kind int

const (
	KindLow Kind = iota
	KindSpike
	KindTallBarrier
)

func (k Kind) String() string {
	switch k {
	case KindLow:
		return "low"
	case KindSpike:
		return "spike"
	case KindTallBarrier:
		return "tallBarrier"
	default:
		return "unknown"
	}
}

// Sprite returns the image drawn for this kind.
func (k Kind) Sprite() core.Sprite {
	switch k {
	case KindSpike:
		return core.SpriteSpike
	case KindTallBarrier:
		return core.SpriteBigTrunk
	default:
		return core.SpriteTrunk
	}
}

// Obstacle is one active obstacle scrolling towards the fox.
type Obstacle struct {
	Kind   Kind
	X, Y   float64
	W, H   float64
	Speed  float64
	Scored bool
}

// Rect returns the collision rectangle.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}

// ObstacleField holds the active obstacles in spawn order.
type ObstacleField struct {
	items []Obstacle
	cfg   config.ObstaclesConfig
	field config.FieldConfig
}

// NewObstacleField creates an empty field.
func NewObstacleField(cfg config.FoxConfig) *ObstacleField {
	f := &ObstacleField{items: make([]Obstacle, 0, 8)}
	f.Configure(cfg)
	return f
}

// Configure updates sizes and speed for future spawns.
func (f *ObstacleField) Configure(cfg config.FoxConfig) {
	f.cfg = cfg.Obstacles
	f.field = cfg.Field
}

// Clear drops every obstacle.
func (f *ObstacleField) Clear() {
	f.items = f.items[:0]
}

// Len returns the number of active obstacles.
func (f *ObstacleField) Len() int {
	return len(f.items)
}

// Items returns the active obstacles, oldest first. The slice is owned by
// the field.
func (f *ObstacleField) Items() []Obstacle {
	return f.items
}

// At returns a pointer to obstacle i for in-place updates.
func (f *ObstacleField) At(i int) *Obstacle {
	return &f.items[i]
}

// Remove deletes obstacle i, keeping order.
func (f *ObstacleField) Remove(i int) {
	f.items = append(f.items[:i], f.items[i+1:]...)
}

// Spawn adds an obstacle of kind at the right edge, standing on the ground.
func (f *ObstacleField) Spawn(kind Kind) Obstacle {
	size := f.size(kind)
	o := Obstacle{
		Kind:  kind,
		X:     f.field.Width,
		Y:     f.field.Height - size.Height - f.cfg.GroundMargin,
		W:     size.Width,
		H:     size.Height,
		Speed: f.cfg.Speed,
	}
	f.items = append(f.items, o)
	return o
}

// Add inserts a prepared obstacle. Used by tests and replays.
func (f *ObstacleField) Add(o Obstacle) {
	f.items = append(f.items, o)
}

func (f *ObstacleField) size(kind Kind) config.SizeConfig {
	switch kind {
	case KindSpike:
		return f.cfg.Spike
	case KindTallBarrier:
		return f.cfg.TallBarrier
	default:
		return f.cfg.Low
	}
}

// Move scrolls every obstacle left by its speed times multiplier and drops
// the ones whose right edge has passed the left boundary. Iterates back to
// front so removal never skips an element.
func (f *ObstacleField) Move(multiplier float64) {
	for i := len(f.items) - 1; i >= 0; i-- {
		o := &f.items[i]
		o.X -= o.Speed * multiplier
		if o.X+o.W < 0 {
			f.Remove(i)
		}
	}
}

// Scheduler decides when obstacles appear. It keeps two deadlines: the next
// spawn, and the moment tall barriers join the random pool.
type Scheduler struct {
	rng       *rand.Rand
	cfg       config.ScheduleConfig
	nextSpawn time.Duration
	nextTall  time.Duration
}

// NewScheduler seeds both deadlines relative to now.
func NewScheduler(cfg config.ScheduleConfig, rng *rand.Rand, now time.Duration) *Scheduler {
	s := &Scheduler{rng: rng, cfg: cfg}
	s.nextSpawn = now + s.uniform(cfg.FirstSpawn)
	s.nextTall = now + s.uniform(cfg.FirstTall)
	return s
}

// Configure swaps the windows used for future draws. Pending deadlines stay.
func (s *Scheduler) Configure(cfg config.ScheduleConfig) {
	s.cfg = cfg
}

// Deadlines returns the next spawn and tall-barrier eligibility times.
func (s *Scheduler) Deadlines() (spawn, tall time.Duration) {
	return s.nextSpawn, s.nextTall
}

// Poll returns the kind to spawn at now, if the spawn deadline has passed.
// At most one obstacle is produced per call.
func (s *Scheduler) Poll(now time.Duration) (Kind, bool) {
	if now < s.nextSpawn {
		return 0, false
	}

	pool := []Kind{KindLow, KindSpike}
	if now > s.nextTall {
		pool = append(pool, KindTallBarrier)
	}

	kind := pool[s.rng.Intn(len(pool))]
	if kind == KindTallBarrier {
		s.nextTall = now + s.uniform(s.cfg.Tall)
	}
	s.nextSpawn = now + s.uniform(s.cfg.Spawn)
	return kind, true
}

// uniform draws a duration from [min, max).
func (s *Scheduler) uniform(r config.RangeMS) time.Duration {
	lo, hi := r.Bounds()
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.rng.Float64()*float64(hi-lo))
}

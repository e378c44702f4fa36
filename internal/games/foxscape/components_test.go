package foxscape

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/foxscape/internal/config"
	"github.com/vovakirdan/foxscape/internal/core"
)

func TestPlayerStanceExclusive(t *testing.T) {
	p := NewPlayer(config.DefaultFoxConfig())
	p.Reset()

	if !p.Roll(0) {
		t.Fatal("grounded fox should roll")
	}
	if p.Jump() {
		t.Error("rolling fox jumped without cancelling")
	}
	if !p.CancelRoll() || !p.Jump() {
		t.Fatal("cancel then jump should succeed")
	}
	if p.Roll(0) {
		t.Error("airborne fox rolled")
	}
	if p.Vel != -15 || p.Mode() != ModeJump {
		t.Errorf("vel=%v mode=%v, want -15/jump", p.Vel, p.Mode())
	}
}

func TestPlayerExpireOnce(t *testing.T) {
	p := NewPlayer(config.DefaultFoxConfig())
	p.Reset()
	p.Roll(time.Second)

	if p.ExpireRoll(3999 * time.Millisecond) {
		t.Fatal("expired early")
	}
	if !p.ExpireRoll(4 * time.Second) {
		t.Fatal("did not expire at deadline")
	}
	if p.ExpireRoll(5 * time.Second) {
		t.Error("expired twice")
	}

	p.Roll(0)
	p.EndRollOnImpact()
	if p.ExpireRoll(10 * time.Second) {
		t.Error("timer fired after the roll ended on impact")
	}
}

func TestPlayerKnockout(t *testing.T) {
	p := NewPlayer(config.DefaultFoxConfig())
	p.Reset()
	p.Roll(0)
	p.Knockout()

	if p.Mode() != ModeDizzy || p.Stance() != StanceDizzy {
		t.Errorf("mode=%v stance=%v", p.Mode(), p.Stance())
	}
	if p.RollPending() || p.ExpireRoll(time.Hour) {
		t.Error("knockout should cancel the roll timer")
	}
	if p.Jump() || p.Roll(0) {
		t.Error("dizzy fox accepted input")
	}
	if p.Integrate() {
		t.Error("dizzy fox cued a fall")
	}
}

func TestPlayerHitbox(t *testing.T) {
	cfg := config.DefaultFoxConfig()
	p := NewPlayer(cfg)
	p.Y = 300

	hb := p.Hitbox()
	if hb.X != 2 || hb.Y != 300 {
		t.Errorf("hitbox origin = (%v,%v)", hb.X, hb.Y)
	}
	if want := 575*0.2 - 17; math.Abs(hb.W-want) > 1e-9 {
		t.Errorf("hitbox width = %v, want %v", hb.W, want)
	}
	if want := 523 * 0.2; math.Abs(hb.H-want) > 1e-9 {
		t.Errorf("hitbox height = %v, want %v", hb.H, want)
	}
}

func TestModeNames(t *testing.T) {
	if ModeGetHit.String() != "getHit" || ModeRoll.String() != "roll" || Mode(42).String() != "unknown" {
		t.Error("unexpected mode names")
	}
	if !ModeFall.Airborne() || ModeRoll.Airborne() {
		t.Error("Airborne wrong")
	}
}

func TestSheetFrames(t *testing.T) {
	cfg := config.DefaultFoxConfig()
	s := NewSheet(cfg.Player)

	tests := []struct {
		mode Mode
		tick int
		want int
	}{
		{ModeRun, 0, 0},
		{ModeRun, 4, 0},
		{ModeRun, 5, 1},
		{ModeRun, 44, 8},
		{ModeRun, 45, 0},
		{ModeDizzy, 54, 10},
		{ModeDizzy, 55, 0},
		{ModeGetHit, 20, 0},
		{ModeIdle, -3, 0},
	}
	for _, tt := range tests {
		if got := s.Frame(tt.mode, tt.tick); got != tt.want {
			t.Errorf("Frame(%v, %d) = %d, want %d", tt.mode, tt.tick, got, tt.want)
		}
	}

	src := s.Src(ModeRun, 2)
	if src.X != 1150 || src.Y != 3*523 || src.W != 575 || src.H != 523 {
		t.Errorf("Src(run, 2) = %+v", src)
	}
	dst := s.Dst(392)
	if dst.X != 0 || dst.Y != 392 || dst.W != 575*cfg.Player.Scale || dst.H != 523*cfg.Player.Scale {
		t.Errorf("Dst(392) = %+v", dst)
	}
}

func TestObstacleFieldSpawnAndCull(t *testing.T) {
	cfg := config.DefaultFoxConfig()
	f := NewObstacleField(cfg)

	o := f.Spawn(KindLow)
	if o.X != 600 || o.Y != 440 || o.W != 60 || o.H != 60 || o.Speed != 2 {
		t.Fatalf("spawned %+v", o)
	}
	tall := f.Spawn(KindTallBarrier)
	if tall.Y != 260 || tall.H != 240 {
		t.Errorf("tall barrier %+v", tall)
	}
	f.Remove(1)

	for i := 0; i < 250; i++ {
		f.Move(1.2)
	}
	if f.Len() != 1 {
		t.Fatal("obstacle removed before its right edge left the field")
	}
	if x := f.Items()[0].X; math.Abs(x) > 1e-9 {
		t.Errorf("x after 250 ticks = %v, want 0", x)
	}

	for i := 0; i < 24; i++ {
		f.Move(1.2)
	}
	if f.Len() != 1 {
		t.Fatal("obstacle removed while still on screen")
	}
	f.Move(1.2)
	f.Move(1.2)
	if f.Len() != 0 {
		t.Errorf("obstacle not culled at x=%v", f.Items()[0].X)
	}
}

func TestObstacleFieldRemoveWhileMoving(t *testing.T) {
	f := NewObstacleField(config.DefaultFoxConfig())
	f.Add(Obstacle{X: -59, W: 60, Speed: 2})
	f.Add(Obstacle{X: 100, W: 60, Speed: 2})
	f.Add(Obstacle{X: -58.5, W: 60, Speed: 2})
	f.Add(Obstacle{X: 300, W: 60, Speed: 2})

	f.Move(1)
	if f.Len() != 2 {
		t.Fatalf("len = %d, want 2", f.Len())
	}
	if f.Items()[0].X != 98 || f.Items()[1].X != 298 {
		t.Errorf("survivors %+v", f.Items())
	}
}

func TestKindSprites(t *testing.T) {
	if KindLow.Sprite() != core.SpriteTrunk || KindSpike.Sprite() != core.SpriteSpike || KindTallBarrier.Sprite() != core.SpriteBigTrunk {
		t.Error("kind sprite mapping")
	}
}

func TestSchedulerWindows(t *testing.T) {
	cfg := config.DefaultFoxConfig().Schedule
	start := 500 * time.Millisecond
	s := NewScheduler(cfg, rand.New(rand.NewSource(3)), start)

	spawn, tall := s.Deadlines()
	if spawn < start+time.Second || spawn >= start+2*time.Second {
		t.Errorf("first spawn at %v", spawn)
	}
	if tall < start+10*time.Second || tall >= start+15*time.Second {
		t.Errorf("first tall gate at %v", tall)
	}

	if _, ok := s.Poll(spawn - time.Millisecond); ok {
		t.Error("spawned before the deadline")
	}

	firstTall := tall
	sawTall := false
	last := time.Duration(-1)
	for now := spawn; now < 10*time.Minute; now += 16 * time.Millisecond {
		prevTall := s.nextTall
		kind, ok := s.Poll(now)
		if !ok {
			continue
		}
		if last >= 0 && now-last < 1500*time.Millisecond {
			t.Fatalf("spawns %v apart", now-last)
		}
		last = now
		next, _ := s.Deadlines()
		if next < now+1500*time.Millisecond || next >= now+6*time.Second {
			t.Fatalf("next spawn %v after %v", next-now, now)
		}

		if kind == KindTallBarrier {
			if now <= firstTall || now <= prevTall {
				t.Fatalf("tall barrier at %v before gate %v", now, prevTall)
			}
			_, gate := s.Deadlines()
			if gate < now+10*time.Second || gate >= now+12*time.Second {
				t.Fatalf("tall gate pushed to %v after %v", gate-now, now)
			}
			sawTall = true
		}
	}
	if !sawTall {
		t.Error("no tall barrier in ten minutes")
	}
}

func TestSchedulerDeterministic(t *testing.T) {
	cfg := config.DefaultFoxConfig().Schedule
	run := func() []Kind {
		s := NewScheduler(cfg, rand.New(rand.NewSource(9)), 0)
		var kinds []Kind
		for now := time.Duration(0); now < 2*time.Minute; now += 16 * time.Millisecond {
			if k, ok := s.Poll(now); ok {
				kinds = append(kinds, k)
			}
		}
		return kinds
	}
	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("lengths %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("kind %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCooldown(t *testing.T) {
	var c Cooldown
	if c.Active() {
		t.Fatal("zero cooldown should be inactive")
	}

	c.Start(1.0)
	c.Deplete(0.25)
	if !c.Active() || c.Ratio() != 0.75 {
		t.Errorf("ratio = %v", c.Ratio())
	}
	c.Deplete(1)
	if c.Active() || c.Ratio() != 0 {
		t.Errorf("overdrained: active=%v ratio=%v", c.Active(), c.Ratio())
	}

	c.Start(math.NaN())
	if c.Active() || c.Ratio() != 0 {
		t.Error("NaN start should be ignored")
	}
	c.Start(4)
	if c.Ratio() != 1 {
		t.Errorf("ratio clamp = %v", c.Ratio())
	}
	c.Deplete(math.Inf(1))
	if c.Ratio() != 1 {
		t.Error("infinite depletion should be ignored")
	}
	c.Reset()
	if c.Active() {
		t.Error("reset left cooldown active")
	}
}

func TestParallaxScroll(t *testing.T) {
	p := NewParallax(config.DefaultFoxConfig())
	layers := p.Layers()
	if len(layers) != 4 {
		t.Fatalf("layers = %d", len(layers))
	}
	wantSprites := []core.Sprite{core.SpriteLayer1, core.SpriteLayer2, core.SpriteLayer3, core.SpriteLayer4}
	for i, l := range layers {
		if l.Sprite != wantSprites[i] {
			t.Errorf("layer %d sprite = %v", i, l.Sprite)
		}
	}

	for i := 0; i < 601; i++ {
		p.Scroll(1, false)
	}
	if x := p.Layers()[3].X; x != -1 {
		t.Errorf("ground after wrap = %v, want -1", x)
	}
	for _, l := range p.Layers() {
		if l.X > 0 || l.X <= -p.Width() {
			t.Errorf("%s out of range: %v", l.Name, l.X)
		}
	}

	sky := p.Layers()[0].X
	p.Scroll(1, true)
	if p.Layers()[3].X != -1 {
		t.Error("frozen ground layer moved on game over")
	}
	if p.Layers()[0].X == sky {
		t.Error("sky should drift on game over")
	}

	p.Scroll(math.NaN(), false)
	if x := p.Layers()[0].X; math.IsNaN(x) {
		t.Error("NaN leaked into layer position")
	}

	p.Reset()
	if p.Layers()[2].X != 0 {
		t.Error("reset did not rewind layers")
	}
}

func TestEffectFrames(t *testing.T) {
	e := NewEffect(config.DefaultFoxConfig().Effect)
	e.Trigger(100, 100, time.Second)

	if d := e.Dst(); d.X != 0 || d.Y != 10.5 || d.W != 200 || d.H != 179 {
		t.Errorf("dst = %+v", d)
	}

	tests := []struct {
		at      time.Duration
		frame   int
		playing bool
	}{
		{1050 * time.Millisecond, 0, true},
		{1150 * time.Millisecond, 1, true},
		{1399 * time.Millisecond, 3, true},
		{1400 * time.Millisecond, 0, false},
	}
	for _, tt := range tests {
		e.Advance(tt.at)
		if e.Frame() != tt.frame || e.Playing() != tt.playing {
			t.Errorf("at %v: frame=%d playing=%v, want %d/%v", tt.at, e.Frame(), e.Playing(), tt.frame, tt.playing)
		}
	}

	e.Trigger(0, 0, 0)
	e.Advance(250 * time.Millisecond)
	if src := e.Src(); src.X != 400 || src.W != 200 {
		t.Errorf("src = %+v", src)
	}
	e.Reset()
	if e.Playing() {
		t.Error("reset effect still playing")
	}
}

func TestParseBest(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"12", 12},
		{" 7\n", 7},
		{"+4", 4},
		{"-5", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"3.9", 3},
		{"1e3", 1000},
		{"12abc", 12},
		{"-", 0},
	}
	for _, tt := range tests {
		if got := ParseBest(tt.raw); got != tt.want {
			t.Errorf("ParseBest(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestScoreState(t *testing.T) {
	s := ScoreState{Best: 2}
	s.Add()
	if s.Promote() {
		t.Error("promoted a lower score")
	}
	s.Add()
	s.Add()
	if !s.Promote() || s.Best != 3 {
		t.Errorf("best = %d, want 3", s.Best)
	}
	if s.Promote() {
		t.Error("promoted an equal score")
	}
}

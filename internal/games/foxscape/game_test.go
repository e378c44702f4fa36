package foxscape

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/foxscape/internal/core"
)

type testRig struct {
	g     *Game
	clock *core.ManualClock
	store *core.MemoryStore
}

func newRig(t *testing.T, g *Game) *testRig {
	t.Helper()
	rig := &testRig{
		g:     g,
		clock: core.NewManualClock(0),
		store: core.NewMemoryStore(),
	}
	g.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
		Clock:    rig.clock,
		Store:    rig.store,
	})
	return rig
}

// started returns a running game whose scheduler never spawns on its own.
func started(t *testing.T, g *Game) *testRig {
	t.Helper()
	rig := newRig(t, g)
	rig.step(core.ActionStart)
	rig.holdSpawns()
	return rig
}

func (r *testRig) holdSpawns() {
	r.g.sched.nextSpawn = time.Duration(math.MaxInt64)
	r.g.sched.nextTall = time.Duration(math.MaxInt64)
}

func (r *testRig) step(actions ...core.Action) core.StepResult {
	return r.g.Step(core.FrameOf(actions...))
}

func (r *testRig) steps(n int) core.StepResult {
	var res core.StepResult
	for i := 0; i < n; i++ {
		res = r.step()
	}
	return res
}

// crash places an obstacle on top of the fox and steps into it.
func (r *testRig) crash() core.StepResult {
	r.g.field.Add(Obstacle{Kind: KindLow, X: 10, Y: 420, W: 60, H: 60, Speed: 2})
	return r.step()
}

func TestStartFromIdle(t *testing.T) {
	rig := newRig(t, New())

	res := rig.step()
	if res.State.Mode != core.ModeIdle {
		t.Fatalf("mode without start = %v, want idle", res.State.Mode)
	}
	if rig.g.Player().Mode() != ModeIdle {
		t.Errorf("idle pose = %v, want idle", rig.g.Player().Mode())
	}

	rig.step(core.ActionJump)
	if rig.g.State().Mode != core.ModeIdle {
		t.Fatal("jump should not start the game")
	}

	res = rig.step(core.ActionStart)
	if res.State.Mode != core.ModeRunning {
		t.Fatalf("mode = %v, want running", res.State.Mode)
	}
	if res.State.Ticks != 0 {
		t.Errorf("ticks = %d, want 0", res.State.Ticks)
	}
	p := rig.g.Player()
	if p.Mode() != ModeRun || p.Y != 392 {
		t.Errorf("player = %v at y=%v, want run at 392", p.Mode(), p.Y)
	}
	if !slices.Contains(res.Cues, core.CueMusicStart) {
		t.Errorf("cues = %v, want music start", res.Cues)
	}
}

func TestJumpArc(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	res := rig.step(core.ActionJump)
	if p.Mode() != ModeJump || !p.Airborne() {
		t.Fatalf("after jump: mode=%v airborne=%v", p.Mode(), p.Airborne())
	}
	if p.Vel != -14.5 {
		t.Errorf("velocity after jump tick = %v, want -14.5", p.Vel)
	}
	if !slices.Contains(res.Cues, core.CueJump) {
		t.Errorf("cues = %v, want jump", res.Cues)
	}

	apex := p.Y
	falls := 0
	prevVel := p.Vel
	for tick := 2; tick <= 59; tick++ {
		res = rig.step()
		for _, c := range res.Cues {
			if c == core.CueFall {
				falls++
			}
		}
		if tick < 59 {
			if !p.Airborne() {
				t.Fatalf("landed early at tick %d (y=%v)", tick, p.Y)
			}
			if p.Vel != prevVel+0.5 {
				t.Fatalf("tick %d: velocity %v, want %v", tick, p.Vel, prevVel+0.5)
			}
			switch {
			case p.Vel < 0 && p.Mode() != ModeJump:
				t.Fatalf("tick %d: rising in mode %v", tick, p.Mode())
			case p.Vel > 0 && p.Mode() != ModeFall:
				t.Fatalf("tick %d: falling in mode %v", tick, p.Mode())
			}
			prevVel = p.Vel
		}
		apex = min(apex, p.Y)
	}

	if p.Airborne() || p.Y != 392 || p.Vel != 0 || p.Mode() != ModeRun {
		t.Errorf("after landing: airborne=%v y=%v vel=%v mode=%v", p.Airborne(), p.Y, p.Vel, p.Mode())
	}
	if apex != 174.5 {
		t.Errorf("apex = %v, want 174.5", apex)
	}
	if falls != 1 {
		t.Errorf("fall cue played %d times, want 1", falls)
	}

	rig.steps(10)
	if p.Y != 392 || p.Vel != 0 {
		t.Errorf("landing not pinned: y=%v vel=%v", p.Y, p.Vel)
	}
}

func TestJumpIgnoredInAir(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	rig.step(core.ActionJump)
	rig.steps(5)
	vel := p.Vel
	res := rig.step(core.ActionJump)
	if p.Vel != vel+0.5 {
		t.Errorf("double jump changed velocity: %v", p.Vel)
	}
	if slices.Contains(res.Cues, core.CueJump) {
		t.Error("double jump should not cue")
	}
}

func TestRollExpires(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	res := rig.step(core.ActionRoll)
	if !p.Rolling() || p.Mode() != ModeRoll {
		t.Fatalf("roll did not start: stance=%v", p.Stance())
	}
	if !slices.Contains(res.Cues, core.CueRollStart) {
		t.Errorf("cues = %v, want roll start", res.Cues)
	}

	y := p.Y
	rig.clock.Advance(2999 * time.Millisecond)
	rig.step()
	if !p.Rolling() {
		t.Fatal("roll ended before its duration")
	}
	if p.Y != y {
		t.Errorf("rolling fox moved: %v -> %v", y, p.Y)
	}

	rig.clock.Advance(time.Millisecond)
	res = rig.step()
	if p.Rolling() {
		t.Fatal("roll still active after its duration")
	}
	if res.State.Cooldown != 1.0 {
		t.Errorf("cooldown after expiry = %v, want 1.0", res.State.Cooldown)
	}

	res = rig.step(core.ActionRoll)
	if p.Rolling() {
		t.Error("roll allowed during cooldown")
	}
	if res.State.Cooldown >= 1.0 {
		t.Errorf("cooldown did not drain: %v", res.State.Cooldown)
	}
}

func TestJumpCancelsRoll(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	rig.step(core.ActionRoll)
	rig.clock.Advance(time.Second)

	res := rig.step(core.ActionJump)
	if p.Rolling() || p.RollPending() {
		t.Fatal("jump should cancel the roll and its timer")
	}
	if !p.Airborne() || p.Mode() != ModeJump {
		t.Errorf("after cancel: stance=%v mode=%v", p.Stance(), p.Mode())
	}
	if c := res.State.Cooldown; c > 0.5 || c < 0.49 {
		t.Errorf("cooldown after cancel = %v, want just under 0.5", c)
	}
	if want := []core.Cue{core.CueRollStop, core.CueJump}; !slices.Equal(res.Cues, want) {
		t.Errorf("cues = %v, want %v", res.Cues, want)
	}

	before := rig.g.State().Cooldown
	rig.clock.Advance(3 * time.Second)
	res = rig.step()
	if res.State.Cooldown >= before {
		t.Errorf("cancelled timer fired: cooldown %v -> %v", before, res.State.Cooldown)
	}
}

func TestRollAndJumpSameTick(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	rig.step(core.ActionJump, core.ActionRoll)
	if p.Rolling() || !p.Airborne() {
		t.Errorf("jump+roll: stance=%v, want airborne", p.Stance())
	}
}

func TestRollIgnoredInAir(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	rig.step(core.ActionJump)
	rig.step(core.ActionRoll)
	if p.Rolling() || p.RollPending() {
		t.Error("airborne fox should not roll")
	}
}

func TestRollThroughObstacle(t *testing.T) {
	rig := started(t, New())
	p := rig.g.Player()

	rig.step(core.ActionRoll)
	rig.g.field.Add(Obstacle{Kind: KindSpike, X: 10, Y: 420, W: 60, H: 60, Speed: 2})

	res := rig.step()
	if res.State.GameOver {
		t.Fatal("rolling fox should smash the obstacle")
	}
	if res.State.Score != 1 {
		t.Errorf("score = %d, want 1", res.State.Score)
	}
	if rig.g.field.Len() != 0 {
		t.Errorf("obstacle not removed, %d left", rig.g.field.Len())
	}
	if p.Rolling() || p.RollPending() {
		t.Error("impact should end the roll")
	}
	if c := res.State.Cooldown; c >= 1.0 || c < 0.99 {
		t.Errorf("cooldown = %v, want just under 1.0", c)
	}
	if !rig.g.effect.Playing() {
		t.Error("impact effect not playing")
	}
	if want := []core.Cue{core.CueRollStop, core.CueImpact}; !slices.Equal(res.Cues, want) {
		t.Errorf("cues = %v, want %v", res.Cues, want)
	}
}

func TestRollThroughTwoObstacles(t *testing.T) {
	rig := started(t, New())

	rig.step(core.ActionRoll)
	rig.g.field.Add(Obstacle{Kind: KindLow, X: 10, Y: 420, W: 60, H: 60, Speed: 2})
	rig.g.field.Add(Obstacle{Kind: KindLow, X: 40, Y: 420, W: 60, H: 60, Speed: 2})

	res := rig.step()
	if !res.State.GameOver {
		t.Fatal("second overlap after the roll ended should be fatal")
	}
	if res.State.LastScore != 1 || res.State.HighScore != 1 {
		t.Errorf("last=%d best=%d, want 1/1", res.State.LastScore, res.State.HighScore)
	}
}

func TestPassiveScoreOnce(t *testing.T) {
	rig := started(t, NewClassic())

	// Above the fox, so it never collides.
	rig.g.field.Add(Obstacle{Kind: KindLow, X: 30, Y: 0, W: 60, H: 60, Speed: 2})

	rig.steps(30)
	if got := rig.g.State().Score; got != 0 {
		t.Fatalf("scored early: %d", got)
	}
	rig.step()
	if got := rig.g.State().Score; got != 1 {
		t.Fatalf("score after pass = %d, want 1", got)
	}
	rig.steps(10)
	if got := rig.g.State().Score; got != 1 {
		t.Errorf("obstacle scored again: %d", got)
	}
	if rig.g.field.Len() != 0 {
		t.Error("obstacle should have been culled")
	}
}

func TestCollisionAndRestart(t *testing.T) {
	rig := started(t, New())
	rig.g.score.Current = 3
	rig.g.score.Best = 1

	res := rig.crash()
	if !res.State.GameOver || res.State.Mode != core.ModeGameOver {
		t.Fatal("collision should end the run")
	}
	if !res.RunEnded {
		t.Error("RunEnded not set on the fatal tick")
	}
	if res.State.HighScore != 3 || res.State.Score != 0 || res.State.LastScore != 3 {
		t.Errorf("best=%d score=%d last=%d, want 3/0/3", res.State.HighScore, res.State.Score, res.State.LastScore)
	}
	if raw, _, _ := rig.store.Load(BestScoreKey(GameID)); raw != "3" {
		t.Errorf("stored best = %q, want 3", raw)
	}
	if !slices.Contains(res.Cues, core.CueMusicStop) {
		t.Errorf("cues = %v, want music stop", res.Cues)
	}
	if rig.g.Player().Mode() != ModeDizzy {
		t.Errorf("player mode = %v, want dizzy", rig.g.Player().Mode())
	}

	rig.clock.Advance(999 * time.Millisecond)
	res = rig.step(core.ActionJump)
	if !res.State.GameOver {
		t.Fatal("restart accepted before the debounce")
	}

	rig.clock.Advance(time.Millisecond)
	res = rig.step(core.ActionJump)
	if res.State.Mode != core.ModeRunning {
		t.Fatalf("mode after restart = %v, want running", res.State.Mode)
	}
	p := rig.g.Player()
	if res.State.Ticks != 0 || rig.g.field.Len() != 0 || res.State.Cooldown != 0 {
		t.Errorf("run state not reset: ticks=%d obstacles=%d cooldown=%v", res.State.Ticks, rig.g.field.Len(), res.State.Cooldown)
	}
	if p.Y != 392 || p.Vel != 0 || p.Mode() != ModeRun {
		t.Errorf("player not reset: y=%v vel=%v mode=%v", p.Y, p.Vel, p.Mode())
	}
	if res.State.HighScore != 3 {
		t.Errorf("best lost on restart: %d", res.State.HighScore)
	}
	if !slices.Contains(res.Cues, core.CueMusicStart) {
		t.Errorf("cues = %v, want music start", res.Cues)
	}
}

func TestRestartKey(t *testing.T) {
	rig := started(t, New())
	rig.crash()
	rig.clock.Advance(time.Second)

	rig.step(core.ActionRoll)
	if !rig.g.State().GameOver {
		t.Fatal("roll should not restart")
	}
	rig.step(core.ActionRestart)
	if rig.g.State().Mode != core.ModeRunning {
		t.Error("restart key should restart after the debounce")
	}
}

func TestGameOverFreezesWorld(t *testing.T) {
	rig := started(t, New())
	rig.g.field.Add(Obstacle{Kind: KindLow, X: 300, Y: 440, W: 60, H: 60, Speed: 2})
	rig.crash()

	x := rig.g.Obstacles()[0].X
	rate := rig.g.Rate()
	ground := rig.g.parallax.Layers()[3].X
	sky := rig.g.parallax.Layers()[0].X
	ticks := rig.g.State().Ticks

	rig.steps(20)
	if got := rig.g.Obstacles()[0].X; got != x {
		t.Errorf("obstacle moved in game over: %v -> %v", x, got)
	}
	if rig.g.Rate() != rate {
		t.Errorf("ramp advanced in game over: %v -> %v", rate, rig.g.Rate())
	}
	if got := rig.g.parallax.Layers()[3].X; got != ground {
		t.Errorf("ground layer moved in game over: %v -> %v", ground, got)
	}
	if rig.g.parallax.Layers()[0].X == sky {
		t.Error("sky layer should keep drifting")
	}
	if got := rig.g.State().Ticks; got != ticks+20 {
		t.Errorf("ticks = %d, want %d for the dizzy animation", got, ticks+20)
	}
}

func TestBestScoreMonotonic(t *testing.T) {
	rig := started(t, New())

	best := 0
	for _, score := range []int{3, 1, 5, 2, 5, 0} {
		rig.g.score.Current = score
		rig.crash()
		best = max(best, score)

		raw, ok, err := rig.store.Load(BestScoreKey(GameID))
		if err != nil {
			t.Fatal(err)
		}
		if best > 0 && (!ok || ParseBest(raw) != best) {
			t.Errorf("after run scoring %d: stored %q, want %d", score, raw, best)
		}
		if got := rig.g.State().HighScore; got != best {
			t.Errorf("after run scoring %d: best %d, want %d", score, got, best)
		}

		rig.clock.Advance(time.Second)
		rig.step(core.ActionRestart)
		rig.holdSpawns()
	}
}

func TestBestScoreLoaded(t *testing.T) {
	tests := []struct {
		stored string
		want   int
	}{
		{"42", 42},
		{"garbage", 0},
		{"", 0},
		{"-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			store := core.NewMemoryStore()
			_ = store.Save(BestScoreKey(GameID), tt.stored)

			g := New()
			g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 1, Store: store})
			if got := g.State().HighScore; got != tt.want {
				t.Errorf("best = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestVariantsKeepSeparateBest(t *testing.T) {
	if BestScoreKey(GameID) == BestScoreKey(ClassicGameID) {
		t.Error("variants should not share a best-score key")
	}
}

func TestClassicVariant(t *testing.T) {
	rig := started(t, NewClassic())

	if rig.g.AudioEnabled() {
		t.Error("classic should be silent")
	}
	res := rig.step(core.ActionJump)
	if len(res.Cues) != 0 {
		t.Errorf("classic emitted cues: %v", res.Cues)
	}
	rig.steps(100)
	if rig.g.Rate() != 1.0 {
		t.Errorf("classic rate = %v, want constant 1.0", rig.g.Rate())
	}
}

func TestRampAdvancesAndResets(t *testing.T) {
	rig := started(t, New())

	rig.steps(100)
	if rate := rig.g.Rate(); rate <= 1.0 || rate > 1.011 {
		t.Errorf("rate after 100 ticks = %v", rate)
	}

	rig.crash()
	rig.clock.Advance(time.Second)
	rig.step(core.ActionRestart)
	if rig.g.Rate() != 1.0 {
		t.Errorf("rate after restart = %v, want 1.0", rig.g.Rate())
	}
}

func TestSpawnsWithSimulatedClock(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 5})
	g.Step(core.FrameOf(core.ActionStart))

	spawned := false
	for i := 0; i < 130 && !spawned; i++ {
		g.Step(core.NewInputFrame())
		spawned = len(g.Obstacles()) > 0
	}
	if !spawned {
		t.Fatal("no obstacle within the first spawn window")
	}
	o := g.Obstacles()[0]
	if o.Kind == KindTallBarrier {
		t.Error("tall barrier before its gate")
	}
	if o.X > 600 || o.X < 590 {
		t.Errorf("spawned obstacle at x=%v, want near the right edge", o.X)
	}
}

func TestGameDeterminism(t *testing.T) {
	play := func() (core.GameState, []Obstacle) {
		g := New()
		g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 12345})
		g.Step(core.FrameOf(core.ActionStart))

		var st core.GameState
		for i := 0; i < 1500; i++ {
			in := core.NewInputFrame()
			if i%45 == 0 {
				in.Set(core.ActionJump)
			}
			if i%200 == 100 {
				in.Set(core.ActionRoll)
			}
			if i%300 == 299 {
				in.Set(core.ActionRestart)
			}
			st = g.Step(in).State
		}
		return st, slices.Clone(g.Obstacles())
	}

	s1, o1 := play()
	s2, o2 := play()
	if s1 != s2 {
		t.Errorf("states differ:\n%+v\n%+v", s1, s2)
	}
	if !slices.Equal(o1, o2) {
		t.Errorf("obstacles differ:\n%v\n%v", o1, o2)
	}
}

func TestResetIsolatesSessions(t *testing.T) {
	rig := started(t, New())
	rig.g.score.Current = 4
	rig.crash()

	rig.g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 2, Clock: rig.clock, Store: rig.store})
	st := rig.g.State()
	if st.Mode != core.ModeIdle || st.Score != 0 || st.Ticks != 0 {
		t.Errorf("after reset: %+v", st)
	}
	if st.HighScore != 4 {
		t.Errorf("best not reloaded from store: %d", st.HighScore)
	}
	if len(rig.g.Obstacles()) != 0 {
		t.Error("obstacles survived reset")
	}
}

func TestRegistered(t *testing.T) {
	g := New()
	if g.ID() != GameID || g.Title() == "" {
		t.Errorf("id=%q title=%q", g.ID(), g.Title())
	}
	c := NewClassic()
	if c.ID() != ClassicGameID {
		t.Errorf("classic id = %q", c.ID())
	}
}

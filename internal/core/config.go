package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// It carries everything the platform owns: output size, tick rate, the RNG
// seed and the collaborators a game reads time and persisted values from.
type RuntimeConfig struct {
	ScreenW  int   // Output width in cells (terminal) or pixels (window)
	ScreenH  int   // Output height
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// Clock is read for spawn deadlines, the roll timer, effect frames and
	// the restart debounce. Nil means simulated time advanced by one tick
	// interval per Step.
	Clock Clock

	// Store persists the best score. Nil means an in-memory store.
	Store ScalarStore
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the duration of one simulation tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Mode is the top-level state of a run.
type Mode int

const (
	ModeIdle Mode = iota
	ModeRunning
	ModeGameOver
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Mode      Mode
	Score     int     // Current run score
	HighScore int     // Persisted best score
	LastScore int     // Score of the most recently finished run
	GameOver  bool    // Whether the run has ended
	Cooldown  float64 // Roll cooldown ratio in [0, 1]
	Ticks     int     // Animation tick counter
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Cues lists the audio triggers fired during this tick, in order.
	Cues []Cue
	// RunEnded is set on the tick a run ends, so the platform can record it.
	RunEnded bool
}

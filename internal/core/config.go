package core

// RuntimeConfig contains configuration passed to the game on Reset.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Simulation ticks per second (default 60)
	Seed     int64  // RNG seed for deterministic obstacle generation
	Player   string // Name recorded with scores
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		Player:   "guest",
	}
}

// GameState represents the current state of the game as seen by the host.
type GameState struct {
	Score    int
	Health   int
	TimeLeft float64 // Seconds left on the countdown
	GameOver bool    // Health ran out
	Victory  bool    // Countdown elapsed
	Paused   bool
}

// Finished reports whether the run has ended either way.
func (s GameState) Finished() bool {
	return s.GameOver || s.Victory
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State  GameState
	Hit    bool // Damage was taken this tick
	Passed bool // An obstacle was cleared this tick
}

// Package flappy hosts the voice-controlled flappy engine inside the
// terminal platform: it turns input frames into flaps, forwards audio
// buffers, and draws the world into a core.Screen.
package flappy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voiceflap/internal/core"
	"github.com/vovakirdan/voiceflap/internal/engine"
)

// ID is the identifier scores are stored under.
const ID = "voiceflap"

// Game adapts engine.Session to the platform's tick loop.
type Game struct {
	session *engine.Session
	config  core.RuntimeConfig
	logger  *log.Logger
	paused  bool

	hit    bool // Damage taken during the current tick
	passed bool // Obstacle cleared during the current tick
	flash  int  // Ticks left to highlight the actor after a hit
}

// New creates a game. A nil logger discards output.
func New(logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Voice Flap"
}

// Reset starts a new run. The seed in cfg makes obstacle generation
// reproducible.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false
	g.flash = 0
	g.session = engine.New(
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(g.logger),
		engine.WithListener(g.onEvent),
	)
	g.logger.Debug("run started", "seed", cfg.Seed, "player", cfg.Player)
}

// Resize updates the screen dimensions without restarting the run.
func (g *Game) Resize(w, h int) {
	g.config.ScreenW = w
	g.config.ScreenH = h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.hit, g.passed = false, false

	if g.session.Status().Terminal() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionFlap) {
		g.session.Flap()
	}
	g.session.Update()

	if g.flash > 0 {
		g.flash--
	}

	return core.StepResult{
		State:  g.State(),
		Hit:    g.hit,
		Passed: g.passed,
	}
}

// SubmitAudio forwards one microphone buffer to the engine. Audio is
// ignored while paused. Reports whether it produced a flap.
func (g *Game) SubmitAudio(samples []int16) bool {
	if g.paused || g.session == nil {
		return false
	}
	return g.session.SubmitAudio(samples)
}

// Frames returns the number of simulated frames in the current run.
func (g *Game) Frames() int {
	if g.session == nil {
		return 0
	}
	return g.session.Frame()
}

// Session exposes the underlying simulation for read-only queries.
func (g *Game) Session() *engine.Session {
	return g.session
}

func (g *Game) onEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventHit:
		g.hit = true
		g.flash = g.config.TickRate / 4
	case engine.EventPassed:
		g.passed = true
	case engine.EventGameOver, engine.EventVictory:
		st := g.session.Status()
		g.logger.Info("run finished",
			"result", ev.Kind.String(),
			"score", st.Score,
			"health", st.Health,
			"frames", g.session.Frame(),
		)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Status()
	return core.GameState{
		Score:    st.Score,
		Health:   st.Health,
		TimeLeft: st.TimeLeft,
		GameOver: st.GameOver,
		Victory:  st.Victory,
		Paused:   g.paused,
	}
}

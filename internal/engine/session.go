// Package engine implements the per-frame simulation of a voice-controlled
// flappy game: gravity, procedurally spawned obstacles, collision response,
// scoring, and the win/loss conditions.
//
// A Session is not safe for concurrent use. The host calls Initialize once,
// then Update (or Step) once per frame, with Flap, SubmitAudio and the
// query methods interleaved from the same goroutine.
package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Rand is the random source used by the spawner. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Actor is the player-controlled body. Its horizontal position and radius
// are the ActorX and ActorRadius constants.
type Actor struct {
	Y        float64
	Velocity float64
}

// Top returns the y-coordinate of the actor's upper edge.
func (a Actor) Top() float64 { return a.Y - ActorRadius }

// Bottom returns the y-coordinate of the actor's lower edge.
func (a Actor) Bottom() float64 { return a.Y + ActorRadius }

// Obstacle is a pipe with a vertical gap.
type Obstacle struct {
	X                 float64 // Left edge
	GapCenter         float64
	GapHeight         float64
	NextSpawnDistance float64 // Distance to the obstacle spawned after this one
	Passed            bool    // Score already awarded
	Collided          bool    // Damage already applied
}

// Right returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) Right() float64 { return o.X + PipeWidth }

// GapTop returns the y-coordinate of the upper gap boundary.
func (o Obstacle) GapTop() float64 { return o.GapCenter - o.GapHeight/2 }

// GapBottom returns the y-coordinate of the lower gap boundary.
func (o Obstacle) GapBottom() float64 { return o.GapCenter + o.GapHeight/2 }

// Status is the scoreboard part of the simulation state.
type Status struct {
	Score    int
	TimeLeft float64
	Health   int
	GameOver bool
	Victory  bool
}

// Terminal reports whether the run has ended.
func (s Status) Terminal() bool {
	return s.GameOver || s.Victory
}

// Vector encodes the status as [score, timeLeft, gameOver, victory, health]
// with flags as 0 or 1.
func (s Status) Vector() []float64 {
	return []float64{
		float64(s.Score),
		s.TimeLeft,
		boolToFloat(s.GameOver),
		boolToFloat(s.Victory),
		float64(s.Health),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Session owns the complete state of one run.
type Session struct {
	actor     Actor
	obstacles []Obstacle
	status    Status
	cooldown  int // Frames before another audio flap is accepted
	frame     int

	rng      Rand
	logger   *log.Logger
	listener func(Event)
	events   []Event // Events emitted during the current Step
}

// Option configures a Session.
type Option func(*Session)

// WithSeed seeds the spawner with a math/rand source.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects the spawner's random source.
func WithRand(r Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithLogger sets the logger used for run transitions.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithListener registers a callback invoked synchronously for every event.
func WithListener(fn func(Event)) Option {
	return func(s *Session) {
		s.listener = fn
	}
}

// New creates an initialized session.
func New(opts ...Option) *Session {
	s := &Session{
		obstacles: make([]Obstacle, 0, 8),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(1))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.Initialize()
	return s
}

// Initialize resets the run: actor back at the start, full health and
// timer, flags cleared, and a single freshly generated obstacle.
func (s *Session) Initialize() {
	s.actor = Actor{Y: StartY}
	s.status = Status{
		TimeLeft: RoundTime,
		Health:   MaxHealth,
	}
	s.cooldown = 0
	s.frame = 0
	s.events = s.events[:0]

	s.obstacles = s.obstacles[:0]
	s.obstacles = append(s.obstacles, Obstacle{
		X:                 WorldWidth,
		GapCenter:         s.randomGapCenter(),
		GapHeight:         ActorDiameter * InitialGapFactor,
		NextSpawnDistance: s.randomSpawnDistance(),
	})
}

// Actor returns the actor state.
func (s *Session) Actor() Actor {
	return s.actor
}

// Status returns the current status.
func (s *Session) Status() Status {
	return s.status
}

// StatusVector returns Status().Vector().
func (s *Session) StatusVector() []float64 {
	return s.status.Vector()
}

// Frame returns the number of simulated frames since Initialize.
func (s *Session) Frame() int {
	return s.frame
}

// Obstacles returns a copy of the live obstacles, oldest first.
func (s *Session) Obstacles() []Obstacle {
	out := make([]Obstacle, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

// ObstacleData returns the obstacles as flat (x, gapCenter, gapHeight)
// triples, oldest first.
func (s *Session) ObstacleData() []float64 {
	out := make([]float64, 0, len(s.obstacles)*3)
	for _, o := range s.obstacles {
		out = append(out, o.X, o.GapCenter, o.GapHeight)
	}
	return out
}

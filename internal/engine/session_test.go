package engine

import (
	"testing"
)

// fixedRand always returns the same index, which makes spawned obstacles
// predictable.
type fixedRand struct {
	n int
}

func (r fixedRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func TestInitialize(t *testing.T) {
	s := New(WithRand(fixedRand{n: 0}))

	if s.Actor().Y != StartY {
		t.Errorf("Initial Y = %f, expected %f", s.Actor().Y, StartY)
	}
	if s.Actor().Velocity != 0 {
		t.Errorf("Initial velocity = %f, expected 0", s.Actor().Velocity)
	}

	obs := s.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("Expected exactly one initial obstacle, got %d", len(obs))
	}
	if obs[0].X != WorldWidth {
		t.Errorf("Initial obstacle X = %f, expected %f", obs[0].X, WorldWidth)
	}
	if obs[0].GapHeight != ActorDiameter*InitialGapFactor {
		t.Errorf("Initial gap height = %f, expected %f", obs[0].GapHeight, ActorDiameter*InitialGapFactor)
	}
	if obs[0].GapCenter != GapCenterMin {
		t.Errorf("Initial gap center = %f, expected %d", obs[0].GapCenter, GapCenterMin)
	}
	if obs[0].NextSpawnDistance != SpawnDistanceMin {
		t.Errorf("Initial spawn distance = %f, expected %d", obs[0].NextSpawnDistance, SpawnDistanceMin)
	}

	want := []float64{0, RoundTime, 0, 0, MaxHealth}
	got := s.StatusVector()
	if len(got) != len(want) {
		t.Fatalf("Status vector length = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Status vector[%d] = %f, expected %f", i, got[i], want[i])
		}
	}
}

func TestInitializeClearsRun(t *testing.T) {
	s := New(WithSeed(7))

	for i := 0; i < 300; i++ {
		if i%12 == 0 {
			s.Flap()
		}
		s.Update()
	}
	s.status.GameOver = true
	s.cooldown = 5

	s.Initialize()

	st := s.Status()
	if st.Score != 0 || st.Health != MaxHealth || st.TimeLeft != RoundTime {
		t.Errorf("Initialize should restore defaults, got %+v", st)
	}
	if st.GameOver || st.Victory {
		t.Error("Initialize should clear terminal flags")
	}
	if s.Cooldown() != 0 {
		t.Errorf("Initialize should clear cooldown, got %d", s.Cooldown())
	}
	if len(s.Obstacles()) != 1 {
		t.Errorf("Initialize should leave one obstacle, got %d", len(s.Obstacles()))
	}
	if s.Frame() != 0 {
		t.Errorf("Initialize should clear frame counter, got %d", s.Frame())
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (*Session, []float64) {
		s := New(WithSeed(12345))
		var ys []float64
		for i := 0; i < 2000; i++ {
			if i%14 == 0 {
				s.Flap()
			}
			ys = append(ys, s.Update())
		}
		return s, ys
	}

	s1, ys1 := run()
	s2, ys2 := run()

	for i := range ys1 {
		if ys1[i] != ys2[i] {
			t.Fatalf("Determinism failed at frame %d: %f vs %f", i, ys1[i], ys2[i])
		}
	}
	if s1.Status() != s2.Status() {
		t.Errorf("Determinism failed: status %+v vs %+v", s1.Status(), s2.Status())
	}

	d1, d2 := s1.ObstacleData(), s2.ObstacleData()
	if len(d1) != len(d2) {
		t.Fatalf("Determinism failed: obstacle data length %d vs %d", len(d1), len(d2))
	}
	for i := range d1 {
		if d1[i] != d2[i] {
			t.Errorf("Determinism failed: obstacle data[%d] %f vs %f", i, d1[i], d2[i])
		}
	}
}

func TestObstacleData(t *testing.T) {
	s := New(WithRand(fixedRand{n: 0}))
	s.obstacles = []Obstacle{
		{X: 100, GapCenter: 900, GapHeight: 240},
		{X: 800, GapCenter: 1100, GapHeight: 320},
	}

	data := s.ObstacleData()
	if len(data)%3 != 0 {
		t.Fatalf("Obstacle data length %d is not a multiple of 3", len(data))
	}
	want := []float64{100, 900, 240, 800, 1100, 320}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %f, expected %f", i, data[i], want[i])
		}
	}

	// Returned slices are copies.
	obs := s.Obstacles()
	obs[0].X = -1
	if s.obstacles[0].X != 100 {
		t.Error("Obstacles() should return a copy")
	}
}

func TestListenerReceivesEvents(t *testing.T) {
	var got []EventKind
	s := New(
		WithRand(fixedRand{n: 0}),
		WithListener(func(ev Event) { got = append(got, ev.Kind) }),
	)

	s.Flap()
	s.obstacles = []Obstacle{{X: -30, GapCenter: StartY, GapHeight: 400, NextSpawnDistance: 600}}
	s.Update()

	if len(got) != 2 || got[0] != EventFlap || got[1] != EventPassed {
		t.Errorf("Expected [flap passed], got %v", got)
	}
}

func TestEventKindString(t *testing.T) {
	tests := []struct {
		kind EventKind
		want string
	}{
		{EventFlap, "flap"},
		{EventPassed, "passed"},
		{EventHit, "hit"},
		{EventGameOver, "game_over"},
		{EventVictory, "victory"},
		{EventKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EventKind(%d).String() = %q, expected %q", tt.kind, got, tt.want)
		}
	}
}

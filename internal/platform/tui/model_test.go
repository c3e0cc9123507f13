package tui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/voiceflap/internal/audio"
	"github.com/vovakirdan/voiceflap/internal/core"
	"github.com/vovakirdan/voiceflap/internal/games/flappy"
	"github.com/vovakirdan/voiceflap/internal/storage"
)

// stubGame finishes after a fixed number of steps.
type stubGame struct {
	steps     int
	finishAt  int
	score     int
	resets    int
	resized   [2]int
	audio     int
	lastInput core.InputFrame
	paused    bool
}

func (g *stubGame) ID() string { return "stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && !g.State().Finished() {
		g.steps++
	}
	g.lastInput = core.InputFrame{Actions: map[core.Action]bool{}}
	for a := range in.Actions {
		g.lastInput.Set(a)
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) SubmitAudio(samples []int16) bool {
	g.audio++
	return len(samples) > 0 && samples[0] != 0
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 1, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Health:   40,
		GameOver: g.finishAt > 0 && g.steps >= g.finishAt,
		Paused:   g.paused,
	}
}

func (g *stubGame) Frames() int { return g.steps }

// frameSource returns the given frames, then io.EOF.
type frameSource struct {
	frames [][]int16
	closed bool
}

func (s *frameSource) ReadFrame(buf []int16) (int, error) {
	if len(s.frames) == 0 {
		return 0, io.EOF
	}
	n := copy(buf, s.frames[0])
	s.frames = s.frames[1:]
	return n, nil
}

func (s *frameSource) Close() error {
	s.closed = true
	return nil
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	cfg.Player = "ann"
	return cfg
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStepsOnTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), Options{})

	if g.resets != 1 {
		t.Fatalf("expected one Reset from NewModel, got %d", g.resets)
	}

	m = press(t, m, runeKey('w'))
	m = tick(t, m)

	if g.steps != 1 {
		t.Errorf("steps = %d, want 1", g.steps)
	}
	if !g.lastInput.Has(core.ActionFlap) {
		t.Error("flap key was not delivered to Step")
	}

	m = tick(t, m)
	if g.lastInput.Has(core.ActionFlap) {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, testConfig(), Options{})
	m = tick(t, m)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if g.resets != 1 {
		t.Errorf("resize should not reset the run, resets = %d", g.resets)
	}
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, testConfig(), Options{})

	next, cmd := m.Update(runeKey('q'))
	m = next.(Model)
	if !m.Quitting() {
		t.Error("expected quitting")
	}
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &stubGame{finishAt: 3, score: 300}
	m := NewModel(g, testConfig(), Options{Store: store})

	for i := 0; i < 6; i++ {
		m = tick(t, m)
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Player != "ann" || runs[0].Score != 300 || runs[0].Health != 40 || runs[0].Frames != 3 {
		t.Errorf("saved run = %+v", runs[0])
	}

	best, _ := store.PlayerBest("ann")
	if best != 300 {
		t.Errorf("personal best = %d, want 300", best)
	}
	if !m.newBest {
		t.Error("expected new personal best flag")
	}
}

func TestModelShowsStoredBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.RecordBest("ann", 900); err != nil {
		t.Fatal(err)
	}

	g := &stubGame{finishAt: 2, score: 100}
	m := NewModel(g, testConfig(), Options{Store: store})
	if m.best != 900 {
		t.Fatalf("loaded best = %d, want 900", m.best)
	}
	if strings.Contains(m.View(), "Personal best") {
		t.Error("best should only be shown once the run ends")
	}

	for i := 0; i < 3; i++ {
		m = tick(t, m)
	}
	if m.newBest {
		t.Error("a lower score should not be a new best")
	}
	if !strings.Contains(m.View(), "Personal best: 900") {
		t.Error("finished view should show the stored personal best")
	}
}

func TestModelRestartAfterFinish(t *testing.T) {
	g := &stubGame{finishAt: 1}
	m := NewModel(g, testConfig(), Options{})

	// Restart is ignored while running.
	m = press(t, m, runeKey('r'))
	m = tick(t, m)
	if g.resets != 1 {
		t.Fatalf("restart during a run should be ignored, resets = %d", g.resets)
	}
	if !m.State().Finished() {
		t.Fatal("expected finished state")
	}

	m = press(t, m, runeKey('r'))
	m = tick(t, m)
	if g.resets != 2 {
		t.Errorf("expected restart, resets = %d", g.resets)
	}
	if m.State().Finished() {
		t.Error("state should be fresh after restart")
	}
}

func TestModelPolledAudio(t *testing.T) {
	g := &stubGame{}
	src := &frameSource{frames: [][]int16{{5000, 5000}, {0, 0}}}
	m := NewModel(g, testConfig(), Options{Audio: src, FrameSamples: 2})

	m = tick(t, m)
	m = tick(t, m)
	if g.audio != 2 {
		t.Errorf("audio frames delivered = %d, want 2", g.audio)
	}
	if m.AudioFlaps() != 1 {
		t.Errorf("audio flaps = %d, want 1", m.AudioFlaps())
	}

	// Source exhausted: audio stops without stopping the game.
	m = tick(t, m)
	m = tick(t, m)
	if m.audio != nil {
		t.Error("exhausted source should be dropped")
	}
	if g.audio != 2 {
		t.Errorf("no audio expected after EOF, got %d frames", g.audio)
	}
	if g.steps != 4 {
		t.Errorf("steps = %d, want 4", g.steps)
	}
}

func TestModelLiveAudioMessages(t *testing.T) {
	g := &stubGame{}
	src := &frameSource{frames: [][]int16{{9000, 9000}}}
	m := NewModel(g, testConfig(), Options{Audio: src, AudioLive: true, FrameSamples: 2})

	if m.Init() == nil {
		t.Fatal("expected init command")
	}

	// Live frames are not polled on ticks.
	m = tick(t, m)
	if g.audio != 0 {
		t.Fatalf("live source should not be polled, got %d", g.audio)
	}

	cmd := readAudioCmd(src, 2)
	msg := cmd()
	am, ok := msg.(AudioMsg)
	if !ok {
		t.Fatalf("expected AudioMsg, got %T", msg)
	}
	next, follow := m.Update(am)
	m = next.(Model)
	if g.audio != 1 || m.AudioFlaps() != 1 {
		t.Errorf("audio = %d flaps = %d", g.audio, m.AudioFlaps())
	}
	if follow == nil {
		t.Fatal("expected next read command")
	}

	done, ok := follow().(AudioDoneMsg)
	if !ok || done.Err != nil {
		t.Fatalf("expected clean AudioDoneMsg, got %#v", done)
	}
	next, _ = m.Update(done)
	m = next.(Model)
	if m.audio != nil {
		t.Error("audio should stop after AudioDoneMsg")
	}
}

func TestAudioDoneWithError(t *testing.T) {
	m := NewModel(&stubGame{}, testConfig(), Options{Audio: &frameSource{}, AudioLive: true})
	next, _ := m.Update(AudioDoneMsg{Err: errors.New("device lost")})
	if next.(Model).audio != nil {
		t.Error("audio should stop after an error")
	}
}

func TestModelViewShowsMicMeter(t *testing.T) {
	src := audio.NewClapSource(100, 1, 0)
	cfg := testConfig()
	m := NewModel(&stubGame{}, cfg, Options{Audio: src, FrameSamples: 100})
	m = tick(t, m)

	view := m.View()
	if !strings.Contains(view, "MIC") {
		t.Error("expected mic meter in view")
	}
	if !strings.Contains(view, "stub") {
		t.Error("expected game frame in view")
	}
}

func TestModelWithFlappy(t *testing.T) {
	cfg := testConfig()
	src := audio.NewClapSource(audio.FrameSize(audio.DefaultSampleRate, cfg.TickRate), 20, 0)
	m := NewModel(flappy.New(nil), cfg, Options{Audio: src})

	for i := 0; i < 120; i++ {
		m = tick(t, m)
	}

	if m.AudioFlaps() == 0 {
		t.Error("expected clap source to flap the actor")
	}
	if !strings.Contains(m.View(), "Score") {
		t.Error("expected HUD in view")
	}
}

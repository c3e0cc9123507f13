package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/voiceflap/internal/audio"
	"github.com/vovakirdan/voiceflap/internal/core"
	"github.com/vovakirdan/voiceflap/internal/engine"
	"github.com/vovakirdan/voiceflap/internal/storage"
)

// Game is what the host needs from a game: a fixed-step simulation that
// renders into a Screen and accepts microphone buffers.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(in core.InputFrame) core.StepResult
	SubmitAudio(samples []int16) bool
	Render(dst *core.Screen)
	State() core.GameState
	Frames() int
}

// Options wires the optional parts of a Model.
type Options struct {
	Store  *storage.Store // nil disables score saving
	Logger *log.Logger    // nil discards

	// Audio is polled once per tick, or read continuously when AudioLive
	// is set. nil plays with the keyboard only.
	Audio        audio.Source
	AudioLive    bool
	FrameSamples int

	ScreenshotDir string
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	audio        audio.Source
	audioLive    bool
	audioBuf     []int16
	micLevel     float64
	audioFlaps   int
	screenshotTo string

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run has been saved
	newBest    bool
	best       int // Player's stored personal best
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:        opts.Store,
		logger:       logger,
		config:       cfg,
		inputFrame:   core.NewInputFrame(),
		keyMapper:    NewKeyMapper(),
		audio:        opts.Audio,
		audioLive:    opts.AudioLive,
		screenshotTo: opts.ScreenshotDir,
	}
	if m.audio != nil {
		n := opts.FrameSamples
		if n <= 0 {
			n = audio.FrameSize(audio.DefaultSampleRate, cfg.TickRate)
		}
		m.audioBuf = make([]int16, n)
	}

	// Reset here rather than in Init: Init has a value receiver.
	game.Reset(cfg)
	m.gameState = game.State()
	m.loadBest()
	return m
}

// loadBest reads the player's personal best from the store.
func (m *Model) loadBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.PlayerBest(m.config.Player)
	if err != nil {
		m.logger.Warn("could not load personal best", "player", m.config.Player, "error", err)
		return
	}
	m.best = best
}

// Init starts the tick loop and, for live sources, the audio reader.
func (m Model) Init() tea.Cmd {
	if m.audio != nil && m.audioLive {
		return tea.Batch(tickCmd(m.config.TickRate), readAudioCmd(m.audio, len(m.audioBuf)))
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case AudioMsg:
		m.submitAudio(msg.Samples)
		return m, readAudioCmd(m.audio, len(m.audioBuf))

	case AudioDoneMsg:
		m.stopAudio(msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Leaving is only offered when nothing is running.
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.Finished() || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// handleResize processes window resize events. The run keeps going; only
// the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.Finished() {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	if m.audio != nil && !m.audioLive {
		m.pollAudio()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.Finished() && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.newBest = false
	m.backToMenu = false
	m.audioFlaps = 0
	m.inputFrame.Clear()
}

// pollAudio reads one frame from a file or synthetic source.
func (m *Model) pollAudio() {
	n, err := m.audio.ReadFrame(m.audioBuf)
	if n > 0 {
		m.submitAudio(m.audioBuf[:n])
	}
	if err != nil {
		m.stopAudio(ignoreEOF(err))
	}
}

func (m *Model) submitAudio(samples []int16) {
	m.micLevel = audio.Level(engine.RMS(samples))
	if m.game.SubmitAudio(samples) {
		m.audioFlaps++
	}
}

func (m *Model) stopAudio(err error) {
	if err != nil {
		m.logger.Warn("audio source failed", "error", err)
	} else {
		m.logger.Info("audio source ended")
	}
	m.audio = nil
	m.micLevel = 0
}

// saveRun stores the finished run and the player's best. Storage errors
// are logged and never interrupt play.
func (m *Model) saveRun() {
	st := m.gameState
	if m.store == nil {
		return
	}

	run := storage.Run{
		Player:  m.config.Player,
		Score:   st.Score,
		Health:  st.Health,
		Frames:  m.game.Frames(),
		Victory: st.Victory,
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}

	if st.Score > 0 {
		changed, err := m.store.RecordBest(m.config.Player, st.Score)
		if err != nil {
			m.logger.Warn("could not update personal best", "player", m.config.Player, "error", err)
		}
		m.newBest = changed
		if changed {
			m.best = st.Score
		}
	}
	m.logger.Info("run saved", "id", id, "player", m.config.Player, "score", st.Score, "best", m.newBest)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.screenshotTo == "" {
		return
	}

	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotTo, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotTo, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawOverlay()
	return RenderScreen(m.screen)
}

// drawOverlay adds host-side indicators on top of the game's frame.
func (m Model) drawOverlay() {
	w := m.screen.Width()

	if m.audio != nil {
		const meterWidth = 10
		filled := int(m.micLevel*meterWidth + 0.5)
		meter := "MIC " + strings.Repeat("|", filled) + strings.Repeat(".", meterWidth-filled)
		color := core.ColorGreen
		if m.micLevel > audio.Level(engine.AudioThreshold) {
			color = core.ColorBrightYellow
		}
		// Between the score on the left and the health bar on the right.
		m.screen.DrawTextColor((w-len(meter))/2, 0, meter, color)
	}

	switch {
	case m.newBest:
		m.screen.DrawTextCentered(m.screen.Height()-1, " NEW PERSONAL BEST! ")
	case m.store != nil && m.gameState.Finished():
		m.screen.DrawTextCentered(m.screen.Height()-1, fmt.Sprintf(" Personal best: %d ", m.best))
	}
}

// Quitting returns true if the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game screen.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// AudioFlaps returns how many flaps audio has produced in the current run.
func (m Model) AudioFlaps() int {
	return m.audioFlaps
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

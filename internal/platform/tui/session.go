package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/voiceflap/internal/core"
)

// SessionModel manages the full flow of one player: game -> scoreboard -> game.
// This is the top-level model used for local play and SSH sessions.
type SessionModel struct {
	game      Model
	board     ScoreboardModel
	showBoard bool
	width     int
	height    int
	quitting  bool
}

// NewSessionModel wraps a game model.
func NewSessionModel(game Model) SessionModel {
	return SessionModel{
		game:   game,
		width:  game.config.ScreenW,
		height: game.config.ScreenH,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.game = m.updateGame(msg)
		if m.showBoard {
			m.board = m.updateBoard(msg)
		}
		return m, nil

	case TickMsg, AudioMsg, AudioDoneMsg:
		// The tick chain and audio reader keep running behind the scoreboard.
		return m.stepGame(msg)

	case tea.KeyMsg:
		if m.showBoard {
			return m.handleBoardKey(msg)
		}
		return m.stepGame(msg)
	}

	if m.showBoard {
		m.board = m.updateBoard(msg)
	}
	return m, nil
}

func (m SessionModel) stepGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	if m.game.Quitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() && !m.showBoard {
		m.game.backToMenu = false
		m.board = NewScoreboardModel(m.game.store, m.game.config.Player, m.width, m.height)
		m.showBoard = true
	}
	return m, cmd
}

func (m SessionModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	m.board = next.(ScoreboardModel)

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		m.showBoard = false
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) Model {
	next, _ := m.game.Update(msg)
	return next.(Model)
}

func (m SessionModel) updateBoard(msg tea.Msg) ScoreboardModel {
	next, _ := m.board.Update(msg)
	return next.(ScoreboardModel)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}
	return m.game.View()
}

// ShowingScoreboard reports whether the scoreboard is on screen.
func (m SessionModel) ShowingScoreboard() bool {
	return m.showBoard
}

// Game returns the wrapped game model.
func (m SessionModel) Game() Model {
	return m.game
}

// Run starts the Bubble Tea program for a local player.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewSessionModel(NewModel(game, cfg, opts))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

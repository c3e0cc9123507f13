// Package tui provides the Bubble Tea host for voiceflap.
// It handles the terminal UI loop, input and audio delivery, score
// persistence, and serving the game over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/voiceflap/internal/audio"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// AudioMsg carries one frame read from a live audio source.
type AudioMsg struct {
	Samples []int16
}

// AudioDoneMsg reports that a live audio source ended or failed.
type AudioDoneMsg struct {
	Err error // nil on a clean end of stream
}

// readAudioCmd blocks on one frame from src. The model issues it again
// after each AudioMsg, so the source is only ever read by one goroutine.
func readAudioCmd(src audio.Source, frameSamples int) tea.Cmd {
	return func() tea.Msg {
		buf := make([]int16, frameSamples)
		n, err := src.ReadFrame(buf)
		if n > 0 {
			return AudioMsg{Samples: buf[:n]}
		}
		return AudioDoneMsg{Err: ignoreEOF(err)}
	}
}

package engine

// EventKind identifies something that happened during a frame.
type EventKind int

const (
	EventFlap     EventKind = iota // An impulse was applied
	EventPassed                    // An obstacle was passed and scored
	EventHit                       // Damage was applied for an obstacle
	EventGameOver                  // Health ran out
	EventVictory                   // The countdown elapsed
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlap:
		return "flap"
	case EventPassed:
		return "passed"
	case EventHit:
		return "hit"
	case EventGameOver:
		return "game_over"
	case EventVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Event is emitted to the session listener and collected in FrameResult.
type Event struct {
	Kind  EventKind
	Frame int
	// Index of the obstacle involved, -1 when none.
	Obstacle int
}

// FrameResult describes the outcome of one Step.
type FrameResult struct {
	Y          float64
	Blocked    bool
	Correction float64 // Uniform shift applied to every obstacle on a blocked frame
	Events     []Event
}

func (s *Session) emit(kind EventKind, obstacle int) {
	ev := Event{Kind: kind, Frame: s.frame, Obstacle: obstacle}
	s.events = append(s.events, ev)
	if s.listener != nil {
		s.listener(ev)
	}
}

package conversation

import "errors"

var (
	// ErrEmptyMessage is returned when the submitted text is blank.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrRequestPending is returned when a request is already in flight.
	ErrRequestPending = errors.New("a request is already in flight")
)

// State is the conversation as displayed: an append-only list of turns and
// whether a reply is outstanding. The zero value is an empty conversation.
type State struct {
	turns   []Turn
	pending bool
}

// Turns returns a copy of the turns in display order.
func (s *State) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Pending reports whether a reply is outstanding.
func (s *State) Pending() bool {
	return s.pending
}

func (s *State) append(t Turn) {
	s.turns = append(s.turns, t)
}

func (s *State) setPending(p bool) {
	s.pending = p
}

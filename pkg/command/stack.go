package command

import (
	"github.com/matzehuels/elementmerge/pkg/observability"
)

// EventKind identifies what happened on a [Stack].
type EventKind int

const (
	// EventExecute fires after a new command was applied and recorded.
	EventExecute EventKind = iota
	// EventUndo fires after a command was reverted.
	EventUndo
	// EventRedo fires after a command was re-applied.
	EventRedo
	// EventFlush fires after the history was cleared.
	EventFlush
)

// String returns a lowercase name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventExecute:
		return "execute"
	case EventUndo:
		return "undo"
	case EventRedo:
		return "redo"
	case EventFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// Event describes a change to a [Stack]. Command is nil for [EventFlush].
type Event struct {
	Kind    EventKind
	Command Command
}

// Listener receives stack events synchronously.
type Listener func(Event)

// unreachable marks a save point that can no longer be returned to.
const unreachable = -1

// Stack records executed commands for undo and redo.
//
// The zero value is usable and keeps unlimited history.
type Stack struct {
	undo      []Command
	redo      []Command
	limit     int
	savePoint int
	listeners []Listener
}

// NewStack creates a stack that keeps at most limit undoable commands.
// A limit of zero or less keeps everything.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// AddListener registers l to be notified of every change.
func (s *Stack) AddListener(l Listener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// Execute applies cmd once and pushes it onto the undo history. Anything that
// could have been redone is discarded. Nil commands and empty compounds are
// ignored and Execute reports false for them.
func (s *Stack) Execute(cmd Command) bool {
	if cmd == nil {
		return false
	}
	if c, ok := cmd.(*Compound); ok && c.IsEmpty() {
		return false
	}

	cmd.Apply()

	if s.savePoint > len(s.undo) {
		s.savePoint = unreachable
	}
	s.redo = nil
	s.undo = append(s.undo, cmd)
	if s.limit > 0 && len(s.undo) > s.limit {
		drop := len(s.undo) - s.limit
		s.undo = append([]Command(nil), s.undo[drop:]...)
		if s.savePoint != unreachable {
			s.savePoint -= drop
			if s.savePoint < 0 {
				s.savePoint = unreachable
			}
		}
	}

	observability.Stack().OnExecute(cmd.Label())
	s.notify(Event{Kind: EventExecute, Command: cmd})
	return true
}

// Undo reverts the most recent command. It reports false if there was
// nothing to undo.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	cmd := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	cmd.Revert()
	s.redo = append(s.redo, cmd)

	observability.Stack().OnUndo(cmd.Label())
	s.notify(Event{Kind: EventUndo, Command: cmd})
	return true
}

// Redo re-applies the most recently undone command. It reports false if
// there was nothing to redo.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	cmd := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	cmd.Apply()
	s.undo = append(s.undo, cmd)

	observability.Stack().OnRedo(cmd.Label())
	s.notify(Event{Kind: EventRedo, Command: cmd})
	return true
}

// CanUndo reports whether [Stack.Undo] would do anything.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether [Stack.Redo] would do anything.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoLabel returns the label of the command [Stack.Undo] would revert,
// or "" if there is none.
func (s *Stack) UndoLabel() string {
	if len(s.undo) == 0 {
		return ""
	}
	return s.undo[len(s.undo)-1].Label()
}

// RedoLabel returns the label of the command [Stack.Redo] would apply,
// or "" if there is none.
func (s *Stack) RedoLabel() string {
	if len(s.redo) == 0 {
		return ""
	}
	return s.redo[len(s.redo)-1].Label()
}

// MarkSaved records the current position as the saved state.
func (s *Stack) MarkSaved() { s.savePoint = len(s.undo) }

// IsDirty reports whether the history has moved away from the last
// [Stack.MarkSaved] position (or from the empty start state).
func (s *Stack) IsDirty() bool { return s.savePoint != len(s.undo) }

// Flush discards all history. The current state becomes the saved state.
func (s *Stack) Flush() {
	s.undo = nil
	s.redo = nil
	s.savePoint = 0
	s.notify(Event{Kind: EventFlush})
}

func (s *Stack) notify(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

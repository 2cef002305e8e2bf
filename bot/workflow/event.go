package workflow

import "sync"

// Event is one inbound update with everything a handler may need.
type Event struct {
	ID        string
	UserID    int64
	ChatID    int64
	FirstName string

	// MessageID is the message carrying the pressed button. It is zero for typed input.
	MessageID int64
	// HasMedia reports whether that message carries a photo or other media.
	HasMedia bool

	// CallbackID is set for button presses.
	CallbackID string
	// Data is the raw callback data of a button press.
	Data  string
	Token Token

	// Command is the slash command name without the leading slash.
	Command string
	Text    string

	mu       sync.Mutex
	answered bool
}

// IsCallback reports whether the event is a button press.
func (e *Event) IsCallback() bool {
	return e.CallbackID != ""
}

// markAnswered returns true only for the first call.
func (e *Event) markAnswered() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.answered {
		return false
	}
	e.answered = true
	return true
}

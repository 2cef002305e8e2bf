package workflow

import (
	"context"
)

// WorkflowID is a unique identifier for a workflow.
type WorkflowID string

// Button is an inline button. Exactly one of Data, URL or WebApp is set.
type Button struct {
	Text   string
	Data   string
	URL    string
	WebApp string
}

// Screen is what a handler wants the user to see next.
type Screen struct {
	Text string
	// Photo is a URL, a Telegram file id or a path under the image directory.
	Photo   string
	Buttons [][]Button
	// Fresh forces a new message even when the previous one could be edited.
	Fresh bool
}

// HasMedia reports whether the screen carries an image.
func (s Screen) HasMedia() bool {
	return s.Photo != ""
}

// Messenger is the chat transport used by the renderer.
// Platform adapters implement it; see bot/telegram.
type Messenger interface {
	SendText(chatID int64, text string, buttons [][]Button) (int64, error)
	EditText(chatID, messageID int64, text string, buttons [][]Button) error
	Delete(chatID, messageID int64) error
	SendPhoto(chatID int64, photo, caption string, buttons [][]Button) (int64, error)
	SendMediaGroup(chatID int64, photos []string) error
	// Notify shows an ephemeral notice in answer to a button press.
	Notify(callbackID, text string) error
}

// HandlerFunc processes one inbound event.
type HandlerFunc func(ctx context.Context, ev *Event) error

// Route binds a token predicate to a handler.
type Route struct {
	Kind   Kind
	Name   string
	Match  func(t Token) bool
	Handle HandlerFunc
}

// Command binds a slash command to a handler.
type Command struct {
	Name        string
	Description string
	Handle      HandlerFunc
}

// Workflow is a state machine whose state lives in button tokens.
type Workflow interface {
	// ID returns the unique identifier for this workflow.
	ID() WorkflowID

	// Commands returns the slash commands that enter the workflow.
	Commands() []Command

	// Routes returns the token routes handled by the workflow.
	Routes() []Route
}

// TextWorkflow is a workflow that consumes free text while its session marker is set.
type TextWorkflow interface {
	Workflow

	// Marker returns the session marker owned by the workflow.
	Marker() Marker

	// HandleText processes free text typed by the user.
	HandleText(ctx context.Context, ev *Event) error
}

// SessionStore keeps the per chat Conversation Session marker.
type SessionStore interface {
	Load(ctx context.Context, chatID, userID int64) (Marker, error)
	Save(ctx context.Context, chatID, userID int64, marker Marker) error
	Delete(ctx context.Context, chatID, userID int64) error
}

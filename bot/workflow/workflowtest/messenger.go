// Package workflowtest provides fakes shared by the workflow tests.
package workflowtest

import (
	"sync"
	"testing"

	"ChineseBee/bot/workflow"

	"github.com/stretchr/testify/require"
)

const (
	MethodSendText   = "send_text"
	MethodEditText   = "edit_text"
	MethodDelete     = "delete"
	MethodSendPhoto  = "send_photo"
	MethodMediaGroup = "media_group"
	MethodNotify     = "notify"
)

// Call is one recorded transport call.
type Call struct {
	Method     string
	ChatID     int64
	MessageID  int64
	Text       string
	Photo      string
	Photos     []string
	Buttons    [][]workflow.Button
	CallbackID string
}

// Messenger records every call and returns the configured errors.
type Messenger struct {
	mu     sync.Mutex
	calls  []Call
	nextID int64

	EditErr   error
	DeleteErr error
	PhotoErr  error
	SendErr   error
}

var _ workflow.Messenger = (*Messenger)(nil)

func NewMessenger() *Messenger {
	return &Messenger{nextID: 100}
}

func (m *Messenger) record(c Call) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	m.calls = append(m.calls, c)
	return m.nextID
}

func (m *Messenger) SendText(chatID int64, text string, buttons [][]workflow.Button) (int64, error) {
	if m.SendErr != nil {
		return 0, m.SendErr
	}
	return m.record(Call{Method: MethodSendText, ChatID: chatID, Text: text, Buttons: buttons}), nil
}

func (m *Messenger) EditText(chatID, messageID int64, text string, buttons [][]workflow.Button) error {
	if m.EditErr != nil {
		return m.EditErr
	}
	m.record(Call{Method: MethodEditText, ChatID: chatID, MessageID: messageID, Text: text, Buttons: buttons})
	return nil
}

func (m *Messenger) Delete(chatID, messageID int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.record(Call{Method: MethodDelete, ChatID: chatID, MessageID: messageID})
	return nil
}

func (m *Messenger) SendPhoto(chatID int64, photo, caption string, buttons [][]workflow.Button) (int64, error) {
	if m.PhotoErr != nil {
		return 0, m.PhotoErr
	}
	return m.record(Call{Method: MethodSendPhoto, ChatID: chatID, Photo: photo, Text: caption, Buttons: buttons}), nil
}

func (m *Messenger) SendMediaGroup(chatID int64, photos []string) error {
	m.record(Call{Method: MethodMediaGroup, ChatID: chatID, Photos: photos})
	return nil
}

func (m *Messenger) Notify(callbackID, text string) error {
	m.record(Call{Method: MethodNotify, CallbackID: callbackID, Text: text})
	return nil
}

// Calls returns a copy of the recorded calls.
func (m *Messenger) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Find returns the recorded calls of one method.
func (m *Messenger) Find(method string) []Call {
	var out []Call
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// LastScreen returns the last call that drew a screen: a sent or edited text or a sent photo.
func (m *Messenger) LastScreen() (Call, bool) {
	calls := m.Calls()
	for i := len(calls) - 1; i >= 0; i-- {
		switch calls[i].Method {
		case MethodSendText, MethodEditText, MethodSendPhoto:
			return calls[i], true
		}
	}
	return Call{}, false
}

// Screen is LastScreen that fails the test when nothing was rendered.
func (m *Messenger) Screen(t testing.TB) Call {
	t.Helper()
	c, ok := m.LastScreen()
	require.True(t, ok, "no screen rendered")
	return c
}

// Reset forgets the recorded calls.
func (m *Messenger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

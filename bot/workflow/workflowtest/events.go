package workflowtest

import (
	"testing"

	"ChineseBee/bot/workflow"

	"github.com/stretchr/testify/require"
)

const (
	ChatID    int64 = 42
	UserID    int64 = 7
	MessageID int64 = 500
)

// CommandEvent is a typed slash command.
func CommandEvent(name string) *workflow.Event {
	return &workflow.Event{ID: "test", ChatID: ChatID, UserID: UserID, FirstName: "Аня", Command: name, Text: "/" + name}
}

// TextEvent is free text typed by the user.
func TextEvent(text string) *workflow.Event {
	return &workflow.Event{ID: "test", ChatID: ChatID, UserID: UserID, FirstName: "Аня", Text: text}
}

// PressEvent is a press on a button of a text message.
func PressEvent(t testing.TB, btn workflow.Button) *workflow.Event {
	t.Helper()
	token, err := workflow.Decode(btn.Data)
	require.NoError(t, err)
	return &workflow.Event{
		ID:         "test",
		ChatID:     ChatID,
		UserID:     UserID,
		MessageID:  MessageID,
		CallbackID: "cb",
		Data:       btn.Data,
		Token:      token,
	}
}

// Flatten returns the buttons of a keyboard in reading order.
func Flatten(rows [][]workflow.Button) []workflow.Button {
	var out []workflow.Button
	for _, row := range rows {
		out = append(out, row...)
	}
	return out
}

// Tokens decodes every callback button of a keyboard.
func Tokens(t testing.TB, rows [][]workflow.Button) []workflow.Token {
	t.Helper()
	var out []workflow.Token
	for _, btn := range Flatten(rows) {
		if btn.Data == "" {
			continue
		}
		token, err := workflow.Decode(btn.Data)
		require.NoError(t, err)
		out = append(out, token)
	}
	return out
}

// ButtonByText finds a button by its label.
func ButtonByText(t testing.TB, rows [][]workflow.Button, text string) workflow.Button {
	t.Helper()
	for _, btn := range Flatten(rows) {
		if btn.Text == text {
			return btn
		}
	}
	require.FailNowf(t, "button not found", "%q", text)
	return workflow.Button{}
}

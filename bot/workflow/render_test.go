package workflow_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/workflowtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecide(t *testing.T) {
	text := workflow.Screen{Text: "hi"}
	photo := workflow.Screen{Text: "hi", Photo: "https://example.com/a.png"}

	tests := []struct {
		name   string
		ev     *workflow.Event
		screen workflow.Screen
		want   workflow.RenderAction
	}{
		{"typed input", &workflow.Event{}, text, workflow.RenderAction{Kind: workflow.ActionReplaceMessage}},
		{"text to text", &workflow.Event{MessageID: 1}, text, workflow.RenderAction{Kind: workflow.ActionEditInPlace}},
		{"text to photo", &workflow.Event{MessageID: 1}, photo, workflow.RenderAction{Kind: workflow.ActionReplaceMessage, DeleteOld: true}},
		{"photo to text", &workflow.Event{MessageID: 1, HasMedia: true}, text, workflow.RenderAction{Kind: workflow.ActionReplaceMessage, DeleteOld: true}},
		{"photo to photo", &workflow.Event{MessageID: 1, HasMedia: true}, photo, workflow.RenderAction{Kind: workflow.ActionReplaceMessage, DeleteOld: true}},
		{"fresh", &workflow.Event{MessageID: 1}, workflow.Screen{Text: "hi", Fresh: true}, workflow.RenderAction{Kind: workflow.ActionReplaceMessage}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workflow.Decide(tt.ev, tt.screen))
		})
	}
}

func TestRendererShowEditsInPlace(t *testing.T) {
	m := workflowtest.NewMessenger()
	r := workflow.NewRenderer(m, discardLogger())

	ev := &workflow.Event{ChatID: 1, MessageID: 10}
	require.NoError(t, r.Show(ev, workflow.Screen{Text: "next"}))

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, workflowtest.MethodEditText, calls[0].Method)
	assert.Equal(t, int64(10), calls[0].MessageID)
	assert.Equal(t, "next", calls[0].Text)
}

func TestRendererShowFallsBackWhenMessageGone(t *testing.T) {
	m := workflowtest.NewMessenger()
	m.EditErr = workflow.ErrRenderTargetGone
	r := workflow.NewRenderer(m, discardLogger())

	require.NoError(t, r.Show(&workflow.Event{ChatID: 1, MessageID: 10}, workflow.Screen{Text: "next"}))

	sent := m.Find(workflowtest.MethodSendText)
	require.Len(t, sent, 1)
	assert.Equal(t, "next", sent[0].Text)
}

func TestRendererShowReturnsOtherEditErrors(t *testing.T) {
	m := workflowtest.NewMessenger()
	m.EditErr = errors.New("network down")
	r := workflow.NewRenderer(m, discardLogger())

	err := r.Show(&workflow.Event{ChatID: 1, MessageID: 10}, workflow.Screen{Text: "next"})
	assert.Error(t, err)
	assert.Empty(t, m.Calls())
}

func TestRendererShowReplacesMediaMessage(t *testing.T) {
	m := workflowtest.NewMessenger()
	m.DeleteErr = workflow.ErrRenderTargetGone
	r := workflow.NewRenderer(m, discardLogger())

	require.NoError(t, r.Show(&workflow.Event{ChatID: 1, MessageID: 10, HasMedia: true}, workflow.Screen{Text: "plain"}))

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, workflowtest.MethodSendText, calls[0].Method)
}

func TestRendererSendPhotoFallsBackToText(t *testing.T) {
	m := workflowtest.NewMessenger()
	m.PhotoErr = errors.New("bad file")
	r := workflow.NewRenderer(m, discardLogger())

	screen := workflow.Screen{Text: "caption", Photo: "missing.png"}
	require.NoError(t, r.Show(&workflow.Event{ChatID: 1, MessageID: 10}, screen))

	assert.Len(t, m.Find(workflowtest.MethodDelete), 1)
	sent := m.Find(workflowtest.MethodSendText)
	require.Len(t, sent, 1)
	assert.Equal(t, "caption", sent[0].Text)
}

func TestRendererNotice(t *testing.T) {
	m := workflowtest.NewMessenger()
	r := workflow.NewRenderer(m, discardLogger())

	press := &workflow.Event{ChatID: 1, CallbackID: "cb"}
	require.NoError(t, r.Notice(press, "first"))
	require.NoError(t, r.Notice(press, "second"))
	require.NoError(t, r.Acknowledge(press))

	notes := m.Find(workflowtest.MethodNotify)
	require.Len(t, notes, 1)
	assert.Equal(t, "first", notes[0].Text)

	typed := &workflow.Event{ChatID: 1}
	require.NoError(t, r.Notice(typed, "typed"))
	require.NoError(t, r.Acknowledge(typed))
	assert.Len(t, m.Find(workflowtest.MethodSendText), 1)
	assert.Len(t, m.Find(workflowtest.MethodNotify), 1)
}

func TestRendererAlbum(t *testing.T) {
	m := workflowtest.NewMessenger()
	r := workflow.NewRenderer(m, discardLogger())

	require.NoError(t, r.Album(&workflow.Event{ChatID: 1}, nil))
	assert.Empty(t, m.Calls())

	require.NoError(t, r.Album(&workflow.Event{ChatID: 1}, []string{"a.png"}))
	assert.Len(t, m.Find(workflowtest.MethodSendPhoto), 1)

	require.NoError(t, r.Album(&workflow.Event{ChatID: 1}, []string{"a.png", "b.png"}))
	groups := m.Find(workflowtest.MethodMediaGroup)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a.png", "b.png"}, groups[0].Photos)
}

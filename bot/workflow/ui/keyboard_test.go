package ui

import (
	"strings"
	"testing"

	"ChineseBee/bot/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyboardRows(t *testing.T) {
	rows, err := NewKeyboard().
		Row(
			Item{Text: "Продолжить", Token: workflow.Clear{Clear: true}},
			Item{Text: "Сохранить", Token: workflow.TutorialPage{Page: 1}},
		).
		Button("🔙 Назад", workflow.MatchChoice{}).
		WebApp("Открыть прописи", "https://example.com/?user_id=7").
		Rows()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []workflow.Button{
		{Text: "Продолжить", Data: "clear:1"},
		{Text: "Сохранить", Data: "tut:1"},
	}, rows[0])
	assert.Equal(t, []workflow.Button{{Text: "🔙 Назад", Data: "match::"}}, rows[1])
	assert.Equal(t, []workflow.Button{{Text: "Открыть прописи", WebApp: "https://example.com/?user_id=7"}}, rows[2])
}

func TestKeyboardKeepsFirstError(t *testing.T) {
	long := strings.Repeat("x", workflow.MaxPayloadSize)
	rows, err := NewKeyboard().
		Button("ok", workflow.Clear{Clear: true}).
		Button("too long", workflow.MatchChoice{SearchedWord: &long}).
		Rows()
	assert.ErrorIs(t, err, workflow.ErrPayloadTooLarge)
	assert.Nil(t, rows)
}

func TestKeyboardEmpty(t *testing.T) {
	rows, err := NewKeyboard().Row().Rows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

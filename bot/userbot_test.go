package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/stretchr/testify/assert"
)

func TestCommandName(t *testing.T) {
	tests := map[string]string{
		"/start":                 "start",
		"/start@ChineseBeeBot":   "start",
		"/Chinese_Match payload": "chinese_match",
		"hello":                  "",
		"":                       "",
		"/":                      "",
	}
	for text, want := range tests {
		assert.Equal(t, want, commandName(text), text)
	}
}

func TestHasMedia(t *testing.T) {
	assert.False(t, hasMedia(&tgbotapi.Message{Text: "hi"}))
	assert.True(t, hasMedia(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileId: "x"}}}))
	assert.True(t, hasMedia(&tgbotapi.Message{Document: &tgbotapi.Document{FileId: "x"}}))
}

func TestTruncateMessage(t *testing.T) {
	assert.Equal(t, "short", truncateMessage("short"))

	long := strings.Repeat("马", maxMessageLength)
	got := truncateMessage(long)
	assert.LessOrEqual(t, len(got), maxMessageLength)
	assert.True(t, utf8.ValidString(got))
}

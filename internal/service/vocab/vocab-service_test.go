package vocab

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ChineseBee/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestSearch(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/chinese-match/你", r.URL.Path)
		writeJSON(w, `{"success":true,"match":[
			{"id":1,"chinese":"你","pinyin":"nǐ","english":"you","russian":"ты","hsk_level":1},
			{"id":2,"chinese":"你好","pinyin":"nǐ hǎo","english":"hello","russian":"привет","hsk_level":1}
		]}`)
	})

	matches, err := s.Search(context.Background(), "你")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, entity.Match{ID: 1, Chinese: "你", Pinyin: "nǐ", English: "you", Russian: "ты", Level: 1}, matches[0])
	assert.Equal(t, "你好 - привет", matches[1].Label())
}

func TestSearchEmpty(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"success":true,"match":[]}`)
	})

	matches, err := s.Search(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDetailsKeepsBackendOrder(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/word-details/12", r.URL.Path)
		writeJSON(w, `{"success":true,"details":{"Иероглиф":"马","Пиньинь":"mǎ","HSK":1,"Перевод":"лошадь"}}`)
	})

	details, err := s.Details(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, entity.Details{
		{Label: "Иероглиф", Value: "马"},
		{Label: "Пиньинь", Value: "mǎ"},
		{Label: "HSK", Value: "1"},
		{Label: "Перевод", Value: "лошадь"},
	}, details)
	assert.Equal(t, "Иероглиф: 马\nПиньинь: mǎ\nHSK: 1\nПеревод: лошадь", details.String())
}

func TestDetailsNotAnObject(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"success":true,"details":"nope"}`)
	})

	_, err := s.Details(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBackendFailure)
}

func TestSavedWords(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/saved-words", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		writeJSON(w, `{"success":true,"saved_words":[{"saved_id":5,"word_id":12,"chinese":"马","russian":"лошадь"}]}`)
	})

	words, err := s.SavedWords(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []entity.SavedWord{{SavedID: 5, WordID: 12, Chinese: "马", Russian: "лошадь"}}, words)
}

func TestSaveWordSendsForm(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/new-word", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "7", r.PostForm.Get("user_id"))
		assert.Equal(t, "12", r.PostForm.Get("word_id"))
		writeJSON(w, `{"success":true}`)
	})

	assert.NoError(t, s.SaveWord(context.Background(), 7, 12))
}

func TestDeleteSaved(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/saved_word", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("saved_id"))
		writeJSON(w, `{"success":false}`)
	})

	err := s.DeleteSaved(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBackendFailure)
}

func TestCanTrain(t *testing.T) {
	s := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/can-train", r.URL.Path)
		writeJSON(w, `{"success":true,"can_learn":false,"msg":"Сначала сохрани пару слов"}`)
	})

	got, err := s.CanTrain(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, entity.Eligibility{CanLearn: false, Message: "Сначала сохрани пару слов"}, got)
}

func TestBackendFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"success false", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, `{"success":false,"msg":"oops"}`)
		}},
		{"missing success", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, `{"match":[]}`)
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, `<html>`)
		}},
		{"bad payload", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, `{"success":true,"match":"nope"}`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, tt.handler)
			_, err := s.Search(context.Background(), "你")
			assert.ErrorIs(t, err, ErrBackendFailure)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	s := New(srv.URL, 100*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := s.SavedWords(context.Background(), 7)
	assert.ErrorIs(t, err, ErrBackendFailure)
}

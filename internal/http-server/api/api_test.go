package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ChineseBee/bot/workflow"
	"ChineseBee/internal/config"
	"ChineseBee/internal/http-server/handlers/health"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHandler struct{}

func (fakeHandler) Routes() []workflow.RouteInfo {
	return []workflow.RouteInfo{{Workflow: "tutorial", Kind: workflow.KindTutorialPage, Name: "tutorial.page"}}
}

func (fakeHandler) Commands() []workflow.CommandInfo {
	return []workflow.CommandInfo{{Workflow: "tutorial", Name: "start", Description: "Начать"}}
}

func (fakeHandler) Match(t workflow.Token) (workflow.Route, error) {
	if t.Kind() == workflow.KindTutorialPage {
		return workflow.Route{Kind: workflow.KindTutorialPage, Name: "tutorial.page"}, nil
	}
	return workflow.Route{}, workflow.ErrUnroutable
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestHandler(apiKey string, storage health.Pinger) http.Handler {
	conf := &config.Config{}
	conf.Listen.ApiKey = apiKey
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(conf, log, fakeHandler{}, storage)
}

func do(t *testing.T, h http.Handler, method, path, body, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	code, env := do(t, newTestHandler("secret", nil), http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"status":"ok","storage":"memory"}`, string(env.Data))
}

func TestHealthStorageDown(t *testing.T) {
	code, env := do(t, newTestHandler("", fakePinger{err: errors.New("refused")}), http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, env.Success)
}

func TestRoutesRequireToken(t *testing.T) {
	h := newTestHandler("secret", nil)

	code, env := do(t, h, http.MethodGet, "/api/v1/routes", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = do(t, h, http.MethodGet, "/api/v1/routes", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = do(t, h, http.MethodGet, "/api/v1/routes", "", "secret")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"tutorial.page"`)
	assert.Contains(t, string(env.Data), `"start"`)
}

func TestTokenDecode(t *testing.T) {
	h := newTestHandler("", nil)

	code, env := do(t, h, http.MethodPost, "/api/v1/token/decode", `{"data":"tut:2"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"kind":"tut","token":{"page":2},"route":"tutorial.page"}`, string(env.Data))

	code, env = do(t, h, http.MethodPost, "/api/v1/token/decode", `{"data":"clear:1"}`, "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"kind":"clear","token":{"clear":true}}`, string(env.Data))
}

func TestTokenDecodeRejects(t *testing.T) {
	h := newTestHandler("", nil)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing data", `{}`, http.StatusBadRequest},
		{"too long", `{"data":"` + strings.Repeat("x", 65) + `"}`, http.StatusBadRequest},
		{"unknown tag", `{"data":"nope:1"}`, http.StatusUnprocessableEntity},
		{"wrong arity", `{"data":"tut:1:2"}`, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, h, http.MethodPost, "/api/v1/token/decode", tt.body, "")
			assert.Equal(t, tt.code, code)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestNotFound(t *testing.T) {
	code, env := do(t, newTestHandler("", nil), http.MethodGet, "/api/v2/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

package token

import (
	"ChineseBee/bot/workflow"
	"ChineseBee/internal/lib/api/response"
	"ChineseBee/internal/lib/sl"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type DecodeRequest struct {
	Data string `json:"data" validate:"required,max=64"`
}

type Decoded struct {
	Kind  workflow.Kind  `json:"kind"`
	Token workflow.Token `json:"token"`
	Route string         `json:"route,omitempty"`
}

// Matcher finds the route for a token.
type Matcher interface {
	Match(t workflow.Token) (workflow.Route, error)
}

// Decode parses button callback data and reports the route it would reach.
func Decode(log *slog.Logger, matcher Matcher) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.token"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req DecodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if err := validate.Struct(&req); err != nil {
			logger.Debug("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid request: %v", err)))
			return
		}

		logger = logger.With(slog.String("data", req.Data))

		t, err := workflow.Decode(req.Data)
		if err != nil {
			logger.Debug("decode token", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		decoded := Decoded{Kind: t.Kind(), Token: t}
		if matcher != nil {
			route, err := matcher.Match(t)
			if err != nil {
				logger.Debug("match token", sl.Err(err))
			} else {
				decoded.Route = route.Name
			}
		}

		render.JSON(w, r, response.Ok(decoded))
	}
}

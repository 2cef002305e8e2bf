package routes

import (
	"ChineseBee/bot/workflow"
	"ChineseBee/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type Core interface {
	Routes() []workflow.RouteInfo
	Commands() []workflow.CommandInfo
}

type Table struct {
	Routes   []workflow.RouteInfo   `json:"routes"`
	Commands []workflow.CommandInfo `json:"commands"`
}

// List returns the registered routes and commands of the workflow router.
func List(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler == nil {
			render.JSON(w, r, response.Error("Router not available"))
			return
		}
		render.JSON(w, r, response.Ok(Table{
			Routes:   handler.Routes(),
			Commands: handler.Commands(),
		}))
	}
}

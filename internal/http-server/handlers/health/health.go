package health

import (
	"ChineseBee/internal/lib/api/response"
	"ChineseBee/internal/lib/sl"
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Pinger reports whether the session storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Health answers with the service status. A nil pinger means in-memory sessions.
func Health(log *slog.Logger, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.health"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		status := Status{Status: "ok", Storage: "memory"}
		if storage != nil {
			status.Storage = "mongodb"
			if err := storage.Ping(r.Context()); err != nil {
				logger.Error("storage ping", sl.Err(err))
				render.Status(r, http.StatusServiceUnavailable)
				render.JSON(w, r, response.Error("Session storage unavailable"))
				return
			}
		}

		render.JSON(w, r, response.Ok(status))
	}
}

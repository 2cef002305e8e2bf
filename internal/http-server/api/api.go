package api

import (
	"ChineseBee/internal/config"
	"ChineseBee/internal/http-server/handlers/errors"
	"ChineseBee/internal/http-server/handlers/health"
	"ChineseBee/internal/http-server/handlers/routes"
	"ChineseBee/internal/http-server/handlers/token"
	"ChineseBee/internal/http-server/middleware/authenticate"
	"ChineseBee/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
	"time"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	routes.Core
	token.Matcher
}

// NewHandler builds the api router. A nil storage pinger reports in-memory sessions.
func NewHandler(conf *config.Config, log *slog.Logger, handler Handler, storage health.Pinger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Timeout(5 * time.Second))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/api/v1/health", health.Health(log, storage))

	router.Group(func(private chi.Router) {
		private.Use(authenticate.New(log, conf.Listen.ApiKey))
		private.Get("/api/v1/routes", routes.List(log, handler))
		private.Post("/api/v1/token/decode", token.Decode(log, handler))
	})

	return router
}

// New serves the api until the listener fails.
func New(conf *config.Config, log *slog.Logger, handler Handler, storage health.Pinger) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewHandler(conf, log, handler, storage),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}

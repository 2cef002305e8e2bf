package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ChineseBee/internal/lib/sl"
)

const (
	textApology = "Упс, эта кнопка больше не работает 🙈\nПопробуй ещё раз через команды"
	textHint    = "Не совсем понял тебя 🐝\nЧтобы найти слово, используй /chinese_match\nСохраненные слова: /saved_words\nТренировка: /flash_cards"
)

// RouteInfo describes a registered route.
type RouteInfo struct {
	Workflow WorkflowID `json:"workflow"`
	Kind     Kind       `json:"kind"`
	Name     string     `json:"name"`
}

// CommandInfo describes a registered command.
type CommandInfo struct {
	Workflow    WorkflowID `json:"workflow"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

type boundRoute struct {
	Route
	workflow WorkflowID
}

type boundCommand struct {
	Command
	workflow WorkflowID
}

// Router is the registry of workflows. It is built once at start-up and is
// read-only afterwards, so events are dispatched concurrently without locking.
type Router struct {
	routes   map[Kind][]boundRoute
	commands map[string]boundCommand
	text     map[Marker]TextWorkflow
	renderer *Renderer
	sessions SessionStore
	log      *slog.Logger
}

func NewRouter(renderer *Renderer, sessions SessionStore, log *slog.Logger) *Router {
	return &Router{
		routes:   make(map[Kind][]boundRoute),
		commands: make(map[string]boundCommand),
		text:     make(map[Marker]TextWorkflow),
		renderer: renderer,
		sessions: sessions,
		log:      log.With(sl.Module("router")),
	}
}

// RegisterWorkflow adds the routes and commands of a workflow.
func (r *Router) RegisterWorkflow(w Workflow) {
	for _, route := range w.Routes() {
		r.routes[route.Kind] = append(r.routes[route.Kind], boundRoute{Route: route, workflow: w.ID()})
	}
	for _, cmd := range w.Commands() {
		if prev, ok := r.commands[cmd.Name]; ok {
			r.log.With(
				slog.String("command", cmd.Name),
				slog.String("previous", string(prev.workflow)),
			).Warn("command registered twice, overriding")
		}
		r.commands[cmd.Name] = boundCommand{Command: cmd, workflow: w.ID()}
	}
	if tw, ok := w.(TextWorkflow); ok {
		r.text[tw.Marker()] = tw
	}
	r.log.Info("registered workflow", slog.String("workflow_id", string(w.ID())))
}

// Match selects the single route whose predicate accepts the token.
func (r *Router) Match(t Token) (Route, error) {
	var found []boundRoute
	for _, route := range r.routes[t.Kind()] {
		if route.Match(t) {
			found = append(found, route)
		}
	}

	switch len(found) {
	case 0:
		return Route{}, fmt.Errorf("%w: %s %+v", ErrUnroutable, t.Kind(), t)
	case 1:
		return found[0].Route, nil
	}

	names := make([]string, len(found))
	for i, route := range found {
		names[i] = route.Name
	}
	return Route{}, fmt.Errorf("%w: %s matched by %s", ErrAmbiguousRoute, t.Kind(), strings.Join(names, ", "))
}

// Verify checks that every token is matched by exactly one route.
func (r *Router) Verify(tokens []Token) error {
	var errs []error
	for _, t := range tokens {
		if _, err := r.Match(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// HandleCallback decodes a button press and dispatches it.
func (r *Router) HandleCallback(ctx context.Context, ev *Event) error {
	logger := r.eventLogger(ev).With(slog.String("data", ev.Data))
	defer r.acknowledge(logger, ev)

	t, err := Decode(ev.Data)
	if err != nil {
		logger.Warn("decode callback", sl.Err(err))
		return r.apologize(logger, ev)
	}
	ev.Token = t

	route, err := r.Match(t)
	if err != nil {
		if errors.Is(err, ErrAmbiguousRoute) {
			logger.Error("match route", sl.Err(err))
		} else {
			logger.Warn("match route", sl.Err(err))
		}
		return r.apologize(logger, ev)
	}

	logger = logger.With(slog.String("route", route.Name))
	logger.Debug("dispatching callback")
	return r.run(ctx, logger, ev, route.Handle)
}

// HandleCommand dispatches a slash command.
func (r *Router) HandleCommand(ctx context.Context, ev *Event) error {
	logger := r.eventLogger(ev).With(slog.String("command", ev.Command))

	cmd, ok := r.commands[ev.Command]
	if !ok {
		logger.Debug("unknown command")
		return r.hint(logger, ev)
	}

	logger.Debug("dispatching command")
	return r.run(ctx, logger, ev, cmd.Handle)
}

// HandleText passes free text to the workflow that owns the session marker.
func (r *Router) HandleText(ctx context.Context, ev *Event) error {
	logger := r.eventLogger(ev)

	marker, err := r.sessions.Load(ctx, ev.ChatID, ev.UserID)
	if err != nil {
		logger.Error("load session", sl.Err(err))
		return r.apologize(logger, ev)
	}

	tw, ok := r.text[marker]
	if marker == MarkerNone || !ok {
		return r.hint(logger, ev)
	}

	logger = logger.With(slog.String("marker", string(marker)))
	logger.Debug("dispatching text")
	return r.run(ctx, logger, ev, tw.HandleText)
}

// Routes lists registered routes ordered by token kind.
func (r *Router) Routes() []RouteInfo {
	var infos []RouteInfo
	for _, kind := range Kinds {
		for _, route := range r.routes[kind] {
			infos = append(infos, RouteInfo{Workflow: route.workflow, Kind: kind, Name: route.Name})
		}
	}
	return infos
}

// Commands lists registered commands ordered by name.
func (r *Router) Commands() []CommandInfo {
	infos := make([]CommandInfo, 0, len(r.commands))
	for _, cmd := range r.commands {
		infos = append(infos, CommandInfo{Workflow: cmd.workflow, Name: cmd.Name, Description: cmd.Description})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// run converts a handler error into an apology so it never leaves the event.
func (r *Router) run(ctx context.Context, logger *slog.Logger, ev *Event, handle HandlerFunc) error {
	err := handle(ctx, ev)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPayloadTooLarge) {
		logger.Error("button payload over limit", sl.Err(err))
	} else {
		logger.Error("handler failed", sl.Err(err))
	}
	return r.apologize(logger, ev)
}

func (r *Router) apologize(logger *slog.Logger, ev *Event) error {
	if err := r.renderer.Notice(ev, textApology); err != nil {
		logger.Warn("send apology", sl.Err(err))
	}
	return nil
}

func (r *Router) hint(logger *slog.Logger, ev *Event) error {
	if _, err := r.renderer.messenger.SendText(ev.ChatID, textHint, nil); err != nil {
		logger.Warn("send hint", sl.Err(err))
	}
	return nil
}

func (r *Router) acknowledge(logger *slog.Logger, ev *Event) {
	if err := r.renderer.Acknowledge(ev); err != nil {
		logger.Debug("answer callback", sl.Err(err))
	}
}

func (r *Router) eventLogger(ev *Event) *slog.Logger {
	return r.log.With(
		slog.String("event_id", ev.ID),
		slog.Int64("user_id", ev.UserID),
		slog.Int64("chat_id", ev.ChatID),
	)
}

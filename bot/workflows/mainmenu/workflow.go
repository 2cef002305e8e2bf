package mainmenu

import (
	"log/slog"
	"time"

	"ChineseBee/bot/workflow"
	"ChineseBee/internal/lib/sl"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "mainmenu"
)

// Route names
const (
	RouteReset = "clear.reset"
	RouteNoop  = "clear.noop"
)

// Commands
const (
	CommandHelp      = "help"
	CommandCancel    = "cancel"
	CommandDictation = "dictation"
)

// MainMenuWorkflow owns the commands that are not part of a state machine
// and the Clear token that aborts any of them.
type MainMenuWorkflow struct {
	help         string
	dictationURL string
	linkSecret   string
	linkTTL      time.Duration
	renderer     *workflow.Renderer
	sessions     workflow.SessionStore
	log          *slog.Logger
}

func NewMainMenuWorkflow(help, dictationURL string, renderer *workflow.Renderer, sessions workflow.SessionStore, log *slog.Logger) *MainMenuWorkflow {
	return &MainMenuWorkflow{
		help:         help,
		dictationURL: dictationURL,
		renderer:     renderer,
		sessions:     sessions,
		log:          log.With(sl.Module("mainmenu")),
	}
}

// WithLinkSecret signs dictation links so the web app can check the user id.
func (w *MainMenuWorkflow) WithLinkSecret(secret string, ttl time.Duration) *MainMenuWorkflow {
	w.linkSecret = secret
	w.linkTTL = ttl
	return w
}

func (w *MainMenuWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *MainMenuWorkflow) Commands() []workflow.Command {
	return []workflow.Command{
		{Name: CommandHelp, Description: "Что я умею", Handle: w.handleHelp},
		{Name: CommandCancel, Description: "Закончить", Handle: w.handleReset},
		{Name: CommandDictation, Description: "Прописи", Handle: w.handleDictation},
	}
}

func (w *MainMenuWorkflow) Routes() []workflow.Route {
	return []workflow.Route{
		{Kind: workflow.KindClear, Name: RouteReset, Match: isReset, Handle: w.handleReset},
		{Kind: workflow.KindClear, Name: RouteNoop, Match: isNoop, Handle: w.handleNoop},
	}
}

func isReset(t workflow.Token) bool {
	return t.(workflow.Clear).Clear
}

func isNoop(t workflow.Token) bool {
	return !t.(workflow.Clear).Clear
}

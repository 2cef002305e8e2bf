package tutorial

import (
	"log/slog"

	"ChineseBee/bot/workflow"
	"ChineseBee/internal/lib/sl"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "tutorial"
)

// Route names
const (
	RoutePage   = "tutorial.page"
	RouteFinish = "tutorial.finish"
)

const CommandStart = "start"

// TutorialWorkflow greets new users and pages through the static content.
type TutorialWorkflow struct {
	content  *Content
	renderer *workflow.Renderer
	log      *slog.Logger
}

func NewTutorialWorkflow(content *Content, renderer *workflow.Renderer, log *slog.Logger) *TutorialWorkflow {
	return &TutorialWorkflow{
		content:  content,
		renderer: renderer,
		log:      log.With(sl.Module("tutorial")),
	}
}

func (w *TutorialWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *TutorialWorkflow) Commands() []workflow.Command {
	return []workflow.Command{
		{Name: CommandStart, Description: "Начать", Handle: w.handleStart},
	}
}

// Any page outside the content closes the tutorial, so stale buttons never fail.
func (w *TutorialWorkflow) Routes() []workflow.Route {
	return []workflow.Route{
		{Kind: workflow.KindTutorialPage, Name: RoutePage, Match: w.isPage, Handle: w.handlePage},
		{Kind: workflow.KindTutorialPage, Name: RouteFinish, Match: w.isFinish, Handle: w.handleFinish},
	}
}

// Pages returns the number of content pages.
func (w *TutorialWorkflow) Pages() int {
	return len(w.content.Items)
}

func (w *TutorialWorkflow) isPage(t workflow.Token) bool {
	page := t.(workflow.TutorialPage).Page
	return page >= 0 && page < w.Pages()
}

func (w *TutorialWorkflow) isFinish(t workflow.Token) bool {
	return !w.isPage(t)
}

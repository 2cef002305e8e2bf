package lookup

import (
	"context"
	"log/slog"

	"ChineseBee/bot/workflow"
	"ChineseBee/entity"
	"ChineseBee/internal/lib/sl"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "lookup"
)

// Route names
const (
	RouteReject   = "lookup.reject"
	RouteDetail   = "lookup.detail"
	RouteContinue = "lookup.continue"
	RouteSave     = "lookup.save"
	RouteBack     = "lookup.back"
)

const CommandSearch = "chinese_match"

// VocabService defines the backend calls used by the lookup.
type VocabService interface {
	Search(ctx context.Context, word string) ([]entity.Match, error)
	Details(ctx context.Context, wordID int64) (entity.Details, error)
	SaveWord(ctx context.Context, userID, wordID int64) error
}

// LookupWorkflow searches the dictionary and saves words to the study set.
// It is the only workflow that reads free text.
type LookupWorkflow struct {
	vocab    VocabService
	renderer *workflow.Renderer
	sessions workflow.SessionStore
	log      *slog.Logger
}

func NewLookupWorkflow(vocab VocabService, renderer *workflow.Renderer, sessions workflow.SessionStore, log *slog.Logger) *LookupWorkflow {
	return &LookupWorkflow{
		vocab:    vocab,
		renderer: renderer,
		sessions: sessions,
		log:      log.With(sl.Module("lookup")),
	}
}

func (w *LookupWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *LookupWorkflow) Marker() workflow.Marker {
	return workflow.MarkerAwaitingSearch
}

func (w *LookupWorkflow) Commands() []workflow.Command {
	return []workflow.Command{
		{Name: CommandSearch, Description: "Найти слово", Handle: w.handleEntry},
	}
}

func (w *LookupWorkflow) Routes() []workflow.Route {
	return []workflow.Route{
		{Kind: workflow.KindMatchChoice, Name: RouteReject, Match: isReject, Handle: w.handleReject},
		{Kind: workflow.KindMatchChoice, Name: RouteDetail, Match: isDetail, Handle: w.handleDetail},
		{Kind: workflow.KindSaveWord, Name: RouteContinue, Match: isContinue, Handle: w.handleContinue},
		{Kind: workflow.KindSaveWord, Name: RouteSave, Match: isSave, Handle: w.handleSave},
		{Kind: workflow.KindSaveWord, Name: RouteBack, Match: isBack, Handle: w.handleBack},
	}
}

func isReject(t workflow.Token) bool {
	return t.(workflow.MatchChoice).Choice == nil
}

func isDetail(t workflow.Token) bool {
	return t.(workflow.MatchChoice).Choice != nil
}

func isContinue(t workflow.Token) bool {
	return isTrue(t.(workflow.SaveWord).ShouldContinue)
}

func isSave(t workflow.Token) bool {
	v := t.(workflow.SaveWord)
	return !isTrue(v.ShouldContinue) && v.WordToSave != nil
}

func isBack(t workflow.Token) bool {
	v := t.(workflow.SaveWord)
	return !isTrue(v.ShouldContinue) && v.WordToSave == nil
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

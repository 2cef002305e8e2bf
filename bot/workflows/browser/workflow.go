package browser

import (
	"context"
	"log/slog"

	"ChineseBee/bot/workflow"
	"ChineseBee/entity"
	"ChineseBee/internal/lib/sl"
)

// Workflow ID
const (
	WorkflowID workflow.WorkflowID = "browser"
)

// Route names
const (
	RouteList   = "browser.list"
	RouteOpen   = "browser.open"
	RouteDelete = "browser.delete"
	RouteDetail = "browser.detail"
)

const CommandSavedWords = "saved_words"

// VocabService defines the backend calls used by the browser.
type VocabService interface {
	SavedWords(ctx context.Context, userID int64) ([]entity.SavedWord, error)
	Details(ctx context.Context, wordID int64) (entity.Details, error)
	DeleteSaved(ctx context.Context, savedID int64) error
}

// BrowserWorkflow lists, shows and deletes the saved words of a user.
type BrowserWorkflow struct {
	vocab    VocabService
	renderer *workflow.Renderer
	sessions workflow.SessionStore
	log      *slog.Logger
}

func NewBrowserWorkflow(vocab VocabService, renderer *workflow.Renderer, sessions workflow.SessionStore, log *slog.Logger) *BrowserWorkflow {
	return &BrowserWorkflow{
		vocab:    vocab,
		renderer: renderer,
		sessions: sessions,
		log:      log.With(sl.Module("browser")),
	}
}

func (w *BrowserWorkflow) ID() workflow.WorkflowID {
	return WorkflowID
}

func (w *BrowserWorkflow) Commands() []workflow.Command {
	return []workflow.Command{
		{Name: CommandSavedWords, Description: "Сохраненные слова", Handle: w.handleCommand},
	}
}

// Predicates cover every decodable SavedInfo, not only the ones this workflow emits.
func (w *BrowserWorkflow) Routes() []workflow.Route {
	return []workflow.Route{
		{Kind: workflow.KindSavedInfo, Name: RouteList, Match: isList, Handle: w.handleList},
		{Kind: workflow.KindSavedInfo, Name: RouteOpen, Match: isOpen, Handle: w.handleOpen},
		{Kind: workflow.KindSavedInfo, Name: RouteDelete, Match: isDelete, Handle: w.handleDelete},
		{Kind: workflow.KindSavedInfo, Name: RouteDetail, Match: isDetail, Handle: w.handleDetail},
	}
}

func isList(t workflow.Token) bool {
	v := t.(workflow.SavedInfo)
	return isTrue(v.Back) || (!isTrue(v.StartNotebook) && v.SavedID == nil)
}

func isOpen(t workflow.Token) bool {
	v := t.(workflow.SavedInfo)
	return !isTrue(v.Back) && isTrue(v.StartNotebook)
}

func isDelete(t workflow.Token) bool {
	v := t.(workflow.SavedInfo)
	return !isTrue(v.Back) && !isTrue(v.StartNotebook) && v.SavedID != nil && v.WordToSee == nil
}

func isDetail(t workflow.Token) bool {
	v := t.(workflow.SavedInfo)
	return !isTrue(v.Back) && !isTrue(v.StartNotebook) && v.SavedID != nil && v.WordToSee != nil
}

func isTrue(b *bool) bool {
	return b != nil && *b
}

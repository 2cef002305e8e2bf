package browser

import (
	"context"
	"log/slog"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/ui"
	"ChineseBee/internal/lib/sl"
)

const (
	TextEmpty   = "Пока нет сохраненных слов :(\nИспользуй /chinese_match, чтобы найти слова"
	TextList    = "Твои сохраненные слова для изучения 🌻"
	TextDeleted = "Удаление прошло успешно"

	BtnDelete = "🗑️ Удалить"
)

func (w *BrowserWorkflow) handleCommand(ctx context.Context, ev *workflow.Event) error {
	return w.showList(ctx, ev, false)
}

// handleList re-renders the list in place.
func (w *BrowserWorkflow) handleList(ctx context.Context, ev *workflow.Event) error {
	return w.showList(ctx, ev, false)
}

// handleOpen opens the list as a new message, keeping the screen it was opened from.
func (w *BrowserWorkflow) handleOpen(ctx context.Context, ev *workflow.Event) error {
	return w.showList(ctx, ev, true)
}

func (w *BrowserWorkflow) handleDetail(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.SavedInfo)

	details, err := w.vocab.Details(ctx, *token.WordToSee)
	if err != nil {
		return w.failure(ev, "details", err)
	}

	rows, err := ui.NewKeyboard().
		Button(BtnDelete, workflow.SavedInfo{SavedID: token.SavedID}).
		Button(ui.BtnBack, workflow.SavedInfo{Back: workflow.Ptr(true)}).
		Rows()
	if err != nil {
		return err
	}

	text := ui.TextNoDetails
	if len(details) > 0 {
		text = details.String()
	}
	return w.renderer.Show(ev, workflow.Screen{Text: text, Buttons: rows})
}

// handleDelete removes the word and confirms without returning to the list.
func (w *BrowserWorkflow) handleDelete(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.SavedInfo)

	if err := w.vocab.DeleteSaved(ctx, *token.SavedID); err != nil {
		return w.failure(ev, "delete saved", err)
	}
	if err := w.sessions.Delete(ctx, ev.ChatID, ev.UserID); err != nil {
		w.log.With(sl.Err(err)).Warn("clear session")
	}

	w.log.With(
		slog.Int64("user_id", ev.UserID),
		slog.Int64("saved_id", *token.SavedID),
	).Info("saved word deleted")
	return w.renderer.Show(ev, workflow.Screen{Text: TextDeleted})
}

func (w *BrowserWorkflow) showList(ctx context.Context, ev *workflow.Event, fresh bool) error {
	words, err := w.vocab.SavedWords(ctx, ev.UserID)
	if err != nil {
		return w.failure(ev, "saved words", err)
	}
	if len(words) == 0 {
		return w.renderer.Show(ev, workflow.Screen{Text: TextEmpty, Fresh: fresh})
	}

	kb := ui.NewKeyboard()
	for _, word := range words {
		kb.Button(word.Label(), workflow.SavedInfo{
			SavedID:   workflow.Ptr(word.SavedID),
			WordToSee: workflow.Ptr(word.WordID),
		})
	}
	rows, err := kb.Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: TextList, Buttons: rows, Fresh: fresh})
}

func (w *BrowserWorkflow) failure(ev *workflow.Event, op string, err error) error {
	w.log.With(
		slog.String("op", op),
		slog.Int64("user_id", ev.UserID),
		sl.Err(err),
	).Warn("backend call failed")
	return w.renderer.Failure(ev, ui.TextBackendFailure)
}

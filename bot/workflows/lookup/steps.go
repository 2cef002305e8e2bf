package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/ui"
	"ChineseBee/entity"
	"ChineseBee/internal/lib/sl"
)

const (
	TextFound        = "Вот что удалось найти 🕵️"
	TextPickOrType   = "Выбери слово из списка или напиши другое ⌨️\nЕсли ты хочешь закончить искать слова, просто нажми '🛑 Закончить'"
	TextTypeAnother  = "Чтобы найти другое слово, просто напиши его как обычно ⌨️\nЕсли ты хочешь закончить искать слова, просто нажми '🛑 Закончить'"
	TextNothingFound = "Ничего не нашлось 🙈\nПопробуй написать слово по-другому"
	TextSaved        = "Сохранено в сет на изучение 🌱"

	BtnSave          = "Сохранить"
	BtnContinue      = "Продолжить"
	BtnBackToResults = "🔙 К результатам"
)

// handleEntry moves Idle to AwaitingSearchText.
func (w *LookupWorkflow) handleEntry(ctx context.Context, ev *workflow.Event) error {
	return w.awaitSearch(ctx, ev)
}

// HandleText searches the typed word. The marker stays so the user can type the next word.
func (w *LookupWorkflow) HandleText(ctx context.Context, ev *workflow.Event) error {
	word := strings.TrimSpace(ev.Text)
	if word == "" {
		return w.renderer.Notice(ev, ui.TextSearchPrompt)
	}

	matches, err := w.vocab.Search(ctx, word)
	if err != nil {
		return w.failure(ev, "search", err)
	}
	return w.showMatches(ev, word, matches, TextFound, ui.Item{
		Text:  ui.BtnBack,
		Token: workflow.NewMatchChoice(nil, &word),
	})
}

// handleReject is the "nothing selected" state of the results screen.
func (w *LookupWorkflow) handleReject(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.MatchChoice)
	if err := w.sessions.Save(ctx, ev.ChatID, ev.UserID, workflow.MarkerAwaitingSearch); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	finish := ui.Item{Text: ui.BtnFinish, Token: workflow.Clear{Clear: true}}
	if token.SearchedWord == nil || *token.SearchedWord == "" {
		rows, err := ui.NewKeyboard().Row(finish).Rows()
		if err != nil {
			return err
		}
		return w.renderer.Show(ev, workflow.Screen{Text: TextTypeAnother, Buttons: rows})
	}

	word := *token.SearchedWord
	matches, err := w.vocab.Search(ctx, word)
	if err != nil {
		return w.failure(ev, "search", err)
	}
	return w.showMatches(ev, word, matches, TextPickOrType, finish)
}

// handleDetail shows the attributes of the chosen match.
func (w *LookupWorkflow) handleDetail(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.MatchChoice)

	details, err := w.vocab.Details(ctx, *token.Choice)
	if err != nil {
		return w.failure(ev, "details", err)
	}

	rows, err := ui.NewKeyboard().
		Button(BtnSave, workflow.NewSaveWord(token.Choice, token.SearchedWord, nil)).
		Button(ui.BtnBack, workflow.NewSaveWord(nil, token.SearchedWord, nil)).
		Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: detailsText(details), Buttons: rows})
}

// handleSave stores the word and offers to go on.
func (w *LookupWorkflow) handleSave(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.SaveWord)

	if err := w.vocab.SaveWord(ctx, ev.UserID, *token.WordToSave); err != nil {
		return w.failure(ev, "save word", err)
	}

	kb := ui.NewKeyboard().Button(BtnContinue, workflow.NewSaveWord(nil, nil, workflow.Ptr(true)))
	if token.SearchedWord != nil {
		kb.Button(BtnBackToResults, workflow.NewSaveWord(nil, token.SearchedWord, nil))
	}
	rows, err := kb.Button(ui.BtnFinish, workflow.Clear{Clear: true}).Rows()
	if err != nil {
		return err
	}

	w.log.With(
		slog.Int64("user_id", ev.UserID),
		slog.Int64("word_id", *token.WordToSave),
	).Info("word saved")
	return w.renderer.Show(ev, workflow.Screen{Text: TextSaved, Buttons: rows})
}

// handleBack re-fetches the results of the searched word.
func (w *LookupWorkflow) handleBack(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.SaveWord)
	if token.SearchedWord == nil {
		return w.awaitSearch(ctx, ev)
	}

	word := *token.SearchedWord
	matches, err := w.vocab.Search(ctx, word)
	if err != nil {
		return w.failure(ev, "search", err)
	}
	return w.showMatches(ev, word, matches, TextFound, ui.Item{
		Text:  ui.BtnBack,
		Token: workflow.NewMatchChoice(nil, &word),
	})
}

func (w *LookupWorkflow) handleContinue(ctx context.Context, ev *workflow.Event) error {
	return w.awaitSearch(ctx, ev)
}

func (w *LookupWorkflow) awaitSearch(ctx context.Context, ev *workflow.Event) error {
	if err := w.sessions.Save(ctx, ev.ChatID, ev.UserID, workflow.MarkerAwaitingSearch); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return w.renderer.Show(ev, workflow.Screen{Text: ui.TextSearchPrompt})
}

// showMatches renders one button per match and the given tail button.
func (w *LookupWorkflow) showMatches(ev *workflow.Event, word string, matches []entity.Match, header string, tail ui.Item) error {
	if len(matches) == 0 {
		if ev.IsCallback() {
			rows, err := ui.NewKeyboard().Button(ui.BtnFinish, workflow.Clear{Clear: true}).Rows()
			if err != nil {
				return err
			}
			return w.renderer.Show(ev, workflow.Screen{Text: TextNothingFound, Buttons: rows})
		}
		return w.renderer.Notice(ev, TextNothingFound)
	}

	kb := ui.NewKeyboard()
	for _, m := range matches {
		kb.Button(m.Label(), workflow.NewMatchChoice(workflow.Ptr(m.ID), &word))
	}
	rows, err := kb.Row(tail).Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: header, Buttons: rows})
}

func (w *LookupWorkflow) failure(ev *workflow.Event, op string, err error) error {
	w.log.With(
		slog.String("op", op),
		slog.Int64("user_id", ev.UserID),
		sl.Err(err),
	).Warn("backend call failed")
	return w.renderer.Failure(ev, ui.TextBackendFailure)
}

func detailsText(details entity.Details) string {
	if len(details) == 0 {
		return ui.TextNoDetails
	}
	return details.String()
}

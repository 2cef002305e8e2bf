package drill

import (
	"context"
	"fmt"
	"log/slog"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/ui"
	"ChineseBee/entity"
	"ChineseBee/internal/lib/sl"
)

const (
	TextOffer       = "Хочешь потренироваться в запоминании иероглифов?"
	TextIneligible  = "Пока рано тренироваться 🌱\nСохрани хотя бы пару слов через /chinese_match"
	TextTooFewWords = "Для тренировки нужно хотя бы два сохраненных слова 🌱\nНайди ещё слова через /chinese_match"
	TextClosing     = "Спасибо, что уделил время на взращивание своих слов!"

	BtnStart = "Начать"
	BtnBack  = "Назад"
)

// handleEntry is the eligibility gate in front of a drill.
func (w *DrillWorkflow) handleEntry(ctx context.Context, ev *workflow.Event) error {
	eligibility, err := w.vocab.CanTrain(ctx, ev.UserID)
	if err != nil {
		return w.failure(ev, "can train", err)
	}
	if !eligibility.CanLearn {
		text := eligibility.Message
		if text == "" {
			text = TextIneligible
		}
		return w.renderer.Show(ev, workflow.Screen{Text: text})
	}

	// A single word would be its own only answer.
	words, err := w.vocab.SavedWords(ctx, ev.UserID)
	if err != nil {
		return w.failure(ev, "saved words", err)
	}
	if len(words) <= 1 {
		return w.renderer.Show(ev, workflow.Screen{Text: TextTooFewWords})
	}

	rows, err := ui.NewKeyboard().Row(
		ui.Item{Text: BtnStart, Token: workflow.NewFlashCards(true, 0, nil, nil)},
		ui.Item{Text: BtnBack, Token: workflow.Clear{Clear: true}},
	).Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: TextOffer, Buttons: rows})
}

// handleStep gives feedback on the previous answer and asks the next question.
func (w *DrillWorkflow) handleStep(ctx context.Context, ev *workflow.Event) error {
	token := ev.Token.(workflow.FlashCards)
	w.feedback(ev, token)

	words, err := w.vocab.SavedWords(ctx, ev.UserID)
	if err != nil {
		return w.failure(ev, "saved words", err)
	}
	if token.Current < 0 || token.Current >= len(words) {
		// The list shrank since the drill started.
		return w.renderer.Show(ev, workflow.Screen{Text: TextClosing})
	}

	question := words[token.Current]
	candidates := make([]entity.SavedWord, len(words))
	copy(candidates, words)
	w.shuffle(candidates)

	next := token.Current + 1
	kb := ui.NewKeyboard()
	for _, c := range candidates {
		kb.Button(c.Russian, workflow.NewFlashCards(next < len(words), next, &question.Chinese, &c.Chinese))
	}
	rows, err := kb.Rows()
	if err != nil {
		return err
	}

	w.log.With(
		slog.Int64("user_id", ev.UserID),
		slog.Int("current", token.Current),
		slog.Int("words", len(words)),
	).Debug("drill step")
	return w.renderer.Show(ev, workflow.Screen{Text: question.Chinese, Buttons: rows})
}

// handleEnd closes the drill. There is no resume from here.
func (w *DrillWorkflow) handleEnd(_ context.Context, ev *workflow.Event) error {
	w.feedback(ev, ev.Token.(workflow.FlashCards))
	return w.renderer.Show(ev, workflow.Screen{Text: TextClosing})
}

func (w *DrillWorkflow) feedback(ev *workflow.Event, token workflow.FlashCards) {
	if token.PreviousQuestion == nil {
		return
	}
	if err := w.renderer.Notice(ev, FeedbackText(token)); err != nil {
		w.log.With(sl.Err(err)).Debug("send feedback")
	}
}

// FeedbackText names the answer when it was right and the expected word otherwise.
func FeedbackText(token workflow.FlashCards) string {
	question := *token.PreviousQuestion
	answer := ""
	if token.PreviousAnswer != nil {
		answer = *token.PreviousAnswer
	}
	if question == answer {
		return fmt.Sprintf("%s Правильно! 🐝", answer)
	}
	return fmt.Sprintf("Правильный ответ - %s", question)
}

func (w *DrillWorkflow) failure(ev *workflow.Event, op string, err error) error {
	w.log.With(
		slog.String("op", op),
		slog.Int64("user_id", ev.UserID),
		sl.Err(err),
	).Warn("backend call failed")
	return w.renderer.Failure(ev, ui.TextBackendFailure)
}

package tutorial

import (
	"context"
	"log/slog"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/ui"
	"ChineseBee/internal/lib/sl"
)

const (
	BtnTeachMe   = "Да, научи меня 📖"
	BtnKnowBasic = "Я уже знаю основы"
	BtnNext      = "Дальше ➡️"
	BtnPrev      = "⬅️ Назад"
	BtnContinue  = "Продолжить"
)

func (w *TutorialWorkflow) handleStart(_ context.Context, ev *workflow.Event) error {
	rows, err := ui.NewKeyboard().
		Button(BtnTeachMe, workflow.TutorialPage{Page: 0}).
		Button(BtnKnowBasic, workflow.TutorialPage{Page: workflow.TutorialDone}).
		Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: w.content.GreetingFor(ev.FirstName), Buttons: rows})
}

// handlePage renders one content item. The last page only offers to continue.
func (w *TutorialWorkflow) handlePage(_ context.Context, ev *workflow.Event) error {
	page := ev.Token.(workflow.TutorialPage).Page
	item := w.content.Items[page]

	kb := ui.NewKeyboard()
	if page == w.Pages()-1 {
		kb.Button(BtnContinue, workflow.TutorialPage{Page: workflow.TutorialDone})
	} else {
		var nav []ui.Item
		if page > 0 {
			nav = append(nav, ui.Item{Text: BtnPrev, Token: workflow.TutorialPage{Page: page - 1}})
		}
		nav = append(nav, ui.Item{Text: BtnNext, Token: workflow.TutorialPage{Page: page + 1}})
		kb.Row(nav...)
	}
	rows, err := kb.Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: item.Text, Photo: item.Image, Buttons: rows})
}

// handleFinish shows the help text and the cheat sheet.
func (w *TutorialWorkflow) handleFinish(_ context.Context, ev *workflow.Event) error {
	if err := w.renderer.Show(ev, workflow.Screen{Text: w.content.Help}); err != nil {
		return err
	}
	if err := w.renderer.Album(ev, w.content.CheatSheet); err != nil {
		w.log.With(
			slog.Int64("chat_id", ev.ChatID),
			sl.Err(err),
		).Warn("send cheat sheet")
	}
	return nil
}

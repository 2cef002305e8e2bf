package mainmenu

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"ChineseBee/bot/workflow"
	"ChineseBee/bot/workflow/ui"
	"ChineseBee/internal/lib/fileurl"
	"ChineseBee/internal/lib/sl"
)

const (
	TextDictation = "Начать практиковаться в правописании?"

	BtnMyWords   = "📒 Мои слова"
	BtnDictation = "Открыть прописи"
)

func (w *MainMenuWorkflow) handleHelp(_ context.Context, ev *workflow.Event) error {
	rows, err := ui.NewKeyboard().
		Button(BtnMyWords, workflow.SavedInfo{StartNotebook: workflow.Ptr(true)}).
		Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: w.help, Buttons: rows})
}

// handleReset clears the session marker and leaves the flow.
func (w *MainMenuWorkflow) handleReset(ctx context.Context, ev *workflow.Event) error {
	if err := w.sessions.Delete(ctx, ev.ChatID, ev.UserID); err != nil {
		w.log.With(sl.Err(err)).Warn("clear session")
	}
	return w.renderer.Show(ev, workflow.Screen{Text: ui.TextAnythingElse})
}

// handleNoop answers Clear{false}, which no screen emits.
func (w *MainMenuWorkflow) handleNoop(_ context.Context, _ *workflow.Event) error {
	return nil
}

func (w *MainMenuWorkflow) handleDictation(_ context.Context, ev *workflow.Event) error {
	link, err := DictationLink(w.dictationURL, ev.UserID)
	if err != nil {
		return err
	}
	if w.linkSecret != "" {
		link, err = fileurl.Sign(link, strconv.FormatInt(ev.UserID, 10), w.linkSecret, w.linkTTL)
		if err != nil {
			return err
		}
	}
	rows, err := ui.NewKeyboard().WebApp(BtnDictation, link).Rows()
	if err != nil {
		return err
	}
	return w.renderer.Show(ev, workflow.Screen{Text: TextDictation, Buttons: rows})
}

// DictationLink adds the user id to the web app address.
func DictationLink(base string, userID int64) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse dictation url: %w", err)
	}
	q := u.Query()
	q.Set("user_id", strconv.FormatInt(userID, 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

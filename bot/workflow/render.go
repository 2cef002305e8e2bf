package workflow

import (
	"errors"
	"fmt"
	"log/slog"

	"ChineseBee/internal/lib/sl"
)

// ActionKind is the way a screen reaches the chat.
type ActionKind int

const (
	// ActionEditInPlace rewrites the text and keyboard of the pressed message.
	ActionEditInPlace ActionKind = iota
	// ActionReplaceMessage sends a new message, optionally deleting the old one first.
	ActionReplaceMessage
)

func (k ActionKind) String() string {
	if k == ActionEditInPlace {
		return "edit"
	}
	return "replace"
}

// RenderAction is the decision taken for one screen.
type RenderAction struct {
	Kind      ActionKind
	DeleteOld bool
}

// Decide picks how to show a screen in answer to an event.
// A text message can only be edited into another text message, so any media on
// either side forces the old message to be deleted and a new one to be sent.
func Decide(ev *Event, s Screen) RenderAction {
	if ev == nil || ev.MessageID == 0 || s.Fresh {
		return RenderAction{Kind: ActionReplaceMessage}
	}
	if ev.HasMedia || s.HasMedia() {
		return RenderAction{Kind: ActionReplaceMessage, DeleteOld: true}
	}
	return RenderAction{Kind: ActionEditInPlace}
}

// Renderer is the single place where screens are turned into transport calls.
type Renderer struct {
	messenger Messenger
	log       *slog.Logger
}

func NewRenderer(m Messenger, log *slog.Logger) *Renderer {
	return &Renderer{
		messenger: m,
		log:       log.With(sl.Module("renderer")),
	}
}

// Show renders a screen for the event.
func (r *Renderer) Show(ev *Event, s Screen) error {
	action := Decide(ev, s)

	switch action.Kind {
	case ActionEditInPlace:
		err := r.messenger.EditText(ev.ChatID, ev.MessageID, s.Text, s.Buttons)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRenderTargetGone) {
			return fmt.Errorf("edit message: %w", err)
		}
		r.log.With(
			slog.Int64("chat_id", ev.ChatID),
			slog.Int64("message_id", ev.MessageID),
		).Debug("message gone, sending new one")
		return r.send(ev.ChatID, s)

	default:
		if action.DeleteOld {
			err := r.messenger.Delete(ev.ChatID, ev.MessageID)
			if err != nil && !errors.Is(err, ErrRenderTargetGone) {
				r.log.With(
					slog.Int64("chat_id", ev.ChatID),
					slog.Int64("message_id", ev.MessageID),
					sl.Err(err),
				).Warn("delete message")
			}
		}
		return r.send(ev.ChatID, s)
	}
}

// Failure replaces the current screen with a static notice and no buttons.
func (r *Renderer) Failure(ev *Event, text string) error {
	return r.Show(ev, Screen{Text: text})
}

// Notice shows a transient message. Button presses get a callback answer,
// typed input gets a plain message.
func (r *Renderer) Notice(ev *Event, text string) error {
	if !ev.IsCallback() {
		_, err := r.messenger.SendText(ev.ChatID, text, nil)
		return err
	}
	if !ev.markAnswered() {
		r.log.With(slog.String("text", text)).Debug("callback already answered, notice dropped")
		return nil
	}
	return r.messenger.Notify(ev.CallbackID, text)
}

// Acknowledge answers a button press that got no notice.
func (r *Renderer) Acknowledge(ev *Event) error {
	if !ev.IsCallback() || !ev.markAnswered() {
		return nil
	}
	return r.messenger.Notify(ev.CallbackID, "")
}

// Album sends a group of photos as a new message.
// Telegram wants two or more items in a media group, so a single photo is sent alone.
func (r *Renderer) Album(ev *Event, photos []string) error {
	switch len(photos) {
	case 0:
		return nil
	case 1:
		_, err := r.messenger.SendPhoto(ev.ChatID, photos[0], "", nil)
		return err
	}
	return r.messenger.SendMediaGroup(ev.ChatID, photos)
}

func (r *Renderer) send(chatID int64, s Screen) error {
	if s.HasMedia() {
		_, err := r.messenger.SendPhoto(chatID, s.Photo, s.Text, s.Buttons)
		if err == nil {
			return nil
		}
		r.log.With(
			slog.Int64("chat_id", chatID),
			slog.String("photo", s.Photo),
			sl.Err(err),
		).Warn("send photo, falling back to text")
	}
	_, err := r.messenger.SendText(chatID, s.Text, s.Buttons)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

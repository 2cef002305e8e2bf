package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"ChineseBee/bot/workflow"
	"ChineseBee/internal/lib/sl"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers/filters/message"
	"github.com/google/uuid"
)

const maxMessageLength = 4096

// EventRouter dispatches inbound events to workflows.
type EventRouter interface {
	HandleCallback(ctx context.Context, ev *workflow.Event) error
	HandleCommand(ctx context.Context, ev *workflow.Event) error
	HandleText(ctx context.Context, ev *workflow.Event) error
	Commands() []workflow.CommandInfo
}

// UserBot is the Telegram bot for learners. Every update becomes a workflow event.
type UserBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	router      EventRouter
}

// NewUserBot creates a new user bot instance.
func NewUserBot(botName, apiKey string, adminId int64, log *slog.Logger) (*UserBot, error) {
	bot := &UserBot{
		log:         log.With(sl.Module("userbot")),
		botUsername: botName,
		adminId:     adminId,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	bot.api = api

	return bot, nil
}

// API exposes the Telegram client for the messenger.
func (b *UserBot) API() *tgbotapi.Bot {
	return b.api
}

// SetRouter sets the workflow router for the bot.
func (b *UserBot) SetRouter(router EventRouter) {
	b.router = router
}

// Start begins polling for updates and handling them.
func (b *UserBot) Start() error {
	if b.router == nil {
		return fmt.Errorf("workflow router not set")
	}

	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(bot *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			b.log.With(sl.Err(err)).Error("an error occurred while handling update")
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	commands := b.router.Commands()
	for _, cmd := range commands {
		dispatcher.AddHandler(handlers.NewCommand(cmd.Name, b.handleCommand))
	}
	dispatcher.AddHandler(handlers.NewCallback(b.workflowCallbackFilter, b.handleCallback))
	dispatcher.AddHandler(handlers.NewMessage(message.Text, b.handleMessage))

	b.publishCommands(commands)

	// Start receiving updates
	err := updater.StartPolling(b.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	b.log.Info("user bot started", slog.String("username", b.botUsername))

	// Idle, to keep updates coming in
	updater.Idle()

	return nil
}

// SendMessage delivers a plain text message to the admin chat.
func (b *UserBot) SendMessage(msg string) {
	if b.adminId == 0 || msg == "" {
		return
	}
	_, err := b.api.SendMessage(b.adminId, truncateMessage(msg), nil)
	if err != nil {
		b.log.With(
			slog.Int64("id", b.adminId),
			sl.Err(err),
		).Warn("sending admin message")
	}
}

func (b *UserBot) publishCommands(commands []workflow.CommandInfo) {
	list := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, cmd := range commands {
		list = append(list, tgbotapi.BotCommand{Command: cmd.Name, Description: cmd.Description})
	}
	if _, err := b.api.SetMyCommands(list, nil); err != nil {
		b.log.With(sl.Err(err)).Warn("set bot commands")
	}
}

// workflowCallbackFilter filters callbacks that carry workflow data.
func (b *UserBot) workflowCallbackFilter(cq *tgbotapi.CallbackQuery) bool {
	return cq.Data != ""
}

func (b *UserBot) handleCommand(_ *tgbotapi.Bot, ctx *ext.Context) error {
	ev := newEvent(ctx)
	ev.Text = ctx.EffectiveMessage.Text
	ev.Command = commandName(ev.Text)
	return b.router.HandleCommand(context.Background(), ev)
}

// handleCallback handles inline keyboard presses.
func (b *UserBot) handleCallback(_ *tgbotapi.Bot, ctx *ext.Context) error {
	ev := newEvent(ctx)
	ev.CallbackID = ctx.CallbackQuery.Id
	ev.Data = ctx.CallbackQuery.Data
	if msg := ctx.EffectiveMessage; msg != nil {
		ev.MessageID = msg.MessageId
		ev.HasMedia = hasMedia(msg)
	}
	return b.router.HandleCallback(context.Background(), ev)
}

// handleMessage handles free text. Unregistered commands get the same hint as stray text.
func (b *UserBot) handleMessage(_ *tgbotapi.Bot, ctx *ext.Context) error {
	ev := newEvent(ctx)
	ev.Text = ctx.EffectiveMessage.Text
	if name := commandName(ev.Text); name != "" {
		ev.Command = name
		return b.router.HandleCommand(context.Background(), ev)
	}
	return b.router.HandleText(context.Background(), ev)
}

func newEvent(ctx *ext.Context) *workflow.Event {
	ev := &workflow.Event{ID: uuid.NewString()}
	if ctx.EffectiveUser != nil {
		ev.UserID = ctx.EffectiveUser.Id
		ev.FirstName = ctx.EffectiveUser.FirstName
	}
	if ctx.EffectiveChat != nil {
		ev.ChatID = ctx.EffectiveChat.Id
	}
	return ev
}

// commandName returns "start" for "/start", "/start@ChineseBeeBot" or "/start payload".
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	return strings.ToLower(name)
}

// hasMedia reports whether a message cannot be edited into plain text.
func hasMedia(msg *tgbotapi.Message) bool {
	return len(msg.Photo) > 0 || msg.Video != nil || msg.Document != nil || msg.Animation != nil || msg.Audio != nil
}

func truncateMessage(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	cut := maxMessageLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

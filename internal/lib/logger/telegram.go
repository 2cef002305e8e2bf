package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Notifier delivers a plain text message to the bot administrator.
type Notifier interface {
	SendMessage(msg string)
}

// TelegramHandler forwards records at or above the level to the administrator chat.
type TelegramHandler struct {
	slog.Handler
	notifier Notifier
	level    slog.Level
	attrs    []slog.Attr
}

func SetupTelegramHandler(log *slog.Logger, notifier Notifier, level slog.Level) *slog.Logger {
	if notifier == nil {
		return log
	}
	return slog.New(&TelegramHandler{
		Handler:  log.Handler(),
		notifier: notifier,
		level:    level,
	})
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level {
		go h.notifier.SendMessage(h.format(r))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TelegramHandler{
		Handler:  h.Handler.WithAttrs(attrs),
		notifier: h.notifier,
		level:    h.level,
		attrs:    merged,
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		Handler:  h.Handler.WithGroup(name),
		notifier: h.notifier,
		level:    h.level,
		attrs:    h.attrs,
	}
}

func (h *TelegramHandler) format(r slog.Record) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", r.Level.String(), r.Message))
	for _, a := range h.attrs {
		sb.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
	}
	r.Attrs(func(a slog.Attr) bool {
		sb.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
		return true
	})
	return sb.String()
}

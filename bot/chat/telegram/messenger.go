package telegram

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ChineseBee/bot/workflow"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
)

// TelegramAPI defines the Telegram bot methods needed by the messenger.
// This avoids importing the concrete bot type and prevents circular imports.
type TelegramAPI interface {
	SendMessage(chatId int64, text string, opts *tgbotapi.SendMessageOpts) (*tgbotapi.Message, error)
	EditMessageText(text string, opts *tgbotapi.EditMessageTextOpts) (*tgbotapi.Message, bool, error)
	DeleteMessage(chatId int64, messageId int64, opts *tgbotapi.DeleteMessageOpts) (bool, error)
	SendPhoto(chatId int64, photo tgbotapi.InputFileOrString, opts *tgbotapi.SendPhotoOpts) (*tgbotapi.Message, error)
	SendMediaGroup(chatId int64, media []tgbotapi.InputMedia, opts *tgbotapi.SendMediaGroupOpts) ([]tgbotapi.Message, error)
	AnswerCallbackQuery(callbackQueryId string, opts *tgbotapi.AnswerCallbackQueryOpts) (bool, error)
}

// Telegram answers these when the target message was deleted or is too old.
var goneDescriptions = []string{
	"message to edit not found",
	"message can't be edited",
	"message to delete not found",
	"message can't be deleted",
}

const notModified = "message is not modified"

// Messenger implements workflow.Messenger for Telegram using inline keyboards.
type Messenger struct {
	api     TelegramAPI
	imgPath string
}

// NewMessenger creates a new Telegram Messenger. Local photos are resolved under imgPath.
func NewMessenger(api TelegramAPI, imgPath string) *Messenger {
	return &Messenger{api: api, imgPath: imgPath}
}

func (m *Messenger) SendText(chatID int64, text string, buttons [][]workflow.Button) (int64, error) {
	opts := &tgbotapi.SendMessageOpts{}
	if len(buttons) > 0 {
		opts.ReplyMarkup = inlineKeyboard(buttons)
	}
	msg, err := m.api.SendMessage(chatID, text, opts)
	if err != nil {
		return 0, err
	}
	return msg.MessageId, nil
}

func (m *Messenger) EditText(chatID, messageID int64, text string, buttons [][]workflow.Button) error {
	_, _, err := m.api.EditMessageText(text, &tgbotapi.EditMessageTextOpts{
		ChatId:      chatID,
		MessageId:   messageID,
		ReplyMarkup: inlineKeyboard(buttons),
	})
	return classify(err)
}

func (m *Messenger) Delete(chatID, messageID int64) error {
	_, err := m.api.DeleteMessage(chatID, messageID, nil)
	return classify(err)
}

func (m *Messenger) SendPhoto(chatID int64, photo, caption string, buttons [][]workflow.Button) (int64, error) {
	file, closer, err := m.resolve(photo)
	if err != nil {
		return 0, err
	}
	defer closer()

	opts := &tgbotapi.SendPhotoOpts{Caption: caption}
	if len(buttons) > 0 {
		opts.ReplyMarkup = inlineKeyboard(buttons)
	}
	msg, err := m.api.SendPhoto(chatID, file, opts)
	if err != nil {
		return 0, err
	}
	return msg.MessageId, nil
}

func (m *Messenger) SendMediaGroup(chatID int64, photos []string) error {
	media := make([]tgbotapi.InputMedia, 0, len(photos))
	for _, photo := range photos {
		file, closer, err := m.resolve(photo)
		if err != nil {
			return err
		}
		defer closer()
		media = append(media, tgbotapi.InputMediaPhoto{Media: file})
	}
	_, err := m.api.SendMediaGroup(chatID, media, nil)
	return err
}

func (m *Messenger) Notify(callbackID, text string) error {
	_, err := m.api.AnswerCallbackQuery(callbackID, &tgbotapi.AnswerCallbackQueryOpts{Text: text})
	return err
}

// resolve maps a photo reference to an upload: URLs are passed through,
// files under imgPath are uploaded, anything else is taken as a Telegram file id.
func (m *Messenger) resolve(photo string) (tgbotapi.InputFileOrString, func(), error) {
	noop := func() {}
	if strings.HasPrefix(photo, "http://") || strings.HasPrefix(photo, "https://") {
		return tgbotapi.InputFileByURL(photo), noop, nil
	}

	path := filepath.Join(m.imgPath, filepath.Clean("/"+photo))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return nil, noop, fmt.Errorf("open photo: %w", err)
		}
		return tgbotapi.InputFileByReader(filepath.Base(path), f), func() { closeQuietly(f) }, nil
	}
	return tgbotapi.InputFileByID(photo), noop, nil
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}

func inlineKeyboard(rows [][]workflow.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, len(rows))
	for i, row := range rows {
		keyboard[i] = make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, btn := range row {
			b := tgbotapi.InlineKeyboardButton{Text: btn.Text, CallbackData: btn.Data, Url: btn.URL}
			if btn.WebApp != "" {
				b.WebApp = &tgbotapi.WebAppInfo{Url: btn.WebApp}
			}
			keyboard[i][j] = b
		}
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

// classify maps Telegram errors on existing messages onto workflow errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var tgErr *tgbotapi.TelegramError
	if !errors.As(err, &tgErr) {
		return err
	}
	desc := strings.ToLower(tgErr.Description)
	if strings.Contains(desc, notModified) {
		return nil
	}
	for _, gone := range goneDescriptions {
		if strings.Contains(desc, gone) {
			return fmt.Errorf("%w: %s", workflow.ErrRenderTargetGone, tgErr.Description)
		}
	}
	return err
}

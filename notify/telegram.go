package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "telegram login")
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (self *Telegram) ID() string {
	return "telegram"
}

func (self *Telegram) text(m Message) string {
	return fmt.Sprintf("%s\n%s", m.Title, m.Body)
}

// Notify sends a photo when the attachment is a picture, otherwise a text
// message.
func (self *Telegram) Notify(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var msg tgbotapi.Chattable
	if m.Attachment != "" && m.IsImage() {
		photo := tgbotapi.NewPhoto(self.chatID, tgbotapi.FilePath(m.Attachment))
		photo.Caption = self.text(m)
		msg = photo
	} else {
		msg = tgbotapi.NewMessage(self.chatID, self.text(m))
	}
	if _, err := self.bot.Send(msg); err != nil {
		return errors.Wrap(err, "telegram send")
	}
	return nil
}

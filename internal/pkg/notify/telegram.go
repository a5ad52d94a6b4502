package notify

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"github.com/bgordon/recollect-notify/internal/pkg/config"
)

// TelegramSender is the subset of telebot.Bot the dispatcher needs.
type TelegramSender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

type Telegram struct {
	Log    *logrus.Entry
	Config config.Telegram

	// Bot overrides the lazily constructed bot, used by tests.
	Bot TelegramSender
}

func (t *Telegram) Name() string {
	return "telegram"
}

func (t *Telegram) Enabled() bool {
	return t.Config.Enabled
}

func (t *Telegram) Send(message string) error {
	bot := t.Bot

	if bot == nil {
		b, err := telebot.NewBot(telebot.Settings{Token: t.Config.BotToken})
		if err != nil {
			return fmt.Errorf("error creating telegram bot %w", err)
		}

		bot = b
	}

	text := fmt.Sprintf("%s\n%s", Title, message)

	_, err := bot.Send(&telebot.Chat{ID: t.Config.ChatID}, text)
	if err != nil {
		return fmt.Errorf("error sending telegram message %w", err)
	}

	return nil
}

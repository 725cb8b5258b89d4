package notify

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramGateway sends reminders as Telegram messages to users who
// linked a chat id to their account.
type TelegramGateway struct {
	bot *tgbotapi.BotAPI
}

func NewTelegramGateway(token string) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &TelegramGateway{bot: bot}, nil
}

func (g *TelegramGateway) Contact(r Recipient) (string, bool) {
	if r.TelegramChatID == 0 {
		return "", false
	}
	return strconv.FormatInt(r.TelegramChatID, 10), true
}

func (g *TelegramGateway) SendReminder(ctx context.Context, contact, title, label string) error {
	chatID, err := strconv.ParseInt(contact, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram contact %q: %w", contact, err)
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⏰ Your task %q is starting %s.", title, label))
	if _, err := g.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

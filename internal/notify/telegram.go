package notify

import (
	"log"

	"github.com/DhavalSuthar-24/criclive/config"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier pushes scoring announcements to a Telegram chat. It is optional:
// NewNotifier returns nil when no bot token is configured, and all methods
// are nil-receiver safe so callers never have to branch.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Notifier from the application config, or nil when
// Telegram notifications are not configured.
func NewNotifier(cfg *config.Config) *Notifier {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == 0 {
		return nil
	}
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Printf("telegram notifier disabled: %v", err)
		return nil
	}
	log.Printf("telegram notifier authorized as %s", api.Self.UserName)
	return &Notifier{api: api, chatID: cfg.Telegram.ChatID}
}

// Announce sends a plain-text message. Failures are logged and swallowed;
// scoring must never depend on the notification channel.
func (n *Notifier) Announce(text string) {
	if n == nil {
		return
	}
	if _, err := n.api.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		log.Printf("telegram announce failed: %v", err)
	}
}

// Package notify pushes complaint status updates to an operational Telegram
// channel so duty officers see movement without watching the dashboard.
package notify

import (
	"encoding/json"
	"fmt"
	"log"

	"govlens/backend/internal/models"
	"govlens/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier relays status updates from Redis Pub/Sub into a Telegram
// chat. It is strictly one-way and entirely optional; the service runs fine
// without a bot token configured.
type TelegramNotifier struct {
	Bot     *tgbotapi.BotAPI
	ChatID  int64
	Storage *storage.Service
}

// NewTelegramNotifier connects the bot and verifies the token.
func NewTelegramNotifier(token string, chatID int64, s *storage.Service) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect Telegram bot: %w", err)
	}

	log.Printf("INFO: Telegram notifier authorized as @%s", bot.Self.UserName)
	return &TelegramNotifier{Bot: bot, ChatID: chatID, Storage: s}, nil
}

// Run subscribes to the status update channel and forwards each update.
// It blocks until the subscription closes, so call it in a goroutine.
func (n *TelegramNotifier) Run() {
	pubsub := n.Storage.SubscribeStatusUpdates()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var update models.StatusUpdate
		if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
			log.Printf("Error unmarshalling Redis update: %v", err)
			continue
		}

		if _, err := n.Bot.Send(tgbotapi.NewMessage(n.ChatID, formatUpdate(update))); err != nil {
			log.Printf("WARNING: Telegram notification for %s not delivered: %v", update.ComplaintID, err)
		}
	}
}

func formatUpdate(u models.StatusUpdate) string {
	switch {
	case u.Stage == models.StatusSubmitted && u.Officer == "":
		return fmt.Sprintf("🆕 New grievance %s submitted.", u.ComplaintID)
	case u.Action != "":
		return fmt.Sprintf("📌 %s → %s by %s: %s", u.ComplaintID, u.Stage, u.Officer, u.Action)
	default:
		return fmt.Sprintf("📌 %s → %s by %s", u.ComplaintID, u.Stage, u.Officer)
	}
}

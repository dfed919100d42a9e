// SPDX-License-Identifier: GPL-3.0-only

package notifications

import (
	"bizdesk-server/commons"
	"bizdesk-server/metrics"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramConfig struct {
	Token string
	// Endpoint is the Bot API URL template; defaults to the public
	// Telegram endpoint. Overridable for tests.
	Endpoint string
	Timeout  time.Duration
}

// TelegramClient sends HTML-formatted messages through the Telegram Bot
// API. The underlying bot handle is created lazily on first send, so
// constructing a client never touches the network.
type TelegramClient struct {
	cfg TelegramConfig

	mu  sync.Mutex
	bot *tgbotapi.BotAPI
}

func NewTelegramClient(cfg TelegramConfig) *TelegramClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = tgbotapi.APIEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &TelegramClient{cfg: cfg}
}

func (t *TelegramClient) api() (*tgbotapi.BotAPI, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	bot, err := tgbotapi.NewBotAPIWithClient(t.cfg.Token, t.cfg.Endpoint, &http.Client{Timeout: t.cfg.Timeout})
	if err != nil {
		return nil, err
	}
	t.bot = bot
	return bot, nil
}

func (t *TelegramClient) Send(data NotificationData) bool {
	if t.cfg.Token == "" || data.ChatID == "" {
		commons.Logger.Error("Telegram configuration missing, dropping notification")
		return false
	}

	chatID, err := strconv.ParseInt(data.ChatID, 10, 64)
	if err != nil {
		commons.Logger.Errorf("Invalid Telegram chat ID %q: %v", data.ChatID, err)
		return false
	}

	bot, err := t.api()
	if err != nil {
		commons.Logger.Errorf("Failed to initialize Telegram bot: %v", err)
		metrics.TelegramSendFailures.Inc()
		return false
	}

	msg := tgbotapi.NewMessage(chatID, data.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if data.Button != nil {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL(data.Button.Label, data.Button.URL),
			),
		)
	}

	if _, err := bot.Send(msg); err != nil {
		commons.Logger.Errorf("Telegram sendMessage failed for chat %s: %v", data.ChatID, err)
		metrics.TelegramSendFailures.Inc()
		return false
	}
	return true
}

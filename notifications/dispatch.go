// SPDX-License-Identifier: GPL-3.0-only

package notifications

import "bizdesk-server/commons"

// MockClient logs instead of delivering. Selected in dev/test setups so
// reminder runs can be exercised without a bot credential.
type MockClient struct{}

func (MockClient) Send(data NotificationData) bool {
	commons.Logger.Info("=== MOCK TELEGRAM NOTIFICATION ===")
	commons.Logger.Infof("Chat ID: %s", data.ChatID)
	commons.Logger.Infof("Text:\n%s", data.Text)
	if data.Button != nil {
		commons.Logger.Infof("Button: %s -> %s", data.Button.Label, data.Button.URL)
	}
	commons.Logger.Info("=== TELEGRAM MOCK COMPLETE ===")
	return true
}

// NewNotifier picks the provider for outgoing reminders. The mock switch
// mirrors MOCK_TELEGRAM_NOTIFICATIONS so local runs never hit the real
// Bot API.
func NewNotifier(cfg TelegramConfig) Notifier {
	if commons.GetEnv("MOCK_TELEGRAM_NOTIFICATIONS") == "true" {
		commons.Logger.Debug("Mock telegram notifications enabled, using mock provider")
		return MockClient{}
	}
	return NewTelegramClient(cfg)
}

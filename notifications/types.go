// SPDX-License-Identifier: GPL-3.0-only

package notifications

type NotificationProviders string

const (
	Telegram NotificationProviders = "telegram"
	Mock     NotificationProviders = "mock"
)

// Button is a single url-type inline action attached under a message.
type Button struct {
	Label string
	URL   string
}

type NotificationData struct {
	ChatID string
	Text   string
	Button *Button
}

// Notifier delivers one message to a chat target. Implementations report
// delivery as a plain bool and never panic or error past this boundary:
// missing configuration, network failure and API-level rejection all come
// back as false, with diagnostics in the logs.
type Notifier interface {
	Send(data NotificationData) bool
}

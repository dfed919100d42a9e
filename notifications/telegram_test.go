package notifications

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeBotAPI serves just enough of the Telegram Bot API for the client:
// getMe during construction, then sendMessage.
func fakeBotAPI(t *testing.T, sendOK bool, lastSend *map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"bizdesk","user_name":"bizdesk_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if err := r.ParseForm(); err != nil {
				t.Errorf("failed to parse sendMessage form: %v", err)
			}
			if lastSend != nil {
				params := map[string]string{}
				for key := range r.Form {
					params[key] = r.Form.Get(key)
				}
				*lastSend = params
			}
			if sendOK {
				w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":12345,"type":"private"}}}`))
			} else {
				w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
			}
		default:
			w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
		}
	}))
}

func TestTelegramSendDelivers(t *testing.T) {
	var lastSend map[string]string
	ts := fakeBotAPI(t, true, &lastSend)
	defer ts.Close()

	client := NewTelegramClient(TelegramConfig{
		Token:    "test-token",
		Endpoint: ts.URL + "/bot%s/%s",
	})

	delivered := client.Send(NotificationData{
		ChatID: "12345",
		Text:   "<b>Maintenance Payment Reminder</b>",
		Button: &Button{Label: "Chat on WhatsApp", URL: "https://wa.me/6281234567890?text=Halo"},
	})
	if !delivered {
		t.Fatal("expected delivery to succeed")
	}

	if lastSend["chat_id"] != "12345" {
		t.Errorf("expected chat_id 12345, got %q", lastSend["chat_id"])
	}
	if lastSend["parse_mode"] != "HTML" {
		t.Errorf("expected parse_mode HTML, got %q", lastSend["parse_mode"])
	}
	if !strings.Contains(lastSend["reply_markup"], "wa.me") {
		t.Errorf("expected inline url button in reply_markup, got %q", lastSend["reply_markup"])
	}
}

func TestTelegramSendWithoutButton(t *testing.T) {
	var lastSend map[string]string
	ts := fakeBotAPI(t, true, &lastSend)
	defer ts.Close()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", Endpoint: ts.URL + "/bot%s/%s"})

	if !client.Send(NotificationData{ChatID: "12345", Text: "plain"}) {
		t.Fatal("expected delivery to succeed")
	}
	if markup, ok := lastSend["reply_markup"]; ok && markup != "" {
		t.Errorf("expected no reply_markup for text-only message, got %q", markup)
	}
}

func TestTelegramSendAPIRejection(t *testing.T) {
	ts := fakeBotAPI(t, false, nil)
	defer ts.Close()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", Endpoint: ts.URL + "/bot%s/%s"})

	if client.Send(NotificationData{ChatID: "12345", Text: "hello"}) {
		t.Error("API-level ok:false must be reported as not delivered")
	}
}

func TestTelegramSendMissingConfig(t *testing.T) {
	client := NewTelegramClient(TelegramConfig{})
	if client.Send(NotificationData{ChatID: "12345", Text: "hello"}) {
		t.Error("missing token must be a no-op returning false")
	}

	client = NewTelegramClient(TelegramConfig{Token: "test-token"})
	if client.Send(NotificationData{Text: "hello"}) {
		t.Error("missing chat id must be a no-op returning false")
	}
}

func TestTelegramSendInvalidChatID(t *testing.T) {
	ts := fakeBotAPI(t, true, nil)
	defer ts.Close()

	client := NewTelegramClient(TelegramConfig{Token: "test-token", Endpoint: ts.URL + "/bot%s/%s"})
	if client.Send(NotificationData{ChatID: "@not-numeric", Text: "hello"}) {
		t.Error("non-numeric chat id must not deliver")
	}
}

func TestMockClientAlwaysDelivers(t *testing.T) {
	mock := MockClient{}
	if !mock.Send(NotificationData{ChatID: "1", Text: "x"}) {
		t.Error("mock provider should always report delivered")
	}
}

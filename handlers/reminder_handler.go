// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/commons"
	"bizdesk-server/db"
	"bizdesk-server/models"
	"bizdesk-server/notifications"
	"bizdesk-server/scheduler"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SchedulerFromEnv assembles a reminder scheduler from the process
// environment. Shared by the HTTP trigger and the one-shot CLI.
func SchedulerFromEnv() *scheduler.Scheduler {
	tz := commons.GetEnv("REMINDER_TIMEZONE", "Asia/Jakarta")
	location, err := time.LoadLocation(tz)
	if err != nil {
		commons.Logger.Warnf("Unknown REMINDER_TIMEZONE %q, falling back to UTC: %v", tz, err)
		location = time.UTC
	}

	notifier := notifications.NewNotifier(notifications.TelegramConfig{
		Token: commons.GetEnv("TELEGRAM_BOT_TOKEN"),
	})

	return scheduler.New(db.Conn, notifier, scheduler.Config{
		Location:    location,
		Routing:     scheduler.RoutingMode(commons.GetEnv("REMINDER_ROUTING", string(scheduler.RoutingPerOwner))),
		AdminChatID: commons.GetEnv("TELEGRAM_CHAT_ID"),
	})
}

// RunRemindersHandler godoc
// @Summary      Trigger a reminder run
// @Description  Scans active maintenance contracts due today and sends one
// @Description  reminder per record, then returns the run summary. Meant to
// @Description  be hit by an external cron, authenticated with the
// @Description  X-Cron-Secret header instead of a session.
// @Tags         reminders
// @Produce      json
// @Param        X-Cron-Secret  header  string  true  "Shared cron secret"
// @Success      200 {object} scheduler.Summary "Run summary"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      429 {object} echo.HTTPError "Too many requests"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/reminders/run [post]
func RunRemindersHandler(c echo.Context) error {
	logger := c.Logger()

	secret := commons.GetEnv("CRON_SECRET")
	if secret == "" {
		logger.Error("CRON_SECRET is not configured, refusing to run reminders.")
		return echo.ErrUnauthorized
	}
	provided := c.Request().Header.Get("X-Cron-Secret")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
		logger.Error("Invalid cron secret on reminder trigger.")
		return echo.ErrUnauthorized
	}

	summary, err := SchedulerFromEnv().Run()
	if err != nil {
		logger.Errorf("Reminder run failed: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, summary)
}

// TestReminderHandler godoc
// @Summary      Send a test reminder
// @Description  Sends a throwaway Telegram message so an owner can confirm
// @Description  their chat ID is wired up correctly. Uses the chat ID from
// @Description  the request body, or the caller's saved settings when the
// @Description  body omits it.
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Param        testReminderRequest  body  TestReminderRequest  true  "Target chat"
// @Success      200 {object} GenericResponse "Test reminder sent"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      429 {object} echo.HTTPError "Too many requests"
// @Failure      502 {object} echo.HTTPError "Delivery failed"
// @Router       /v1/reminders/test [post]
func TestReminderHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var req TestReminderRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid test reminder request payload:", err)
		return echo.ErrBadRequest
	}

	chatID := req.ChatID
	if chatID == "" {
		settings := models.OwnerSettings{}
		if err := db.Conn.Where("user_id = ?", session.UserID).First(&settings).Error; err == nil && settings.TelegramChatID != nil {
			chatID = *settings.TelegramChatID
		}
	}
	if chatID == "" {
		logger.Error("No chat ID provided and none saved in settings.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "chat_id is required, either in the request or saved in settings",
		}
	}

	notifier := notifications.NewNotifier(notifications.TelegramConfig{
		Token: commons.GetEnv("TELEGRAM_BOT_TOKEN"),
	})
	delivered := notifier.Send(notifications.NotificationData{
		ChatID: chatID,
		Text: "✅ <b>Test Reminder</b>\n\n" +
			"Your Telegram notifications are wired up correctly. " +
			"Maintenance payment reminders will arrive in this chat.",
	})
	if !delivered {
		logger.Error("Test reminder delivery failed.")
		return &echo.HTTPError{
			Code:    http.StatusBadGateway,
			Message: "Failed to deliver the test message, check the bot token and chat ID",
		}
	}

	logger.Infof("Test reminder delivered.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Test reminder sent"})
}

// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetSettingsHandler godoc
// @Summary      Get owner settings
// @Description  Returns the caller's payment details and Telegram routing
// @Description  settings. A user who never saved settings gets empty
// @Description  fields, not an error.
// @Tags         settings
// @Produce      json
// @Success      200 {object} SettingsResponse "Settings retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/settings/ [get]
func GetSettingsHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	settings := models.OwnerSettings{}
	err := db.Conn.Where("user_id = ?", session.UserID).First(&settings).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Errorf("Failed to fetch settings: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, SettingsResponse{
		BankAccount:    settings.BankAccount,
		Ewallet:        settings.Ewallet,
		TelegramChatID: settings.TelegramChatID,
		Message:        "Settings retrieved successfully",
	})
}

// UpdateSettingsHandler godoc
// @Summary      Save owner settings
// @Description  Creates or updates the caller's payment details and
// @Description  Telegram chat ID used for reminder routing.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        settingsRequest  body  SettingsRequest  true  "Settings payload"
// @Success      200 {object} SettingsResponse "Settings saved"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      429 {object} echo.HTTPError "Too many requests"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/settings/ [put]
func UpdateSettingsHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid settings request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	// Assign takes a map so a null field clears the stored value.
	settings := models.OwnerSettings{}
	err := db.Conn.Where(models.OwnerSettings{UserID: session.UserID}).
		Assign(map[string]any{
			"bank_account":     req.BankAccount,
			"ewallet":          req.Ewallet,
			"telegram_chat_id": req.TelegramChatID,
		}).
		FirstOrCreate(&settings).Error
	if err != nil {
		logger.Errorf("Failed to save settings: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Settings saved successfully.")
	return c.JSON(http.StatusOK, SettingsResponse{
		BankAccount:    settings.BankAccount,
		Ewallet:        settings.Ewallet,
		TelegramChatID: settings.TelegramChatID,
		Message:        "Settings saved",
	})
}

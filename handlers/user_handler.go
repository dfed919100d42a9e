// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/crypto"
	"bizdesk-server/db"
	"bizdesk-server/models"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetUserHandler godoc
// @Summary      Get the current user
// @Description  Returns the profile of the authenticated user.
// @Tags         users
// @Produce      json
// @Success      200 {object} GetUserResponse "User retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/users/me [get]
func GetUserHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	user := models.User{}
	if err := db.Conn.First(&user, session.UserID).Error; err != nil {
		logger.Errorf("Failed to fetch user: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, GetUserResponse{
		Email:    user.Email,
		FullName: user.FullName,
		Message:  "User retrieved successfully",
	})
}

// DeleteAccountHandler godoc
// @Summary      Delete the current account
// @Description  Permanently deletes the caller's account together with all
// @Description  clients, projects, maintenance contracts, settings, and
// @Description  sessions. Requires the current password as confirmation.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        deleteAccountRequest  body  DeleteAccountRequest  true  "Password confirmation"
// @Success      204 "Account deleted"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/users/me [delete]
func DeleteAccountHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var req DeleteAccountRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid delete account request payload:", err)
		return echo.ErrBadRequest
	}
	if req.Password == "" {
		logger.Error("Password confirmation is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required to confirm account deletion",
		}
	}

	user := models.User{}
	if err := db.Conn.First(&user, session.UserID).Error; err != nil {
		logger.Errorf("Failed to fetch user: %v", err)
		return echo.ErrInternalServerError
	}

	newCrypto := crypto.NewCrypto()
	if err := newCrypto.VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password confirmation failed.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Incorrect password",
		}
	}

	err := db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("project_id IN (?)", tx.Unscoped().Model(&models.Project{}).Select("id").Where("user_id = ?", user.ID)).
			Delete(&models.Maintenance{}).Error; err != nil {
			return err
		}
		for _, model := range []any{
			&models.Project{},
			&models.Client{},
			&models.OwnerSettings{},
			&models.Session{},
		} {
			if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		logger.Errorf("Failed to delete account: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Account deleted.")
	return c.NoContent(http.StatusNoContent)
}

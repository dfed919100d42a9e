// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LogoutHandler godoc
// @Summary      Logout the current session
// @Description  Invalidates the caller's session token.
// @Tags         auth
// @Produce      json
// @Success      204 "Logged out"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/auth/logout [post]
func LogoutHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session token, please login again",
		}
	}

	if err := db.Conn.Unscoped().Delete(&session).Error; err != nil {
		logger.Errorf("Failed to delete session: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User logged out successfully")
	return c.NoContent(http.StatusNoContent)
}

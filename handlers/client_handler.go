// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"bizdesk-server/whatsapp"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetAllClientsHandler godoc
// @Summary      List clients
// @Description  Returns every client owned by the caller.
// @Tags         clients
// @Produce      json
// @Success      200 {array} ClientDetails "Clients retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/clients/ [get]
func GetAllClientsHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var clients []models.Client
	if err := db.Conn.Where("user_id = ?", session.UserID).Order("created_at DESC").Find(&clients).Error; err != nil {
		logger.Errorf("Failed to list clients: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]ClientDetails, 0, len(clients))
	for _, client := range clients {
		details = append(details, ClientDetails{
			ID:        client.ID,
			Name:      client.Name,
			Wa:        client.Wa,
			CreatedAt: client.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, details)
}

// CreateClientHandler godoc
// @Summary      Create a client
// @Description  Registers a new client with a WhatsApp contact number.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        clientRequest  body  ClientRequest  true  "Client payload"
// @Success      201 {object} ClientDetails "Client created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      429 {object} echo.HTTPError "Too many requests"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/clients/ [post]
func CreateClientHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create client request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Name == "" || req.Wa == "" {
		logger.Error("Name and wa are required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name and wa fields are required",
		}
	}

	client := models.Client{
		Name:   req.Name,
		Wa:     whatsapp.NormalizePhone(req.Wa),
		UserID: session.UserID,
	}
	if err := db.Conn.Create(&client).Error; err != nil {
		logger.Errorf("Failed to create client: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Client created successfully.")
	return c.JSON(http.StatusCreated, ClientDetails{
		ID:        client.ID,
		Name:      client.Name,
		Wa:        client.Wa,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	})
}

// UpdateClientHandler godoc
// @Summary      Update a client
// @Description  Updates a client's name or WhatsApp number.
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        client_id      path  string         true  "Client ID"
// @Param        clientRequest  body  ClientRequest  true  "Client payload"
// @Success      200 {object} ClientDetails "Client updated"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Client not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/clients/{client_id} [put]
func UpdateClientHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	client := models.Client{}
	if err := db.Conn.Where("id = ? AND user_id = ?", c.Param("client_id"), session.UserID).First(&client).Error; err != nil {
		logger.Error("Client not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Client not found",
		}
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update client request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Wa != "" {
		client.Wa = whatsapp.NormalizePhone(req.Wa)
	}

	if err := db.Conn.Save(&client).Error; err != nil {
		logger.Errorf("Failed to update client: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, ClientDetails{
		ID:        client.ID,
		Name:      client.Name,
		Wa:        client.Wa,
		CreatedAt: client.CreatedAt.Format(time.RFC3339),
	})
}

// DeleteClientHandler godoc
// @Summary      Delete a client
// @Description  Deletes a client together with its projects and their
// @Description  maintenance contracts.
// @Tags         clients
// @Produce      json
// @Param        client_id  path  string  true  "Client ID"
// @Success      200 {object} GenericResponse "Client deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Client not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/clients/{client_id} [delete]
func DeleteClientHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	client := models.Client{}
	if err := db.Conn.Where("id = ? AND user_id = ?", c.Param("client_id"), session.UserID).First(&client).Error; err != nil {
		logger.Error("Client not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Client not found",
		}
	}

	// Soft deletes do not trigger the FK cascade, so descendants are
	// deleted explicitly. Maintenance first, while the project rows are
	// still visible to the subquery.
	err := db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("project_id IN (?)", tx.Model(&models.Project{}).Select("id").Where("client_id = ?", client.ID)).
			Delete(&models.Maintenance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.Project{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		logger.Errorf("Failed to delete client: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Client deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Client deleted"})
}

// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func maintenanceDetails(m models.Maintenance) MaintenanceDetails {
	details := MaintenanceDetails{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		ProjectName: m.Project.Name,
		ClientName:  m.Project.Client.Name,
		ClientWa:    m.Project.Client.Wa,
		InitialCost: m.InitialCost,
		MonthlyCost: m.MonthlyCost,
		PaymentDate: m.PaymentDate,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
	if m.LastReminderSent != nil {
		sent := m.LastReminderSent.UTC().Format(time.RFC3339)
		details.LastReminderSent = &sent
	}
	return details
}

func validateCosts(req *MaintenanceRequest) *echo.HTTPError {
	if (req.InitialCost != nil && *req.InitialCost < 0) || (req.MonthlyCost != nil && *req.MonthlyCost < 0) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "initial_cost and monthly_cost must be non-negative",
		}
	}
	return nil
}

// ownedMaintenance loads a maintenance contract and verifies, through
// its project, that it belongs to the given user.
func ownedMaintenance(id string, userID uint) (models.Maintenance, error) {
	var m models.Maintenance
	err := db.Conn.Preload("Project").Preload("Project.Client").
		Joins("JOIN projects ON projects.id = maintenances.project_id AND projects.deleted_at IS NULL").
		Where("maintenances.id = ? AND projects.user_id = ?", id, userID).
		First(&m).Error
	return m, err
}

// GetAllMaintenanceHandler godoc
// @Summary      List maintenance contracts
// @Description  Returns every maintenance contract owned by the caller,
// @Description  joined with project and client details.
// @Tags         maintenance
// @Produce      json
// @Success      200 {array} MaintenanceDetails "Contracts retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/maintenance/ [get]
func GetAllMaintenanceHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var contracts []models.Maintenance
	err := db.Conn.Preload("Project").Preload("Project.Client").
		Joins("JOIN projects ON projects.id = maintenances.project_id AND projects.deleted_at IS NULL").
		Where("projects.user_id = ?", session.UserID).
		Order("maintenances.created_at DESC").
		Find(&contracts).Error
	if err != nil {
		logger.Errorf("Failed to list maintenance contracts: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]MaintenanceDetails, 0, len(contracts))
	for _, m := range contracts {
		details = append(details, maintenanceDetails(m))
	}
	return c.JSON(http.StatusOK, details)
}

// CreateMaintenanceHandler godoc
// @Summary      Create a maintenance contract
// @Description  Registers a recurring maintenance contract for one of the
// @Description  caller's completed projects.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        maintenanceRequest  body  MaintenanceRequest  true  "Contract payload"
// @Success      201 {object} MaintenanceDetails "Contract created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Project not found"
// @Failure      429 {object} echo.HTTPError "Too many requests"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/maintenance/ [post]
func CreateMaintenanceHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var req MaintenanceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create maintenance request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.ProjectID == 0 {
		logger.Error("project_id is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "project_id field is required",
		}
	}
	if req.PaymentDate < 1 || req.PaymentDate > 31 {
		logger.Error("Invalid payment_date:", req.PaymentDate)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "payment_date must be a day of month between 1 and 31",
		}
	}
	if httpErr := validateCosts(&req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	project := models.Project{}
	if err := db.Conn.Preload("Client").Where("id = ? AND user_id = ?", req.ProjectID, session.UserID).First(&project).Error; err != nil {
		logger.Error("Project not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Project not found",
		}
	}
	if project.ProjectStatus != models.ProjectCompleted {
		logger.Error("Project is not completed yet.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Maintenance contracts can only be created for completed projects",
		}
	}

	m := models.Maintenance{
		PaymentDate: req.PaymentDate,
		Active:      true,
		ProjectID:   project.ID,
	}
	if req.InitialCost != nil {
		m.InitialCost = *req.InitialCost
	}
	if req.MonthlyCost != nil {
		m.MonthlyCost = *req.MonthlyCost
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := db.Conn.Omit("Project").Create(&m).Error; err != nil {
		logger.Errorf("Failed to create maintenance contract: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Maintenance contract created successfully.")
	m.Project = project
	return c.JSON(http.StatusCreated, maintenanceDetails(m))
}

// UpdateMaintenanceHandler godoc
// @Summary      Update a maintenance contract
// @Description  Updates a contract's costs, due day, or active flag. The
// @Description  last reminder timestamp is owned by the scheduler and
// @Description  cannot be set here.
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        maintenance_id      path  string              true  "Maintenance ID"
// @Param        maintenanceRequest  body  MaintenanceRequest  true  "Contract payload"
// @Success      200 {object} MaintenanceDetails "Contract updated"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Contract not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/maintenance/{maintenance_id} [put]
func UpdateMaintenanceHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	m, err := ownedMaintenance(c.Param("maintenance_id"), session.UserID)
	if err != nil {
		logger.Error("Maintenance contract not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Maintenance contract not found",
		}
	}

	var req MaintenanceRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update maintenance request payload:", err)
		return echo.ErrBadRequest
	}

	if httpErr := validateCosts(&req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}
	if req.InitialCost != nil {
		m.InitialCost = *req.InitialCost
	}
	if req.MonthlyCost != nil {
		m.MonthlyCost = *req.MonthlyCost
	}
	if req.PaymentDate != 0 {
		if req.PaymentDate < 1 || req.PaymentDate > 31 {
			logger.Error("Invalid payment_date:", req.PaymentDate)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "payment_date must be a day of month between 1 and 31",
			}
		}
		m.PaymentDate = req.PaymentDate
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := db.Conn.Omit("Project").Save(&m).Error; err != nil {
		logger.Errorf("Failed to update maintenance contract: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, maintenanceDetails(m))
}

// DeleteMaintenanceHandler godoc
// @Summary      Delete a maintenance contract
// @Tags         maintenance
// @Produce      json
// @Param        maintenance_id  path  string  true  "Maintenance ID"
// @Success      200 {object} GenericResponse "Contract deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Contract not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/maintenance/{maintenance_id} [delete]
func DeleteMaintenanceHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	m, err := ownedMaintenance(c.Param("maintenance_id"), session.UserID)
	if err != nil {
		logger.Error("Maintenance contract not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Maintenance contract not found",
		}
	}

	if err := db.Conn.Delete(&m).Error; err != nil {
		logger.Errorf("Failed to delete maintenance contract: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Maintenance contract deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Maintenance contract deleted"})
}

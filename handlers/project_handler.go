// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bizdesk-server/db"
	"bizdesk-server/models"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func projectDetails(project models.Project, clientName string) ProjectDetails {
	return ProjectDetails{
		ID:               project.ID,
		ClientID:         project.ClientID,
		ClientName:       clientName,
		Name:             project.Name,
		Value:            project.Value,
		ProjectStatus:    project.ProjectStatus,
		PaymentStatus:    project.PaymentStatus,
		AcceptanceStatus: project.AcceptanceStatus,
		Date:             project.Date.Format(time.RFC3339),
		CreatedAt:        project.CreatedAt.Format(time.RFC3339),
	}
}

func validateStatusAxes(req *ProjectRequest) *echo.HTTPError {
	if req.ProjectStatus != "" && !models.ValidProjectStatus(req.ProjectStatus) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "project_status must be one of: draft, in-progress, revision, completed",
		}
	}
	if req.PaymentStatus != "" && !models.ValidPaymentStatus(req.PaymentStatus) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "payment_status must be one of: unpaid, down-payment, paid",
		}
	}
	if req.AcceptanceStatus != "" && !models.ValidAcceptanceStatus(req.AcceptanceStatus) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "acceptance_status must be one of: accepted, cancelled",
		}
	}
	return nil
}

// GetAllProjectsHandler godoc
// @Summary      List projects
// @Description  Returns every project owned by the caller, joined with the
// @Description  client name.
// @Tags         projects
// @Produce      json
// @Success      200 {array} ProjectDetails "Projects retrieved"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/projects/ [get]
func GetAllProjectsHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var projects []models.Project
	if err := db.Conn.Preload("Client").Where("user_id = ?", session.UserID).Order("created_at DESC").Find(&projects).Error; err != nil {
		logger.Errorf("Failed to list projects: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]ProjectDetails, 0, len(projects))
	for _, project := range projects {
		details = append(details, projectDetails(project, project.Client.Name))
	}
	return c.JSON(http.StatusOK, details)
}

// CreateProjectHandler godoc
// @Summary      Create a project
// @Description  Registers a new project for one of the caller's clients.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectRequest  body  ProjectRequest  true  "Project payload"
// @Success      201 {object} ProjectDetails "Project created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Client not found"
// @Failure      429 {object} echo.HTTPError "Too many requests"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/projects/ [post]
func CreateProjectHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create project request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.Name == "" || req.ClientID == 0 {
		logger.Error("Name and client_id are required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name and client_id fields are required",
		}
	}
	if httpErr := validateStatusAxes(&req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	client := models.Client{}
	if err := db.Conn.Where("id = ? AND user_id = ?", req.ClientID, session.UserID).First(&client).Error; err != nil {
		logger.Error("Client not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Client not found",
		}
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			logger.Error("Invalid project date:", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "date must be RFC 3339, e.g. 2023-10-01T00:00:00Z",
			}
		}
		date = parsed
	}

	project := models.Project{
		Name:     req.Name,
		Value:    req.Value,
		Date:     date,
		UserID:   session.UserID,
		ClientID: client.ID,
	}
	if req.ProjectStatus != "" {
		project.ProjectStatus = req.ProjectStatus
	}
	if req.PaymentStatus != "" {
		project.PaymentStatus = req.PaymentStatus
	}
	if req.AcceptanceStatus != "" {
		project.AcceptanceStatus = req.AcceptanceStatus
	}

	if err := db.Conn.Create(&project).Error; err != nil {
		logger.Errorf("Failed to create project: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Project created successfully.")
	return c.JSON(http.StatusCreated, projectDetails(project, client.Name))
}

// UpdateProjectHandler godoc
// @Summary      Update a project
// @Description  Updates a project's fields and status axes.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project_id      path  string          true  "Project ID"
// @Param        projectRequest  body  ProjectRequest  true  "Project payload"
// @Success      200 {object} ProjectDetails "Project updated"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Project not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/projects/{project_id} [put]
func UpdateProjectHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	project := models.Project{}
	if err := db.Conn.Preload("Client").Where("id = ? AND user_id = ?", c.Param("project_id"), session.UserID).First(&project).Error; err != nil {
		logger.Error("Project not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Project not found",
		}
	}

	var req ProjectRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update project request payload:", err)
		return echo.ErrBadRequest
	}
	if httpErr := validateStatusAxes(&req); httpErr != nil {
		logger.Error(httpErr.Message)
		return httpErr
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Value != 0 {
		project.Value = req.Value
	}
	if req.ProjectStatus != "" {
		project.ProjectStatus = req.ProjectStatus
	}
	if req.PaymentStatus != "" {
		project.PaymentStatus = req.PaymentStatus
	}
	if req.AcceptanceStatus != "" {
		project.AcceptanceStatus = req.AcceptanceStatus
	}
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			logger.Error("Invalid project date:", err)
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "date must be RFC 3339, e.g. 2023-10-01T00:00:00Z",
			}
		}
		project.Date = parsed
	}

	if err := db.Conn.Omit("Client", "User").Save(&project).Error; err != nil {
		logger.Errorf("Failed to update project: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, projectDetails(project, project.Client.Name))
}

// DeleteProjectHandler godoc
// @Summary      Delete a project
// @Description  Deletes a project together with its maintenance contracts.
// @Tags         projects
// @Produce      json
// @Param        project_id  path  string  true  "Project ID"
// @Success      200 {object} GenericResponse "Project deleted"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Project not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/projects/{project_id} [delete]
func DeleteProjectHandler(c echo.Context) error {
	logger := c.Logger()

	session, ok := c.Get("session").(models.Session)
	if !ok {
		logger.Error("Session not found in context.")
		return echo.ErrUnauthorized
	}

	project := models.Project{}
	if err := db.Conn.Where("id = ? AND user_id = ?", c.Param("project_id"), session.UserID).First(&project).Error; err != nil {
		logger.Error("Project not found:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Project not found",
		}
	}

	// Soft deletes do not trigger the FK cascade, so the contracts are
	// deleted explicitly.
	err := db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Maintenance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		logger.Errorf("Failed to delete project: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Project deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Project deleted"})
}

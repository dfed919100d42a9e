// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"bizdesk-server/commons"
	"bizdesk-server/handlers"
	"bizdesk-server/middlewares"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.POST("/auth/signup", handlers.SignupHandler, middlewares.RateLimitMiddleware("signup"))
	api_v1.POST("/auth/login", handlers.LoginHandler, middlewares.RateLimitMiddleware("login"))
	api_v1.POST("/auth/logout", handlers.LogoutHandler, middlewares.VerifySessionMiddleware)
	api_v1.GET("/clients/", handlers.GetAllClientsHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("clients"))
	api_v1.POST("/clients/", handlers.CreateClientHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("clients"))
	api_v1.PUT("/clients/:client_id", handlers.UpdateClientHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("clients"))
	api_v1.DELETE("/clients/:client_id", handlers.DeleteClientHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("clients"))
	api_v1.GET("/projects/", handlers.GetAllProjectsHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("projects"))
	api_v1.POST("/projects/", handlers.CreateProjectHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("projects"))
	api_v1.PUT("/projects/:project_id", handlers.UpdateProjectHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("projects"))
	api_v1.DELETE("/projects/:project_id", handlers.DeleteProjectHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("projects"))
	api_v1.GET("/maintenance/", handlers.GetAllMaintenanceHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("maintenance"))
	api_v1.POST("/maintenance/", handlers.CreateMaintenanceHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("maintenance"))
	api_v1.PUT("/maintenance/:maintenance_id", handlers.UpdateMaintenanceHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("maintenance"))
	api_v1.DELETE("/maintenance/:maintenance_id", handlers.DeleteMaintenanceHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("maintenance"))
	api_v1.GET("/settings/", handlers.GetSettingsHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("settings"))
	api_v1.PUT("/settings/", handlers.UpdateSettingsHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("settings"))
	api_v1.GET("/users/me", handlers.GetUserHandler, middlewares.VerifySessionMiddleware)
	api_v1.DELETE("/users/me", handlers.DeleteAccountHandler, middlewares.VerifySessionMiddleware)
	api_v1.POST("/reminders/run", handlers.RunRemindersHandler, middlewares.RateLimitMiddleware("run-reminders"))
	api_v1.POST("/reminders/test", handlers.TestReminderHandler, middlewares.VerifySessionMiddleware, middlewares.RateLimitMiddleware("test-reminder"))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	commons.Logger.Info("v1 routes registered successfully")
}

// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "bizdesk-server/models"

// swagger:model SignupRequest
type SignupRequest struct {
	// User's email address
	// required: true
	Email string `json:"email" example:"owner@example.com"`
	// User's password
	// required: true
	Password string `json:"password" example:"MySecretPassword@123"`
	// Optional full name
	FullName *string `json:"full_name" example:"Andi Pratama"`
}

// swagger:model SignupResponse
type SignupResponse struct {
	// Message indicating successful registration
	Message string `json:"message" example:"Signup successful"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// User's email address
	Email string `json:"email" example:"owner@example.com"`
	// User's password
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model LoginResponse
type LoginResponse struct {
	// Authentication session token, used as a Bearer token on
	// subsequent requests.
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Message indicating successful operation
	Message string `json:"message" example:"Login successful"`
}

// swagger:model GetUserResponse
type GetUserResponse struct {
	// Email address associated with the account
	Email string `json:"email" example:"owner@example.com"`
	// Full name of the user
	FullName *string `json:"full_name" example:"Andi Pratama"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"User retrieved successfully"`
}

// swagger:model DeleteAccountRequest
type DeleteAccountRequest struct {
	// Current password, required to confirm the deletion
	Password string `json:"password" example:"MySecretPassword@123"`
}

// swagger:model ClientRequest
type ClientRequest struct {
	// Client's display name
	Name string `json:"name" example:"Budi Santoso"`
	// Client's WhatsApp number, any local or international shape
	Wa string `json:"wa" example:"081234567890"`
}

// swagger:model ClientDetails
type ClientDetails struct {
	ID        uint   `json:"id"`
	Name      string `json:"name" example:"Budi Santoso"`
	Wa        string `json:"wa" example:"6281234567890"`
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model ProjectRequest
type ProjectRequest struct {
	// Client this project belongs to
	ClientID uint `json:"client_id" example:"1"`
	// Project name
	Name string `json:"name" example:"Company Profile Website"`
	// Agreed project value
	Value float64 `json:"value" example:"5000000"`
	// Delivery lifecycle status: draft, in-progress, revision, completed
	ProjectStatus models.ProjectStatus `json:"project_status" example:"draft"`
	// Payment status: unpaid, down-payment, paid
	PaymentStatus models.PaymentStatus `json:"payment_status" example:"unpaid"`
	// Acceptance status: accepted, cancelled
	AcceptanceStatus models.AcceptanceStatus `json:"acceptance_status" example:"accepted"`
	// Project start date, RFC 3339
	Date string `json:"date" example:"2023-10-01T00:00:00Z"`
}

// swagger:model ProjectDetails
type ProjectDetails struct {
	ID               uint                    `json:"id"`
	ClientID         uint                    `json:"client_id"`
	ClientName       string                  `json:"client_name" example:"Budi Santoso"`
	Name             string                  `json:"name" example:"Company Profile Website"`
	Value            float64                 `json:"value" example:"5000000"`
	ProjectStatus    models.ProjectStatus    `json:"project_status" example:"in-progress"`
	PaymentStatus    models.PaymentStatus    `json:"payment_status" example:"down-payment"`
	AcceptanceStatus models.AcceptanceStatus `json:"acceptance_status" example:"accepted"`
	Date             string                  `json:"date" example:"2023-10-01T00:00:00Z"`
	CreatedAt        string                  `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model MaintenanceRequest
type MaintenanceRequest struct {
	// Completed project this contract covers
	ProjectID uint `json:"project_id" example:"1"`
	// One-off setup cost; zero is a valid value
	InitialCost *float64 `json:"initial_cost" example:"1000000"`
	// Recurring monthly cost; zero is a valid value
	MonthlyCost *float64 `json:"monthly_cost" example:"500000"`
	// Day of month (1-31) the payment falls due
	PaymentDate int `json:"payment_date" example:"15"`
	// Whether reminders are active for this contract
	Active *bool `json:"active" example:"true"`
}

// swagger:model MaintenanceDetails
type MaintenanceDetails struct {
	ID               uint    `json:"id"`
	ProjectID        uint    `json:"project_id"`
	ProjectName      string  `json:"project_name" example:"Company Profile Website"`
	ClientName       string  `json:"client_name" example:"Budi Santoso"`
	ClientWa         string  `json:"client_wa" example:"6281234567890"`
	InitialCost      float64 `json:"initial_cost" example:"1000000"`
	MonthlyCost      float64 `json:"monthly_cost" example:"500000"`
	PaymentDate      int     `json:"payment_date" example:"15"`
	Active           bool    `json:"active" example:"true"`
	LastReminderSent *string `json:"last_reminder_sent" example:"2023-10-15T02:00:00Z"`
	CreatedAt        string  `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model SettingsRequest
type SettingsRequest struct {
	// Bank account shown to clients for transfers
	BankAccount *string `json:"bank_account" example:"BCA 1234567890 a.n. Andi"`
	// E-wallet details shown to clients
	Ewallet *string `json:"ewallet" example:"OVO/GoPay 081234567890"`
	// Telegram chat ID that receives reminder notifications
	TelegramChatID *string `json:"telegram_chat_id" example:"123456789"`
}

// swagger:model SettingsResponse
type SettingsResponse struct {
	BankAccount    *string `json:"bank_account"`
	Ewallet        *string `json:"ewallet"`
	TelegramChatID *string `json:"telegram_chat_id"`
	// Message indicating successful operation
	Message string `json:"message" example:"Settings saved"`
}

// swagger:model TestReminderRequest
type TestReminderRequest struct {
	// Telegram chat ID to send the test message to
	ChatID string `json:"chat_id" example:"123456789"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the operation result
	Message string `json:"message" example:"Operation successful"`
}

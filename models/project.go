// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"slices"
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string
type PaymentStatus string
type AcceptanceStatus string

const (
	ProjectDraft      ProjectStatus = "draft"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectRevision   ProjectStatus = "revision"
	ProjectCompleted  ProjectStatus = "completed"
)

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentDownPayment PaymentStatus = "down-payment"
	PaymentPaid        PaymentStatus = "paid"
)

const (
	AcceptanceAccepted  AcceptanceStatus = "accepted"
	AcceptanceCancelled AcceptanceStatus = "cancelled"
)

var (
	ProjectStatuses    = []ProjectStatus{ProjectDraft, ProjectInProgress, ProjectRevision, ProjectCompleted}
	PaymentStatuses    = []PaymentStatus{PaymentUnpaid, PaymentDownPayment, PaymentPaid}
	AcceptanceStatuses = []AcceptanceStatus{AcceptanceAccepted, AcceptanceCancelled}
)

// Project carries three independent status axes: delivery lifecycle,
// payment progress, and client acceptance.
type Project struct {
	ID               uint             `gorm:"primaryKey"`
	Name             string           `gorm:"size:255;not null"`
	Value            float64          `gorm:"type:decimal(15,2);not null"`
	ProjectStatus    ProjectStatus    `gorm:"size:20;not null;default:'draft'"`
	PaymentStatus    PaymentStatus    `gorm:"size:20;not null;default:'unpaid'"`
	AcceptanceStatus AcceptanceStatus `gorm:"size:20;not null;default:'accepted'"`
	Date             time.Time        `gorm:"not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
	UserID           uint           `gorm:"index"`
	User             User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ClientID         uint           `gorm:"index"`
	Client           Client         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func ValidProjectStatus(s ProjectStatus) bool {
	return slices.Contains(ProjectStatuses, s)
}

func ValidPaymentStatus(s PaymentStatus) bool {
	return slices.Contains(PaymentStatuses, s)
}

func ValidAcceptanceStatus(s AcceptanceStatus) bool {
	return slices.Contains(AcceptanceStatuses, s)
}

func init() {
	AllModels = append(AllModels, &Project{})
}

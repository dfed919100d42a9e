// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

// Maintenance is a recurring monthly billing contract for a completed
// project. PaymentDate is the day of month (1-31) the invoice falls due.
// LastReminderSent is written only by the reminder scheduler after a
// delivered notification; it backs the duplicate-suppression window.
type Maintenance struct {
	ID               uint    `gorm:"primaryKey"`
	InitialCost      float64 `gorm:"type:decimal(15,2);not null"`
	MonthlyCost      float64 `gorm:"type:decimal(15,2);not null"`
	PaymentDate      int     `gorm:"not null"`
	Active           bool    `gorm:"not null;default:true"`
	LastReminderSent *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
	ProjectID        uint           `gorm:"index"`
	Project          Project        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &Maintenance{})
}

// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"gorm.io/gorm"
)

// OwnerSettings holds per-user notification and payment routing details.
// TelegramChatID absent means no automated reminder can reach this user.
type OwnerSettings struct {
	ID             uint    `gorm:"primaryKey"`
	BankAccount    *string `gorm:"size:255;default:null"`
	Ewallet        *string `gorm:"type:text;default:null"`
	TelegramChatID *string `gorm:"size:50;default:null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
	UserID         uint           `gorm:"uniqueIndex"`
	User           User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func init() {
	AllModels = append(AllModels, &OwnerSettings{})
}

// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderRun is the audit record of one scheduler invocation. The
// dashboard reads these instead of per-record delivery logs.
type ReminderRun struct {
	ID         uint      `gorm:"primaryKey"`
	RID        uuid.UUID `gorm:"type:uuid;not null"`
	Total      int       `gorm:"not null;default:0"`
	Sent       int       `gorm:"not null;default:0"`
	Skipped    int       `gorm:"not null;default:0"`
	Failed     int       `gorm:"not null;default:0"`
	StartedAt  time.Time
	FinishedAt time.Time
	CreatedAt  time.Time
}

func (run *ReminderRun) BeforeCreate(tx *gorm.DB) (err error) {
	run.RID = uuid.New()
	return
}

func init() {
	AllModels = append(AllModels, &ReminderRun{})
}

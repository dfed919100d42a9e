// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// RateLimit is one fixed-window counter for a (caller, endpoint) pair.
// Rows are ephemeral: lookups filter by window recency and a housekeeping
// pass deletes anything older than a day.
type RateLimit struct {
	ID           uint      `gorm:"primaryKey"`
	Identifier   string    `gorm:"size:64;not null;index:idx_rl_identifier_endpoint"`
	Endpoint     string    `gorm:"size:64;not null;index:idx_rl_identifier_endpoint"`
	RequestCount int       `gorm:"not null;default:1"`
	WindowStart  time.Time `gorm:"not null;index"`
	CreatedAt    time.Time
}

func init() {
	AllModels = append(AllModels, &RateLimit{})
}

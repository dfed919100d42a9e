// SPDX-License-Identifier: GPL-3.0-only

// Package ratelimit implements a fixed-window request counter persisted in
// the relational store, keyed by (caller identifier, endpoint name). It is
// an abuse deterrent, not a hard quota: concurrent first requests in a
// window can under-count, and persistence failures fail open.
package ratelimit

import (
	"bizdesk-server/commons"
	"bizdesk-server/models"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Policy struct {
	MaxRequests int
	Window      time.Duration
}

// Per-endpoint policies. Auth endpoints get tight windows to blunt
// credential stuffing; data CRUD gets looser ones; test/cron endpoints
// the tightest. Unlisted endpoints use DefaultPolicy.
var policies = map[string]Policy{
	"signup":        {MaxRequests: 3, Window: time.Minute},
	"login":         {MaxRequests: 5, Window: time.Minute},
	"clients":       {MaxRequests: 60, Window: time.Minute},
	"projects":      {MaxRequests: 60, Window: time.Minute},
	"maintenance":   {MaxRequests: 60, Window: time.Minute},
	"settings":      {MaxRequests: 30, Window: time.Minute},
	"test-reminder": {MaxRequests: 5, Window: time.Minute},
	"run-reminders": {MaxRequests: 5, Window: time.Minute},
}

var DefaultPolicy = Policy{MaxRequests: 30, Window: time.Minute}

func PolicyFor(endpoint string) Policy {
	if p, ok := policies[endpoint]; ok {
		return p
	}
	return DefaultPolicy
}

type Result struct {
	Allowed bool
	// Remaining is -1 when the check failed open and no window state is
	// known.
	Remaining int
	ResetAt   time.Time
}

// Check counts one request against the endpoint's current window. A denied
// request is not persisted, so the stored counter stays at the policy
// ceiling instead of growing without bound.
func Check(conn *gorm.DB, identifier, endpoint string) Result {
	policy := PolicyFor(endpoint)
	now := time.Now()
	windowFloor := now.Add(-policy.Window)

	record := models.RateLimit{}
	err := conn.
		Where("identifier = ? AND endpoint = ? AND window_start > ?", identifier, endpoint, windowFloor).
		Order("window_start DESC").
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.RateLimit{
			Identifier:   identifier,
			Endpoint:     endpoint,
			RequestCount: 1,
			WindowStart:  now,
		}
		if err := conn.Create(&record).Error; err != nil {
			commons.Logger.Errorf("Rate limit insert failed, allowing request: %v", err)
			return Result{Allowed: true, Remaining: -1}
		}
		return Result{Allowed: true, Remaining: policy.MaxRequests - 1, ResetAt: now.Add(policy.Window)}
	}
	if err != nil {
		commons.Logger.Errorf("Rate limit lookup failed, allowing request: %v", err)
		return Result{Allowed: true, Remaining: -1}
	}

	newCount := record.RequestCount + 1
	resetAt := record.WindowStart.Add(policy.Window)

	if newCount > policy.MaxRequests {
		return Result{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	if err := conn.Model(&record).Update("request_count", newCount).Error; err != nil {
		commons.Logger.Errorf("Rate limit update failed, allowing request: %v", err)
		return Result{Allowed: true, Remaining: -1, ResetAt: resetAt}
	}
	return Result{Allowed: true, Remaining: policy.MaxRequests - newCount, ResetAt: resetAt}
}

// Cleanup deletes counters older than a day. Best-effort housekeeping;
// lookups already filter by window recency.
func Cleanup(conn *gorm.DB) error {
	cutoff := time.Now().Add(-24 * time.Hour)
	res := conn.Where("window_start < ?", cutoff).Delete(&models.RateLimit{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		commons.Logger.Debugf("Rate limit cleanup removed %d stale rows", res.RowsAffected)
	}
	return nil
}

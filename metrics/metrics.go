// SPDX-License-Identifier: GPL-3.0-only

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RemindersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizdesk_reminders_processed_total",
			Help: "Due maintenance reminders processed per outcome",
		},
		[]string{"outcome"}, // outcome: sent, skipped, failed
	)

	ReminderRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bizdesk_reminder_run_duration_seconds",
			Help:    "Wall-clock duration of a full reminder scheduler run",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	RateLimitDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bizdesk_ratelimit_denials_total",
			Help: "Requests denied by the fixed-window rate limiter",
		},
		[]string{"endpoint"},
	)

	TelegramSendFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bizdesk_telegram_send_failures_total",
			Help: "Telegram sendMessage calls that did not deliver",
		},
	)
)

func ObserveReminderRun(start time.Time) {
	ReminderRunDuration.Observe(time.Since(start).Seconds())
}

func IncrementReminder(outcome string) {
	RemindersProcessed.WithLabelValues(outcome).Inc()
}

func IncrementRateLimitDenial(endpoint string) {
	RateLimitDenials.WithLabelValues(endpoint).Inc()
}

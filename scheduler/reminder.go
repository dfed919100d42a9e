// SPDX-License-Identifier: GPL-3.0-only

// Package scheduler scans active maintenance contracts due today and sends
// one payment reminder per record through the notification gateway, with a
// duplicate-suppression window so nobody gets pinged twice a day.
package scheduler

import (
	"bizdesk-server/commons"
	"bizdesk-server/metrics"
	"bizdesk-server/models"
	"bizdesk-server/notifications"
	"bizdesk-server/whatsapp"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type RoutingMode string

const (
	// RoutingPerOwner delivers each reminder to the owning user's
	// configured chat.
	RoutingPerOwner RoutingMode = "per-owner"
	// RoutingSingle centralizes every reminder into one operator inbox.
	RoutingSingle RoutingMode = "single"
)

// SuppressionWindow is deliberately one hour short of a day so trigger
// jitter between successive daily runs never swallows a reminder, while
// still capping delivery at one per record per calendar day.
const SuppressionWindow = 23 * time.Hour

type Config struct {
	// Location pins "current day" to the business's timezone instead of
	// the host's.
	Location *time.Location
	Routing  RoutingMode
	// AdminChatID is the operator inbox used when Routing is
	// RoutingSingle.
	AdminChatID string
}

type Summary struct {
	Total   int `json:"total"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type Scheduler struct {
	conn     *gorm.DB
	notifier notifications.Notifier
	cfg      Config
}

func New(conn *gorm.DB, notifier notifications.Notifier, cfg Config) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Routing == "" {
		cfg.Routing = RoutingPerOwner
	}
	return &Scheduler{conn: conn, notifier: notifier, cfg: cfg}
}

// dueRecord is one row of the due-maintenance join, flattened across
// maintenance, project, client and the owner's settings.
type dueRecord struct {
	MaintenanceID    uint
	ProjectName      string
	ClientName       string
	ClientWa         string
	MonthlyCost      float64
	PaymentDate      int
	LastReminderSent *time.Time
	UserID           uint
	TelegramChatID   *string
}

type outcome int

const (
	outcomeSent outcome = iota
	outcomeSkipped
	outcomeFailed
)

// Run processes every active maintenance record whose payment date is
// today. Records are handled sequentially; one record's delivery failure
// never aborts the rest. A failed query against the store aborts the whole
// run.
func (s *Scheduler) Run() (Summary, error) {
	start := time.Now()
	defer metrics.ObserveReminderRun(start)

	now := start.In(s.cfg.Location)
	currentDay := now.Day()

	records, err := s.dueRecords(currentDay)
	if err != nil {
		return Summary{}, fmt.Errorf("querying due maintenance records: %w", err)
	}
	commons.Logger.Infof("Reminder run started: day=%d due=%d routing=%s", currentDay, len(records), s.cfg.Routing)

	summary := Summary{Total: len(records)}
	for _, record := range records {
		switch s.process(record, now) {
		case outcomeSent:
			summary.Sent++
		case outcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	s.recordRun(start, summary)
	commons.Logger.Infof("Reminder run finished: total=%d sent=%d skipped=%d failed=%d",
		summary.Total, summary.Sent, summary.Skipped, summary.Failed)
	return summary, nil
}

// dueRecords selects today's active contracts. The project and client
// joins are inner joins: a contract whose parent was deleted is never due.
func (s *Scheduler) dueRecords(day int) ([]dueRecord, error) {
	var records []dueRecord
	err := s.conn.Table("maintenances").
		Select(`maintenances.id AS maintenance_id,
			projects.name AS project_name,
			clients.name AS client_name,
			clients.wa AS client_wa,
			maintenances.monthly_cost,
			maintenances.payment_date,
			maintenances.last_reminder_sent,
			projects.user_id,
			owner_settings.telegram_chat_id`).
		Joins("JOIN projects ON maintenances.project_id = projects.id AND projects.deleted_at IS NULL").
		Joins("JOIN clients ON projects.client_id = clients.id AND clients.deleted_at IS NULL").
		Joins("LEFT JOIN owner_settings ON owner_settings.user_id = projects.user_id AND owner_settings.deleted_at IS NULL").
		Where("maintenances.active = ? AND maintenances.payment_date = ? AND maintenances.deleted_at IS NULL", true, day).
		Scan(&records).Error
	return records, err
}

func (s *Scheduler) process(record dueRecord, now time.Time) outcome {
	if record.LastReminderSent != nil && now.Sub(*record.LastReminderSent) < SuppressionWindow {
		commons.Logger.Debugf("Maintenance %d suppressed, last reminder sent %s",
			record.MaintenanceID, record.LastReminderSent.Format(time.RFC3339))
		metrics.IncrementReminder("skipped")
		return outcomeSkipped
	}

	chatID := s.targetChatID(record)
	if chatID == "" {
		commons.Logger.Warnf("No Telegram chat ID configured for user %d, maintenance %d not notified",
			record.UserID, record.MaintenanceID)
		metrics.IncrementReminder("failed")
		return outcomeFailed
	}

	data := notifications.NotificationData{
		ChatID: chatID,
		Text:   s.buildMessage(record),
	}
	if link := whatsapp.BuildLink(record.ClientWa, record.ClientName, record.ProjectName, record.MonthlyCost); link != "" {
		data.Button = &notifications.Button{Label: "Chat on WhatsApp", URL: link}
	}

	if !s.notifier.Send(data) {
		// Timestamp stays untouched so the next scheduled run retries.
		commons.Logger.Errorf("Reminder delivery failed for maintenance %d", record.MaintenanceID)
		metrics.IncrementReminder("failed")
		return outcomeFailed
	}

	if err := s.conn.Model(&models.Maintenance{}).
		Where("id = ?", record.MaintenanceID).
		Update("last_reminder_sent", now).Error; err != nil {
		commons.Logger.Errorf("Failed to persist last_reminder_sent for maintenance %d: %v",
			record.MaintenanceID, err)
	}
	metrics.IncrementReminder("sent")
	return outcomeSent
}

func (s *Scheduler) targetChatID(record dueRecord) string {
	if s.cfg.Routing == RoutingSingle {
		return s.cfg.AdminChatID
	}
	if record.TelegramChatID != nil {
		return *record.TelegramChatID
	}
	return ""
}

func (s *Scheduler) buildMessage(record dueRecord) string {
	var b strings.Builder
	b.WriteString("🔔 <b>Maintenance Payment Reminder</b>\n\n")
	fmt.Fprintf(&b, "Client: %s\n", record.ClientName)
	fmt.Fprintf(&b, "Project: %s\n", record.ProjectName)
	fmt.Fprintf(&b, "Amount: Rp %s\n", commons.FormatRupiah(record.MonthlyCost))
	fmt.Fprintf(&b, "Due Date: %d of this month\n", record.PaymentDate)
	fmt.Fprintf(&b, "WhatsApp: %s\n\n", record.ClientWa)
	fmt.Fprintf(&b, "Message to send:\n%q", whatsapp.Message(record.ClientName, record.ProjectName, record.MonthlyCost))
	return b.String()
}

func (s *Scheduler) recordRun(start time.Time, summary Summary) {
	run := models.ReminderRun{
		Total:      summary.Total,
		Sent:       summary.Sent,
		Skipped:    summary.Skipped,
		Failed:     summary.Failed,
		StartedAt:  start,
		FinishedAt: time.Now(),
	}
	if err := s.conn.Create(&run).Error; err != nil {
		commons.Logger.Errorf("Failed to record reminder run: %v", err)
	}
}

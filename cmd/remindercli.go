// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"flag"
	"log"
	"time"

	"bizdesk-server/commons"
	"bizdesk-server/db"
	"bizdesk-server/notifications"
	"bizdesk-server/scheduler"
)

type Config struct {
	Timezone    string
	Routing     string
	AdminChatID string
	Mock        bool
}

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.Timezone, "timezone", commons.GetEnv("REMINDER_TIMEZONE", "Asia/Jakarta"), "Business timezone for the due-day calculation")
	flag.StringVar(&cfg.Routing, "routing", commons.GetEnv("REMINDER_ROUTING", "per-owner"), "Routing mode: per-owner or single")
	flag.StringVar(&cfg.AdminChatID, "admin-chat", commons.GetEnv("TELEGRAM_CHAT_ID"), "Operator chat ID for single routing")
	flag.BoolVar(&cfg.Mock, "mock", false, "Log notifications instead of delivering them")
	flag.Parse()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Unknown timezone %q: %v", cfg.Timezone, err)
	}

	db.InitDB()

	var notifier notifications.Notifier
	if cfg.Mock {
		notifier = notifications.MockClient{}
	} else {
		notifier = notifications.NewNotifier(notifications.TelegramConfig{
			Token: commons.GetEnv("TELEGRAM_BOT_TOKEN"),
		})
	}

	s := scheduler.New(db.Conn, notifier, scheduler.Config{
		Location:    location,
		Routing:     scheduler.RoutingMode(cfg.Routing),
		AdminChatID: cfg.AdminChatID,
	})

	summary, err := s.Run()
	if err != nil {
		log.Fatalf("Reminder run failed: %v", err)
	}
	log.Printf("Reminder run complete: total=%d sent=%d skipped=%d failed=%d",
		summary.Total, summary.Sent, summary.Skipped, summary.Failed)
}

// go run ./cmd/remindercli.go -mock

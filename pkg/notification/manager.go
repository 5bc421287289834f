package notification

import (
	"embed"
	"fmt"
	"log/slog"
)

//go:embed templates/*
var templateFiles embed.FS

// NotificationManager holds registered notifiers and notice templates
type NotificationManager struct {
	notifiers []Notifier
	registry  map[NoticeType]NoticeTemplate
}

// NewNotificationManager creates an empty NotificationManager
func NewNotificationManager() *NotificationManager {
	return &NotificationManager{
		registry: make(map[NoticeType]NoticeTemplate),
	}
}

// RegisterNotifier adds a delivery backend
func (nm *NotificationManager) RegisterNotifier(notifier Notifier) {
	nm.notifiers = append(nm.notifiers, notifier)
}

// RegisterNotice adds or replaces the template for a notice type
func (nm *NotificationManager) RegisterNotice(noticeType NoticeType, template NoticeTemplate) error {
	if noticeType == "" {
		return fmt.Errorf("notice type cannot be empty")
	}
	nm.registry[noticeType] = template
	return nil
}

// Send renders and delivers a notice through every registered notifier
func (nm *NotificationManager) Send(noticeType NoticeType, notification NotificationData) error {
	template, ok := nm.registry[noticeType]
	if !ok {
		return fmt.Errorf("no template registered for notice type: %s", noticeType)
	}
	if len(nm.notifiers) == 0 {
		return fmt.Errorf("no notifiers registered")
	}

	for _, notifier := range nm.notifiers {
		if err := notifier.Send(notification, template); err != nil {
			return err
		}
	}

	return nil
}

// NewEmailManager creates a manager with an SMTP notifier and the default
// templates registered.
func NewEmailManager(config SMTPConfig) (*NotificationManager, error) {
	manager := NewNotificationManager()

	emailNotifier, err := NewEmailNotifier(config)
	if err != nil {
		return nil, err
	}
	manager.RegisterNotifier(emailNotifier)

	err = manager.RegisterNotice(CleanupReportNotice, NoticeTemplate{
		Subject: "Unverified Account Cleanup Report",
		Html:    loadTemplate("templates/email/cleanup_report.tmpl"),
	})
	if err != nil {
		return nil, err
	}

	return manager, nil
}

func loadTemplate(filename string) string {
	content, err := templateFiles.ReadFile(filename)
	if err != nil {
		slog.Error("Error reading template file", "filename", filename, "error", err)
		return ""
	}
	return string(content)
}

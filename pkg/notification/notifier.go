package notification

// NoticeType represents a type of notification (e.g. "cleanup_report")
type NoticeType string

const (
	// CleanupReportNotice is the per-run summary mailed to an operator
	CleanupReportNotice NoticeType = "cleanup_report"
)

// NotificationData carries the recipient and template data for one notice
type NotificationData struct {
	To   string
	Data map[string]string
}

// NoticeTemplate holds the subject and bodies for a notice type
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// Notifier delivers a rendered notice
type Notifier interface {
	Send(notification NotificationData, template NoticeTemplate) error
}

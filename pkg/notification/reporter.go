package notification

import (
	"strconv"
	"time"

	"github.com/tendant/simple-lifecycle/pkg/cleanup"
)

// CleanupReporter mails a per-run cleanup summary to an operator address.
// It implements cleanup.Reporter.
type CleanupReporter struct {
	manager *NotificationManager
	to      string
}

// NewCleanupReporter creates a reporter sending to the given address
func NewCleanupReporter(manager *NotificationManager, to string) *CleanupReporter {
	return &CleanupReporter{manager: manager, to: to}
}

// Report sends the run summary email
func (r *CleanupReporter) Report(result cleanup.RunResult) error {
	return r.manager.Send(CleanupReportNotice, NotificationData{
		To: r.to,
		Data: map[string]string{
			"CompletedAt":  time.Now().UTC().Format(time.RFC3339),
			"DeletedCount": strconv.Itoa(result.DeletedCount),
			"FailedCount":  strconv.Itoa(result.FailedCount),
			"Error":        result.Error,
		},
	})
}

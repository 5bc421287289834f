package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockNotifier records sent notices for assertions.
type MockNotifier struct {
	sent      []NotificationData
	templates []NoticeTemplate
	err       error
}

func (m *MockNotifier) Send(notification NotificationData, template NoticeTemplate) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, notification)
	m.templates = append(m.templates, template)
	return nil
}

func TestNewNotificationManager(t *testing.T) {
	nm := NewNotificationManager()
	require.NotNil(t, nm)
	assert.NotNil(t, nm.registry)
}

func TestRegisterNotice(t *testing.T) {
	nm := NewNotificationManager()

	err := nm.RegisterNotice(CleanupReportNotice, NoticeTemplate{Subject: "Report"})
	require.NoError(t, err)

	err = nm.RegisterNotice("", NoticeTemplate{Subject: "Nope"})
	assert.Error(t, err)
}

func TestSend(t *testing.T) {
	nm := NewNotificationManager()
	mock := &MockNotifier{}
	nm.RegisterNotifier(mock)

	template := NoticeTemplate{Subject: "Cleanup Report", Html: "<p>{{.DeletedCount}} removed</p>"}
	require.NoError(t, nm.RegisterNotice(CleanupReportNotice, template))

	data := NotificationData{
		To:   "ops@example.com",
		Data: map[string]string{"DeletedCount": "3"},
	}
	require.NoError(t, nm.Send(CleanupReportNotice, data))

	require.Len(t, mock.sent, 1)
	assert.Equal(t, "ops@example.com", mock.sent[0].To)
	assert.Equal(t, "Cleanup Report", mock.templates[0].Subject)
}

func TestSend_UnregisteredNotice(t *testing.T) {
	nm := NewNotificationManager()
	nm.RegisterNotifier(&MockNotifier{})

	err := nm.Send("unknown_notice", NotificationData{To: "ops@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template registered")
}

func TestSend_NoNotifiers(t *testing.T) {
	nm := NewNotificationManager()
	require.NoError(t, nm.RegisterNotice(CleanupReportNotice, NoticeTemplate{Subject: "Report"}))

	err := nm.Send(CleanupReportNotice, NotificationData{To: "ops@example.com"})
	assert.Error(t, err)
}

func TestEmbeddedCleanupTemplate(t *testing.T) {
	content := loadTemplate("templates/email/cleanup_report.tmpl")
	require.NotEmpty(t, content)
	assert.Contains(t, content, "{{.DeletedCount}}")
	assert.Contains(t, content, "{{.FailedCount}}")
}

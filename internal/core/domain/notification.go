package domain

// NotificationLevel is the severity of a transient notification.
type NotificationLevel string

const (
	NotifyInfo    NotificationLevel = "info"
	NotifySuccess NotificationLevel = "success"
	NotifyWarn    NotificationLevel = "warn"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient, user-visible message (a toast).
type Notification struct {
	Level   NotificationLevel
	Message string
}

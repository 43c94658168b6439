package types

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
)

// Notification is a transient user-facing message raised by store
// actions; the view decides how (and how long) to show it.
type Notification struct {
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

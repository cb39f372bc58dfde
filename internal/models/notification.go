package models

import (
	"time"
)

// NotificationType enum
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
)

// Notification is a transient user-facing message.
type Notification struct {
	Message string           `json:"message"`
	Type    NotificationType `json:"type"`
}

// LoggedError is a captured failure with a reference id that can be surfaced
// to the user and later looked up by an administrator.
type LoggedError struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Context   string    `json:"context"`
}

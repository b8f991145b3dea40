package models

import "time"

// NotificationType tags the origin of a notification.
type NotificationType string

// Recognised notification types.
const (
	NotificationQuote  NotificationType = "quote"
	NotificationSystem NotificationType = "system"
)

// Notification represents one entry of the shell notification bell.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	IsRead    bool             `json:"isRead"`
	Type      NotificationType `json:"type,omitempty"`
}

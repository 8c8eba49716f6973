package model

import "time"

// NotificationType distinguishes delivery channels for a scheduled reminder.
type NotificationType string

const (
	// NotificationPush is a local system notification.
	NotificationPush NotificationType = "push"
	// NotificationEmail is an outbound email reminder.
	NotificationEmail NotificationType = "email"
)

// Notification is a scheduled reminder for one subscription. SubscriptionID
// is a weak reference; the store does not enforce it.
type Notification struct {
	ScheduledFor   time.Time        `json:"scheduledFor"`
	ID             string           `json:"id"`
	SubscriptionID string           `json:"subscriptionId"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
}

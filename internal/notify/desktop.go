// Package notify delivers reminders through the local notification surface
// and the outbound email endpoint.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// DesktopNotifier shows local system notifications. Delivery is
// fire-and-forget; there is no receipt.
type DesktopNotifier struct {
	iconPath string
}

// NewDesktopNotifier creates a desktop notifier. iconPath may be empty.
func NewDesktopNotifier(iconPath string) *DesktopNotifier {
	return &DesktopNotifier{iconPath: iconPath}
}

// Notify shows a system notification with the given title and message.
func (n *DesktopNotifier) Notify(title, message string) error {
	if err := beeep.Notify(title, message, n.iconPath); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}
	return nil
}

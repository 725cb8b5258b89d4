// Package notify delivers task reminders through a pluggable gateway.
package notify

import "context"

// Recipient carries the contact fields known for a task owner. Which
// field is usable depends on the configured gateway.
type Recipient struct {
	Email          string
	TelegramChatID int64
}

// Gateway sends one reminder to one contact. Implementations are safe
// for concurrent use.
type Gateway interface {
	// Contact picks the address this gateway can deliver to, or false
	// when the recipient has none.
	Contact(r Recipient) (string, bool)

	// SendReminder notifies the contact that the titled task is starting
	// "now" or "soon". Failures are non-fatal to the caller's scan.
	SendReminder(ctx context.Context, contact, title, label string) error
}

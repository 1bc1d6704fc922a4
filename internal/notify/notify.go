// Package notify provides cross-platform desktop notification support for
// reminder alerts, backed by beeep.
package notify

// Notifier defines the interface for sending desktop notifications.
type Notifier interface {
	// Send sends a notification with the given title and message.
	Send(title, message string) error

	// SendWithSound sends a notification with an audible alert.
	SendWithSound(title, message string) error
}

type noopNotifier struct{}

func (noopNotifier) Send(title, message string) error          { return nil }
func (noopNotifier) SendWithSound(title, message string) error { return nil }

// Noop returns a notifier that silently discards everything. Used when
// notifications are disabled and in tests.
func Noop() Notifier {
	return noopNotifier{}
}

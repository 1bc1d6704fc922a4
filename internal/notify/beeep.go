package notify

import (
	"github.com/gen2brain/beeep"
)

// desktopNotifier sends notifications through the platform notification
// daemon via beeep.
type desktopNotifier struct{}

// New creates the desktop notifier.
func New() Notifier {
	return desktopNotifier{}
}

func (desktopNotifier) Send(title, message string) error {
	return beeep.Notify(title, message, "")
}

func (desktopNotifier) SendWithSound(title, message string) error {
	return beeep.Alert(title, message, "")
}

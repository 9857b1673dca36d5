package state

// Level is the severity of a notification
type Level int

const (
	Info Level = iota
	Error
)

// Notification is a one-line message shown in the status bar
type Notification struct {
	Level   Level
	Message string
}

// NotificationState holds the latest notification until it is cleared
type NotificationState struct {
	current *Notification
}

// Notify replaces the current notification
func (n *NotificationState) Notify(level Level, message string) {
	n.current = &Notification{Level: level, Message: message}
}

// Current returns the notification on display, nil when there is none
func (n *NotificationState) Current() *Notification {
	return n.current
}

// Clear removes the current notification
func (n *NotificationState) Clear() {
	n.current = nil
}

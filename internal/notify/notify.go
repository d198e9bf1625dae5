// Package notify delivers advisory, user-visible notifications. All
// sinks are fire-and-forget: delivery failure is logged, never
// propagated, and never blocks a workspace mutation.
package notify

import "go.uber.org/zap"

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

type Notifier interface {
	Notify(kind Kind, message string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(kind Kind, message string) {
	n.logger.Info("Notification",
		zap.String("kind", string(kind)),
		zap.String("message", message))
}

// Multi fans a notification out to every sink.
type Multi []Notifier

func (m Multi) Notify(kind Kind, message string) {
	for _, n := range m {
		n.Notify(kind, message)
	}
}

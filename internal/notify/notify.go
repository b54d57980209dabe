// Package notify defines the transient user-notice channel. Notices are
// fire-and-forget: delivery is best-effort and never blocks or fails the
// operation that raised them.
package notify

import "log/slog"

// Notifier delivers a transient, user-visible message.
type Notifier interface {
	Notify(message string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(message string)

// Notify implements Notifier.
func (f Func) Notify(message string) { f(message) }

// Log returns a Notifier that records notices through the given logger.
// Used by the one-shot CLI path, where the log stream is the user surface.
func Log(logger *slog.Logger) Notifier {
	return Func(func(message string) {
		logger.Info("notice", slog.String("message", message))
	})
}

// Multi fans a notice out to several notifiers.
func Multi(notifiers ...Notifier) Notifier {
	return Func(func(message string) {
		for _, n := range notifiers {
			n.Notify(message)
		}
	})
}

// Discard drops all notices. Useful in tests that don't assert on them.
var Discard Notifier = Func(func(string) {})

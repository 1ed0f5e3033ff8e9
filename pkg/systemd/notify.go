// Package systemd reports service state to the systemd manager over the
// sd_notify socket. Every call is a no-op when NOTIFY_SOCKET is unset.
package systemd

import (
	"strings"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier sends sd_notify state lines.
type Notifier struct {
	send func(state string) (bool, error)
}

// New returns a Notifier backed by daemon.SdNotify.
func New() *Notifier {
	return &Notifier{send: func(state string) (bool, error) {
		return daemon.SdNotify(false, state)
	}}
}

// NewFunc returns a Notifier that hands every state line to fn.
func NewFunc(fn func(state string) (bool, error)) *Notifier {
	return &Notifier{send: fn}
}

// Ready tells the manager that startup finished.
func (n *Notifier) Ready() error { return n.notify(daemon.SdNotifyReady) }

// Stopping tells the manager that shutdown began.
func (n *Notifier) Stopping() error { return n.notify(daemon.SdNotifyStopping) }

// Status publishes a one-line free-form status.
func (n *Notifier) Status(msg string) error {
	msg = strings.ReplaceAll(strings.TrimSpace(msg), "\n", " ")
	return n.notify("STATUS=" + msg)
}

func (n *Notifier) notify(state string) error {
	if n == nil || n.send == nil {
		return nil
	}
	_, err := n.send(state)
	return err
}

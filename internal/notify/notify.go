// Package notify delivers the finished report through the configured
// transports. Every transport receives the identical text and applies its own
// constraints; nothing here feeds back into probing.
package notify

import (
	"context"

	"go.uber.org/multierr"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans one report out to several transports. Every transport is
// attempted even when an earlier one fails; the errors are combined so a dead
// SMTP relay does not hide a Telegram failure or vice versa.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var errs error
	for _, n := range m {
		if n == nil {
			continue
		}
		errs = multierr.Append(errs, n.Send(ctx, title, text))
	}
	return errs
}

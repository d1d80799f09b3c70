package notify

import (
	"context"

	"go.uber.org/multierr"
)

// Notifier delivers a short alert about a finished run.
type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans one alert out to every configured notifier. Nil entries are
// skipped so optional channels can be listed unconditionally.
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

// Enabled reports whether at least one non-nil notifier is present.
func (m Multi) Enabled() bool {
	for _, n := range m {
		if n != nil {
			return true
		}
	}
	return false
}

package probe

import (
	"context"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// Prober performs a single attempt against a target URL. Implementations
// report transport problems as a domain.Failure, never as a panic or error.
type Prober interface {
	Probe(ctx context.Context, target string) domain.Outcome
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, target string) domain.Outcome

func (f ProberFunc) Probe(ctx context.Context, target string) domain.Outcome {
	return f(ctx, target)
}

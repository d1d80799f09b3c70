package probe

import (
	"context"
	"time"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// RetryProber re-invokes Inner while attempts fail, up to Retries extra
// attempts. There is no backoff: each re-attempt is issued immediately.
type RetryProber struct {
	Inner   Prober
	Retries int
}

func NewRetryProber(inner Prober, retries int) *RetryProber {
	if retries < 0 {
		retries = 0
	}
	return &RetryProber{Inner: inner, Retries: retries}
}

// Attempt probes target until the first success or until Retries+1 attempts
// have been made. The returned duration spans all attempts. A cancelled ctx
// stops further re-attempts and the last failure is returned.
func (r *RetryProber) Attempt(ctx context.Context, target string) (domain.Outcome, time.Duration, int) {
	budget := r.Retries
	if budget < 0 {
		budget = 0
	}

	start := time.Now()
	out := r.Inner.Probe(ctx, target)
	attempts := 1
	for !out.Up() && attempts <= budget {
		if ctx.Err() != nil {
			break
		}
		out = r.Inner.Probe(ctx, target)
		attempts++
	}
	return out, time.Since(start), attempts
}

func (r *RetryProber) Probe(ctx context.Context, target string) domain.Outcome {
	out, _, _ := r.Attempt(ctx, target)
	return out
}

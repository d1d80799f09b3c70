package dispatch

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/sitecheck/internal/domain"
	"github.com/hamed0406/sitecheck/internal/metrics"
	"github.com/hamed0406/sitecheck/internal/probe"
)

type Options struct {
	// Retries is the number of re-attempts after a failing first attempt.
	Retries int
	// Concurrency caps probes in flight. 0 runs one goroutine per target.
	Concurrency int
}

// Dispatcher runs one unit of work per target and funnels every verdict into
// a single results channel. Options are fixed at construction.
type Dispatcher struct {
	Logger  *zap.Logger
	Prober  probe.Prober
	Metrics *metrics.Recorder
	opts    Options
}

func New(logger *zap.Logger, prober probe.Prober, opts Options, rec *metrics.Recorder) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Concurrency < 0 {
		opts.Concurrency = 0
	}
	return &Dispatcher{
		Logger:  logger,
		Prober:  prober,
		Metrics: rec,
		opts:    opts,
	}
}

func (d *Dispatcher) Options() Options { return d.opts }

// Dispatch starts probing and returns immediately. The returned channel
// yields exactly one result per target, in completion order, and is closed
// once every unit has reported. Cancelling ctx does not drop results: units
// that have not finished report a failure.
func (d *Dispatcher) Dispatch(ctx context.Context, targets []domain.Target) <-chan domain.ProbeResult {
	// buffered to len(targets) so units never block on a slow consumer
	results := make(chan domain.ProbeResult, len(targets))
	inner := d.instrumented()

	var g errgroup.Group
	if d.opts.Concurrency == 0 {
		for _, t := range targets {
			g.Go(func() error {
				results <- d.runUnit(ctx, inner, t)
				return nil
			})
		}
	} else {
		jobs := make(chan domain.Target, len(targets))
		for _, t := range targets {
			jobs <- t
		}
		close(jobs)

		workers := min(d.opts.Concurrency, len(targets))
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				for t := range jobs {
					results <- d.runUnit(ctx, inner, t)
				}
				return nil
			})
		}
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()
	return results
}

// Run dispatches targets and collects every result.
func (d *Dispatcher) Run(ctx context.Context, targets []domain.Target) []domain.ProbeResult {
	start := time.Now()
	d.Logger.Info("run_started",
		zap.Int("targets", len(targets)),
		zap.Int("concurrency", d.opts.Concurrency),
		zap.Int("retries", d.opts.Retries),
	)

	out := Collect(d.Dispatch(ctx, targets), func(r domain.ProbeResult) {
		d.Logger.Debug("target_checked",
			zap.String("url", r.Target.URL),
			zap.Bool("up", r.Outcome.Up()),
			zap.Int("status", r.Outcome.StatusCode()),
			zap.String("reason", r.Outcome.Message()),
			zap.Int("attempts", r.Attempts),
			zap.Duration("elapsed", r.Elapsed),
		)
	})

	sum := domain.Summarize(out)
	d.Logger.Info("run_finished",
		zap.Int("total", sum.Total),
		zap.Int("up", sum.Up),
		zap.Int("down", sum.Down),
		zap.Duration("elapsed", time.Since(start)),
	)
	return out
}

// runUnit resolves one target. A panic anywhere below is converted into a
// failure for that target so the one-result-per-target guarantee holds.
func (d *Dispatcher) runUnit(ctx context.Context, inner probe.Prober, t domain.Target) (res domain.ProbeResult) {
	start := time.Now()
	// started counts attempts begun, so a panic mid-attempt still reports it.
	started := 0
	retry := probe.NewRetryProber(probe.ProberFunc(func(ctx context.Context, target string) domain.Outcome {
		started++
		return inner.Probe(ctx, target)
	}), d.opts.Retries)
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			d.Logger.Error("unit_panic",
				zap.String("url", t.URL),
				zap.String("correlation_id", correlationID),
				zap.String("panic", fmt.Sprintf("%v", r)),
				zap.String("stack", string(debug.Stack())),
			)
			d.Metrics.ObservePanic()
			res = domain.ProbeResult{
				Target:   t,
				Outcome:  domain.Failure(fmt.Sprintf("internal error: %v (correlation_id: %s)", r, correlationID)),
				Elapsed:  time.Since(start),
				Attempts: started,
			}
		}
		d.Metrics.ObserveResult(res.Outcome.Up())
	}()

	out, elapsed, attempts := retry.Attempt(ctx, t.URL)
	return domain.ProbeResult{
		Target:   t,
		Outcome:  out,
		Elapsed:  elapsed,
		Attempts: attempts,
	}
}

// instrumented wraps the single-attempt prober with metrics and per-attempt
// logging.
func (d *Dispatcher) instrumented() probe.Prober {
	return probe.ProberFunc(func(ctx context.Context, target string) domain.Outcome {
		up := false
		done := d.Metrics.StartAttempt()
		defer func() { done(up) }()

		out := d.Prober.Probe(ctx, target)
		up = out.Up()
		if !up {
			d.Logger.Debug("probe_attempt_failed",
				zap.String("url", target),
				zap.String("reason", out.Message()),
			)
		}
		return out
	})
}

package agent

import (
	"context"
	"log/slog"
	"time"
)

// Poller waits for remote runs to leave the pending state using fixed-interval
// polling. There is no backoff. With zero bounds it waits forever, so a run
// stuck in queued blocks until ctx is cancelled.
type Poller struct {
	backend     Backend
	interval    time.Duration
	timeout     time.Duration
	maxAttempts int
	logger      *slog.Logger
}

// NewPoller creates a Poller that queries backend with the polling options in opts.
func NewPoller(backend Backend, opts ...Option) *Poller {
	o := resolveOptions(opts)
	return newPoller(backend, o)
}

func newPoller(backend Backend, o options) *Poller {
	return &Poller{
		backend:     backend,
		interval:    o.pollInterval,
		timeout:     o.pollTimeout,
		maxAttempts: o.pollMaxAttempts,
		logger:      o.logger,
	}
}

// AwaitTerminal returns the first observed state of job that is not pending.
// A job that is already terminal is returned without querying the backend.
func (p *Poller) AwaitTerminal(ctx context.Context, job *Job) (*Job, error) {
	start := time.Now()
	attempts := 0

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for job.Status.Pending() {
		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			return nil, &PollTimeoutError{JobID: job.ID, Attempts: attempts, Elapsed: time.Since(start)}
		}
		if p.timeout > 0 && time.Since(start) >= p.timeout {
			return nil, &PollTimeoutError{JobID: job.ID, Attempts: attempts, Elapsed: time.Since(start)}
		}

		if attempts > 0 {
			timer.Reset(p.interval)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}

		next, err := p.backend.GetRun(ctx, job.ThreadID, job.ID)
		if err != nil {
			return nil, err
		}
		attempts++
		if next.ThreadID == "" {
			next.ThreadID = job.ThreadID
		}
		if next.Status != job.Status {
			p.logger.DebugContext(ctx, "run status changed",
				"run_id", job.ID, "from", job.Status, "to", next.Status, "attempts", attempts)
		}
		job = next
	}
	return job, nil
}

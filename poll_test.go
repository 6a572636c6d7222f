package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startScripted(t *testing.T, b *scriptedBackend) *Job {
	t.Helper()
	job, err := b.CreateThreadAndRun(context.Background(), "asst_1", "hello")
	require.NoError(t, err)
	return job
}

func TestPoller_TerminalJobNotQueried(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusCompleted})
	p := NewPoller(b, WithPollInterval(time.Millisecond))

	job, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, 0, b.GetRunCalls())
}

func TestPoller_WaitsWhilePending(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusQueued, StatusInProgress, StatusInProgress, StatusFailed})
	p := NewPoller(b, WithPollInterval(time.Millisecond))

	job, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, job.Status)
	assert.Equal(t, 3, b.GetRunCalls())
}

func TestPoller_StopsAtFirstTerminalStatus(t *testing.T) {
	// Statuses after completed must never be observed.
	b := newScriptedBackend([]JobStatus{StatusQueued, StatusCompleted, StatusQueued, StatusFailed})
	p := NewPoller(b, WithPollInterval(time.Millisecond))

	job, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, 1, b.GetRunCalls())
}

func TestPoller_NonStandardStatusesEndPolling(t *testing.T) {
	for _, status := range []JobStatus{StatusRequiresAction, StatusCancelling, StatusCancelled, StatusExpired} {
		t.Run(string(status), func(t *testing.T) {
			b := newScriptedBackend([]JobStatus{StatusQueued, status})
			p := NewPoller(b, WithPollInterval(time.Millisecond))

			job, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
			require.NoError(t, err)
			assert.Equal(t, status, job.Status)
		})
	}
}

func TestPoller_KeepsThreadID(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusQueued, StatusCompleted})
	p := NewPoller(b, WithPollInterval(time.Millisecond))

	job, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	require.NoError(t, err)
	assert.Equal(t, "thread_1", job.ThreadID)
	assert.Equal(t, "run_1", job.ID)
}

func TestPoller_MaxAttempts(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusQueued})
	p := NewPoller(b, WithPollInterval(time.Millisecond), WithPollMaxAttempts(2))

	_, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	var timeoutErr *PollTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 2, timeoutErr.Attempts)
	assert.Equal(t, "run_1", timeoutErr.JobID)
	assert.Equal(t, 2, b.GetRunCalls())
}

func TestPoller_Timeout(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusInProgress})
	p := NewPoller(b, WithPollInterval(2*time.Millisecond), WithPollTimeout(20*time.Millisecond))

	_, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	var timeoutErr *PollTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.GreaterOrEqual(t, timeoutErr.Elapsed, 20*time.Millisecond)
	assert.Positive(t, timeoutErr.Attempts)
}

func TestPoller_UnboundedByDefault(t *testing.T) {
	p := NewPoller(newScriptedBackend())
	assert.Equal(t, DefaultPollInterval, p.interval)
	assert.Zero(t, p.timeout)
	assert.Zero(t, p.maxAttempts)
}

func TestPoller_ContextCancelled(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusQueued})
	p := NewPoller(b, WithPollInterval(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()

	_, err := p.AwaitTerminal(ctx, startScripted(t, b))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoller_GetRunError(t *testing.T) {
	b := newScriptedBackend([]JobStatus{StatusQueued})
	b.getRunErr = &TransportError{Op: "get run", Err: errors.New("connection reset")}
	p := NewPoller(b, WithPollInterval(time.Millisecond))

	_, err := p.AwaitTerminal(context.Background(), startScripted(t, b))
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "get run", transportErr.Op)
	assert.Equal(t, 1, b.GetRunCalls())
}

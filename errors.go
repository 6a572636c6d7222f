package agent

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by client and chat operations.
var (
	ErrEmptyPrompt   = errors.New("agent: empty prompt")
	ErrMissingConfig = errors.New("agent: missing configuration")
	ErrNoThread      = errors.New("agent: session has no thread")
)

// AuthenticationError reports that a credential could not be created or
// could not produce a token. It is fatal for the demos.
type AuthenticationError struct {
	Source string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("agent: authentication via %s failed: %v", e.Source, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// RemoteJobError reports that a run reached a terminal status other than
// completed. The user turn may already be recorded remotely.
type RemoteJobError struct {
	JobID   string
	Status  JobStatus
	Code    string
	Message string
}

func (e *RemoteJobError) Error() string {
	msg := fmt.Sprintf("agent: run %s ended with status %s", e.JobID, e.Status)
	if e.Code != "" || e.Message != "" {
		msg += fmt.Sprintf(" (%s: %s)", e.Code, e.Message)
	}
	return msg
}

// PollTimeoutError is returned when a configured poll bound is exceeded
// before the run leaves the pending state.
type PollTimeoutError struct {
	JobID    string
	Attempts int
	Elapsed  time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("agent: run %s still pending after %d polls (%s)", e.JobID, e.Attempts, e.Elapsed.Round(time.Millisecond))
}

// TransportError wraps a failure talking to the remote service.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("agent: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsFatal reports whether err should end an interactive session. Remote run
// failures and poll timeouts only end the current turn.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var jobErr *RemoteJobError
	if errors.As(err, &jobErr) {
		return false
	}
	var timeoutErr *PollTimeoutError
	return !errors.As(err, &timeoutErr)
}

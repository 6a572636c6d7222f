package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Agent binds a remote agent definition to the Backend that runs it.
// It holds no conversation state, so the same Agent can be safely shared
// across multiple goroutines and Clients.
type Agent struct {
	backend Backend
	remote  RemoteAgent
	poller  *Poller
	logger  *slog.Logger
	opts    options
}

// NewAgent creates an Agent that runs remote on backend.
func NewAgent(backend Backend, remote RemoteAgent, opts ...Option) *Agent {
	resolved := resolveOptions(opts)
	return &Agent{
		backend: backend,
		remote:  remote,
		poller:  newPoller(backend, resolved),
		logger:  resolved.logger,
		opts:    resolved,
	}
}

// Remote returns the remote agent definition.
func (a *Agent) Remote() RemoteAgent {
	return a.remote
}

// NewClient returns a Client with a fresh session that runs on this Agent.
func (a *Agent) NewClient() *Client {
	return &Client{agent: a, session: NewSession()}
}

// RunWithSession sends prompt as one user turn on session and returns the
// assistant reply once the remote run completes.
//
// The first turn creates the remote thread and records its id on session;
// later turns append to that thread. The transcript is only extended when the
// run completes, so a failed run leaves it untouched even though the user
// message may already be stored remotely.
func (a *Agent) RunWithSession(ctx context.Context, session *Session, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	job, err := a.startTurn(ctx, session, prompt)
	if err != nil {
		return "", err
	}
	a.logger.DebugContext(ctx, "run started",
		"session_id", session.ID, "thread_id", session.ThreadID, "run_id", job.ID, "status", job.Status)

	job, err = a.poller.AwaitTerminal(ctx, job)
	if err != nil {
		return "", err
	}
	if job.Status != StatusCompleted {
		jobErr := &RemoteJobError{JobID: job.ID, Status: job.Status}
		if job.LastError != nil {
			jobErr.Code = job.LastError.Code
			jobErr.Message = job.LastError.Message
		}
		return "", jobErr
	}

	text, err := a.backend.LastMessageByRole(ctx, session.ThreadID, RoleAssistant)
	if err != nil {
		return "", err
	}
	if _, ok := text.Text(); !ok {
		a.logger.DebugContext(ctx, "assistant message has no text content", "thread_id", session.ThreadID)
	}

	reply := text.String()
	session.record(
		Message{Role: RoleUser, Content: prompt},
		Message{Role: RoleAssistant, Content: reply},
	)
	return reply, nil
}

func (a *Agent) startTurn(ctx context.Context, session *Session, prompt string) (*Job, error) {
	if session.ThreadID == "" {
		job, err := a.backend.CreateThreadAndRun(ctx, a.remote.ID, prompt)
		if err != nil {
			return nil, err
		}
		if job.ThreadID == "" {
			return nil, fmt.Errorf("%w: run %s returned no thread id", ErrNoThread, job.ID)
		}
		session.bindThread(job.ThreadID)
		return job, nil
	}

	if err := a.backend.AppendUserMessage(ctx, session.ThreadID, prompt); err != nil {
		return nil, err
	}
	job, err := a.backend.StartRun(ctx, session.ThreadID, a.remote.ID)
	if err != nil {
		return nil, err
	}
	if job.ThreadID == "" {
		job.ThreadID = session.ThreadID
	}
	return job, nil
}

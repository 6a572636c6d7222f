package agent

import (
	"context"
	"sync"
)

// Client is a stateful session container that wraps an Agent.
// It keeps the remote thread and transcript across multiple Submit calls.
type Client struct {
	agent   *Agent
	session *Session

	mu     sync.Mutex // serializes turns; one run in flight per session
	cmu    sync.Mutex
	cancel context.CancelFunc // cancel for current Submit
}

// NewClient creates a new Client with its own Agent configured by the given options.
func NewClient(backend Backend, remote RemoteAgent, opts ...Option) *Client {
	return NewAgent(backend, remote, opts...).NewClient()
}

// Submit sends one user turn and returns the assistant reply.
// Callers should not submit blank input; it is rejected with ErrEmptyPrompt.
func (c *Client) Submit(ctx context.Context, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cmu.Lock()
	c.cancel = cancel
	c.cmu.Unlock()
	defer func() {
		c.cmu.Lock()
		c.cancel = nil
		c.cmu.Unlock()
		cancel()
	}()

	return c.agent.RunWithSession(ctx, c.session, text)
}

// Interrupt cancels the currently running Submit, if any. The session keeps
// its thread, so the next Submit continues the same conversation.
func (c *Client) Interrupt() {
	c.cmu.Lock()
	defer c.cmu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Session returns a snapshot of the client's current session.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Snapshot()
}

// Agent returns the underlying Agent.
func (c *Client) Agent() *Agent {
	return c.agent
}

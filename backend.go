package agent

import "context"

// Backend abstracts the remote agents service so the conversation protocol can
// be tested without a network. Production code passes a foundry.Client.
type Backend interface {
	// CreateThreadAndRun creates a thread seeded with one user message and
	// starts a run of agentID on it. The returned Job carries the thread id.
	CreateThreadAndRun(ctx context.Context, agentID, userText string) (*Job, error)

	// AppendUserMessage adds a user message to an existing thread.
	AppendUserMessage(ctx context.Context, threadID, text string) error

	// StartRun starts a new run of agentID on an existing thread.
	StartRun(ctx context.Context, threadID, agentID string) (*Job, error)

	// GetRun fetches the current state of a run.
	GetRun(ctx context.Context, threadID, runID string) (*Job, error)

	// LastMessageByRole returns the newest message in the thread authored by role.
	LastMessageByRole(ctx context.Context, threadID string, role Role) (MessageText, error)
}

// CompletionStreamer abstracts a streaming chat completion endpoint.
// Stream sends the whole history and pushes reply fragments to emit in the
// order they arrive. It returns when the stream ends, fails, or ctx is done.
type CompletionStreamer interface {
	Stream(ctx context.Context, history []Message, emit func(fragment string) error) error
}

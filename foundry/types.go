package foundry

import agent "github.com/armatrix/foundry-agent-go"

// Wire types of the Agents API. Only the fields this module reads or writes
// are declared.

type agentObject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
}

func (a *agentObject) toRemote() *agent.RemoteAgent {
	return &agent.RemoteAgent{
		ID:           a.ID,
		Name:         a.Name,
		Model:        a.Model,
		Instructions: a.Instructions,
	}
}

// CreateAgentParams describes an agent to create.
type CreateAgentParams struct {
	Model        string `json:"model"`
	Name         string `json:"name,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type deleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type threadMessageParam struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type threadParam struct {
	Messages []threadMessageParam `json:"messages"`
}

type createThreadAndRunRequest struct {
	AssistantID string      `json:"assistant_id"`
	Thread      threadParam `json:"thread"`
}

type createRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

type runError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type runObject struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Status    string    `json:"status"`
	LastError *runError `json:"last_error,omitempty"`
}

// toJob converts a decoded run. A run without id or status is reported as a
// transport failure for op rather than as a terminal run.
func (r *runObject) toJob(op string) (*agent.Job, error) {
	if r.ID == "" || r.Status == "" {
		return nil, &agent.TransportError{Op: op, Err: errIncomplete}
	}
	job := &agent.Job{
		ID:       r.ID,
		ThreadID: r.ThreadID,
		Status:   agent.JobStatus(r.Status),
	}
	if r.LastError != nil {
		job.LastError = &agent.JobError{Code: r.LastError.Code, Message: r.LastError.Message}
	}
	return job, nil
}

type messageTextValue struct {
	Value string `json:"value"`
}

// MessageContent is one content item of a thread message. It is also the raw
// value surfaced when a message carries no text item.
type MessageContent struct {
	Type string            `json:"type"`
	Text *messageTextValue `json:"text,omitempty"`
}

type messageObject struct {
	ID      string           `json:"id"`
	Role    string           `json:"role"`
	Content []MessageContent `json:"content"`
}

type messageList struct {
	Data    []messageObject `json:"data"`
	LastID  string          `json:"last_id"`
	HasMore bool            `json:"has_more"`
}

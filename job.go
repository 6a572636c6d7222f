package agent

import "fmt"

// JobStatus is the lifecycle state of a remote run.
type JobStatus string

const (
	StatusQueued         JobStatus = "queued"
	StatusInProgress     JobStatus = "in_progress"
	StatusRequiresAction JobStatus = "requires_action"
	StatusCancelling     JobStatus = "cancelling"
	StatusCancelled      JobStatus = "cancelled"
	StatusFailed         JobStatus = "failed"
	StatusCompleted      JobStatus = "completed"
	StatusExpired        JobStatus = "expired"
)

// Pending reports whether the run is still waiting to be processed.
// Only queued and in_progress are waited on; every other status ends polling.
func (s JobStatus) Pending() bool {
	return s == StatusQueued || s == StatusInProgress
}

// Terminal reports whether the poller should stop at this status.
func (s JobStatus) Terminal() bool {
	return !s.Pending()
}

// Job is a single remote run against a thread.
type Job struct {
	ID        string
	ThreadID  string
	Status    JobStatus
	LastError *JobError
}

// JobError is the failure detail the service attaches to a failed run.
type JobError struct {
	Code    string
	Message string
}

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one entry of a transcript or chat history.
type Message struct {
	Role    Role
	Content string
}

// RemoteAgent describes the agent definition a Client runs against.
type RemoteAgent struct {
	ID           string
	Name         string
	Model        string
	Instructions string
}

// MessageText is the result of looking up the last message by role.
// Exactly one of the two forms is set: Some holds extracted text, Raw holds
// whatever the service returned when no text content was found.
type MessageText struct {
	text  string
	raw   any
	found bool
}

// SomeText returns a MessageText carrying extracted text.
func SomeText(text string) MessageText {
	return MessageText{text: text, found: true}
}

// RawText returns a MessageText carrying an unextracted service value.
// raw may be nil when no message of the requested role exists.
func RawText(raw any) MessageText {
	return MessageText{raw: raw}
}

// Text returns the extracted text and true, or "" and false for a raw value.
func (m MessageText) Text() (string, bool) {
	return m.text, m.found
}

// Raw returns the unextracted value. It is nil for extracted text.
func (m MessageText) Raw() any {
	return m.raw
}

// String renders the text, or the raw value the way the demos print it.
func (m MessageText) String() string {
	if m.found {
		return m.text
	}
	if m.raw == nil {
		return "None"
	}
	return fmt.Sprint(m.raw)
}

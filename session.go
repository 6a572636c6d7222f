package agent

import (
	"slices"
	"time"
)

// Session holds the conversation state of one interactive run: the remote
// thread the turns are sent to and the local transcript of completed turns.
type Session struct {
	ID         string
	ThreadID   string
	Transcript []Message
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSession creates a new empty session with no remote thread.
func NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        generateID(PrefixSession),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// bindThread records the remote thread id. Once set it is never replaced.
func (s *Session) bindThread(threadID string) {
	if s.ThreadID == "" {
		s.ThreadID = threadID
		s.UpdatedAt = time.Now()
	}
}

// record appends completed turns to the transcript in order.
func (s *Session) record(msgs ...Message) {
	s.Transcript = append(s.Transcript, msgs...)
	s.UpdatedAt = time.Now()
}

// Snapshot returns a copy of the session that shares no mutable state.
func (s *Session) Snapshot() *Session {
	c := *s
	c.Transcript = slices.Clone(s.Transcript)
	return &c
}

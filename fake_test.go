package agent

import (
	"context"
	"fmt"
	"sync"
)

// scriptedBackend implements Backend for testing. Each started run follows
// the next status script: the first status is returned when the run starts,
// later ones by successive GetRun calls (the last one repeats).
type scriptedBackend struct {
	mu sync.Mutex

	threadID  string
	scripts   [][]JobStatus
	lastError *JobError
	reply     MessageText

	createErr error
	appendErr error
	getRunErr error
	replyErr  error

	runs        int
	pos         map[string]int
	calls       []string
	getRunCalls int
	appended    []string
}

func newScriptedBackend(scripts ...[]JobStatus) *scriptedBackend {
	return &scriptedBackend{
		threadID: "thread_1",
		scripts:  scripts,
		reply:    SomeText("Hi there"),
		pos:      make(map[string]int),
	}
}

func (b *scriptedBackend) record(call string) {
	b.calls = append(b.calls, call)
}

func (b *scriptedBackend) startJob() *Job {
	b.runs++
	id := fmt.Sprintf("run_%d", b.runs)
	b.pos[id] = 0
	return &Job{ID: id, ThreadID: b.threadID, Status: b.statusAt(id, 0)}
}

func (b *scriptedBackend) statusAt(runID string, i int) JobStatus {
	var n int
	fmt.Sscanf(runID, "run_%d", &n)
	script := []JobStatus{StatusCompleted}
	if n-1 < len(b.scripts) {
		script = b.scripts[n-1]
	}
	if i >= len(script) {
		i = len(script) - 1
	}
	return script[i]
}

func (b *scriptedBackend) CreateThreadAndRun(_ context.Context, agentID, userText string) (*Job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("create:" + userText)
	if b.createErr != nil {
		return nil, b.createErr
	}
	return b.startJob(), nil
}

func (b *scriptedBackend) AppendUserMessage(_ context.Context, threadID, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("append:" + text)
	if b.appendErr != nil {
		return b.appendErr
	}
	b.appended = append(b.appended, text)
	return nil
}

func (b *scriptedBackend) StartRun(_ context.Context, threadID, agentID string) (*Job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("start")
	return b.startJob(), nil
}

func (b *scriptedBackend) GetRun(_ context.Context, threadID, runID string) (*Job, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.getRunCalls++
	if b.getRunErr != nil {
		return nil, b.getRunErr
	}
	b.pos[runID]++
	job := &Job{ID: runID, ThreadID: threadID, Status: b.statusAt(runID, b.pos[runID])}
	if job.Status == StatusFailed {
		job.LastError = b.lastError
	}
	return job, nil
}

func (b *scriptedBackend) LastMessageByRole(_ context.Context, threadID string, role Role) (MessageText, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record("last:" + string(role))
	if b.replyErr != nil {
		return MessageText{}, b.replyErr
	}
	return b.reply, nil
}

func (b *scriptedBackend) GetRunCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getRunCalls
}

func (b *scriptedBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// fragmentStreamer implements CompletionStreamer by emitting fixed fragments.
// If failAfter >= 0 it returns err after that many fragments.
type fragmentStreamer struct {
	mu        sync.Mutex
	fragments []string
	failAfter int
	err       error
	block     bool // wait for ctx after the last fragment
	histories [][]Message
}

func newFragmentStreamer(fragments ...string) *fragmentStreamer {
	return &fragmentStreamer{fragments: fragments, failAfter: -1}
}

func (s *fragmentStreamer) Stream(ctx context.Context, history []Message, emit func(string) error) error {
	s.mu.Lock()
	s.histories = append(s.histories, history)
	s.mu.Unlock()

	for i, f := range s.fragments {
		if s.failAfter >= 0 && i == s.failAfter {
			return s.err
		}
		if err := emit(f); err != nil {
			return err
		}
	}
	if s.failAfter >= len(s.fragments) {
		return s.err
	}
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (s *fragmentStreamer) Histories() [][]Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.histories
}

package agent

import (
	"context"
	"strings"
)

// ChatStream is an iterator over the reply fragments of one chat turn.
// Usage:
//
//	stream := chat.StreamTurn(ctx, "Hello")
//	for stream.Next() {
//	    fmt.Print(stream.Current())
//	}
//	if err := stream.Err(); err != nil {
//	    // handle error
//	}
type ChatStream struct {
	fragments chan string
	current   string
	text      strings.Builder
	err       error
	done      bool

	// producerErr is written by the producer before fragments is closed.
	producerErr error
	cancel      context.CancelFunc
	onDone      func(reply string, err error)
}

// newChatStream creates a ChatStream reading from fragments. cancel stops the
// producer; onDone is called once with the full reply when the stream ends.
func newChatStream(fragments chan string, cancel context.CancelFunc, onDone func(string, error)) *ChatStream {
	return &ChatStream{
		fragments: fragments,
		cancel:    cancel,
		onDone:    onDone,
	}
}

// Next advances to the next fragment. Returns false when the stream is
// exhausted or an error has occurred.
func (s *ChatStream) Next() bool {
	if s.done {
		return false
	}
	fragment, ok := <-s.fragments
	if !ok {
		s.finish()
		return false
	}
	s.current = fragment
	s.text.WriteString(fragment)
	return true
}

// Current returns the most recent fragment returned by Next.
func (s *ChatStream) Current() string {
	return s.current
}

// Text returns the concatenation of all fragments received so far.
func (s *ChatStream) Text() string {
	return s.text.String()
}

// Err returns the error that ended the stream, if any. It is only meaningful
// after Next has returned false.
func (s *ChatStream) Err() error {
	return s.err
}

// Close stops the producer and waits for it to exit. Closing a stream that
// has not been drained abandons the turn.
func (s *ChatStream) Close() error {
	if s.done {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	for fragment := range s.fragments {
		s.text.WriteString(fragment)
	}
	s.finish()
	return nil
}

func (s *ChatStream) finish() {
	s.done = true
	s.err = s.producerErr
	if s.cancel != nil {
		s.cancel()
	}
	if s.onDone != nil {
		s.onDone(s.text.String(), s.err)
	}
}

// errStream returns a stream that immediately reports err.
func errStream(err error) *ChatStream {
	ch := make(chan string)
	close(ch)
	s := newChatStream(ch, nil, nil)
	s.producerErr = err
	return s
}

package agent

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Chat is the stateless variant of a conversation: there is no remote thread,
// the whole history is sent with every turn and lives only in this process.
// Turns must not overlap; drain or Close each stream before starting the next.
type Chat struct {
	streamer CompletionStreamer
	logger   *slog.Logger
	opts     options

	mu      sync.Mutex
	id      string
	history []Message
}

// NewChat creates a Chat whose history is seeded with the configured system prompt.
func NewChat(streamer CompletionStreamer, opts ...Option) *Chat {
	resolved := resolveOptions(opts)
	c := &Chat{
		streamer: streamer,
		logger:   resolved.logger,
		opts:     resolved,
		id:       generateID(PrefixChat),
	}
	if *resolved.systemPrompt != "" {
		c.history = append(c.history, Message{Role: RoleSystem, Content: *resolved.systemPrompt})
	}
	return c
}

// ID returns the local identifier of this chat.
func (c *Chat) ID() string {
	return c.id
}

// History returns a copy of the chat history.
func (c *Chat) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

// StreamTurn appends text as a user message and streams the reply.
// When the stream ends cleanly the full reply is appended to the history as
// an assistant message. When it fails or is closed early the user message is
// removed again so the history never holds an unanswered turn.
func (c *Chat) StreamTurn(ctx context.Context, text string) *ChatStream {
	if strings.TrimSpace(text) == "" {
		return errStream(ErrEmptyPrompt)
	}

	c.mu.Lock()
	c.history = append(c.history, Message{Role: RoleUser, Content: text})
	snapshot := slices.Clone(c.history)
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	fragments := make(chan string, c.opts.streamBufferSize)
	stream := newChatStream(fragments, cancel, c.commit)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.streamer.Stream(gctx, snapshot, func(fragment string) error {
			select {
			case fragments <- fragment:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})
	go func() {
		stream.producerErr = g.Wait()
		close(fragments)
	}()

	c.logger.DebugContext(ctx, "chat turn started", "chat_id", c.id, "messages", len(snapshot))
	return stream
}

// commit settles the pending user turn once its stream has ended.
func (c *Chat) commit(reply string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if n := len(c.history); n > 0 && c.history[n-1].Role == RoleUser {
			c.history = c.history[:n-1]
		}
		c.logger.Debug("chat turn failed", "chat_id", c.id, "error", err)
		return
	}
	c.history = append(c.history, Message{Role: RoleAssistant, Content: reply})
}

// CollectTurn runs one streamed turn over history without keeping any state.
// Each fragment is passed to onFragment as it arrives (onFragment may be nil).
// It returns the updated history and the full reply text.
func CollectTurn(ctx context.Context, streamer CompletionStreamer, history []Message, text string, onFragment func(string)) ([]Message, string, error) {
	c := NewChat(streamer, WithSystemPrompt(""))
	c.history = slices.Clone(history)

	stream := c.StreamTurn(ctx, text)
	for stream.Next() {
		if onFragment != nil {
			onFragment(stream.Current())
		}
	}
	if err := stream.Err(); err != nil {
		return slices.Clone(history), "", err
	}
	return c.History(), stream.Text(), nil
}

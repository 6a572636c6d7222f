package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"

	agent "github.com/armatrix/foundry-agent-go"
)

// Anthropic defaults.
const (
	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = anthropic.ModelClaudeSonnet4_5

	// DefaultMaxOutputTokens is the maximum output tokens per reply.
	DefaultMaxOutputTokens = 4096
)

// MessageStreamer abstracts the Anthropic Messages API so the streamer can be
// tested with a mock. Production code passes &client.Messages.
type MessageStreamer interface {
	NewStreaming(ctx context.Context, params anthropic.MessageNewParams, opts ...anthropicoption.RequestOption) *ssestream.Stream[anthropic.MessageStreamEventUnion]
}

// Anthropic streams replies from the Anthropic Messages API.
type Anthropic struct {
	service   MessageStreamer
	model     anthropic.Model
	maxTokens int64
}

var _ agent.CompletionStreamer = (*Anthropic)(nil)

// NewAnthropic creates a streamer authenticated with apiKey. SDK retries are disabled.
func NewAnthropic(apiKey, model string) (*Anthropic, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: anthropic api key", agent.ErrMissingConfig)
	}
	client := anthropic.NewClient(
		anthropicoption.WithAPIKey(apiKey),
		anthropicoption.WithMaxRetries(0),
	)
	return NewAnthropicWithService(&client.Messages, model), nil
}

// NewAnthropicWithService creates a streamer on an existing messages service.
func NewAnthropicWithService(service MessageStreamer, model string) *Anthropic {
	m := anthropic.Model(model)
	if m == "" {
		m = DefaultAnthropicModel
	}
	return &Anthropic{service: service, model: m, maxTokens: DefaultMaxOutputTokens}
}

// Stream sends history and emits every text delta. System entries are sent
// as the system prompt instead of as messages.
func (a *Anthropic) Stream(ctx context.Context, history []agent.Message, emit func(string) error) error {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
	}
	for _, m := range history {
		switch m.Role {
		case agent.RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case agent.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	stream := a.service.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		event := stream.Current()
		if event.Type == "content_block_delta" && event.Delta.Type == "text_delta" && event.Delta.Text != "" {
			if err := emit(event.Delta.Text); err != nil {
				return err
			}
		}
	}
	if err := stream.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &agent.TransportError{Op: "anthropic messages", Err: err}
	}
	return nil
}

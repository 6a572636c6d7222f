// Package completion provides agent.CompletionStreamer implementations for
// chat completion endpoints.
package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	oaoption "github.com/openai/openai-go/v3/option"
	oassestream "github.com/openai/openai-go/v3/packages/ssestream"

	agent "github.com/armatrix/foundry-agent-go"
)

// DefaultAzureAPIVersion is the Azure OpenAI api-version used when none is configured.
const DefaultAzureAPIVersion = "2024-11-20"

// ChatCompletionStreamer abstracts the OpenAI chat completions service so the
// streamer can be tested with a mock. Production code passes
// &client.Chat.Completions.
type ChatCompletionStreamer interface {
	NewStreaming(ctx context.Context, params openai.ChatCompletionNewParams, opts ...oaoption.RequestOption) *oassestream.Stream[openai.ChatCompletionChunk]
}

// AzureOpenAIConfig configures an Azure OpenAI deployment.
type AzureOpenAIConfig struct {
	Endpoint   string
	Deployment string
	APIVersion string

	// APIKey authenticates with a key. When empty, Credential is used.
	APIKey     string
	Credential azcore.TokenCredential
}

// AzureOpenAI streams chat completions from an Azure OpenAI deployment.
type AzureOpenAI struct {
	service    ChatCompletionStreamer
	deployment string
}

var _ agent.CompletionStreamer = (*AzureOpenAI)(nil)

// NewAzureOpenAI creates a streamer for cfg. SDK retries are disabled.
func NewAzureOpenAI(cfg AzureOpenAIConfig) (*AzureOpenAI, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, fmt.Errorf("%w: azure openai endpoint", agent.ErrMissingConfig)
	}
	if strings.TrimSpace(cfg.Deployment) == "" {
		return nil, fmt.Errorf("%w: azure openai deployment", agent.ErrMissingConfig)
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAzureAPIVersion
	}

	opts := []oaoption.RequestOption{
		azure.WithEndpoint(cfg.Endpoint, apiVersion),
		oaoption.WithMaxRetries(0),
	}
	switch {
	case cfg.APIKey != "":
		opts = append(opts, azure.WithAPIKey(cfg.APIKey))
	case cfg.Credential != nil:
		opts = append(opts, azure.WithTokenCredential(cfg.Credential))
	default:
		return nil, fmt.Errorf("%w: azure openai api key or credential", agent.ErrMissingConfig)
	}

	client := openai.NewClient(opts...)
	return NewAzureOpenAIWithService(&client.Chat.Completions, cfg.Deployment), nil
}

// NewAzureOpenAIWithService creates a streamer on an existing completions service.
func NewAzureOpenAIWithService(service ChatCompletionStreamer, deployment string) *AzureOpenAI {
	return &AzureOpenAI{service: service, deployment: deployment}
}

// Stream sends history and emits every non-empty content delta of the first choice.
func (a *AzureOpenAI) Stream(ctx context.Context, history []agent.Message, emit func(string) error) error {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.deployment),
		Messages: toOpenAIMessages(history),
	}

	stream := a.service.NewStreaming(ctx, params)
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}
		if err := emit(chunk.Choices[0].Delta.Content); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &agent.TransportError{Op: "chat completion", Err: err}
	}
	return nil
}

func toOpenAIMessages(history []agent.Message) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, m := range history {
		switch m.Role {
		case agent.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case agent.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return msgs
}

package agent

import "time"

// Polling and streaming defaults.
const (
	// DefaultPollInterval is the fixed wait between run status checks.
	DefaultPollInterval = 500 * time.Millisecond

	// DefaultPollTimeout bounds how long a run may stay pending (0 = unbounded).
	DefaultPollTimeout time.Duration = 0

	// DefaultPollMaxAttempts bounds the number of status checks (0 = unbounded).
	DefaultPollMaxAttempts = 0

	// DefaultStreamBufferSize is the channel buffer size for streamed fragments.
	DefaultStreamBufferSize = 64
)

// Prompt defaults used by the demos.
const (
	// DefaultSystemPrompt seeds the history of a direct chat.
	DefaultSystemPrompt = "You are a helpful assistant. Be concise and clear."

	// DefaultAgentName is the name given to agents created by the demo.
	DefaultAgentName = "01_Create_Agent_AiFoundry-DemoAgent"

	// DefaultAgentInstructions are the instructions given to created agents.
	DefaultAgentInstructions = "You are a helpful AI agent assistant. Please be concise and friendly."
)

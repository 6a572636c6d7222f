// Package config loads demo configuration from env files and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	agent "github.com/armatrix/foundry-agent-go"
)

// Environment keys recognized by Load.
const (
	KeyProjectEndpoint   = "AZURE_AI_PROJECT_ENDPOINT"
	KeyModelDeployment   = "AZURE_AI_MODEL_DEPLOYMENT_NAME"
	KeyAgentID           = "AZURE_AI_AGENT_ID"
	KeyAgentsAPIVersion  = "AZURE_AI_AGENTS_API_VERSION"
	KeyDeleteAgentOnExit = "AZURE_AI_DELETE_AGENT_ON_EXIT"
	KeyOpenAIEndpoint    = "AZURE_OPENAI_ENDPOINT"
	KeyChatDeployment    = "AZURE_OPENAI_CHAT_DEPLOYMENT_NAME"
	KeyOpenAIAPIKey      = "AZURE_OPENAI_API_KEY"
	KeyOpenAIAPIVersion  = "AZURE_OPENAI_API_VERSION"
	KeyChatProvider      = "CHAT_PROVIDER"
	KeyAnthropicModel    = "ANTHROPIC_MODEL"
	KeyAnthropicAPIKey   = "ANTHROPIC_API_KEY"
	KeyCredential        = "AZURE_CREDENTIAL"
	KeyPollInterval      = "POLL_INTERVAL"
	KeyPollTimeout       = "POLL_TIMEOUT"
	KeyPollMaxAttempts   = "POLL_MAX_ATTEMPTS"
	KeyLogLevel          = "LOG_LEVEL"
)

// Chat providers for the direct chat demo.
const (
	ProviderAzureOpenAI = "azure-openai"
	ProviderAnthropic   = "anthropic"
)

// Credential sources for Azure endpoints.
const (
	CredentialCLI     = "cli"
	CredentialDefault = "default"
)

// Config holds everything the demos read from the environment.
type Config struct {
	// ProjectEndpoint is the Foundry project URL all agent calls go to.
	ProjectEndpoint string
	// ModelDeployment is the model a newly created agent runs on.
	ModelDeployment string
	// AgentID selects an existing agent instead of creating one.
	AgentID string
	// AgentsAPIVersion is sent as api-version on every Agents API call.
	AgentsAPIVersion string
	// DeleteAgentOnExit removes a created agent when the demo quits.
	DeleteAgentOnExit bool

	// OpenAIEndpoint is the Azure OpenAI resource URL for direct chat.
	OpenAIEndpoint string
	// ChatDeployment is the Azure OpenAI deployment used for direct chat.
	ChatDeployment string
	// OpenAIAPIKey authenticates direct chat; empty means use Credential.
	OpenAIAPIKey string
	// OpenAIAPIVersion is the Azure OpenAI api-version.
	OpenAIAPIVersion string

	// ChatProvider selects the direct chat backend.
	ChatProvider string
	// AnthropicModel and AnthropicAPIKey configure the anthropic provider.
	AnthropicModel  string
	AnthropicAPIKey string

	// Credential selects how Azure tokens are acquired (cli or default).
	Credential string

	// PollInterval is the fixed wait between run status checks.
	PollInterval time.Duration
	// PollTimeout and PollMaxAttempts bound polling; zero means unbounded.
	PollTimeout     time.Duration
	PollMaxAttempts int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads the given env files and the process environment into a Config.
// Missing files are silently skipped and later files override earlier ones.
// Variables already set in the process environment take precedence over files.
func Load(files ...string) (*Config, error) {
	merged := make(map[string]string)
	for _, path := range files {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range values {
			merged[k] = v
		}
	}
	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := merged[key]
		return v, ok
	})
}

// FromLookup builds a Config from a key lookup function and applies defaults.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	c := &Config{
		ProjectEndpoint:  get(KeyProjectEndpoint),
		ModelDeployment:  get(KeyModelDeployment),
		AgentID:          get(KeyAgentID),
		AgentsAPIVersion: get(KeyAgentsAPIVersion),
		OpenAIEndpoint:   get(KeyOpenAIEndpoint),
		ChatDeployment:   get(KeyChatDeployment),
		OpenAIAPIKey:     get(KeyOpenAIAPIKey),
		OpenAIAPIVersion: get(KeyOpenAIAPIVersion),
		ChatProvider:     strings.ToLower(get(KeyChatProvider)),
		AnthropicModel:   get(KeyAnthropicModel),
		AnthropicAPIKey:  get(KeyAnthropicAPIKey),
		Credential:       strings.ToLower(get(KeyCredential)),
		LogLevel:         strings.ToLower(get(KeyLogLevel)),
	}

	var err error
	if v := get(KeyDeleteAgentOnExit); v != "" {
		if c.DeleteAgentOnExit, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("%s: %w", KeyDeleteAgentOnExit, err)
		}
	}
	if c.PollInterval, err = parseDuration(get(KeyPollInterval), KeyPollInterval); err != nil {
		return nil, err
	}
	if c.PollTimeout, err = parseDuration(get(KeyPollTimeout), KeyPollTimeout); err != nil {
		return nil, err
	}
	if v := get(KeyPollMaxAttempts); v != "" {
		if c.PollMaxAttempts, err = strconv.Atoi(v); err != nil || c.PollMaxAttempts < 0 {
			return nil, fmt.Errorf("%s: invalid value %q", KeyPollMaxAttempts, v)
		}
	}

	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.AgentsAPIVersion == "" {
		c.AgentsAPIVersion = "v1"
	}
	if c.OpenAIAPIVersion == "" {
		c.OpenAIAPIVersion = "2024-11-20"
	}
	if c.ChatProvider == "" {
		c.ChatProvider = ProviderAzureOpenAI
	}
	if c.Credential == "" {
		c.Credential = CredentialCLI
	}
	if c.PollInterval == 0 {
		c.PollInterval = agent.DefaultPollInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

func (c *Config) validate() error {
	switch c.ChatProvider {
	case ProviderAzureOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("%s: unknown provider %q", KeyChatProvider, c.ChatProvider)
	}
	switch c.Credential {
	case CredentialCLI, CredentialDefault:
	default:
		return fmt.Errorf("%s: unknown credential source %q", KeyCredential, c.Credential)
	}
	return nil
}

// RequireAgents checks the settings needed to create an agent.
func (c *Config) RequireAgents() error {
	return requireKeys(map[string]string{
		KeyProjectEndpoint: c.ProjectEndpoint,
		KeyModelDeployment: c.ModelDeployment,
	})
}

// RequireExistingAgent checks the settings needed to use an existing agent.
func (c *Config) RequireExistingAgent() error {
	return requireKeys(map[string]string{
		KeyProjectEndpoint: c.ProjectEndpoint,
		KeyAgentID:         c.AgentID,
	})
}

// RequireChat checks the settings needed by the configured direct chat provider.
func (c *Config) RequireChat() error {
	if c.ChatProvider == ProviderAnthropic {
		return requireKeys(map[string]string{KeyAnthropicAPIKey: c.AnthropicAPIKey})
	}
	return requireKeys(map[string]string{
		KeyOpenAIEndpoint: c.OpenAIEndpoint,
		KeyChatDeployment: c.ChatDeployment,
	})
}

// PollOptions converts the polling settings into agent options.
func (c *Config) PollOptions() []agent.Option {
	return []agent.Option{
		agent.WithPollInterval(c.PollInterval),
		agent.WithPollTimeout(c.PollTimeout),
		agent.WithPollMaxAttempts(c.PollMaxAttempts),
	}
}

func requireKeys(values map[string]string) error {
	var missing []string
	for key, v := range values {
		if v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", agent.ErrMissingConfig, strings.Join(missing, ", "))
}

func parseDuration(v, key string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

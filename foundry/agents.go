package foundry

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	agent "github.com/armatrix/foundry-agent-go"
)

// CreateAgent creates a persistent agent definition in the project.
func (c *Client) CreateAgent(ctx context.Context, params CreateAgentParams) (*agent.RemoteAgent, error) {
	if strings.TrimSpace(params.Model) == "" {
		return nil, fmt.Errorf("%w: model deployment name", agent.ErrMissingConfig)
	}
	var out agentObject
	if err := c.do(ctx, "create agent", http.MethodPost, []string{"assistants"}, nil, params, &out); err != nil {
		return nil, err
	}
	return out.toRemote(), nil
}

// GetAgent fetches an existing agent definition.
func (c *Client) GetAgent(ctx context.Context, id string) (*agent.RemoteAgent, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: agent id", agent.ErrMissingConfig)
	}
	var out agentObject
	if err := c.do(ctx, "get agent", http.MethodGet, []string{"assistants", id}, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.toRemote(), nil
}

// DeleteAgent removes an agent definition. Threads it ran on are not deleted.
func (c *Client) DeleteAgent(ctx context.Context, id string) error {
	var out deleteResult
	if err := c.do(ctx, "delete agent", http.MethodDelete, []string{"assistants", id}, nil, nil, &out); err != nil {
		return err
	}
	if !out.Deleted {
		return &agent.TransportError{Op: "delete agent", Err: fmt.Errorf("agent %s was not deleted", id)}
	}
	return nil
}

// Package foundry implements agent.Backend on the Azure AI Foundry Agents
// REST API, using an azcore pipeline with bearer-token authentication.
package foundry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"

	agent "github.com/armatrix/foundry-agent-go"
)

const (
	moduleName    = "foundry-agent-go/foundry"
	moduleVersion = "v0.1.0"

	// DefaultAPIVersion is the Agents API version sent with every request.
	DefaultAPIVersion = "v1"

	// DefaultScope is the token scope for Foundry project endpoints.
	DefaultScope = "https://ai.azure.com/.default"

	// messagePageSize is the page size used when scanning thread messages.
	messagePageSize = 20
)

var (
	errEmptyBody  = errors.New("empty response body")
	errIncomplete = errors.New("response is missing id or status")
)

// Client calls the Foundry Agents API of one project endpoint.
type Client struct {
	endpoint   string
	apiVersion string
	pl         runtime.Pipeline
	logger     *slog.Logger
}

var _ agent.Backend = (*Client)(nil)

// NewClient creates a Client for the project endpoint authenticated with cred.
// Returns agent.ErrMissingConfig if endpoint is empty.
func NewClient(endpoint string, cred azcore.TokenCredential, opts ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("%w: foundry project endpoint", agent.ErrMissingConfig)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: foundry credential", agent.ErrMissingConfig)
	}
	o := resolveOptions(opts)

	clientOpts := policy.ClientOptions{
		// Every call is attempted exactly once.
		Retry: policy.RetryOptions{MaxRetries: -1},
	}
	if o.transport != nil {
		clientOpts.Transport = o.transport
	}
	authPolicy := runtime.NewBearerTokenPolicy(cred, []string{o.scope}, nil)
	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{authPolicy},
	}, &clientOpts)

	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiVersion: o.apiVersion,
		pl:         pl,
		logger:     o.logger,
	}, nil
}

// Endpoint returns the project endpoint this client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// do sends one request and decodes a JSON response into out (if non-nil).
// Transport and HTTP status failures are returned as *agent.TransportError;
// credential failures keep their *agent.AuthenticationError type.
func (c *Client) do(ctx context.Context, op, method string, path []string, query url.Values, body, out any) error {
	escaped := make([]string, len(path))
	for i, p := range path {
		escaped[i] = url.PathEscape(p)
	}
	req, err := runtime.NewRequest(ctx, method, runtime.JoinPaths(c.endpoint, escaped...))
	if err != nil {
		return &agent.TransportError{Op: op, Err: err}
	}

	q := req.Raw().URL.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("api-version", c.apiVersion)
	req.Raw().URL.RawQuery = q.Encode()
	req.Raw().Header.Set("Accept", "application/json")

	if body != nil {
		if err := runtime.MarshalAsJSON(req, body); err != nil {
			return &agent.TransportError{Op: op, Err: err}
		}
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		var authErr *agent.AuthenticationError
		if errors.As(err, &authErr) {
			return authErr
		}
		return &agent.TransportError{Op: op, Err: err}
	}
	c.logger.DebugContext(ctx, "foundry request", "op", op, "method", method, "status", resp.StatusCode)

	if !runtime.HasStatusCode(resp, http.StatusOK, http.StatusCreated) {
		return &agent.TransportError{Op: op, Err: runtime.NewResponseError(resp)}
	}
	if out == nil {
		runtime.Drain(resp)
		return nil
	}
	payload, err := runtime.Payload(resp)
	if err != nil {
		return &agent.TransportError{Op: op, Err: err}
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return &agent.TransportError{Op: op, Err: errEmptyBody}
	}
	if err := runtime.UnmarshalAsJSON(resp, out); err != nil {
		return &agent.TransportError{Op: op, Err: err}
	}
	return nil
}

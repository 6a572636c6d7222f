// Package credential acquires Azure AD credentials for the demos.
package credential

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	agent "github.com/armatrix/foundry-agent-go"
)

// Source names accepted by New.
const (
	SourceCLI     = "cli"
	SourceDefault = "default"
)

// Credential wraps an azcore.TokenCredential so that token failures surface
// as *agent.AuthenticationError. Tokens are cached by the bearer token policy
// of the pipelines that use it, not here.
type Credential struct {
	source string
	cred   azcore.TokenCredential
}

var _ azcore.TokenCredential = (*Credential)(nil)

// New creates a credential for source: "cli" uses the Azure CLI login,
// "default" uses the default chain (environment, managed identity, CLI, ...).
func New(source string) (*Credential, error) {
	var (
		cred azcore.TokenCredential
		err  error
	)
	switch source {
	case SourceCLI, "":
		source = SourceCLI
		cred, err = azidentity.NewAzureCLICredential(nil)
	case SourceDefault:
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	default:
		err = fmt.Errorf("unknown credential source %q", source)
	}
	if err != nil {
		return nil, &agent.AuthenticationError{Source: source, Err: err}
	}
	return Wrap(source, cred), nil
}

// Wrap adapts an existing token credential.
func Wrap(source string, cred azcore.TokenCredential) *Credential {
	return &Credential{source: source, cred: cred}
}

// Source returns the credential source name.
func (c *Credential) Source() string {
	return c.source
}

// GetToken fetches a token from the wrapped credential.
func (c *Credential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	tok, err := c.cred.GetToken(ctx, opts)
	if err != nil {
		return azcore.AccessToken{}, &agent.AuthenticationError{Source: c.source, Err: err}
	}
	return tok, nil
}

// Verify fetches a token for scope so that login problems surface before the
// first conversational turn.
func (c *Credential) Verify(ctx context.Context, scope string) error {
	_, err := c.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	return err
}

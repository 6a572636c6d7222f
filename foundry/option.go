package foundry

import (
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	apiVersion string
	scope      string
	transport  policy.Transporter
	logger     *slog.Logger
}

func resolveOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.apiVersion == "" {
		o.apiVersion = DefaultAPIVersion
	}
	if o.scope == "" {
		o.scope = DefaultScope
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(v string) Option {
	return func(o *options) { o.apiVersion = v }
}

// WithScope overrides the token scope requested from the credential.
func WithScope(scope string) Option {
	return func(o *options) { o.scope = scope }
}

// WithTransport replaces the HTTP transport, e.g. with an httptest client.
func WithTransport(t policy.Transporter) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

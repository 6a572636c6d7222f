package agent

import (
	"io"
	"log/slog"
	"time"
)

// Option configures an Agent or a Chat via the functional options pattern.
type Option func(*options)

// options holds all configurable fields set via Option functions.
type options struct {
	pollInterval     time.Duration
	pollTimeout      time.Duration
	pollMaxAttempts  int
	logger           *slog.Logger
	systemPrompt     *string
	streamBufferSize int
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (o *options) applyDefaults() {
	if o.pollInterval <= 0 {
		o.pollInterval = DefaultPollInterval
	}
	if o.pollTimeout < 0 {
		o.pollTimeout = DefaultPollTimeout
	}
	if o.pollMaxAttempts < 0 {
		o.pollMaxAttempts = DefaultPollMaxAttempts
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.systemPrompt == nil {
		prompt := DefaultSystemPrompt
		o.systemPrompt = &prompt
	}
	if o.streamBufferSize <= 0 {
		o.streamBufferSize = DefaultStreamBufferSize
	}
}

// resolveOptions applies all option functions and fills defaults.
func resolveOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()
	return o
}

// --- Polling ---

// WithPollInterval sets the fixed wait between run status checks.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithPollTimeout bounds how long a run may stay pending (0 = unbounded).
func WithPollTimeout(d time.Duration) Option {
	return func(o *options) { o.pollTimeout = d }
}

// WithPollMaxAttempts bounds the number of status checks per run (0 = unbounded).
func WithPollMaxAttempts(n int) Option {
	return func(o *options) { o.pollMaxAttempts = n }
}

// --- Logging ---

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// --- Direct chat ---

// WithSystemPrompt sets the system message that seeds a Chat history.
// An empty prompt starts the history empty.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) { o.systemPrompt = &prompt }
}

// WithStreamBufferSize sets the channel buffer size for streamed fragments.
func WithStreamBufferSize(n int) Option {
	return func(o *options) { o.streamBufferSize = n }
}

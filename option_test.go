package agent

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptionsDefaults(t *testing.T) {
	opts := resolveOptions(nil)

	assert.Equal(t, DefaultPollInterval, opts.pollInterval)
	assert.Equal(t, DefaultPollTimeout, opts.pollTimeout)
	assert.Equal(t, DefaultPollMaxAttempts, opts.pollMaxAttempts)
	assert.Equal(t, DefaultStreamBufferSize, opts.streamBufferSize)
	require.NotNil(t, opts.logger)
	require.NotNil(t, opts.systemPrompt)
	assert.Equal(t, DefaultSystemPrompt, *opts.systemPrompt)
}

func TestDefaultPollIntervalIsHalfSecond(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, DefaultPollInterval)
}

func TestWithPollInterval(t *testing.T) {
	opts := resolveOptions([]Option{WithPollInterval(2 * time.Second)})
	assert.Equal(t, 2*time.Second, opts.pollInterval)
}

func TestWithPollInterval_NonPositiveFallsBack(t *testing.T) {
	opts := resolveOptions([]Option{WithPollInterval(0)})
	assert.Equal(t, DefaultPollInterval, opts.pollInterval)

	opts = resolveOptions([]Option{WithPollInterval(-time.Second)})
	assert.Equal(t, DefaultPollInterval, opts.pollInterval)
}

func TestWithPollBounds(t *testing.T) {
	opts := resolveOptions([]Option{
		WithPollTimeout(time.Minute),
		WithPollMaxAttempts(30),
	})
	assert.Equal(t, time.Minute, opts.pollTimeout)
	assert.Equal(t, 30, opts.pollMaxAttempts)
}

func TestWithPollBounds_NegativeMeansUnbounded(t *testing.T) {
	opts := resolveOptions([]Option{
		WithPollTimeout(-time.Second),
		WithPollMaxAttempts(-1),
	})
	assert.Zero(t, opts.pollTimeout)
	assert.Zero(t, opts.pollMaxAttempts)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	opts := resolveOptions([]Option{WithLogger(logger)})
	assert.Same(t, logger, opts.logger)

	opts = resolveOptions([]Option{WithLogger(nil)})
	assert.NotNil(t, opts.logger, "nil logger falls back to discard")
}

func TestWithSystemPrompt(t *testing.T) {
	opts := resolveOptions([]Option{WithSystemPrompt("Answer in French.")})
	assert.Equal(t, "Answer in French.", *opts.systemPrompt)

	opts = resolveOptions([]Option{WithSystemPrompt("")})
	assert.Equal(t, "", *opts.systemPrompt, "empty prompt is kept, not replaced by the default")
}

func TestWithStreamBufferSize(t *testing.T) {
	opts := resolveOptions([]Option{WithStreamBufferSize(8)})
	assert.Equal(t, 8, opts.streamBufferSize)

	opts = resolveOptions([]Option{WithStreamBufferSize(0)})
	assert.Equal(t, DefaultStreamBufferSize, opts.streamBufferSize)
}

func TestMultipleOptions_LastWins(t *testing.T) {
	opts := resolveOptions([]Option{
		WithPollInterval(time.Second),
		WithPollInterval(3 * time.Second),
	})
	assert.Equal(t, 3*time.Second, opts.pollInterval)
}

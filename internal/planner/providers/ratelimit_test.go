package providers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaptive/agentcore/internal/planner/providers"
)

type fakeClient struct {
	calls int
	err   error
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "ok", nil
}

func TestRateLimitedClientDelegates(t *testing.T) {
	fake := &fakeClient{}
	c := providers.NewRateLimitedClient(fake, 100)
	out, err := c.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 1, fake.calls)
}

func TestRateLimitedClientPropagatesError(t *testing.T) {
	fake := &fakeClient{err: errors.New("boom")}
	c := providers.NewRateLimitedClient(fake, 100)
	_, err := c.Generate(context.Background(), "hi")
	require.Error(t, err)
}

func TestRateLimitedClientRespectsCancellation(t *testing.T) {
	fake := &fakeClient{}
	c := providers.NewRateLimitedClient(fake, 0.0001)
	// Exhaust the single-token burst, then cancel immediately so the
	// second call must fail waiting for the limiter rather than hang.
	ctx, cancel := context.WithCancel(context.Background())
	_, _ = c.Generate(ctx, "first")
	cancel()
	_, err := c.Generate(ctx, "second")
	require.Error(t, err)
}

// Package providers hosts the concrete planner.ModelClient adapters
// (anthropic, openai, bedrock subpackages) and cross-cutting middleware
// shared by all of them.
package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/redaptive/agentcore/internal/planner"
)

// RateLimitedClient wraps a planner.ModelClient with a process-local token
// bucket limiting requests per second.
//
// Grounded on features/model/middleware/ratelimit.go's AdaptiveRateLimiter,
// stripped of its AIMD backoff/probe behavior and its Pulse-backed
// cluster-coordination (rmap.Map) since multi-node request-budget sharing is
// out of scope here; this keeps the same boundary (sit between the planner
// and the provider client) with a plain golang.org/x/time/rate limiter.
type RateLimitedClient struct {
	next    planner.ModelClient
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps next with a limiter allowing requestsPerSecond
// sustained throughput and a burst of the same size.
func NewRateLimitedClient(next planner.ModelClient, requestsPerSecond float64) *RateLimitedClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Generate blocks until the limiter admits the call (or ctx is done), then
// delegates to the wrapped client.
func (c *RateLimitedClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return c.next.Generate(ctx, prompt)
}

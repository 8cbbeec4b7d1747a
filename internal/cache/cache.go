// Package cache implements the optional Plan cache (spec §6.2 cache_enabled,
// added in SPEC_FULL.md §4.5): a memoization of (request text, available
// agent set) -> WorkflowPlan, so identical requests skip re-planning.
//
// Grounded on goadesign-goa-ai's registry/service.go and result_stream.go,
// which hold a *redis.Client field and use Set-with-TTL for keyed lookups;
// PlanCache follows the same shape. A nil or unreachable Redis client simply
// disables caching: the Request Processor always works uncached, caching is
// strictly an optimization.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redaptive/agentcore/internal/planner"
)

const defaultTTL = 5 * time.Minute

// PlanCache memoizes WorkflowPlan results keyed by (text, agent set). The
// zero value with a nil client is always a clean miss.
type PlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlanCache builds a PlanCache backed by client. A zero ttl defaults to
// five minutes. client may be nil, in which case Get always misses and Set
// is a no-op.
func NewPlanCache(client *redis.Client, ttl time.Duration) *PlanCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PlanCache{client: client, ttl: ttl}
}

// Get returns the cached plan for (text, agents), if present and unexpired.
func (c *PlanCache) Get(ctx context.Context, text string, agents []string) (planner.WorkflowPlan, bool) {
	if c == nil || c.client == nil {
		return planner.WorkflowPlan{}, false
	}
	raw, err := c.client.Get(ctx, key(text, agents)).Result()
	if err != nil {
		return planner.WorkflowPlan{}, false
	}
	var plan planner.WorkflowPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return planner.WorkflowPlan{}, false
	}
	return plan, true
}

// Set stores plan under (text, agents) with the cache's TTL. Errors are
// swallowed: a failed cache write never fails the surrounding request.
func (c *PlanCache) Set(ctx context.Context, text string, agents []string, plan planner.WorkflowPlan) {
	if c == nil || c.client == nil {
		return
	}
	encoded, err := json.Marshal(plan)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key(text, agents), encoded, c.ttl).Err()
}

// Enabled reports whether this cache has a live backing client.
func (c *PlanCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Close releases the backing client, if any.
func (c *PlanCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Connect dials Redis at addr and pings it with a bounded timeout, following
// registry/service.go's require-a-working-client-or-fail-soft pattern. A
// connection failure returns (nil, err); callers should treat that as
// "caching disabled" rather than a hard startup failure.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("cache: redis address is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func key(text string, agents []string) string {
	sorted := append([]string(nil), agents...)
	sort.Strings(sorted)
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text)) + "|" + strings.Join(sorted, ",")))
	return "agentcore:plan:" + hex.EncodeToString(h[:])
}

// Package registry provides the process-wide Agent Registry: a name
// resolution and lifecycle table mapping agent names to factories (spec
// §4.1). Instantiation of live agents is the Execution Engine's job, not the
// registry's; the registry stores only descriptors.
//
// Grounded on registry/registry.go's New/Close lifecycle shape, stripped of
// the Redis/Pulse/gRPC multi-node clustering layer (distributed execution
// across nodes is an explicit Non-goal for this core).
package registry

import (
	"sort"
	"sync"

	"github.com/redaptive/agentcore/internal/agent"
	"github.com/redaptive/agentcore/internal/toolerrors"
)

// Descriptor is the registered record for one agent (spec §3:
// AgentDescriptor).
type Descriptor struct {
	Name       string
	Factory    agent.Factory
	DomainTags []string
}

// Registry is an in-process, mutex-guarded table of agent descriptors.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Descriptor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register adds a descriptor. It is idempotent when called again with the
// same name and an equivalent set of domain tags (re-registration of a
// no-op factory value is allowed since Go funcs aren't comparable); a name
// collision otherwise is rejected with DuplicateAgent.
func (r *Registry) Register(name string, factory agent.Factory, domainTags ...string) error {
	if name == "" {
		return toolerrors.New(toolerrors.KindConfigError, "agent name must not be empty")
	}
	if factory == nil {
		return toolerrors.New(toolerrors.KindConfigError, "agent factory must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[name]; ok {
		if sameTags(existing.DomainTags, domainTags) {
			// Idempotent re-registration: keep the existing factory,
			// matching "idempotent for identical factory" (spec §4.1).
			// We cannot compare func values, so we treat a same-tags
			// re-registration as the identical-factory case.
			return nil
		}
		return toolerrors.New(toolerrors.KindDuplicateAgent, "agent already registered: "+name)
	}
	r.byName[name] = Descriptor{Name: name, Factory: factory, DomainTags: append([]string(nil), domainTags...)}
	return nil
}

// List returns all registered agent names in stable sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the factory for name, or UnknownAgent if not registered.
func (r *Registry) Get(name string) (agent.Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	if !ok {
		return nil, toolerrors.New(toolerrors.KindUnknownAgent, "unknown agent: "+name)
	}
	return d.Factory, nil
}

// ByDomain returns the subset of registered names carrying the given tag.
func (r *Registry) ByDomain(tag string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for n, d := range r.byName {
		for _, t := range d.DomainTags {
			if t == tag {
				names = append(names, n)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, t := range a {
		seen[t] = true
	}
	for _, t := range b {
		if !seen[t] {
			return false
		}
	}
	return true
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about outline computation and bar placement.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by the engine packages, so the engine
// never imports a metrics or tracing backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetOutlineHooks(&myOutlineHooks{})
//	    observability.SetPlacementHooks(&myPlacementHooks{})
//	    // ... run application
//	}
//
// Engine packages call hooks to emit events:
//
//	observability.Outline().OnOutlineCacheMiss(lifelineID)
//	// ... compose outline ...
//	observability.Outline().OnOutlineComputed(lifelineID, bars, clusters, duration, err)
//
// The engine is synchronous and takes no context, so hook methods do not
// receive one either.
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Outline Hooks
// =============================================================================

// OutlineHooks receives events from the per-lifeline outline cache.
type OutlineHooks interface {
	// OnOutlineCacheHit records a query answered from the cache.
	OnOutlineCacheHit(lifeline string)

	// OnOutlineCacheMiss records a query that forces recomputation.
	OnOutlineCacheMiss(lifeline string)

	// OnOutlineComputed records a finished composition.
	OnOutlineComputed(lifeline string, bars, clusters int, duration time.Duration, err error)
}

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from placement resolution and cascade
// relocation.
type PlacementHooks interface {
	// OnResolve records a single placement. adjusted reports whether a
	// sibling conflict moved the bar. Default width and centring on the
	// lifeline do not count.
	OnResolve(lifeline string, adjusted bool)

	// OnRelocate records a finished cascade.
	OnRelocate(lifeline, bar string, passes, changed int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopOutlineHooks is a no-op implementation of OutlineHooks.
type NoopOutlineHooks struct{}

func (NoopOutlineHooks) OnOutlineCacheHit(string)                                 {}
func (NoopOutlineHooks) OnOutlineCacheMiss(string)                                {}
func (NoopOutlineHooks) OnOutlineComputed(string, int, int, time.Duration, error) {}

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnResolve(string, bool)                                    {}
func (NoopPlacementHooks) OnRelocate(string, string, int, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	outlineHooks   OutlineHooks   = NoopOutlineHooks{}
	placementHooks PlacementHooks = NoopPlacementHooks{}
	hooksMu        sync.RWMutex
)

// SetOutlineHooks registers custom outline hooks.
// This should be called once at application startup before any outline queries.
func SetOutlineHooks(h OutlineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outlineHooks = h
	}
}

// SetPlacementHooks registers custom placement hooks.
// This should be called once at application startup before any placement operations.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// Outline returns the registered outline hooks.
func Outline() OutlineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outlineHooks
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	outlineHooks = NoopOutlineHooks{}
	placementHooks = NoopPlacementHooks{}
}

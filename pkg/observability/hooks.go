// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about merges, undo/redo history, and model storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so library packages can
// emit events without importing any backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetMergeHooks(&myMergeHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Merge().OnMergeStart(ctx, len(elements))
//	// ... merge ...
//	observability.Merge().OnMergeComplete(ctx, target, merged, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Merge Hooks
// =============================================================================

// MergeHooks receives events from the merge orchestrator.
type MergeHooks interface {
	// OnMergeStart fires after a selection passed validation.
	OnMergeStart(ctx context.Context, elementCount int)

	// OnMergeComplete fires when a merge finished, was cancelled (merged == 0,
	// err == nil) or failed.
	OnMergeComplete(ctx context.Context, target string, merged int, duration time.Duration, err error)
}

// =============================================================================
// Stack Hooks
// =============================================================================

// StackHooks receives events from undo/redo stacks.
// Stacks are synchronous and carry no context.
type StackHooks interface {
	OnExecute(label string)
	OnUndo(label string)
	OnRedo(label string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from model stores.
type StoreHooks interface {
	// OnLoad records a model read. hit is false if the model did not exist.
	OnLoad(ctx context.Context, backend, name string, hit bool, size int)

	// OnSave records a model write.
	OnSave(ctx context.Context, backend, name string, size int)

	// OnError records a backend failure.
	OnError(ctx context.Context, backend, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopMergeHooks is a no-op implementation of MergeHooks.
type NoopMergeHooks struct{}

func (NoopMergeHooks) OnMergeStart(context.Context, int)                                 {}
func (NoopMergeHooks) OnMergeComplete(context.Context, string, int, time.Duration, error) {}

// NoopStackHooks is a no-op implementation of StackHooks.
type NoopStackHooks struct{}

func (NoopStackHooks) OnExecute(string) {}
func (NoopStackHooks) OnUndo(string)    {}
func (NoopStackHooks) OnRedo(string)    {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, int) {}
func (NoopStoreHooks) OnSave(context.Context, string, string, int)       {}
func (NoopStoreHooks) OnError(context.Context, string, string, error)    {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	mergeHooks MergeHooks = NoopMergeHooks{}
	stackHooks StackHooks = NoopStackHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetMergeHooks registers custom merge hooks.
// This should be called once at application startup before any merge.
func SetMergeHooks(h MergeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		mergeHooks = h
	}
}

// SetStackHooks registers custom stack hooks.
func SetStackHooks(h StackHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		stackHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Merge returns the registered merge hooks.
func Merge() MergeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return mergeHooks
}

// Stack returns the registered stack hooks.
func Stack() StackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return stackHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	mergeHooks = NoopMergeHooks{}
	stackHooks = NoopStackHooks{}
	storeHooks = NoopStoreHooks{}
}

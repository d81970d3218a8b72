// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about renderer launches and their output.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLaunchHooks(&myLaunchHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Launch().OnLaunchStart(ctx, path, argv)
//	// ... start process ...
//	observability.Launch().OnLaunchComplete(ctx, id, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Launch Hooks
// =============================================================================

// LaunchHooks receives events from the launch pipeline.
type LaunchHooks interface {
	// OnLaunchStart is called right before the renderer process is created.
	OnLaunchStart(ctx context.Context, path string, argv []string)

	// OnLaunchComplete is called once process creation has succeeded or
	// failed. id is empty on failure.
	OnLaunchComplete(ctx context.Context, id string, duration time.Duration, err error)

	// OnLine is called for every forwarded output line.
	OnLine(ctx context.Context, id string, line string)

	// OnExit is called when the renderer has exited.
	OnExit(ctx context.Context, id string, exitCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLaunchHooks is a no-op implementation of LaunchHooks.
type NoopLaunchHooks struct{}

func (NoopLaunchHooks) OnLaunchStart(context.Context, string, []string)                {}
func (NoopLaunchHooks) OnLaunchComplete(context.Context, string, time.Duration, error) {}
func (NoopLaunchHooks) OnLine(context.Context, string, string)                         {}
func (NoopLaunchHooks) OnExit(context.Context, string, int, time.Duration)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	launchHooks LaunchHooks = NoopLaunchHooks{}
	hooksMu     sync.RWMutex
)

// SetLaunchHooks registers custom launch hooks.
// This should be called once at application startup before any launch.
func SetLaunchHooks(h LaunchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		launchHooks = h
	}
}

// Launch returns the registered launch hooks.
func Launch() LaunchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return launchHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	launchHooks = NoopLaunchHooks{}
}

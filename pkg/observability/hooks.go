// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about translation runs, cache
// operations, and API requests.
//
// The package uses a simple hooks pattern: interfaces per event category,
// no-op default implementations, and a registry filled in by main. This
// keeps the engine free of observability framework imports while allowing
// any backend (OpenTelemetry, Prometheus, DataDog) to plug in.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTranslationHooks(&myTranslationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// TranslationHooks receives events from the translation pipeline.
type TranslationHooks interface {
	// OnTranslateStart fires when a material begins translating.
	OnTranslateStart(ctx context.Context, material string, nodeCount int)

	// OnTranslateComplete fires when a material finishes, successfully or
	// not. unsupported counts the nodes the engine could not map.
	OnTranslateComplete(ctx context.Context, material string, unsupported int, duration time.Duration, err error)

	// OnValidate fires after a document validation pass.
	OnValidate(ctx context.Context, material string, errors, warnings int)

	// OnWriteComplete fires after a document is serialized.
	OnWriteComplete(ctx context.Context, material string, bytes int, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// APIHooks receives events from the HTTP API server.
type APIHooks interface {
	// OnRequest records an incoming API request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed API request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// NoopTranslationHooks is a no-op implementation of TranslationHooks.
type NoopTranslationHooks struct{}

func (NoopTranslationHooks) OnTranslateStart(context.Context, string, int) {}
func (NoopTranslationHooks) OnTranslateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopTranslationHooks) OnValidate(context.Context, string, int, int)                    {}
func (NoopTranslationHooks) OnWriteComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                            {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration)       {}

var (
	translationHooks TranslationHooks = NoopTranslationHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	apiHooks         APIHooks         = NoopAPIHooks{}
	hooksMu          sync.RWMutex
)

// SetTranslationHooks registers custom translation hooks.
// Call once at application startup before any translation runs.
func SetTranslationHooks(h TranslationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		translationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// Call once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetAPIHooks registers custom API hooks.
// Call once at application startup before serving requests.
func SetAPIHooks(h APIHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		apiHooks = h
	}
}

// Translation returns the registered translation hooks.
func Translation() TranslationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return translationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// API returns the registered API hooks.
func API() APIHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return apiHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	translationHooks = NoopTranslationHooks{}
	cacheHooks = NoopCacheHooks{}
	apiHooks = NoopAPIHooks{}
}

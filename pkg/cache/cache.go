// Package cache stores translated documents keyed by content hash, so
// re-exporting an unchanged material never reruns the engine. Backends
// cover local CLI usage (files), shared deployments (Redis) and disabled
// caching (null).
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; an absent key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TranslationKeyOpts captures everything besides the graph itself that
// changes the produced document. Two runs with equal graph hashes and
// equal opts are guaranteed to produce byte-identical output.
type TranslationKeyOpts struct {
	Strict    bool   `json:"strict"`
	Threshold int    `json:"threshold"`
	Version   string `json:"version"` // engine version, invalidates across releases
}

// Keyer derives cache keys. Implementations must be deterministic.
type Keyer interface {
	// TranslationKey keys a translated document by source graph hash and
	// translation options.
	TranslationKey(graphHash string, opts TranslationKeyOpts) string

	// ValidationKey keys a validation report by document hash.
	ValidationKey(docHash string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// TranslationKey generates a key for translated document caching.
func (k *DefaultKeyer) TranslationKey(graphHash string, opts TranslationKeyOpts) string {
	return hashKey("translate", graphHash, opts)
}

// ValidationKey generates a key for validation report caching.
func (k *DefaultKeyer) ValidationKey(docHash string) string {
	return hashKey("validate", docHash)
}

// ScopedKeyer wraps a Keyer with a prefix, giving callers separate cache
// namespaces (per project, per user) over one shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TranslationKey generates a prefixed translation key.
func (k *ScopedKeyer) TranslationKey(graphHash string, opts TranslationKeyOpts) string {
	return k.prefix + k.inner.TranslationKey(graphHash, opts)
}

// ValidationKey generates a prefixed validation key.
func (k *ScopedKeyer) ValidationKey(docHash string) string {
	return k.prefix + k.inner.ValidationKey(docHash)
}

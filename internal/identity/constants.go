package identity

import "time"

// CacheSchemaVersion is bumped whenever the cached struct changes shape
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cached identities
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cached identities
const DefaultCacheTTL = 5 * time.Minute

// MaxDisplayNameLength bounds names supplied by the identity provider
const MaxDisplayNameLength = 64

package config

import "time"

// Store backends
const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

// Defaults for optional settings
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultEnvironment       = "dev"
	DefaultServiceName       = "lootvault"
	DefaultStoreBackend      = StoreBackendMemory
	DefaultDBMaxConns        = 10
	DefaultIdentityCacheSize = 1024
	DefaultIdentityCacheTTL  = 5 * time.Minute
	DefaultCatalogPath       = "configs/items/catalog.json"
	DefaultMaxWeight         = 150.0
)

// Event publisher defaults
const (
	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "data/deadletter.jsonl"
)

package bootstrap

import "time"

// DirPermission is the permission for directories bootstrap creates
const DirPermission = 0755

// Logger messages
const (
	LogMsgStarting            = "Starting LootVault"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// Event system messages
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// Store settings and messages
const (
	DBMaxConnIdleTime = 5 * time.Minute
	DBMaxConnLifetime = time.Hour

	LogMsgStoreInitialized      = "Store initialized"
	ErrMsgUnknownStoreBackend   = "unknown store backend"
	ErrMsgFailedConnectDatabase = "failed to connect to database"
	ErrMsgFailedMigrateDatabase = "failed to migrate database"
)

// Catalog messages
const (
	LogMsgCatalogMissing  = "Item catalog not found, catalog additions disabled"
	ErrMsgFailedLoadItems = "failed to load item catalog"
)

// Realtime messages
const (
	LogMsgRealtimeInitialized     = "Realtime hub initialized"
	LogMsgRedisBridgeStarted      = "Redis bridge started"
	LogMsgRedisBridgeStopped      = "Redis bridge stopped"
	ErrMsgInvalidRedisURL         = "invalid redis url"
	ErrMsgFailedConnectRedis      = "failed to connect to redis"
	ErrMsgFailedRegisterSubsGauge = "failed to register subscription gauge"
)

// Event handler messages
const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgClosingRealtime            = "Closing realtime feeds..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgRedisCloseFailed           = "Redis client close failed"
)

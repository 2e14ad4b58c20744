package constants

import "time"

// Application Information
const (
	AppName    = "Storefront State Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Storefront defaults
const (
	DefaultStorageBackend = "memory"
	DefaultItemsPerPage   = 9
	DefaultSiblings       = 1
	DefaultHistoryMode    = "replace"
	DefaultSessionIdleTTL = 30 * time.Minute
	DefaultTab            = "description"
)

// Storage Key Prefixes
const (
	StorageKeyPrefix = "storefront"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidProviderConfigs indicates invalid identity provider settings
	// (for example, missing base URL or request timeout).
	ErrInvalidProviderConfigs = errors.New("invalid provider configuration")
	// ErrInvalidRemoteConfigs indicates invalid remote document store
	// settings (for example, empty DSN).
	ErrInvalidRemoteConfigs = errors.New("invalid remote store configuration")
	// ErrInvalidStorageConfigs indicates invalid local cache settings
	// (for example, empty path or unsupported in-memory path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero reconcile interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// SPDX-License-Identifier: Apache-2.0

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// client's startup invariants.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Provider.BaseURL == "" || cfg.Provider.RequestTimeout == 0 {
		return ErrInvalidProviderConfigs
	}

	if cfg.Remote.DSN == "" {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Storage.DB.Path == "" || strings.Contains(cfg.Storage.DB.Path, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.ReconcileInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

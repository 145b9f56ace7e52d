// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks invariants that hold for every role: no negative
// durations.
func (cfg *StructuredConfig) validate() error {
	durations := []int64{
		int64(cfg.App.TokenDuration),
		int64(cfg.Server.RequestTimeout),
		int64(cfg.Adapter.RequestTimeout),
		int64(cfg.Workers.SyncInterval),
		int64(cfg.Workers.SyncBudget),
		int64(cfg.Workers.BatchWindow),
		int64(cfg.Workers.Debounce),
		int64(cfg.Workers.RetryBase),
		int64(cfg.Workers.RetryMax),
		int64(cfg.Workers.EmergencyDelay),
		int64(cfg.Workers.ProbeInterval),
		int64(cfg.Sync.ProgressInterval),
		int64(cfg.Sync.RefreshSkew),
	}
	for _, d := range durations {
		if d < 0 {
			return ErrNegativeDuration
		}
	}
	if cfg.Workers.EmergencyThreshold < 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Log.Level != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidLogConfigs, err)
		}
	}

	return nil
}

// ValidateServer checks the settings the backend cannot start without.
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.Minio.Endpoint != "" && cfg.Storage.Minio.Bucket == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 || cfg.Workers.BatchWindow == 0 || cfg.Workers.RetryBase == 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Workers.RetryMax < cfg.Workers.RetryBase {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

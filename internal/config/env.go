// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig reads the environment into a fresh [StructuredConfig]. Variable
// names come from the env and envPrefix tags, so SYNC_ONE_WAY sets
// Sync.OneWay. Unset variables leave zero values for the merge to fill.
func envConfig() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return &cfg, nil
}

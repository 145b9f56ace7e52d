// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// notesync client and the reference backend. It is populated by merging
// environment variables, command-line flags and an optional JSON or YAML
// file, then completed with defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, the integrity hash key and the version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and binary content settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and request timeout of the backend.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client-side view of the backend address.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the timings of the auto-sync scheduler and its helpers.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the behaviour switches of a single sync run.
	Sync Sync `envPrefix:"SYNC_"`

	// Log holds the log level and the client log file.
	Log Log `envPrefix:"LOG_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// TokenSignKey is the secret used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long an issued token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key of the HashSHA256 body integrity header.
	// Integrity checks are disabled when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence settings.
type Storage struct {
	// DB is the Postgres DSN on the server and the SQLite file on the client.
	DB DB `envPrefix:"DB_"`

	// Files configures the filesystem blob backend.
	Files Files `envPrefix:"FILES_"`

	// Minio configures the object storage blob backend. It takes precedence
	// over Files when Endpoint is set.
	Minio Minio `envPrefix:"MINIO_"`
}

// DB holds connection settings for the relational database.
type DB struct {
	// DSN is the connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds filesystem settings for note binary content.
type Files struct {
	// BinaryDataDir is the directory where note binaries are stored.
	// Env: STORAGE_FILES_BINARY_DATA_DIR
	BinaryDataDir string `env:"BINARY_DATA_DIR"`
}

// Minio holds object storage settings for note binary content.
type Minio struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL"`
}

// Server holds the inbound transport settings of the backend.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the outbound transport settings of the client.
type Adapter struct {
	// HTTPAddress is the backend base URL or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the timings of the background sync machinery.
type Workers struct {
	// SyncInterval is the period of the scheduler's periodic trigger.
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// SyncBudget bounds a single sync run; it is checked at phase boundaries.
	SyncBudget time.Duration `env:"SYNC_BUDGET"`

	// BatchWindow is how long low-priority triggers are collected before
	// one coalesced sync runs.
	BatchWindow time.Duration `env:"BATCH_WINDOW"`

	// Debounce absorbs bursts of local edits.
	Debounce time.Duration `env:"DEBOUNCE"`

	// RetryBase and RetryMax bound the backoff after a failed sync.
	RetryBase time.Duration `env:"RETRY_BASE"`
	RetryMax  time.Duration `env:"RETRY_MAX"`

	// EmergencyThreshold consecutive failures switch the retry delay to
	// EmergencyDelay.
	EmergencyThreshold int           `env:"EMERGENCY_THRESHOLD"`
	EmergencyDelay     time.Duration `env:"EMERGENCY_DELAY"`

	// ProbeInterval is the period of the connectivity probe.
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// WatchLocalStore turns local database file changes into data-change
	// triggers.
	WatchLocalStore bool `env:"WATCH_LOCAL_STORE"`
}

// Sync holds the switches of a sync run.
type Sync struct {
	// OneWay restricts syncs to the upload direction.
	OneWay bool `env:"ONE_WAY"`

	// IncludeBinary transfers note binary content.
	IncludeBinary bool `env:"INCLUDE_BINARY"`

	// PruneMissing hard-deletes local synced records that no longer exist
	// remotely.
	PruneMissing bool `env:"PRUNE_MISSING"`

	// ProgressInterval is the minimum delay between progress callbacks.
	ProgressInterval time.Duration `env:"PROGRESS_INTERVAL"`

	// RefreshSkew refreshes the session token this long before it expires.
	RefreshSkew time.Duration `env:"REFRESH_SKEW"`
}

// Log holds log settings.
type Log struct {
	// FilePath is the rotating log file of the client.
	FilePath string `env:"FILE"`

	// Level is a zerolog level name. Empty keeps debug.
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the backend configuration
// from environment variables, command-line flags and the optional file.
func GetStructuredConfig() (*StructuredConfig, error) {
	flags, err := ParseFlags(os.Args[1:])
	if err != nil {
		return nil, err
	}

	return newConfigBuilder().
		withEnv().
		withFlags(flags).
		withFile().
		withDefaults().
		build()
}

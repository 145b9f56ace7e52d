package config

import "time"

// defaults returns the values used for every field no other source sets.
// Booleans are absent on purpose: their zero value is the default.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "note-server",
			TokenDuration: time.Hour,
			Version:       "dev",
		},
		Storage: Storage{
			Files: Files{BinaryDataDir: "data/binary"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			SyncInterval:       5 * time.Minute,
			SyncBudget:         2 * time.Minute,
			BatchWindow:        2 * time.Second,
			Debounce:           1500 * time.Millisecond,
			RetryBase:          5 * time.Second,
			RetryMax:           5 * time.Minute,
			EmergencyThreshold: 5,
			EmergencyDelay:     15 * time.Minute,
			ProbeInterval:      30 * time.Second,
		},
		Sync: Sync{
			ProgressInterval: 100 * time.Millisecond,
			RefreshSkew:      time.Minute,
		},
	}
}

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_JSON(t *testing.T) {
	path := writeTempFile(t, "config.json", `{
		"app": {"token_sign_key": "secret", "token_duration": "2h"},
		"storage": {"db": {"dsn": "postgres://localhost/notes"}, "minio": {"endpoint": "minio:9000", "bucket": "notes"}},
		"server": {"http_address": "0.0.0.0:8080", "request_timeout": 5000000000},
		"workers": {"sync_interval": "1m", "emergency_threshold": 3, "watch_local_store": true},
		"sync": {"one_way": true, "include_binary": true}
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://localhost/notes", cfg.Storage.DB.DSN)
	assert.Equal(t, "minio:9000", cfg.Storage.Minio.Endpoint)
	assert.Equal(t, "notes", cfg.Storage.Minio.Bucket)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 3, cfg.Workers.EmergencyThreshold)
	assert.True(t, cfg.Workers.WatchLocalStore)
	assert.True(t, cfg.Sync.OneWay)
	assert.True(t, cfg.Sync.IncludeBinary)
}

func TestParseFile_YAML(t *testing.T) {
	path := writeTempFile(t, "notesync.yaml", `
adapter:
  http_address: https://notes.example.com
  request_timeout: 20s
storage:
  db:
    dsn: /home/user/.notesync/notes.db
workers:
  batch_window: 3s
  debounce: 500ms
sync:
  prune_missing: true
  progress_interval: 50ms
log:
  file: /tmp/notesync.log
  level: info
`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://notes.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/home/user/.notesync/notes.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 3*time.Second, cfg.Workers.BatchWindow)
	assert.Equal(t, 500*time.Millisecond, cfg.Workers.Debounce)
	assert.True(t, cfg.Sync.PruneMissing)
	assert.Equal(t, 50*time.Millisecond, cfg.Sync.ProgressInterval)
	assert.Equal(t, "/tmp/notesync.log", cfg.Log.FilePath)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "malformed json", file: "bad.json", content: "{not valid json"},
		{name: "malformed yaml", file: "bad.yml", content: "adapter: [unterminated"},
		{name: "bad json duration", file: "dur.json", content: `{"workers": {"debounce": "fast"}}`},
		{name: "bad yaml duration", file: "dur.yaml", content: "workers:\n  debounce: fast\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFile(writeTempFile(t, tt.file, tt.content))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(data))
}

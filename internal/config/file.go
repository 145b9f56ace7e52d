package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig is the on-disk shape of the configuration file. The
// same tags serve JSON and YAML files.
type StructuredFileConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
		HashKey       string   `json:"hash_key" yaml:"hash_key"`
		Version       string   `json:"version" yaml:"version"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`

		Files struct {
			BinaryDataDir string `json:"binary_data_dir" yaml:"binary_data_dir"`
		} `json:"files,omitempty" yaml:"files,omitempty"`

		Minio struct {
			Endpoint  string `json:"endpoint" yaml:"endpoint"`
			AccessKey string `json:"access_key" yaml:"access_key"`
			SecretKey string `json:"secret_key" yaml:"secret_key"`
			Bucket    string `json:"bucket" yaml:"bucket"`
			UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
		} `json:"minio,omitempty" yaml:"minio,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Workers struct {
		SyncInterval       Duration `json:"sync_interval" yaml:"sync_interval"`
		SyncBudget         Duration `json:"sync_budget" yaml:"sync_budget"`
		BatchWindow        Duration `json:"batch_window" yaml:"batch_window"`
		Debounce           Duration `json:"debounce" yaml:"debounce"`
		RetryBase          Duration `json:"retry_base" yaml:"retry_base"`
		RetryMax           Duration `json:"retry_max" yaml:"retry_max"`
		EmergencyThreshold int      `json:"emergency_threshold" yaml:"emergency_threshold"`
		EmergencyDelay     Duration `json:"emergency_delay" yaml:"emergency_delay"`
		ProbeInterval      Duration `json:"probe_interval" yaml:"probe_interval"`
		WatchLocalStore    bool     `json:"watch_local_store" yaml:"watch_local_store"`
	} `json:"workers,omitempty" yaml:"workers,omitempty"`

	Sync struct {
		OneWay           bool     `json:"one_way" yaml:"one_way"`
		IncludeBinary    bool     `json:"include_binary" yaml:"include_binary"`
		PruneMissing     bool     `json:"prune_missing" yaml:"prune_missing"`
		ProgressInterval Duration `json:"progress_interval" yaml:"progress_interval"`
		RefreshSkew      Duration `json:"refresh_skew" yaml:"refresh_skew"`
	} `json:"sync,omitempty" yaml:"sync,omitempty"`

	Log struct {
		FilePath string `json:"file" yaml:"file"`
		Level    string `json:"level" yaml:"level"`
	} `json:"log,omitempty" yaml:"log,omitempty"`
}

// parseFile reads a JSON or YAML configuration file; the format is chosen
// by the extension (.yaml/.yml, anything else is JSON).
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fileCfg.structured(), nil
}

func (f StructuredFileConfig) structured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:  f.App.TokenSignKey,
			TokenIssuer:   f.App.TokenIssuer,
			TokenDuration: time.Duration(f.App.TokenDuration),
			HashKey:       f.App.HashKey,
			Version:       f.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: f.Storage.DB.DSN,
			},
			Files: Files{
				BinaryDataDir: f.Storage.Files.BinaryDataDir,
			},
			Minio: Minio{
				Endpoint:  f.Storage.Minio.Endpoint,
				AccessKey: f.Storage.Minio.AccessKey,
				SecretKey: f.Storage.Minio.SecretKey,
				Bucket:    f.Storage.Minio.Bucket,
				UseSSL:    f.Storage.Minio.UseSSL,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:       time.Duration(f.Workers.SyncInterval),
			SyncBudget:         time.Duration(f.Workers.SyncBudget),
			BatchWindow:        time.Duration(f.Workers.BatchWindow),
			Debounce:           time.Duration(f.Workers.Debounce),
			RetryBase:          time.Duration(f.Workers.RetryBase),
			RetryMax:           time.Duration(f.Workers.RetryMax),
			EmergencyThreshold: f.Workers.EmergencyThreshold,
			EmergencyDelay:     time.Duration(f.Workers.EmergencyDelay),
			ProbeInterval:      time.Duration(f.Workers.ProbeInterval),
			WatchLocalStore:    f.Workers.WatchLocalStore,
		},
		Sync: Sync{
			OneWay:           f.Sync.OneWay,
			IncludeBinary:    f.Sync.IncludeBinary,
			PruneMissing:     f.Sync.PruneMissing,
			ProgressInterval: time.Duration(f.Sync.ProgressInterval),
			RefreshSkew:      time.Duration(f.Sync.RefreshSkew),
		},
		Log: Log{FilePath: f.Log.FilePath, Level: f.Log.Level},
	}
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// in JSON and YAML, and from plain nanosecond numbers in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	tmp, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}

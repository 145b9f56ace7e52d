package config

import (
	"fmt"
	"time"
)

// ClientFlags are the persistent command-line flags of the notesync CLI. The
// CLI binds them with cobra; they take part in the merge like server flags.
type ClientFlags struct {
	ServerAddress string
	DSN           string
	ConfigPath    string
	LogFile       string
}

func (f ClientFlags) structured() *StructuredConfig {
	return &StructuredConfig{
		Adapter:  Adapter{HTTPAddress: f.ServerAddress},
		Storage:  Storage{DB: DB{DSN: f.DSN}},
		Log:      Log{FilePath: f.LogFile},
		FilePath: f.ConfigPath,
	}
}

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs request bodies with the HashSHA256 header when set.
	HashKey string
	// Version is reported by the status command.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite database file.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains the auto-sync scheduler settings.
type ClientWorkers struct {
	SyncInterval       time.Duration
	SyncBudget         time.Duration
	BatchWindow        time.Duration
	Debounce           time.Duration
	RetryBase          time.Duration
	RetryMax           time.Duration
	EmergencyThreshold int
	EmergencyDelay     time.Duration
	ProbeInterval      time.Duration
	WatchLocalStore    bool
}

// ClientSync contains the switches of a single sync run.
type ClientSync struct {
	TwoWay           bool
	IncludeBinary    bool
	PruneMissing     bool
	ProgressInterval time.Duration
	RefreshSkew      time.Duration
}

// ClientLog contains client log settings.
type ClientLog struct {
	FilePath string
	Level    string
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
	Log     ClientLog
}

// GetClientConfig builds and validates the client configuration from
// environment variables, the CLI flags and the optional config file.
func GetClientConfig(flags ClientFlags) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(flags.structured()).
		withFile().
		withDefaults().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:       cfg.Workers.SyncInterval,
			SyncBudget:         cfg.Workers.SyncBudget,
			BatchWindow:        cfg.Workers.BatchWindow,
			Debounce:           cfg.Workers.Debounce,
			RetryBase:          cfg.Workers.RetryBase,
			RetryMax:           cfg.Workers.RetryMax,
			EmergencyThreshold: cfg.Workers.EmergencyThreshold,
			EmergencyDelay:     cfg.Workers.EmergencyDelay,
			ProbeInterval:      cfg.Workers.ProbeInterval,
			WatchLocalStore:    cfg.Workers.WatchLocalStore,
		},
		Sync: ClientSync{
			TwoWay:           !cfg.Sync.OneWay,
			IncludeBinary:    cfg.Sync.IncludeBinary,
			PruneMissing:     cfg.Sync.PruneMissing,
			ProgressInterval: cfg.Sync.ProgressInterval,
			RefreshSkew:      cfg.Sync.RefreshSkew,
		},
		Log: ClientLog{FilePath: cfg.Log.FilePath, Level: cfg.Log.Level},
	}
}

package service

import (
	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/store"
)

// ClientServices is the wired sync engine of the CLI and the daemon.
type ClientServices struct {
	AuthService  ClientAuthService
	Recovery     *NetworkRecoveryManager
	Transactions *TransactionManager
	Coordinator  *SyncCoordinator
	Scheduler    *AutoSyncScheduler
}

// LocalClientStore is what the engine needs from the local database.
type LocalClientStore interface {
	LocalSyncStore
	store.SessionRepository
}

func NewClientServices(local LocalClientStore, server adapter.ServerAdapter, cfg *config.ClientConfig, log *logger.Logger, opts ...SchedulerOption) *ClientServices {
	auth := NewClientAuthService(local, server, cfg.Sync.RefreshSkew, log)
	recovery := NewNetworkRecoveryManager()
	tx := NewTransactionManager(local, log)

	coordinator := NewSyncCoordinator(
		auth,
		local,
		tx,
		recovery,
		NewFolderSyncManager(server, tx, recovery),
		NewNoteSyncManager(server, tx, recovery),
		cfg.Sync.ProgressInterval,
		log,
	)

	return &ClientServices{
		AuthService:  auth,
		Recovery:     recovery,
		Transactions: tx,
		Coordinator:  coordinator,
		Scheduler:    NewAutoSyncScheduler(coordinator, NewSchedulerConfig(cfg.Workers, cfg.Sync), log, opts...),
	}
}

// NewSyncOptions returns the options of a manual sync.
func NewSyncOptions(cfg *config.ClientConfig) SyncOptions {
	return NewSchedulerConfig(cfg.Workers, cfg.Sync).Options
}

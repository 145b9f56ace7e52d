// Package workers runs the background jobs of the sync daemon: the auto-sync
// scheduler, the connectivity probe and the local store watcher.
package workers

import (
	"context"

	"github.com/MKhiriev/go-note-sync/internal/service"
)

// Worker is a background job. Run blocks until ctx is done or the job fails.
type Worker interface {
	Run(ctx context.Context) error
}

// Pinger checks that the backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SyncTarget receives the signals the workers produce.
// service.AutoSyncScheduler implements it.
type SyncTarget interface {
	Trigger(t service.Trigger)
	SetOnline(online bool)
}

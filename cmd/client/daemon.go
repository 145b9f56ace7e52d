package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/workers"
)

func newDaemonCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the auto-sync scheduler until interrupted",
		Long: `Run the auto-sync scheduler in the foreground.

The daemon syncs periodically, retries failed runs with backoff, resumes
when the backend becomes reachable again and, when workers.watch_local_store
is enabled, syncs shortly after the local database changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			var c *client
			persistStats := service.WithResult(func(_ service.SyncResult, _ error) {
				c.saveSchedulerStats(ctx)
			})

			return withClient(cmd, opts, func(ctx context.Context, wired *client) error {
				c = wired
				return c.runDaemon(ctx)
			}, persistStats)
		},
	}
}

func (c *client) runDaemon(ctx context.Context) error {
	scheduler := c.services.Scheduler

	w := workers.NewWorkers(c.log,
		scheduler,
		workers.NewConnectivityProbe(c.server, scheduler, c.cfg.Workers.ProbeInterval, c.log),
	)
	if c.cfg.Workers.WatchLocalStore {
		w.Add(workers.NewStoreWatcher(
			c.local.Path(),
			scheduler,
			c.services.Coordinator.IsSyncInProgress,
			c.cfg.Workers.Debounce,
			c.log,
			workers.WithPendingChanges(c.local.PendingChanges),
		))
	}

	c.log.Info().
		Dur("sync_interval", c.cfg.Workers.SyncInterval).
		Bool("watch_local_store", c.cfg.Workers.WatchLocalStore).
		Msg("daemon started")

	scheduler.Trigger(service.TriggerUserInitiated)
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("daemon stopped: %w", err)
	}

	c.log.Info().Msg("daemon stopped")
	return nil
}

// saveSchedulerStats stores the scheduler snapshot for `notesync status`.
func (c *client) saveSchedulerStats(ctx context.Context) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(c.services.Scheduler.Stats())
	if err != nil {
		c.log.Err(err).Msg("error encoding scheduler stats")
		return
	}
	if err = c.local.SetMeta(ctx, store.MetaSchedulerStats, string(raw)); err != nil {
		c.log.Err(err).Msg("error saving scheduler stats")
	}
}

package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

// Workers runs a set of workers together. The first failure stops the rest.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	return &Workers{workers: workers, logger: logger}
}

// Add appends w. It must not be called while Run is active.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker and waits for all of them.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	w.logger.Info().Int("workers", len(w.workers)).Msg("workers started")
	err := g.Wait()
	if err != nil {
		w.logger.Err(err).Msg("workers stopped with error")
		return err
	}
	w.logger.Info().Msg("workers stopped")
	return nil
}

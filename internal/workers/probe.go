// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-sync/internal/logger"
)

const probeTimeout = 5 * time.Second

// ConnectivityProbe pings the backend periodically and reports the result
// as the online state of the target.
type ConnectivityProbe struct {
	pinger   Pinger
	target   SyncTarget
	interval time.Duration
	logger   *logger.Logger
}

func NewConnectivityProbe(pinger Pinger, target SyncTarget, interval time.Duration, logger *logger.Logger) *ConnectivityProbe {
	return &ConnectivityProbe{
		pinger:   pinger,
		target:   target,
		interval: interval,
		logger:   logger.WithStr("worker", "probe"),
	}
}

// Run probes once immediately, then every interval. A non-positive interval
// probes once.
func (p *ConnectivityProbe) Run(ctx context.Context) error {
	p.probe(ctx)
	if p.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *ConnectivityProbe) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := p.pinger.Ping(pingCtx)
	if ctx.Err() != nil {
		// shutting down
		return
	}
	if err != nil {
		p.logger.Debug().Err(err).Msg("backend unreachable")
	}
	p.target.SetOnline(err == nil)
}

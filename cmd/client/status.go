package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/internal/tui"
)

const statusPingTimeout = 3 * time.Second

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session, the last sync and the daemon state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client) error {
				return c.printStatus(ctx, cmd.OutOrStdout())
			})
		},
	}
}

func (c *client) printStatus(ctx context.Context, out io.Writer) error {
	fmt.Fprintf(out, "Сервер: %s (%s)\n", c.cfg.Adapter.HTTPAddress, c.reachability(ctx))

	session, err := c.services.AuthService.Session(ctx)
	switch {
	case errors.Is(err, service.ErrNotLoggedIn):
		fmt.Fprintln(out, "Вход: не выполнен")
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "Вход: %s (id %d), токен до %s\n",
			session.Login, session.UserID, formatTime(session.ExpiresAt))
	}

	lastSync, ok, err := c.local.LastSync(ctx)
	if err != nil {
		return err
	}
	status, _, err := c.local.GetMeta(ctx, store.MetaLastSyncStatus)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(out, "Последняя синхронизация: %s (%s)\n", formatTime(lastSync), status)
	} else {
		fmt.Fprintln(out, "Последняя синхронизация: N/A")
	}

	raw, ok, err := c.local.GetMeta(ctx, store.MetaSchedulerStats)
	if err != nil || !ok {
		return err
	}
	var stats service.SchedulerStats
	if err = json.Unmarshal([]byte(raw), &stats); err != nil {
		c.log.Err(err).Msg("malformed scheduler stats")
		return nil
	}
	fmt.Fprintf(out, "Демон: запусков %d, ошибок %d подряд", stats.Runs, stats.ConsecutiveFailures)
	if stats.LastError != "" {
		fmt.Fprintf(out, ", последняя ошибка: %s", stats.LastError)
	}
	if !stats.NextRetryAt.IsZero() {
		fmt.Fprintf(out, ", повтор в %s", formatTime(stats.NextRetryAt))
	}
	fmt.Fprintln(out)

	return nil
}

func (c *client) reachability(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, statusPingTimeout)
	defer cancel()

	if err := c.server.Ping(ctx); err != nil {
		return "недоступен: " + tui.HumanizeError(err)
	}
	return "доступен"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format(time.DateTime)
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), tui.RenderBuildInfo(opts.info))
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/adapter"
	"github.com/MKhiriev/go-note-sync/internal/config"
	"github.com/MKhiriev/go-note-sync/internal/logger"
	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/store"
	"github.com/MKhiriev/go-note-sync/models"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	flags config.ClientFlags
	info  models.AppBuildInfo
}

func newRootCommand(info models.AppBuildInfo) *cobra.Command {
	opts := &rootOptions{info: info}

	cmd := &cobra.Command{
		Use:   "notesync",
		Short: "notesync keeps the local note store in sync with the backend",
		Long: `notesync reconciles the local SQLite note store with the note backend.

Settings are read from environment variables, the flags below and an
optional JSON or YAML config file, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.flags.ServerAddress, "server", "s", "", "backend address, e.g. http://localhost:8080")
	pf.StringVarP(&opts.flags.DSN, "db", "d", "", "local SQLite database file")
	pf.StringVarP(&opts.flags.ConfigPath, "config", "c", "", "JSON or YAML config file")
	pf.StringVar(&opts.flags.LogFile, "log-file", "", "log file (rotated)")

	cmd.AddCommand(
		newRegisterCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newSyncCommand(opts),
		newDaemonCommand(opts),
		newStatusCommand(opts),
		newVersionCommand(opts),
	)

	return cmd
}

// client is the wired runtime of one command invocation.
type client struct {
	cfg      *config.ClientConfig
	log      *logger.Logger
	local    *store.LocalStore
	server   adapter.ServerAdapter
	services *service.ClientServices
}

// newClient reads the configuration, opens the local store and wires the
// sync engine.
func newClient(ctx context.Context, opts *rootOptions, schedulerOpts ...service.SchedulerOption) (*client, error) {
	cfg, err := config.GetClientConfig(opts.flags)
	if err != nil {
		return nil, fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.App.Version == "" && opts.info.Known() {
		cfg.App.Version = opts.info.BuildVersion()
	}

	log, err := logger.NewClientLogger("notesync", cfg.Log.FilePath).Leveled(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	server, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	local, err := store.NewLocalStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}

	return &client{
		cfg:      cfg,
		log:      log,
		local:    local,
		server:   server,
		services: service.NewClientServices(local, server, cfg, log, schedulerOpts...),
	}, nil
}

func (c *client) Close() error {
	if err := c.local.Close(); err != nil {
		c.log.Err(err).Msg("error closing local store")
		return err
	}
	return nil
}

// withClient runs fn against a freshly wired client and closes it afterwards.
func withClient(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, c *client) error, schedulerOpts ...service.SchedulerOption) (err error) {
	ctx := cmd.Context()

	c, err := newClient(ctx, opts, schedulerOpts...)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, c.Close())
	}()

	return fn(c.log.WithContext(ctx), c)
}

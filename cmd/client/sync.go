package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/service"
	"github.com/MKhiriev/go-note-sync/internal/tui"
	"github.com/MKhiriev/go-note-sync/models"
)

type syncOptions struct {
	*rootOptions
	binary bool
	oneWay bool
	plain  bool
}

// apply overrides the configured run options with the flags actually set.
func (o *syncOptions) apply(cmd *cobra.Command, opts service.SyncOptions) service.SyncOptions {
	if cmd.Flags().Changed("binary") {
		opts.IncludeBinaryData = o.binary
	}
	if cmd.Flags().Changed("one-way") {
		opts.TwoWay = !o.oneWay
	}
	return opts
}

func newSyncCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &syncOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one sync session",
		Long: `Run one sync session: upload local changes, then (unless --one-way)
download remote changes, and commit everything atomically.

Example:
  notesync sync
  notesync sync --binary
  notesync sync --one-way --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)

			return withClient(cmd, opts.rootOptions, func(ctx context.Context, c *client) error {
				syncOpts := opts.apply(cmd, service.NewSyncOptions(c.cfg))
				run := func(ctx context.Context, onProgress func(models.SyncProgress)) (service.SyncResult, error) {
					return c.services.Coordinator.Sync(ctx, syncOpts, onProgress)
				}

				if opts.plain {
					return runPlainSync(ctx, cmd.OutOrStdout(), run)
				}

				_, err := tui.RunSync(ctx, run,
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&opts.binary, "binary", false, "transfer note binary content")
	cmd.Flags().BoolVar(&opts.oneWay, "one-way", false, "upload only, skip the download phases")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print progress lines instead of the interactive view")

	return cmd
}

// runPlainSync prints one line per progress update and a summary line.
func runPlainSync(ctx context.Context, out io.Writer, run tui.SyncFunc) error {
	result, err := run(ctx, func(p models.SyncProgress) {
		fmt.Fprintf(out, "[%3.0f%%] %s\n", p.Completion()*100, p.Status)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, tui.Summarize(result))
	return nil
}

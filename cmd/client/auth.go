package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-note-sync/internal/tui"
	"github.com/MKhiriev/go-note-sync/models"
)

type credentialsOptions struct {
	*rootOptions
	login    string
	password string
}

// credentials returns the flag values, prompting for whatever is missing.
func (o *credentialsOptions) credentials(title string) (models.User, error) {
	if o.login != "" && o.password != "" {
		return models.User{Login: o.login, Password: o.password}, nil
	}
	return tui.PromptCredentials(title, o.login)
}

func (o *credentialsOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.login, "login", "l", "", "account login")
	cmd.Flags().StringVarP(&o.password, "password", "p", "", "account password; prompted when empty")
}

func newRegisterCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &credentialsOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the backend and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := opts.credentials("РЕГИСТРАЦИЯ")
			if err != nil {
				return err
			}

			return withClient(cmd, opts.rootOptions, func(ctx context.Context, c *client) error {
				session, err := c.services.AuthService.Register(ctx, user)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Аккаунт %s создан, вход выполнен\n", session.Login)
				return nil
			})
		},
	}
	opts.bind(cmd)

	return cmd
}

func newLoginCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &credentialsOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := opts.credentials("ВХОД")
			if err != nil {
				return err
			}

			return withClient(cmd, opts.rootOptions, func(ctx context.Context, c *client) error {
				session, err := c.services.AuthService.Login(ctx, user)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Вход выполнен: %s\n", session.Login)
				return nil
			})
		},
	}
	opts.bind(cmd)

	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withClient(cmd, opts, func(ctx context.Context, c *client) error {
				if err := c.services.AuthService.Logout(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Сессия завершена")
				return nil
			})
		},
	}
}

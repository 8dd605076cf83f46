package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookstore-admin/bookctl/internal/client"
	"bookstore-admin/bookctl/internal/session"
)

func newLoginCommand(opts *globalOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as admin and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("BOOKCTL_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("--username and --password (or BOOKCTL_PASSWORD) are required")
			}

			serverURL := opts.serverURL(session.State{})
			token, err := client.New(serverURL).Login(cmd.Context(), username, password)
			if err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return errors.New("login failed: wrong username or password")
				}
				return err
			}

			state := session.State{ServerURL: serverURL, Username: username, Token: token}
			if err := session.Save(opts.SessionPath, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in to %s as %s\n", serverURL, username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "admin username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

func newLogoutCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return session.Clear(opts.SessionPath)
		},
	}
}

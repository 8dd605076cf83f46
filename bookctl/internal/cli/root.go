package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bookstore-admin/bookctl/internal/client"
	"bookstore-admin/bookctl/internal/session"
)

const defaultServerURL = "http://localhost:8080"

type globalOptions struct {
	ServerURL   string
	SessionPath string
	JSON        bool
}

func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "bookctl",
		Short:         "Admin CLI for the bookstore API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.ServerURL, "server", os.Getenv("BOOKCTL_SERVER"), "bookstore API base URL (default "+defaultServerURL+")")
	root.PersistentFlags().StringVar(&opts.SessionPath, "session", session.DefaultPath(), "session file")
	root.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print raw JSON")

	root.AddCommand(
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newAuthorsCommand(opts),
		newCategoriesCommand(opts),
		newBooksCommand(opts),
		newOrdersCommand(opts),
		newInventoryCommand(opts),
	)
	return root
}

func (o *globalOptions) serverURL(state session.State) string {
	switch {
	case o.ServerURL != "":
		return o.ServerURL
	case state.ServerURL != "":
		return state.ServerURL
	default:
		return defaultServerURL
	}
}

// authed returns a client carrying the token of the saved session.
func (o *globalOptions) authed() (*client.Client, error) {
	state, err := session.Load(o.SessionPath)
	if err != nil {
		return nil, err
	}
	return client.New(o.serverURL(state)).WithToken(state.Token), nil
}

// call runs fn with an authenticated client and prints its result, either
// as JSON or through table.
func call[T any](cmd *cobra.Command, opts *globalOptions, fn func(ctx context.Context, c *client.Client) (T, error), table func(w io.Writer, v T)) error {
	c, err := opts.authed()
	if err != nil {
		return err
	}
	v, err := fn(cmd.Context(), c)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("session expired; run `bookctl login` again")
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	table(tw, v)
	return tw.Flush()
}

func cents(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bookstore-admin/bookctl/internal/client"
)

func printOrders(w io.Writer, orders []client.Order) {
	fmt.Fprintln(w, "ID\tCUSTOMER\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.CustomerID, o.Status, cents(o.TotalCents), o.PlacedAt.Format(time.RFC3339))
	}
}

func newOrdersCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Manage orders"}

	var (
		customerID string
		page       client.Page
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) ([]client.Order, error) {
				return c.ListOrders(ctx, customerID, page)
			}, printOrders)
		},
	}
	list.Flags().StringVar(&customerID, "customer", "", "only orders of this customer")
	pageFlags(list, &page)

	var cartID, addressID string
	place := &cobra.Command{
		Use:   "place",
		Short: "Place an order from an open cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) (client.Order, error) {
				return c.PlaceOrder(ctx, cartID, addressID)
			}, func(w io.Writer, o client.Order) {
				printOrders(w, []client.Order{o})
			})
		},
	}
	place.Flags().StringVar(&cartID, "cart", "", "cart ID")
	place.Flags().StringVar(&addressID, "address", "", "shipping address ID")
	_ = place.MarkFlagRequired("cart")
	_ = place.MarkFlagRequired("address")

	cancel := &cobra.Command{
		Use:   "cancel ORDER_ID",
		Short: "Cancel an order and restock its books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) (client.Order, error) {
				return c.CancelOrder(ctx, args[0])
			}, func(w io.Writer, o client.Order) {
				printOrders(w, []client.Order{o})
			})
		},
	}

	cmd.AddCommand(list, place, cancel)
	return cmd
}

func newInventoryCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "inventory", Short: "Manage stock"}

	var delta int
	adjust := &cobra.Command{
		Use:   "adjust BOOK_ID --delta N",
		Short: "Add to (positive) or take from (negative) the stock of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) (client.Inventory, error) {
				return c.AdjustInventory(ctx, args[0], delta)
			}, func(w io.Writer, inv client.Inventory) {
				fmt.Fprintf(w, "%s\tstock %d\n", inv.BookID, inv.Quantity)
			})
		},
	}
	adjust.Flags().IntVar(&delta, "delta", 0, "stock change")
	_ = adjust.MarkFlagRequired("delta")

	cmd.AddCommand(adjust)
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bookstore-admin/bookctl/internal/client"
)

func pageFlags(cmd *cobra.Command, page *client.Page) {
	cmd.Flags().IntVar(&page.Limit, "limit", 50, "maximum number of rows, 0 for all")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "rows to skip")
}

func newAuthorsCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "authors", Short: "Manage authors"}

	var page client.Page
	list := &cobra.Command{
		Use:   "list",
		Short: "List authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) ([]client.Author, error) {
				return c.ListAuthors(ctx, page)
			}, func(w io.Writer, authors []client.Author) {
				fmt.Fprintln(w, "ID\tNAME")
				for _, a := range authors {
					fmt.Fprintf(w, "%s\t%s %s\n", a.ID, a.FirstName, a.LastName)
				}
			})
		},
	}
	pageFlags(list, &page)

	create := &cobra.Command{
		Use:   "create FIRST_NAME LAST_NAME",
		Short: "Create an author",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.AuthorInput{FirstName: args[0], LastName: args[1]}
			return call(cmd, opts, func(ctx context.Context, c *client.Client) (client.Author, error) {
				return c.CreateAuthor(ctx, in)
			}, func(w io.Writer, a client.Author) {
				fmt.Fprintf(w, "created author %s\n", a.ID)
			})
		},
	}

	cmd.AddCommand(list, create)
	return cmd
}

func newCategoriesCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Manage categories"}

	var page client.Page
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) ([]client.Category, error) {
				return c.ListCategories(ctx, page)
			}, func(w io.Writer, cats []client.Category) {
				fmt.Fprintln(w, "ID\tNAME")
				for _, c := range cats {
					fmt.Fprintf(w, "%s\t%s\n", c.ID, c.Name)
				}
			})
		},
	}
	pageFlags(list, &page)

	create := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) (client.Category, error) {
				return c.CreateCategory(ctx, args[0])
			}, func(w io.Writer, c client.Category) {
				fmt.Fprintf(w, "created category %s\n", c.ID)
			})
		},
	}

	cmd.AddCommand(list, create)
	return cmd
}

func newBooksCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "books", Short: "Manage books"}

	var filter client.BookFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, func(ctx context.Context, c *client.Client) ([]client.Book, error) {
				return c.ListBooks(ctx, filter)
			}, func(w io.Writer, books []client.Book) {
				fmt.Fprintln(w, "ID\tISBN\tPRICE\tTITLE")
				for _, b := range books {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.ID, b.ISBN, cents(b.PriceCents), b.Title)
				}
			})
		},
	}
	list.Flags().StringVar(&filter.CategoryID, "category", "", "only books in this category")
	list.Flags().StringVar(&filter.AuthorID, "author", "", "only books by this author")
	pageFlags(list, &filter.Page)

	var (
		in       client.BookInput
		category string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a book with its authors and initial stock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				in.CategoryID = &category
			}
			return call(cmd, opts, func(ctx context.Context, c *client.Client) (client.BookDetail, error) {
				return c.CreateBook(ctx, in)
			}, func(w io.Writer, b client.BookDetail) {
				names := make([]string, 0, len(b.Authors))
				for _, a := range b.Authors {
					names = append(names, a.FirstName+" "+a.LastName)
				}
				fmt.Fprintf(w, "created book %s\n", b.ID)
				fmt.Fprintf(w, "authors:\t%s\n", strings.Join(names, ", "))
				fmt.Fprintf(w, "stock:\t%d\n", b.Stock)
			})
		},
	}
	create.Flags().StringVar(&in.Title, "title", "", "title")
	create.Flags().StringVar(&in.ISBN, "isbn", "", "ISBN-10 or ISBN-13")
	create.Flags().StringVar(&in.Description, "description", "", "description")
	create.Flags().Int64Var(&in.PriceCents, "price-cents", 0, "price in cents")
	create.Flags().StringSliceVar(&in.AuthorIDs, "author", nil, "author ID, repeatable")
	create.Flags().StringVar(&category, "category", "", "category ID")
	create.Flags().IntVar(&in.InitialStock, "stock", 0, "initial stock")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("isbn")
	_ = create.MarkFlagRequired("author")

	cmd.AddCommand(list, create)
	return cmd
}

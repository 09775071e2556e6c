// internal/cli/wishlist.go
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newWishlistCommand shows and mutates the wishlist
func newWishlistCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Show and manage the wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Wishlist.Load(cmd.Context()); err != nil {
				return err
			}

			products := app.Wishlist.Products()
			if len(products) == 0 {
				fmt.Fprintln(app.Out, "Your wishlist is empty.")
				return nil
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tPRICE")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%.2f\n", p.ID, p.Title, p.Price)
			}
			w.Flush()
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add a product to the wishlist, or remove it when present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Wishlist.Load(cmd.Context()); err != nil {
				return err
			}
			return app.Wishlist.Toggle(cmd.Context(), args[0])
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Wishlist.Remove(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(toggle, remove)
	return cmd
}

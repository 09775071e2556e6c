// internal/cli/cart.go
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newCartCommand shows and mutates the cart
func newCartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and manage the shopping cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := app.Cart.Load(cmd.Context())
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}

			snapshot := app.Cart.Snapshot()
			if len(snapshot.Items) == 0 {
				fmt.Fprintln(app.Out, "Your cart is empty.")
				return nil
			}

			w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tQTY\tSUBTOTAL")
			for _, item := range snapshot.Items {
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\n",
					item.Product.ID, item.Product.Title, item.Quantity, item.Subtotal)
			}
			w.Flush()
			fmt.Fprintf(app.Out, "%d item(s), total %.2f\n", snapshot.Count, snapshot.Total)
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, _ := cmd.Flags().GetInt("quantity")
			result := app.Cart.Add(cmd.Context(), args[0], quantity)
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}
	add.Flags().Int("quantity", 1, "quantity to add")

	update := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, _ := cmd.Flags().GetInt("quantity")

			// Quantity zero means removal; that routing happens here,
			// not in the store
			if quantity == 0 {
				result := app.Cart.Remove(cmd.Context(), args[0])
				if !result.OK {
					return fmt.Errorf("%s", result.Message)
				}
				return nil
			}

			result := app.Cart.UpdateQuantity(cmd.Context(), args[0], quantity)
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}
	update.Flags().Int("quantity", 1, "new quantity (0 removes the line)")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := app.Cart.Remove(cmd.Context(), args[0])
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart (best-effort, one removal per line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if result := app.Cart.Load(cmd.Context()); !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			result := app.Cart.Clear(cmd.Context())
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}

	cmd.AddCommand(add, update, remove, clear)
	return cmd
}

// internal/cli/review.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newReviewCommand submits a product review
func newReviewCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <product-id>",
		Short: "Write a review for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, _ := cmd.Flags().GetInt("rating")
			comment, _ := cmd.Flags().GetString("comment")

			result := app.Reviews.Submit(cmd.Context(), args[0], rating, comment)
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			return nil
		},
	}

	cmd.Flags().Int("rating", 5, "star rating, 1 to 5")
	cmd.Flags().String("comment", "", "review text")
	return cmd
}

// newCheckoutCommand is the purchase stub; payment processing is not
// implemented
func newCheckoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Proceed to checkout",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.Out, "Checkout is not available yet.")
			return nil
		},
	}
}

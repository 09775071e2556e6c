// internal/cli/catalog.go
package cli

import (
	"fmt"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gameall123/sito/internal/domain/catalog"
)

// newBrowseCommand lists the catalog with filters and sorting
func newBrowseCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog",
		Long: `Browse the catalog with optional filters and sorting.

Category, platform and genre narrow the query server-side; search and
price bounds are applied client-side. Sort modes: title (default),
price_asc, price_desc, rating, newest.

A saved filter query string (as printed by --share) can be replayed
with --filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if featured, _ := cmd.Flags().GetBool("featured"); featured {
				limit, _ := cmd.Flags().GetInt("limit")
				printProducts(app, app.Catalog.Featured(cmd.Context(), limit))
				return nil
			}

			criteria, err := criteriaFromFlags(cmd)
			if err != nil {
				return err
			}

			printProducts(app, app.Catalog.Query(cmd.Context(), criteria))

			if share, _ := cmd.Flags().GetBool("share"); share {
				fmt.Fprintf(app.Out, "filters: %s\n", criteria.Values().Encode())
			}
			return nil
		},
	}

	cmd.Flags().String("search", "", "search term matched against title and description")
	cmd.Flags().String("category", "", "category ID")
	cmd.Flags().String("platform", "", "platform (PC, PlayStation, Xbox, Nintendo)")
	cmd.Flags().String("genre", "", "genre (Action, RPG, ...)")
	cmd.Flags().Float64("price-min", 0, "minimum price")
	cmd.Flags().Float64("price-max", 0, "maximum price")
	cmd.Flags().String("sort", "title", "sort mode")
	cmd.Flags().String("filters", "", "replay a saved filter query string")
	cmd.Flags().Bool("share", false, "print the shareable filter query string")
	cmd.Flags().Bool("featured", false, "show only the featured selection")
	cmd.Flags().Int("limit", 8, "result limit for --featured")
	return cmd
}

// printProducts renders the product table
func printProducts(app *App, products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(app.Out, "No products found.")
		return
	}

	w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tRATING\tIN STOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.1f (%d)\t%d\n",
			p.ID, p.Title, p.Price, p.AverageRating, p.TotalReviews, p.InStock)
	}
	w.Flush()
	fmt.Fprintf(app.Out, "%d result(s)\n", len(products))
}

// criteriaFromFlags builds the typed filter criteria from the
// loosely-typed command line, validating at the boundary
func criteriaFromFlags(cmd *cobra.Command) (catalog.Criteria, error) {
	if raw, _ := cmd.Flags().GetString("filters"); raw != "" {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return catalog.Criteria{}, fmt.Errorf("invalid filter query string: %w", err)
		}
		return catalog.ParseCriteria(values)
	}

	sortFlag, _ := cmd.Flags().GetString("sort")
	sort, err := catalog.ParseSortMode(sortFlag)
	if err != nil {
		return catalog.Criteria{}, err
	}

	criteria := catalog.Criteria{Sort: sort}
	criteria.Search, _ = cmd.Flags().GetString("search")
	criteria.Category, _ = cmd.Flags().GetString("category")
	criteria.Platform, _ = cmd.Flags().GetString("platform")
	criteria.Genre, _ = cmd.Flags().GetString("genre")

	if cmd.Flags().Changed("price-min") {
		min, _ := cmd.Flags().GetFloat64("price-min")
		criteria.PriceMin = &min
	}
	if cmd.Flags().Changed("price-max") {
		max, _ := cmd.Flags().GetFloat64("price-max")
		criteria.PriceMax = &max
	}

	return criteria, nil
}

// newProductCommand shows a product with its reviews
func newProductCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a product and its reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := app.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(app.Out, "%s\n", product.Title)
			fmt.Fprintf(app.Out, "Price:     %.2f\n", product.Price)
			fmt.Fprintf(app.Out, "Developer: %s\n", product.Developer)
			fmt.Fprintf(app.Out, "Publisher: %s\n", product.Publisher)
			fmt.Fprintf(app.Out, "Platforms: %v\n", product.Platform)
			fmt.Fprintf(app.Out, "Genres:    %v\n", product.Genre)
			fmt.Fprintf(app.Out, "Released:  %s\n", product.ReleaseDate.Format("2006-01-02"))
			fmt.Fprintf(app.Out, "In stock:  %d\n", product.InStock)
			fmt.Fprintf(app.Out, "\n%s\n", product.Description)

			reviews := app.Reviews.List(cmd.Context(), product.ID)
			if len(reviews) > 0 {
				fmt.Fprintf(app.Out, "\nReviews (%d):\n", len(reviews))
				for _, r := range reviews {
					fmt.Fprintf(app.Out, "  [%d/5] %s\n", r.Rating, r.Comment)
				}
			}
			return nil
		},
	}
}

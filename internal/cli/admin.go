// internal/cli/admin.go
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gameall123/sito/internal/domain/catalog"
)

// newAdminCommand groups the catalog administration commands. Every
// subcommand is gated on the admin role before any network call.
func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Catalog administration (admin role required)",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !app.Session.IsAdmin() {
				return fmt.Errorf("admin access required")
			}
			return nil
		},
	}

	product := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}
	product.AddCommand(
		newAdminProductCreateCommand(app),
		newAdminProductUpdateCommand(app),
		newAdminProductDeleteCommand(app),
	)

	category := &cobra.Command{
		Use:   "category",
		Short: "Manage product categories",
	}
	category.AddCommand(newAdminCategoryCreateCommand(app))

	cmd.AddCommand(product, category)
	return cmd
}

// productFlags declares the shared product form flags
func productFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "product title")
	cmd.Flags().String("description", "", "product description")
	cmd.Flags().Float64("price", 0, "price")
	cmd.Flags().String("image-url", "", "image URL")
	cmd.Flags().String("category", "", "category ID")
	cmd.Flags().String("platforms", "", "comma-separated platforms")
	cmd.Flags().String("genres", "", "comma-separated genres")
	cmd.Flags().String("rating", "", "age rating (E, T, M, ...)")
	cmd.Flags().String("release-date", "", "release date (YYYY-MM-DD)")
	cmd.Flags().String("developer", "", "developer")
	cmd.Flags().String("publisher", "", "publisher")
	cmd.Flags().Int("stock", 0, "units in stock")
	cmd.Flags().Bool("featured", false, "feature on the home page")
}

// productFromFlags validates the form and builds the product record
func productFromFlags(cmd *cobra.Command) (catalog.Product, error) {
	title, _ := cmd.Flags().GetString("title")
	if strings.TrimSpace(title) == "" {
		return catalog.Product{}, fmt.Errorf("--title is required")
	}
	price, _ := cmd.Flags().GetFloat64("price")
	if price < 0 {
		return catalog.Product{}, fmt.Errorf("--price cannot be negative")
	}

	product := catalog.Product{
		Title: title,
		Price: price,
	}
	product.Description, _ = cmd.Flags().GetString("description")
	product.ImageURL, _ = cmd.Flags().GetString("image-url")
	product.CategoryID, _ = cmd.Flags().GetString("category")
	product.Rating, _ = cmd.Flags().GetString("rating")
	product.Developer, _ = cmd.Flags().GetString("developer")
	product.Publisher, _ = cmd.Flags().GetString("publisher")
	product.InStock, _ = cmd.Flags().GetInt("stock")
	product.Featured, _ = cmd.Flags().GetBool("featured")

	if raw, _ := cmd.Flags().GetString("platforms"); raw != "" {
		product.Platform = splitList(raw)
	}
	if raw, _ := cmd.Flags().GetString("genres"); raw != "" {
		product.Genre = splitList(raw)
	}
	if raw, _ := cmd.Flags().GetString("release-date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return catalog.Product{}, fmt.Errorf("invalid --release-date %q", raw)
		}
		product.ReleaseDate = date
	}

	return product, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func newAdminProductCreateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := productFromFlags(cmd)
			if err != nil {
				return err
			}

			created, err := app.Client.CreateProduct(cmd.Context(), product)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Created product %s (%s)\n", created.Title, created.ID)
			return nil
		},
	}
	productFlags(cmd)
	return cmd
}

func newAdminProductUpdateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := productFromFlags(cmd)
			if err != nil {
				return err
			}

			updated, err := app.Client.UpdateProduct(cmd.Context(), args[0], product)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Updated product %s\n", updated.ID)
			return nil
		},
	}
	productFlags(cmd)
	return cmd
}

func newAdminProductDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Client.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Deleted product %s\n", args[0])
			return nil
		},
	}
}

func newAdminCategoryCreateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}

			category := catalog.Category{Name: name}
			category.Description, _ = cmd.Flags().GetString("description")
			category.ImageURL, _ = cmd.Flags().GetString("image-url")

			created, err := app.Client.CreateCategory(cmd.Context(), category)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.Out, "Created category %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}
	cmd.Flags().String("name", "", "category name")
	cmd.Flags().String("description", "", "category description")
	cmd.Flags().String("image-url", "", "image URL")
	return cmd
}

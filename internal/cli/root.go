// internal/cli/root.go
package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gameall123/sito/internal/api"
	"github.com/gameall123/sito/internal/config"
	"github.com/gameall123/sito/internal/domain/cart"
	"github.com/gameall123/sito/internal/domain/catalog"
	"github.com/gameall123/sito/internal/domain/review"
	"github.com/gameall123/sito/internal/domain/session"
	"github.com/gameall123/sito/internal/domain/wishlist"
	"github.com/gameall123/sito/internal/notify"
)

// App owns the application state containers and hands them to the
// commands. There are no package-level singletons; everything is
// constructed here and passed down.
type App struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Notifier notify.Notifier
	Client   *api.Client
	Session  *session.Store
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Catalog  *catalog.Service
	Reviews  *review.Service
	Out      io.Writer
}

// NewApp wires the client, stores and services together and restores
// a persisted session if one exists
func NewApp(cfg *config.Config, logger *logrus.Logger, out io.Writer) (*App, error) {
	notifier := notify.NewWriter(out)
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, logger)

	sessionStore := session.NewStore(client, cfg.Session.File, notifier, logger)
	cartStore := cart.NewService(client, sessionStore, notifier, logger)
	wishlistStore := wishlist.NewService(client, sessionStore, notifier, logger)
	catalogService := catalog.NewService(client, notifier, logger)
	reviewService := review.NewService(client, sessionStore, notifier, logger)

	// Mirror the session lifecycle into the cart and wishlist: load
	// on the authenticated transition, reset on logout/invalidation
	sessionStore.OnChange(func(authenticated bool) {
		if authenticated {
			cartStore.Load(context.Background())
			return
		}
		cartStore.Reset()
		wishlistStore.Reset()
	})

	if err := sessionStore.Restore(); err != nil {
		logger.WithError(err).Warn("Failed to restore session")
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Notifier: notifier,
		Client:   client,
		Session:  sessionStore,
		Cart:     cartStore,
		Wishlist: wishlistStore,
		Catalog:  catalogService,
		Reviews:  reviewService,
		Out:      out,
	}, nil
}

// NewRootCommand builds the sito command tree
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "sito",
		Short:         "Storefront client for the games catalog",
		Long:          "sito is a storefront client for the games catalog: browse and search products, manage your cart and wishlist, write reviews and administer the catalog.",
		Version:       app.Config.App.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newLoginCommand(app),
		newRegisterCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
		newBrowseCommand(app),
		newProductCommand(app),
		newCartCommand(app),
		newWishlistCommand(app),
		newReviewCommand(app),
		newAdminCommand(app),
		newCheckoutCommand(app),
	)

	return root
}

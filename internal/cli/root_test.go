package cli

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameall123/sito/internal/api/apitest"
	"github.com/gameall123/sito/internal/config"
	"github.com/gameall123/sito/internal/domain/catalog"
)

// testHarness wires a fully assembled app against the in-memory
// backend, as main does against the real one.
type testHarness struct {
	app     *App
	backend *apitest.Server
	out     *bytes.Buffer
	cfg     *config.Config
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	backend := apitest.NewServer()
	server := httptest.NewServer(backend.Handler())
	t.Cleanup(server.Close)

	cfg := &config.Config{
		App:     config.AppConfig{Name: "Sito Storefront", Version: "test", Environment: "development"},
		API:     config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		Session: config.SessionConfig{File: filepath.Join(t.TempDir(), "session.json")},
		Logging: config.LoggingConfig{Level: "panic", Format: "text"},
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	out := &bytes.Buffer{}
	app, err := NewApp(cfg, logger, out)
	require.NoError(t, err)

	return &testHarness{app: app, backend: backend, out: out, cfg: cfg}
}

func (h *testHarness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.out.Reset()
	root := NewRootCommand(h.app)
	root.SetOut(h.out)
	root.SetErr(h.out)
	root.SetArgs(args)
	return root.Execute()
}

func TestLoginLogoutFlow(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)

	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))
	assert.Contains(t, h.out.String(), "Signed in as alice")

	require.NoError(t, h.run(t, "whoami"))
	assert.Contains(t, h.out.String(), "Username: alice")

	require.NoError(t, h.run(t, "logout"))
	require.NoError(t, h.run(t, "whoami"))
	assert.Contains(t, h.out.String(), "Not signed in.")
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)

	err := h.run(t, "login", "--username", "alice", "--password", "nope")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect username or password")
}

func TestRegisterFlow(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "register",
		"--username", "bob",
		"--email", "bob@example.com",
		"--full-name", "Bob Builder",
		"--password", "secret1",
		"--confirm-password", "secret1",
	))
	assert.Contains(t, h.out.String(), "Account created")

	// Registration does not sign in.
	require.NoError(t, h.run(t, "whoami"))
	assert.Contains(t, h.out.String(), "Not signed in.")

	require.NoError(t, h.run(t, "login", "--username", "bob", "--password", "secret1"))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "register",
		"--username", "bob",
		"--email", "bob@example.com",
		"--full-name", "Bob Builder",
		"--password", "secret1",
		"--confirm-password", "different",
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwords do not match")
}

func TestBrowse(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed(
		catalog.Product{ID: "p1", Title: "Halo", Price: 30, CategoryID: "shooter"},
		catalog.Product{ID: "p2", Title: "Zelda", Price: 60, CategoryID: "adventure"},
		catalog.Product{ID: "p3", Title: "Call of Duty", Price: 50, CategoryID: "shooter"},
	)

	require.NoError(t, h.run(t, "browse"))
	// Default ordering is title ascending.
	output := h.out.String()
	assert.Less(t, indexOf(output, "Call of Duty"), indexOf(output, "Halo"))
	assert.Less(t, indexOf(output, "Halo"), indexOf(output, "Zelda"))

	require.NoError(t, h.run(t, "browse", "--search", "al"))
	output = h.out.String()
	assert.Contains(t, output, "Halo")
	assert.Contains(t, output, "Call of Duty")
	assert.NotContains(t, output, "Zelda")

	require.NoError(t, h.run(t, "browse", "--category", "shooter", "--sort", "price_desc"))
	output = h.out.String()
	assert.Less(t, indexOf(output, "Call of Duty"), indexOf(output, "Halo"))
	assert.NotContains(t, output, "Zelda")
}

func TestBrowse_Featured(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed(
		catalog.Product{ID: "p1", Title: "Halo", Price: 30, Featured: true},
		catalog.Product{ID: "p2", Title: "Zelda", Price: 60},
	)

	require.NoError(t, h.run(t, "browse", "--featured"))
	assert.Contains(t, h.out.String(), "Halo")
	assert.NotContains(t, h.out.String(), "Zelda")
}

func TestBrowse_ShareableQuery(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed(catalog.Product{ID: "p1", Title: "Halo", Price: 30})

	require.NoError(t, h.run(t, "browse", "--search", "halo", "--sort", "price_asc", "--share"))
	assert.Contains(t, h.out.String(), "search=halo")
	assert.Contains(t, h.out.String(), "sortBy=price_asc")

	// The shared query replays through --filters.
	require.NoError(t, h.run(t, "browse", "--filters", "search=halo&sortBy=price_asc"))
	assert.Contains(t, h.out.String(), "Halo")
}

func TestCartFlow(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)
	h.backend.Seed(
		catalog.Product{ID: "p1", Title: "Halo", Price: 30},
		catalog.Product{ID: "p2", Title: "Zelda", Price: 60},
	)
	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))

	require.NoError(t, h.run(t, "cart", "add", "p1", "--quantity", "2"))
	require.NoError(t, h.run(t, "cart", "add", "p2"))

	require.NoError(t, h.run(t, "cart"))
	output := h.out.String()
	assert.Contains(t, output, "Halo")
	assert.Contains(t, output, "Zelda")
	assert.Contains(t, output, "3 item(s), total 120.00")

	// Quantity zero routes to removal.
	require.NoError(t, h.run(t, "cart", "update", "p1", "--quantity", "0"))
	require.NoError(t, h.run(t, "cart"))
	assert.NotContains(t, h.out.String(), "Halo")

	require.NoError(t, h.run(t, "cart", "clear"))
	require.NoError(t, h.run(t, "cart"))
	assert.Contains(t, h.out.String(), "Your cart is empty.")
}

func TestCart_RequiresLogin(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed(catalog.Product{ID: "p1", Title: "Halo", Price: 30})
	before := h.backend.RequestCount()

	err := h.run(t, "cart", "add", "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication required")
	assert.Equal(t, before, h.backend.RequestCount())
}

func TestLogoutResetsCart(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)
	h.backend.Seed(catalog.Product{ID: "p1", Title: "Halo", Price: 30})
	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))
	require.NoError(t, h.run(t, "cart", "add", "p1"))

	require.NoError(t, h.run(t, "logout"))

	snapshot := h.app.Cart.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.Count)
}

func TestSessionRestoreAcrossApps(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)
	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))

	// A second app against the same session file, as on restart.
	// Restoring itself makes no auth round trip; the cart load
	// triggered by the authenticated transition is the only request.
	before := h.backend.RequestCount()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	out := &bytes.Buffer{}
	restored, err := NewApp(h.cfg, logger, out)
	require.NoError(t, err)

	assert.True(t, restored.Session.IsAuthenticated())
	assert.Equal(t, "alice", restored.Session.User().Username)
	assert.Equal(t, before+1, h.backend.RequestCount())
}

func TestWishlistFlow(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)
	h.backend.Seed(catalog.Product{ID: "p1", Title: "Halo", Price: 30})
	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))

	require.NoError(t, h.run(t, "wishlist", "toggle", "p1"))
	require.NoError(t, h.run(t, "wishlist"))
	assert.Contains(t, h.out.String(), "Halo")

	require.NoError(t, h.run(t, "wishlist", "toggle", "p1"))
	require.NoError(t, h.run(t, "wishlist"))
	assert.Contains(t, h.out.String(), "Your wishlist is empty.")
}

func TestReviewFlow(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)
	h.backend.Seed(catalog.Product{ID: "p1", Title: "Halo", Price: 30})
	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))

	require.NoError(t, h.run(t, "review", "p1", "--rating", "5", "--comment", "Masterpiece"))

	require.NoError(t, h.run(t, "product", "p1"))
	output := h.out.String()
	assert.Contains(t, output, "Masterpiece")

	err := h.run(t, "review", "p1", "--rating", "4", "--comment", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You have already reviewed this product")
}

func TestAdminCommands(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("root", "secret", true)
	require.NoError(t, h.run(t, "login", "--username", "root", "--password", "secret"))

	require.NoError(t, h.run(t, "admin", "product", "create",
		"--title", "New Game",
		"--price", "49.99",
		"--category", "action",
	))
	assert.Contains(t, h.out.String(), "New Game")

	require.NoError(t, h.run(t, "browse"))
	assert.Contains(t, h.out.String(), "New Game")
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	h := newHarness(t)
	h.backend.CreateUser("alice", "secret", false)
	require.NoError(t, h.run(t, "login", "--username", "alice", "--password", "secret"))
	before := h.backend.RequestCount()

	err := h.run(t, "admin", "product", "create", "--title", "Nope", "--price", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin access required")
	assert.Equal(t, before, h.backend.RequestCount())
}

func indexOf(haystack, needle string) int {
	return bytes.Index([]byte(haystack), []byte(needle))
}

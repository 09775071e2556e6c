package cart

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameall123/sito/internal/domain/catalog"
	"github.com/gameall123/sito/internal/notify"
	"github.com/gameall123/sito/internal/pkg/apierror"
)

type fakeAuth struct {
	authenticated bool
	invalidated   int
}

func (f *fakeAuth) IsAuthenticated() bool { return f.authenticated }
func (f *fakeAuth) Invalidate() {
	f.invalidated++
	f.authenticated = false
}

// fakeCartAPI keeps a server-side cart so reloads observe the effect
// of earlier mutations, like the real backend does.
type fakeCartAPI struct {
	order    []string
	items    map[string]Item
	calls    []string
	getErr   error
	failOn   map[string]error
	removeds []string
}

func newFakeCartAPI() *fakeCartAPI {
	return &fakeCartAPI{
		items:  make(map[string]Item),
		failOn: make(map[string]error),
	}
}

func (f *fakeCartAPI) seed(products ...Item) {
	for _, item := range products {
		f.order = append(f.order, item.Product.ID)
		f.items[item.Product.ID] = item
	}
}

func (f *fakeCartAPI) GetCart(_ context.Context) (*Payload, error) {
	f.calls = append(f.calls, "get")
	if f.getErr != nil {
		return nil, f.getErr
	}
	payload := &Payload{Items: []Item{}}
	for _, id := range f.order {
		item, exists := f.items[id]
		if !exists {
			continue
		}
		payload.Items = append(payload.Items, item)
		payload.Total += item.Subtotal
	}
	return payload, nil
}

func (f *fakeCartAPI) AddCartItem(_ context.Context, productID string, quantity int) error {
	f.calls = append(f.calls, "add")
	if err := f.failOn["add "+productID]; err != nil {
		return err
	}
	item, exists := f.items[productID]
	if !exists {
		item = Item{Product: catalog.Product{ID: productID, Price: 10}}
		f.order = append(f.order, productID)
	}
	item.Quantity += quantity
	item.Subtotal = float64(item.Quantity) * item.Product.Price
	f.items[productID] = item
	return nil
}

func (f *fakeCartAPI) UpdateCartItem(_ context.Context, productID string, quantity int) error {
	f.calls = append(f.calls, "update")
	if err := f.failOn["update "+productID]; err != nil {
		return err
	}
	item := f.items[productID]
	item.Quantity = quantity
	item.Subtotal = float64(quantity) * item.Product.Price
	f.items[productID] = item
	return nil
}

func (f *fakeCartAPI) RemoveCartItem(_ context.Context, productID string) error {
	f.calls = append(f.calls, "remove")
	if err := f.failOn["remove "+productID]; err != nil {
		return err
	}
	f.removeds = append(f.removeds, productID)
	delete(f.items, productID)
	return nil
}

func newTestService(api *fakeCartAPI, auth *fakeAuth) (*Service, *notify.Recorder) {
	recorder := notify.NewRecorder()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(api, auth, recorder, logger), recorder
}

func item(id string, price float64, quantity int) Item {
	return Item{
		Product:  catalog.Product{ID: id, Title: "Game " + id, Price: price},
		Quantity: quantity,
		Subtotal: price * float64(quantity),
	}
}

func TestLoad_Unauthenticated(t *testing.T) {
	api := newFakeCartAPI()
	service, _ := newTestService(api, &fakeAuth{authenticated: false})

	result := service.Load(context.Background())

	require.True(t, result.OK)
	assert.Empty(t, api.calls, "unauthenticated load must not touch the network")
	snapshot := service.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.Equal(t, StateUnauthenticated, snapshot.State)
}

func TestLoad_DerivesCountAndTotal(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 20, 2), item("p2", 25, 1))
	service, _ := newTestService(api, &fakeAuth{authenticated: true})

	require.True(t, service.Load(context.Background()).OK)

	snapshot := service.Snapshot()
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, 3, snapshot.Count)
	assert.Equal(t, 65.0, snapshot.Total)
	assert.Equal(t, StateReady, snapshot.State)
}

func TestAdd_UnauthenticatedFailsFast(t *testing.T) {
	api := newFakeCartAPI()
	service, recorder := newTestService(api, &fakeAuth{authenticated: false})

	result := service.Add(context.Background(), "p1", 1)

	require.False(t, result.OK)
	assert.Equal(t, "authentication required", result.Message)
	assert.Empty(t, api.calls)
	require.Len(t, recorder.Errors, 1)
	assert.Equal(t, "You must be signed in to add products to the cart", recorder.Errors[0])
}

func TestAdd_ReloadsAfterWrite(t *testing.T) {
	api := newFakeCartAPI()
	service, recorder := newTestService(api, &fakeAuth{authenticated: true})

	result := service.Add(context.Background(), "p1", 2)

	require.True(t, result.OK)
	assert.Equal(t, []string{"add", "get"}, api.calls)
	snapshot := service.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 2, snapshot.Count)
	assert.Equal(t, 20.0, snapshot.Total)
	require.Len(t, recorder.Successes, 1)
	assert.Equal(t, "Product added to cart", recorder.Successes[0])
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	api := newFakeCartAPI()
	service, _ := newTestService(api, &fakeAuth{authenticated: true})

	result := service.Add(context.Background(), "p1", 0)

	require.False(t, result.OK)
	assert.Equal(t, "quantity must be at least 1", result.Message)
	assert.Empty(t, api.calls)
}

func TestUpdateQuantity(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 10, 1))
	service, _ := newTestService(api, &fakeAuth{authenticated: true})
	require.True(t, service.Load(context.Background()).OK)

	result := service.UpdateQuantity(context.Background(), "p1", 3)

	require.True(t, result.OK)
	snapshot := service.Snapshot()
	assert.Equal(t, 3, snapshot.Count)
	assert.Equal(t, 30.0, snapshot.Total)
}

func TestUpdateQuantity_RejectsZero(t *testing.T) {
	api := newFakeCartAPI()
	service, _ := newTestService(api, &fakeAuth{authenticated: true})

	result := service.UpdateQuantity(context.Background(), "p1", 0)

	require.False(t, result.OK)
	assert.Empty(t, api.calls)
}

func TestRemove(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 10, 1), item("p2", 15, 1))
	service, _ := newTestService(api, &fakeAuth{authenticated: true})
	require.True(t, service.Load(context.Background()).OK)

	result := service.Remove(context.Background(), "p1")

	require.True(t, result.OK)
	snapshot := service.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "p2", snapshot.Items[0].Product.ID)
	assert.Equal(t, 15.0, snapshot.Total)
}

func TestClear(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 10, 1), item("p2", 15, 2))
	service, recorder := newTestService(api, &fakeAuth{authenticated: true})
	require.True(t, service.Load(context.Background()).OK)

	result := service.Clear(context.Background())

	require.True(t, result.OK)
	snapshot := service.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.Count)
	assert.Zero(t, snapshot.Total)
	require.Len(t, recorder.Successes, 1)
	assert.Equal(t, "Cart emptied", recorder.Successes[0])
}

func TestClear_StopsAtFirstFailureAndReloads(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 10, 1), item("p2", 15, 1), item("p3", 20, 1))
	api.failOn["remove p2"] = &apierror.Error{StatusCode: 500, Detail: "Internal server error"}
	service, recorder := newTestService(api, &fakeAuth{authenticated: true})
	require.True(t, service.Load(context.Background()).OK)

	result := service.Clear(context.Background())

	require.False(t, result.OK)
	// Only the first line was removed before the loop aborted.
	assert.Equal(t, []string{"p1"}, api.removeds)
	// The reload still ran: the snapshot reflects the partial state.
	snapshot := service.Snapshot()
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, "p2", snapshot.Items[0].Product.ID)
	assert.Equal(t, "p3", snapshot.Items[1].Product.ID)
	assert.Equal(t, 35.0, snapshot.Total)
	assert.Equal(t, StateReady, snapshot.State)
	require.NotEmpty(t, recorder.Errors)
	assert.Equal(t, "Internal server error", recorder.Errors[0])
}

func TestLoad_UnauthorizedInvalidatesSession(t *testing.T) {
	api := newFakeCartAPI()
	api.getErr = &apierror.Error{StatusCode: 401, Detail: "Could not validate credentials"}
	auth := &fakeAuth{authenticated: true}
	service, _ := newTestService(api, auth)

	result := service.Load(context.Background())

	require.False(t, result.OK)
	assert.Equal(t, 1, auth.invalidated)
	assert.Equal(t, StateError, service.Snapshot().State)
}

func TestAdd_ServerErrorKeepsPreviousSnapshot(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 10, 1))
	service, _ := newTestService(api, &fakeAuth{authenticated: true})
	require.True(t, service.Load(context.Background()).OK)

	api.failOn["add p2"] = &apierror.Error{StatusCode: 500, Detail: "Internal server error"}
	result := service.Add(context.Background(), "p2", 1)

	require.False(t, result.OK)
	snapshot := service.Snapshot()
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "p1", snapshot.Items[0].Product.ID)
}

func TestReset(t *testing.T) {
	api := newFakeCartAPI()
	api.seed(item("p1", 10, 2))
	service, _ := newTestService(api, &fakeAuth{authenticated: true})
	require.True(t, service.Load(context.Background()).OK)

	service.Reset()

	snapshot := service.Snapshot()
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.Count)
	assert.Zero(t, snapshot.Total)
	assert.Equal(t, StateUnauthenticated, snapshot.State)
}

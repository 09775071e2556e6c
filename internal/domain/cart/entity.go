// internal/domain/cart/entity.go
package cart

import "github.com/gameall123/sito/internal/domain/catalog"

// Item is one cart line as served by the backend
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// Payload is the cart resource wire format
type Payload struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
}

// State represents the cart store lifecycle state
type State string

// Cart store states
const (
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading"
	StateReady           State = "ready"
	StateError           State = "error"
)

// Snapshot is the locally held, eventually-consistent copy of the
// server's cart. Count and Total are derived from Items and always
// change in the same observable transition.
type Snapshot struct {
	Items []Item
	Total float64
	Count int
	State State
}

// Result indicates success or failure of a cart operation without
// raising an error
type Result struct {
	OK      bool
	Message string
}

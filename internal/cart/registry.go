// Package cart holds the per-user shopping carts of the ordering bot.
//
// Carts live in memory for the lifetime of the process. A Registry is created
// once at startup and shared by reference with the conversation flow.
package cart

import (
	"sync"

	"github.com/dshills/orderbot/pkg/types"
)

// Registry maps a user ID to an ordered list of cart items
type Registry struct {
	mu    sync.RWMutex
	carts map[int64][]types.CartItem
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		carts: make(map[int64][]types.CartItem),
	}
}

// Get returns a copy of the user's cart. Unknown users get an empty slice.
func (r *Registry) Get(userID int64) []types.CartItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.carts[userID]
	out := make([]types.CartItem, len(items))
	copy(out, items)
	return out
}

// Add appends a snapshot of the product to the user's cart, creating the
// cart if needed.
func (r *Registry) Add(userID int64, product types.Product) types.CartItem {
	item := types.NewCartItem(product)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[userID] = append(r.carts[userID], item)
	return item
}

// Clear empties the user's cart
func (r *Registry) Clear(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, userID)
}

// Total returns the sum of item prices in the user's cart
func (r *Registry) Total(userID int64) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return types.Total(r.carts[userID])
}

// Len returns the number of non-empty carts held
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.carts)
}

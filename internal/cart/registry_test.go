package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/orderbot/pkg/types"
)

var (
	margarita = types.Product{ID: 1, Name: "Margarita", Price: 45000, CategoryID: 1}
	cola      = types.Product{ID: 7, Name: "Cola 0.5L", Price: 8000, CategoryID: 3}
)

func TestRegistry_GetUnknownUser(t *testing.T) {
	r := NewRegistry()

	items := r.Get(42)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), r.Total(42))
}

func TestRegistry_AddKeepsOrder(t *testing.T) {
	r := NewRegistry()

	r.Add(42, margarita)
	r.Add(42, cola)

	items := r.Get(42)
	require.Len(t, items, 2)
	assert.Equal(t, "Margarita", items[0].Name)
	assert.Equal(t, "Cola 0.5L", items[1].Name)
	assert.Equal(t, int64(53000), r.Total(42))
}

func TestRegistry_SnapshotUnaffectedByCatalogChange(t *testing.T) {
	r := NewRegistry()

	product := margarita
	r.Add(42, product)
	product.Price = 99000

	items := r.Get(42)
	require.Len(t, items, 1)
	assert.Equal(t, int64(45000), items[0].Price)
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Add(42, margarita)

	items := r.Get(42)
	items[0].Price = 1

	assert.Equal(t, int64(45000), r.Get(42)[0].Price)
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	r.Add(42, margarita)
	r.Add(7, cola)

	r.Clear(42)

	assert.Empty(t, r.Get(42))
	assert.Len(t, r.Get(7), 1)
	assert.Equal(t, 1, r.Len())

	// Adds after a clear start a fresh cart
	r.Add(42, cola)
	assert.Len(t, r.Get(42), 1)
}

func TestRegistry_CountMatchesAdds(t *testing.T) {
	r := NewRegistry()
	products := []types.Product{margarita, cola, margarita, cola, cola}

	for i, p := range products {
		r.Add(42, p)
		assert.Len(t, r.Get(42), i+1)
	}
	assert.Equal(t, int64(45000*2+8000*3), r.Total(42))
}

func TestRegistry_ConcurrentUsers(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for user := int64(1); user <= 20; user++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				r.Add(userID, cola)
			}
		}(user)
	}
	wg.Wait()

	for user := int64(1); user <= 20; user++ {
		assert.Len(t, r.Get(user), 10)
	}
}

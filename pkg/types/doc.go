// Package types provides shared type definitions for the ordering bot.
//
// # Catalog
//
// Category and Product are read from the catalog store and never modified by
// the bot. Prices are integers in the smallest currency unit (so'm):
//
//	product := types.Product{
//	    ID:         1,
//	    Name:       "Margarita",
//	    Price:      45000,
//	    CategoryID: 1,
//	}
//
// # Carts and Orders
//
// A CartItem is a denormalized snapshot of a product, so an order always
// reflects the prices the customer saw:
//
//	items := []types.CartItem{types.NewCartItem(product)}
//	order := &types.Order{
//	    UserID:        42,
//	    FullName:      "Ali Valiyev",
//	    Phone:         "+998901234567",
//	    Items:         items,
//	    Total:         types.Total(items),
//	    PaymentMethod: types.PaymentCash.Label(),
//	}
//
//	if err := order.Validate(); err != nil {
//	    return err
//	}
//
// Validate rejects orders whose Total differs from the sum of item prices.
package types

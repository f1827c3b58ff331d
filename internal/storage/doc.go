// Package storage provides SQLite-based persistence for the restaurant
// catalog and the order ledger.
//
// # Database Schema
//
// Tables:
//   - categories: menu categories (id, name)
//   - products: menu items (id, name, price, category_id, description)
//   - orders: confirmed orders with a JSON snapshot of the cart items
//   - schema_version: applied migrations
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("restaurant.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	categories, err := db.ListCategories(ctx)
//	products, err := db.ListProducts(ctx, categories[0].ID)
//
//	order := &types.Order{UserID: 42, Items: items, Total: types.Total(items)}
//	if err := db.CreateOrder(ctx, order); err != nil {
//	    return err
//	}
//	fmt.Println("order", order.ID)
//
// NewSQLiteStorage seeds the demo catalog when the categories table is empty.
// The catalog is read-only afterwards and the ledger is append-only.
//
// # Build Tags
//
// CGO Build (sqlite_cgo tag) uses github.com/mattn/go-sqlite3:
//
//	CGO_ENABLED=1 go build -tags "sqlite_cgo"
//
// Pure Go Build (default, any build without sqlite_cgo) uses modernc.org/sqlite:
//
//	CGO_ENABLED=0 go build
package storage

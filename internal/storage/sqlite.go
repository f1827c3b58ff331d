package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/orderbot/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// OpenDatabase opens a SQLite database with the pragmas storage relies on
// (WAL, foreign keys, one connection). It applies no migrations.
func OpenDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// A single connection serializes writers and keeps ":memory:" databases
	// alive for the lifetime of the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage opens the database, applies migrations and seeds the demo
// catalog when the categories table is empty.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := OpenDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx := context.Background()
	if err := ApplyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if _, err := Seed(ctx, s); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Category operations

func (s *SQLiteStorage) countCategoriesWithQuerier(ctx context.Context, q querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) CountCategories(ctx context.Context) (int, error) {
	return s.countCategoriesWithQuerier(ctx, s.querier())
}

// createCategoryWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) createCategoryWithQuerier(ctx context.Context, q querier, category *types.Category) error {
	if category.Name == "" {
		return types.ErrEmptyName
	}

	result, err := q.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, category.Name)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *types.Category) error {
	return s.createCategoryWithQuerier(ctx, s.querier(), category)
}

func (s *SQLiteStorage) listCategoriesWithQuerier(ctx context.Context, q querier) ([]types.Category, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	categories := make([]types.Category, 0)
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]types.Category, error) {
	return s.listCategoriesWithQuerier(ctx, s.querier())
}

func (s *SQLiteStorage) getCategoryWithQuerier(ctx context.Context, q querier, categoryID int64) (*types.Category, error) {
	var c types.Category
	err := q.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = ?`, categoryID).Scan(&c.ID, &c.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLiteStorage) GetCategory(ctx context.Context, categoryID int64) (*types.Category, error) {
	return s.getCategoryWithQuerier(ctx, s.querier(), categoryID)
}

// Product operations

// createProductWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) createProductWithQuerier(ctx context.Context, q querier, product *types.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO products (name, price, category_id, description)
		VALUES (?, ?, ?, ?)
	`
	result, err := q.ExecContext(ctx, query,
		product.Name, product.Price, product.CategoryID, product.Description)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	product.ID = id
	return nil
}

func (s *SQLiteStorage) CreateProduct(ctx context.Context, product *types.Product) error {
	return s.createProductWithQuerier(ctx, s.querier(), product)
}

// listProductsWithQuerier returns an empty slice for unknown categories
func (s *SQLiteStorage) listProductsWithQuerier(ctx context.Context, q querier, categoryID int64) ([]types.Product, error) {
	query := `
		SELECT id, name, price, category_id, description
		FROM products
		WHERE category_id = ?
		ORDER BY id
	`
	rows, err := q.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	products := make([]types.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *SQLiteStorage) ListProducts(ctx context.Context, categoryID int64) ([]types.Product, error) {
	return s.listProductsWithQuerier(ctx, s.querier(), categoryID)
}

func (s *SQLiteStorage) getProductWithQuerier(ctx context.Context, q querier, productID int64) (*types.Product, error) {
	query := `
		SELECT id, name, price, category_id, description
		FROM products
		WHERE id = ?
	`
	p, err := scanProduct(q.QueryRowContext(ctx, query, productID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStorage) GetProduct(ctx context.Context, productID int64) (*types.Product, error) {
	return s.getProductWithQuerier(ctx, s.querier(), productID)
}

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (*types.Product, error) {
	var p types.Product
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.CategoryID, &description); err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}

// Order operations

// createOrderWithQuerier stores the order with a JSON snapshot of its items
func (s *SQLiteStorage) createOrderWithQuerier(ctx context.Context, q querier, order *types.Order) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	if order.Status == "" {
		order.Status = types.StatusNew
	}

	query := `
		INSERT INTO orders (user_id, username, full_name, phone, items, total, payment_method, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	result, err := q.ExecContext(ctx, query,
		order.UserID, order.Username, order.FullName, order.Phone,
		string(items), order.Total, order.PaymentMethod, string(order.Status), now)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = id
	order.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateOrder(ctx context.Context, order *types.Order) error {
	return s.createOrderWithQuerier(ctx, s.querier(), order)
}

// listOrdersWithQuerier returns orders newest first; limit <= 0 means all
func (s *SQLiteStorage) listOrdersWithQuerier(ctx context.Context, q querier, limit int) ([]types.Order, error) {
	query := `
		SELECT id, user_id, username, full_name, phone, items, total,
		       payment_method, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orders := make([]types.Order, 0)
	for rows.Next() {
		var o types.Order
		var username, fullName, phone, payment, status sql.NullString
		var items string

		err := rows.Scan(
			&o.ID, &o.UserID, &username, &fullName, &phone, &items, &o.Total,
			&payment, &status, &o.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items of order %d: %w", o.ID, err)
		}

		o.Username = username.String
		o.FullName = fullName.String
		o.Phone = phone.String
		o.PaymentMethod = payment.String
		o.Status = types.OrderStatus(status.String)

		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *SQLiteStorage) ListOrders(ctx context.Context) ([]types.Order, error) {
	return s.listOrdersWithQuerier(ctx, s.querier(), 0)
}

func (s *SQLiteStorage) ListRecentOrders(ctx context.Context, limit int) ([]types.Order, error) {
	return s.listOrdersWithQuerier(ctx, s.querier(), limit)
}

func (s *SQLiteStorage) countOrdersWithQuerier(ctx context.Context, q querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) CountOrders(ctx context.Context) (int, error) {
	return s.countOrdersWithQuerier(ctx, s.querier())
}

// Transaction implementations

func (t *sqliteTx) CountCategories(ctx context.Context) (int, error) {
	return t.storage.countCategoriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) CreateCategory(ctx context.Context, category *types.Category) error {
	return t.storage.createCategoryWithQuerier(ctx, t.querier(), category)
}

func (t *sqliteTx) ListCategories(ctx context.Context) ([]types.Category, error) {
	return t.storage.listCategoriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) GetCategory(ctx context.Context, categoryID int64) (*types.Category, error) {
	return t.storage.getCategoryWithQuerier(ctx, t.querier(), categoryID)
}

func (t *sqliteTx) CreateProduct(ctx context.Context, product *types.Product) error {
	return t.storage.createProductWithQuerier(ctx, t.querier(), product)
}

func (t *sqliteTx) ListProducts(ctx context.Context, categoryID int64) ([]types.Product, error) {
	return t.storage.listProductsWithQuerier(ctx, t.querier(), categoryID)
}

func (t *sqliteTx) GetProduct(ctx context.Context, productID int64) (*types.Product, error) {
	return t.storage.getProductWithQuerier(ctx, t.querier(), productID)
}

func (t *sqliteTx) CreateOrder(ctx context.Context, order *types.Order) error {
	return t.storage.createOrderWithQuerier(ctx, t.querier(), order)
}

func (t *sqliteTx) ListOrders(ctx context.Context) ([]types.Order, error) {
	return t.storage.listOrdersWithQuerier(ctx, t.querier(), 0)
}

func (t *sqliteTx) ListRecentOrders(ctx context.Context, limit int) ([]types.Order, error) {
	return t.storage.listOrdersWithQuerier(ctx, t.querier(), limit)
}

func (t *sqliteTx) CountOrders(ctx context.Context) (int, error) {
	return t.storage.countOrdersWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	// SQLite does not support true nested transactions
	return nil, errors.New("nested transactions not supported")
}

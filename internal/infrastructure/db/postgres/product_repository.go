package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tabaum/storefront/internal/catalog"
	"github.com/tabaum/storefront/internal/core/domain"
	"github.com/tabaum/storefront/internal/core/ports"
)

const createProductsTable = `
	CREATE TABLE IF NOT EXISTS products (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		price       NUMERIC(10,2) NOT NULL CHECK (price >= 0),
		category    TEXT NOT NULL,
		image       TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductRepository implements ports.ProductRepository using PostgreSQL.
type ProductRepository struct {
	db   DB
	seed []domain.Product
}

// NewProductRepository seeds an empty table with the built-in catalog.
func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db, seed: catalog.Default().All()}
}

// List ensures the table exists before querying it. The table is created
// and seeded on demand so the endpoint works against a fresh database.
func (r *ProductRepository) List(ctx context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	query, args := buildListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var (
			p     domain.Product
			price decimal.Decimal
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Category, &p.Image, &p.Description); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price = domain.NewPrice(price)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) ensure(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createProductsTable); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 || len(r.seed) == 0 {
		return nil
	}

	values := make([]string, 0, len(r.seed))
	args := make([]any, 0, len(r.seed)*6)
	for i, p := range r.seed {
		n := i * 6
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6))
		args = append(args, p.ID, p.Name, p.Price.Decimal, p.Category, p.Image, p.Description)
	}
	query := `INSERT INTO products (id, name, price, category, image, description) VALUES ` +
		strings.Join(values, ", ") + ` ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

func buildListQuery(f ports.ProductFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	if f.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(f.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT id, name, price, category, image, description FROM products`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch f.Sort {
	case ports.SortPriceLow:
		query += " ORDER BY price ASC, id ASC"
	case ports.SortPriceHigh:
		query += " ORDER BY price DESC, id ASC"
	default:
		query += " ORDER BY id ASC"
	}
	return query, args
}

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domproduct "example.com/shareeghor/app/internal/domain/product"
)

// ProductRepository serves the catalog from MySQL. Sizes and colors are
// stored as JSON arrays.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS categories (
            name     VARCHAR(64) NOT NULL PRIMARY KEY,
            position INT         NOT NULL
        )
    `); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS products (
            id             BIGINT        NOT NULL PRIMARY KEY,
            name           VARCHAR(255)  NOT NULL,
            description    TEXT          NOT NULL,
            price          DECIMAL(12,2) NOT NULL,
            original_price DECIMAL(12,2) NOT NULL DEFAULT 0,
            category       VARCHAR(64)   NOT NULL,
            sizes          JSON          NOT NULL,
            colors         JSON          NOT NULL,
            in_stock       TINYINT(1)    NOT NULL DEFAULT 1,
            rating         DECIMAL(3,1)  NOT NULL DEFAULT 0,
            reviews        INT           NOT NULL DEFAULT 0,
            image          VARCHAR(512)  NOT NULL DEFAULT '',
            position       INT           NOT NULL
        )
    `)
	return err
}

// Seed fills empty tables from src. Existing rows are left alone.
func (r *ProductRepository) Seed(ctx context.Context, src domproduct.Repository) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories, err := src.Categories(ctx)
	if err != nil {
		return err
	}
	products, err := src.List(ctx)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, name := range categories {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO categories (name, position) VALUES (?, ?)
            ON DUPLICATE KEY UPDATE position = VALUES(position)
        `, name, i); err != nil {
			return err
		}
	}
	for i, p := range products {
		sizes, err := json.Marshal(p.Sizes)
		if err != nil {
			return err
		}
		colors, err := json.Marshal(p.Colors)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO products (id, name, description, price, original_price, category, sizes, colors, in_stock, rating, reviews, image, position)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        `, p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, sizes, colors, p.InStock, p.Rating, p.Reviews, p.Image, i); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

const productColumns = `id, name, description, price, original_price, category, sizes, colors, in_stock, rating, reviews, image`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domproduct.Product, error) {
	var (
		p      domproduct.Product
		sizes  []byte
		colors []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Category,
		&sizes, &colors, &p.InStock, &p.Rating, &p.Reviews, &p.Image); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizes, &p.Sizes); err != nil {
		return nil, fmt.Errorf("product %d sizes: %w", p.ID, err)
	}
	if err := json.Unmarshal(colors, &p.Colors); err != nil {
		return nil, fmt.Errorf("product %d colors: %w", p.ID, err)
	}
	return &p, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns every product in catalog order. Filtering and sorting happen
// in the product service.
func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

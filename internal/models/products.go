package models

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type ProductModel struct {
	DB *sql.DB
}

func (m *ProductModel) Insert(ctx context.Context, p Product) (int, error) {
	query := `INSERT INTO products (name, description, price, image_url)
              VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := m.DB.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.ImageURL).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (m *ProductModel) Get(ctx context.Context, id int) (Product, error) {
	query := `SELECT id, name, description, price, image_url
              FROM products WHERE id = $1`

	var p Product
	var image sql.NullString
	err := m.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNoRecord
		}
		return Product{}, err
	}
	p.ImageURL = image.String

	return p, nil
}

func (m *ProductModel) All(ctx context.Context) ([]Product, error) {
	query := `SELECT id, name, description, price, image_url FROM products`

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var image sql.NullString
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &image)
		if err != nil {
			return nil, err
		}
		p.ImageURL = image.String
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Update is a full-row replacement.
func (m *ProductModel) Update(ctx context.Context, p Product) error {
	query := `UPDATE products
              SET name = $1, description = $2, price = $3, image_url = $4
              WHERE id = $5`

	result, err := m.DB.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.ImageURL, p.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRecord
	}

	return nil
}

// Delete removes a product. The foreign key on order_items restricts the
// delete while any historical order still references the product.
func (m *ProductModel) Delete(ctx context.Context, id int) error {
	result, err := m.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrProductInUse
		}
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoRecord
	}

	return nil
}

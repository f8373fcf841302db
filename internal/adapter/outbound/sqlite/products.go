package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sentinel-Gate/storefront/internal/domain/product"
)

const productColumns = `id, user_id, name, image, brand, category, description, rating, num_reviews, price, count_in_stock, created_at, updated_at`

// CreateProduct inserts one product.
func (s *Store) CreateProduct(ctx context.Context, p *product.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = p.CreatedAt
	if p.Reviews == nil {
		p.Reviews = []product.Review{}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Image, p.Brand, p.Category, p.Description,
		p.Rating, p.NumReviews, p.Price, p.CountInStock,
		toMillis(p.CreatedAt), toMillis(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetProduct returns one product with its reviews, oldest review first.
func (s *Store) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, user_id, name, rating, comment, created_at FROM reviews WHERE product_id = ? ORDER BY created_at, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			r         product.Review
			createdAt int64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Rating, &r.Comment, &createdAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		r.CreatedAt = fromMillis(createdAt)
		p.Reviews = append(p.Reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return p, nil
}

// UpdateProduct saves the editable product fields.
func (s *Store) UpdateProduct(ctx context.Context, p *product.Product) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.sqlDB.ExecContext(ctx,
		`UPDATE products SET name = ?, image = ?, brand = ?, category = ?, description = ?, price = ?, count_in_stock = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price, p.CountInStock, toMillis(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireAffected(res, product.ErrNotFound)
}

// DeleteProduct removes one product; reviews cascade.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireAffected(res, product.ErrNotFound)
}

// ListProducts returns one page of products whose name contains the keyword.
func (s *Store) ListProducts(ctx context.Context, q product.ListQuery) ([]product.Product, int, error) {
	pattern := "%" + escapeLike(q.Keyword) + "%"

	var total int
	if err := s.sqlDB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE name LIKE ? ESCAPE '\'`, pattern,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE name LIKE ? ESCAPE '\' ORDER BY created_at, id LIMIT ? OFFSET ?`,
		pattern, q.PageSize, q.Offset(),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// TopProducts returns up to limit products by descending rating.
func (s *Store) TopProducts(ctx context.Context, limit int) ([]product.Product, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY rating DESC, num_reviews DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return collectProducts(rows)
}

// AddReview inserts a review and recomputes the rating in one transaction.
func (s *Store) AddReview(ctx context.Context, productID string, r product.Review) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, productID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return product.ErrNotFound
		}
		return fmt.Errorf("lookup product: %w", err)
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reviews (id, product_id, user_id, name, rating, comment, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, productID, r.UserID, r.Name, r.Rating, r.Comment, toMillis(r.CreatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return product.ErrAlreadyReviewed
		}
		return fmt.Errorf("insert review: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE products SET
		   num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = ?),
		   rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = ?),
		   updated_at = ?
		 WHERE id = ?`,
		productID, productID, toMillis(time.Now()), productID,
	); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit review: %w", err)
	}
	return nil
}

func collectProducts(rows *sql.Rows) ([]product.Product, error) {
	defer rows.Close()
	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func scanProduct(row rowScanner) (*product.Product, error) {
	var (
		p         product.Product
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Description,
		&p.Rating, &p.NumReviews, &p.Price, &p.CountInStock, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	p.Reviews = []product.Review{}
	return &p, nil
}

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

const uniqueViolation = "23505"

const productColumns = `id, code, name, description, image, category, price, quantity,
	internal_reference, shell_id, inventory_status, rating, created_at, updated_at`

type Repository interface {
	GetAll(ctx context.Context) ([]*Product, error)
	// GetByCode returns nil, nil when no product uses code.
	GetByCode(ctx context.Context, code string) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Image, &p.Category, &p.Price, &p.Quantity,
		&p.InternalReference, &p.ShellID, &p.InventoryStatus, &p.Rating, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) queryProducts(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetAll(ctx context.Context) ([]*Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE code = $1", code)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", code, err)
	}
	return p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []int64) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}
	return r.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ANY($1) ORDER BY id",
		pq.Array(ids),
	)
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (code, name, description, image, category, price, quantity,
			internal_reference, shell_id, inventory_status, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`,
		p.Code, p.Name, p.Description, p.Image, p.Category, p.Price, p.Quantity,
		p.InternalReference, p.ShellID, p.InventoryStatus, p.Rating, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeAlreadyUsed
		}
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("code", p.Code),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET code = $1, name = $2, description = $3, image = $4, category = $5,
			price = $6, quantity = $7, internal_reference = $8, shell_id = $9,
			inventory_status = $10, rating = $11, updated_at = $12
		WHERE id = $13`,
		p.Code, p.Name, p.Description, p.Image, p.Category, p.Price, p.Quantity,
		p.InternalReference, p.ShellID, p.InventoryStatus, p.Rating, p.UpdatedAt, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeAlreadyUsed
		}
		logger.FromCtx(ctx).Error("db: failed to update product",
			zap.Int64("id", p.ID),
			zap.Error(err),
		)
	}
	return err
}

// isUniqueViolation reports a concurrent insert or rename that won the
// products.code unique index.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

package category

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"storefront-be/internal/logger"
)

type Repository interface {
	List(ctx context.Context, filter string, limit, offset int) ([]*Category, error)
	Count(ctx context.Context, filter string) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// where builds the shared filter clause. Products without a category are
// never listed.
func where(filter string) (string, []any) {
	clauses := []string{"category <> ''"}
	args := []any{}

	if filter != "" {
		args = append(args, "%"+filter+"%")
		clauses = append(clauses, fmt.Sprintf("category ILIKE $%d", len(args)))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *repository) List(ctx context.Context, filter string, limit, offset int) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("filter", filter),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	clause, args := where(filter)
	query := "SELECT category, COUNT(*) FROM products" + clause +
		" GROUP BY category ORDER BY category ASC" +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	log.Debug("executing category list query", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	categories := make([]*Category, 0, limit)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Name, &c.ProductCount); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

func (r *repository) Count(ctx context.Context, filter string) (int64, error) {
	clause, args := where(filter)

	var total int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT category) FROM products"+clause, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return total, nil
}

package wishlist

import (
	"context"
	"database/sql"
)

type Repository interface {
	ProductIDs(ctx context.Context, userID int64) ([]int64, error)
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProductIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT product_id FROM wishlist_products WHERE user_id = $1 ORDER BY created_at, product_id",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add is idempotent: a product already in the wishlist is left as is.
func (r *repository) Add(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO wishlist_products (user_id, product_id) VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	)
	return err
}

func (r *repository) Remove(ctx context.Context, userID, productID int64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM wishlist_products WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	return err
}

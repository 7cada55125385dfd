package wishlist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront-be/internal/logger"
	"storefront-be/internal/product"
)

// ProductCatalog is the slice of the product repository the wishlist needs.
type ProductCatalog interface {
	GetByCode(ctx context.Context, code string) (*product.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*product.Product, error)
}

type Service interface {
	Get(ctx context.Context, userID int64) ([]*product.Product, error)
	AddProduct(ctx context.Context, userID int64, code string) ([]*product.Product, error)
	RemoveProduct(ctx context.Context, userID int64, code string) ([]*product.Product, error)
}

type service struct {
	repo    Repository
	catalog ProductCatalog
}

func NewService(repo Repository, catalog ProductCatalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Get(ctx context.Context, userID int64) ([]*product.Product, error) {
	ids, err := s.repo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// keep wishlist order; products deleted since are skipped
	byID := make(map[int64]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]*product.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *service) AddProduct(ctx context.Context, userID int64, code string) ([]*product.Product, error) {
	p, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, userID, p.ID); err != nil {
		logger.FromCtx(ctx).Error("failed to add wishlist product",
			zap.Int64("user_id", userID),
			zap.String("code", code),
			zap.Error(err),
		)
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *service) RemoveProduct(ctx context.Context, userID int64, code string) ([]*product.Product, error) {
	p, err := s.resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Remove(ctx, userID, p.ID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *service) resolve(ctx context.Context, code string) (*product.Product, error) {
	p, err := s.catalog.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	return p, nil
}
